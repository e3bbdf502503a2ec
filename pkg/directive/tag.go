package directive

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-modelinput/pkg/generator"
	"github.com/goliatone/go-modelinput/pkg/options"
)

// TagName is the pongo2 tag: {% modelinput "User" "email" opts %}.
const TagName = "modelinput"

var registerOnce sync.Once

// binding is what an Engine stores in its template set globals.
type binding struct {
	gen     *generator.Generator
	theme   string
	variant string
}

func registerTag() {
	registerOnce.Do(func() {
		// An existing registration under the same name is kept.
		_ = pongo2.RegisterTag(TagName, parseModelInputTag)
	})
}

type modelInputNode struct {
	token *pongo2.Token
	model pongo2.IEvaluator
	field pongo2.IEvaluator
	opts  pongo2.IEvaluator
}

func parseModelInputTag(_ *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	node := &modelInputNode{token: start}

	model, err := arguments.ParseExpression()
	if err != nil {
		return nil, err
	}
	node.model = model

	if arguments.Remaining() == 0 {
		return nil, arguments.Error("modelinput tag requires a model and a field", nil)
	}
	field, err := arguments.ParseExpression()
	if err != nil {
		return nil, err
	}
	node.field = field

	if arguments.Remaining() > 0 {
		opts, err := arguments.ParseExpression()
		if err != nil {
			return nil, err
		}
		node.opts = opts
	}
	if arguments.Remaining() > 0 {
		return nil, arguments.Error("modelinput tag takes at most three arguments", nil)
	}
	return node, nil
}

func (node *modelInputNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	model, err := node.model.Evaluate(ctx)
	if err != nil {
		return err
	}
	field, err := node.field.Evaluate(ctx)
	if err != nil {
		return err
	}
	var opts *pongo2.Value
	if node.opts != nil {
		if opts, err = node.opts.Evaluate(ctx); err != nil {
			return err
		}
	}

	markup, genErr := render(ctx, model, field, opts)
	if genErr != nil {
		return ctx.OrigError(genErr, node.token)
	}
	if _, werr := writer.WriteString(markup); werr != nil {
		return ctx.OrigError(werr, node.token)
	}
	return nil
}

// render is shared by the tag and the model_input function.
func render(ctx *pongo2.ExecutionContext, model, field, opts *pongo2.Value) (string, error) {
	bound, ok := ctx.Public[generatorKey].(binding)
	if !ok || bound.gen == nil {
		return "", errors.New("modelinput: template set has no generator")
	}
	goCtx, _ := ctx.Public[contextKey].(context.Context)
	if goCtx == nil {
		goCtx = context.Background()
	}

	req := generator.Request{
		Model:   model.String(),
		Field:   field.String(),
		Theme:   bound.theme,
		Variant: bound.variant,
	}
	if opts != nil && !opts.IsNil() {
		args, err := argsFromValue(opts.Interface())
		if err != nil {
			return "", &generator.Error{Stage: generator.StageOptions, Model: req.Model, Field: req.Field, Err: err}
		}
		req.Args = &args
	}
	return bound.gen.Generate(goCtx, req)
}

func argsFromValue(value any) (options.Args, error) {
	switch v := value.(type) {
	case pongo2.Context:
		return options.FromMap(map[string]any(v))
	case map[string]string:
		converted := make(map[string]any, len(v))
		for key, item := range v {
			converted[key] = item
		}
		return options.FromMap(converted)
	case string, map[string]any, nil:
		return options.FromValue(v)
	default:
		return options.Args{}, fmt.Errorf("%w: options must be a string or map, got %T", options.ErrMalformedOptions, value)
	}
}
