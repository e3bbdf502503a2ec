package directive

import (
	"context"
	"html/template"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-modelinput/pkg/generator"
)

// FunctionName is the pongo2 global: {{ model_input("User", "email", opts) }}.
const FunctionName = "model_input"

// HTMLFuncName is the html/template helper registered by FuncMap.
const HTMLFuncName = "modelInput"

func modelInputFunc(ctx *pongo2.ExecutionContext, model, field *pongo2.Value, opts ...*pongo2.Value) (*pongo2.Value, error) {
	var options *pongo2.Value
	if len(opts) > 0 {
		options = opts[0]
	}
	markup, err := render(ctx, model, field, options)
	if err != nil {
		return nil, err
	}
	return pongo2.AsSafeValue(markup), nil
}

// FuncMap exposes gen to html/template as
// {{ modelInput "User" "email" "['id_suffix' => 1]" }}. The options argument
// is optional and may be a string expression or a map. A failed render aborts
// template execution.
func FuncMap(gen *generator.Generator) template.FuncMap {
	return FuncMapContext(context.Background, gen)
}

// FuncMapContext is FuncMap with a per-call context source.
func FuncMapContext(ctxFn func() context.Context, gen *generator.Generator) template.FuncMap {
	return template.FuncMap{
		HTMLFuncName: func(model, field string, opts ...any) (template.HTML, error) {
			req := generator.Request{Model: model, Field: field}
			if len(opts) > 0 && opts[0] != nil {
				args, err := argsFromValue(opts[0])
				if err != nil {
					return "", &generator.Error{Stage: generator.StageOptions, Model: model, Field: field, Err: err}
				}
				req.Args = &args
			}
			markup, err := gen.Generate(ctxFn(), req)
			if err != nil {
				return "", err
			}
			// Generate escapes every interpolated value.
			return template.HTML(markup), nil
		},
	}
}
