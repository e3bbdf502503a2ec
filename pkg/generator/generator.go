package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-modelinput/pkg/column"
	"github.com/goliatone/go-modelinput/pkg/markup"
	"github.com/goliatone/go-modelinput/pkg/metrics"
	"github.com/goliatone/go-modelinput/pkg/options"
	"github.com/goliatone/go-modelinput/pkg/rules"
)

// Generator renders model inputs.
type Generator struct {
	registry column.ModelRegistry
	provider column.Provider
	clock    rules.Clock
	logger   zerolog.Logger
	metrics  *metrics.Collector

	strictTypes    bool
	columnDefaults bool
	showComments   bool
	defaults       Defaults

	themeSelector theme.ThemeSelector
}

// New constructs a Generator. A registry and a provider are required.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		clock:  rules.SystemClock,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.registry == nil {
		return nil, errors.New("generator: model registry is required")
	}
	if g.provider == nil {
		return nil, errors.New("generator: column provider is required")
	}
	return g, nil
}

// Request describes one invocation.
type Request struct {
	Model string
	Field string

	// Options is the textual options expression. Ignored when Args is set.
	Options string
	// Args carries pre-parsed options, for hosts passing structured values.
	Args *options.Args

	// Theme and Variant override the generator's default theme selection.
	Theme   string
	Variant string
}

// Result is the full outcome of an invocation.
type Result struct {
	Model      string
	Field      string
	Table      string
	Column     column.Column
	InputType  string
	Fallback   bool
	Derived    rules.Attributes
	Attributes rules.Attributes
	Markup     string
}

// Generate renders the markup for req. On failure it returns "" and an
// *Error; no partial markup is ever produced.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	res, err := g.Inspect(ctx, req)
	if err != nil {
		return "", err
	}
	return res.Markup, nil
}

// GenerateExpression parses `Model, field[, options]` and renders it.
func (g *Generator) GenerateExpression(ctx context.Context, expr string) (string, error) {
	directive, err := options.ParseDirective(expr)
	if err != nil {
		return "", &Error{Stage: StageOptions, Err: err}
	}
	return g.Generate(ctx, Request{
		Model: directive.Model,
		Field: directive.Field,
		Args:  &directive.Args,
	})
}

// Inspect runs the pipeline and returns every intermediate value alongside
// the markup.
func (g *Generator) Inspect(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("generator: context is required")
	}
	started := time.Now()

	res, err := g.run(ctx, req)
	if err != nil {
		stage := "unknown"
		var genErr *Error
		if errors.As(err, &genErr) {
			stage = string(genErr.Stage)
		}
		g.metrics.RecordRenderError(stage, time.Since(started))
		return Result{}, err
	}

	g.metrics.RecordRender(res.InputType, time.Since(started))
	g.logger.Debug().
		Str("model", res.Model).
		Str("field", res.Field).
		Str("table", res.Table).
		Str("column_type", res.Column.Type).
		Str("input_type", res.InputType).
		Msg("model input rendered")
	return res, nil
}

func (g *Generator) run(ctx context.Context, req Request) (Result, error) {
	model := strings.TrimSpace(req.Model)
	field := strings.TrimSpace(req.Field)
	fail := func(stage Stage, err error) (Result, error) {
		return Result{}, &Error{Stage: stage, Model: model, Field: field, Err: err}
	}

	args, err := g.args(req)
	if err != nil {
		return fail(StageOptions, err)
	}
	if err := ctx.Err(); err != nil {
		return fail(StageModel, err)
	}

	table, err := g.registry.TableName(ctx, model)
	if err != nil {
		return fail(StageModel, err)
	}

	if field == "" {
		return fail(StageColumn, fmt.Errorf("%w: empty field name", column.ErrColumnNotFound))
	}
	col, err := g.provider.Column(ctx, table, field)
	if err != nil {
		return fail(StageColumn, err)
	}

	inputType, fallback, err := g.inputType(col)
	if err != nil {
		return fail(StageType, err)
	}

	defaults, err := g.classDefaults(req)
	if err != nil {
		return fail(StageTheme, err)
	}
	applyDefaults(&args, defaults)
	if g.showComments {
		args.ShowComment = true
	}

	derived := rules.Derive(col, inputType, g.clock, rules.DeriveOptions{ColumnDefaults: g.columnDefaults})
	merged := rules.Merge(derived, args.Attributes)

	html := markup.Assemble(markup.Input{
		Field:      field,
		InputType:  inputType,
		Args:       args,
		Attributes: merged,
		Comment:    col.Comment,
	})

	return Result{
		Model:      model,
		Field:      field,
		Table:      table,
		Column:     col,
		InputType:  inputType,
		Fallback:   fallback,
		Derived:    derived,
		Attributes: merged,
		Markup:     html,
	}, nil
}

func (g *Generator) args(req Request) (options.Args, error) {
	if req.Args != nil {
		return options.Normalize(*req.Args)
	}
	return options.Parse(req.Options)
}

func (g *Generator) inputType(col column.Column) (string, bool, error) {
	inputType, err := column.ResolveInputType(col.Type)
	if err == nil {
		return inputType, false, nil
	}
	if g.strictTypes {
		return "", false, err
	}
	g.metrics.RecordTypeFallback(col.Type)
	g.logger.Warn().
		Str("column", col.Name).
		Str("column_type", col.Type).
		Msg("unknown column type, rendering as text")
	return column.InputText, true, nil
}

// classDefaults layers the selected theme's tokens over the configured
// defaults. Variant tokens win over the manifest's base tokens.
func (g *Generator) classDefaults(req Request) (Defaults, error) {
	out := g.defaults
	if g.themeSelector == nil {
		return out, nil
	}

	selection, err := g.themeSelector.Select(strings.TrimSpace(req.Theme), strings.TrimSpace(req.Variant))
	if err != nil {
		return Defaults{}, fmt.Errorf("select theme %q: %w", req.Theme, err)
	}
	if selection == nil {
		return out, nil
	}

	tokens := selection.Tokens()
	if v := tokens[TokenContainer]; v != "" {
		out.ContainerClasses = v
	}
	if v := tokens[TokenLabel]; v != "" {
		out.LabelClasses = v
	}
	if v := tokens[TokenInput]; v != "" {
		out.InputClasses = v
	}
	return out, nil
}

func applyDefaults(args *options.Args, defaults Defaults) {
	if args.ContainerClasses == "" {
		args.ContainerClasses = defaults.ContainerClasses
	}
	if args.LabelClasses == "" {
		args.LabelClasses = defaults.LabelClasses
	}
	if args.InputClasses == "" {
		args.InputClasses = defaults.InputClasses
	}
}
