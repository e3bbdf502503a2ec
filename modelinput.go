// Package modelinput renders labelled HTML inputs whose type and validation
// attributes follow a model's database column definition.
//
// The root package re-exports the entry points most hosts need. The building
// blocks live under pkg/: column metadata and providers, rule derivation,
// options parsing, markup assembly and the template directive.
package modelinput

import (
	"context"
	"html/template"

	"github.com/goliatone/go-modelinput/pkg/column"
	"github.com/goliatone/go-modelinput/pkg/directive"
	"github.com/goliatone/go-modelinput/pkg/generator"
	"github.com/goliatone/go-modelinput/pkg/options"
)

// Request describes one directive invocation.
type Request = generator.Request

// Result carries the column, derived rules and markup of an invocation.
type Result = generator.Result

// Error wraps a failed invocation with its pipeline stage.
type Error = generator.Error

// Option configures a Generator.
type Option = generator.Option

// Generator runs the options, lookup, derive, merge and assemble pipeline.
type Generator = generator.Generator

// Column is the schema metadata read for one field.
type Column = column.Column

// Sentinels callers test with errors.Is.
var (
	ErrModelNotFound     = column.ErrModelNotFound
	ErrColumnNotFound    = column.ErrColumnNotFound
	ErrUnknownColumnType = column.ErrUnknownColumnType
	ErrMalformedOptions  = options.ErrMalformedOptions
)

// New builds a Generator. A registry and a provider are required.
func New(opts ...Option) (*Generator, error) {
	return generator.New(opts...)
}

// Render builds a Generator from opts and renders a single input. Hosts
// rendering more than once should keep the Generator from New instead.
func Render(ctx context.Context, model, field, optionsExpr string, opts ...Option) (string, error) {
	gen, err := generator.New(opts...)
	if err != nil {
		return "", err
	}
	return gen.Generate(ctx, Request{Model: model, Field: field, Options: optionsExpr})
}

// NewEngine returns a pongo2 engine with the modelinput tag and the
// model_input function bound to gen.
func NewEngine(gen *Generator, opts ...directive.Option) (*directive.Engine, error) {
	return directive.New(gen, opts...)
}

// FuncMap exposes modelInput for html/template.
func FuncMap(gen *Generator) template.FuncMap {
	return directive.FuncMap(gen)
}
