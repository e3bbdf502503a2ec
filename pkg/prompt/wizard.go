// Package prompt asks for the missing parts of a render request on a
// terminal.
package prompt

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-modelinput/pkg/generator"
	"github.com/goliatone/go-modelinput/pkg/options"
)

// Option configures a Wizard.
type Option func(*Wizard)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(w *Wizard) {
		if driver != nil {
			w.driver = driver
		}
	}
}

// WithModels offers models as a selection list instead of free text.
func WithModels(models []string) Option {
	return func(w *Wizard) {
		w.models = append([]string(nil), models...)
	}
}

// Wizard completes a generator.Request interactively.
type Wizard struct {
	driver Driver
	models []string
}

// NewWizard creates a Wizard using survey unless WithDriver says otherwise.
func NewWizard(opts ...Option) *Wizard {
	w := &Wizard{}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	if w.driver == nil {
		w.driver = NewSurveyDriver()
	}
	return w
}

// Complete prompts for whatever req leaves empty. When req carries no options
// the user may build them step by step.
func (w *Wizard) Complete(ctx context.Context, req generator.Request) (generator.Request, error) {
	var err error
	if strings.TrimSpace(req.Model) == "" {
		if req.Model, err = w.askModel(ctx); err != nil {
			return generator.Request{}, err
		}
	}
	if strings.TrimSpace(req.Field) == "" {
		req.Field, err = w.driver.Input(ctx, InputConfig{
			Message:   "Field",
			Help:      "Column name on the model's table",
			Validator: required("field"),
		})
		if err != nil {
			return generator.Request{}, err
		}
	}
	if req.Options != "" || req.Args != nil {
		return req, nil
	}

	customise, err := w.driver.Confirm(ctx, ConfirmConfig{Message: "Customise options?"})
	if err != nil {
		return generator.Request{}, err
	}
	if !customise {
		return req, nil
	}
	args, err := w.askArgs(ctx)
	if err != nil {
		return generator.Request{}, err
	}
	req.Args = &args
	return req, nil
}

func (w *Wizard) askModel(ctx context.Context) (string, error) {
	if len(w.models) == 0 {
		return w.driver.Input(ctx, InputConfig{
			Message:   "Model",
			Help:      "Model identifier, for example User or App\\Models\\User",
			Validator: required("model"),
		})
	}
	idx, err := w.driver.Select(ctx, SelectConfig{
		Message:  "Model",
		Options:  w.models,
		PageSize: 10,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(w.models) {
		return "", errors.New("prompt: no model selected")
	}
	return w.models[idx], nil
}

func (w *Wizard) askArgs(ctx context.Context) (options.Args, error) {
	var args options.Args

	label, err := w.driver.Input(ctx, InputConfig{
		Message: "Label text",
		Help:    "Leave empty to use the field name",
	})
	if err != nil {
		return options.Args{}, err
	}
	if label = strings.TrimSpace(label); label != "" {
		args.LabelText = &label
	}

	if args.IDSuffix, err = w.driver.Input(ctx, InputConfig{Message: "Id suffix"}); err != nil {
		return options.Args{}, err
	}
	args.IDSuffix = strings.TrimSpace(args.IDSuffix)

	if args.ShowComment, err = w.driver.Confirm(ctx, ConfirmConfig{Message: "Show column comment?"}); err != nil {
		return options.Args{}, err
	}

	extra, err := w.driver.Input(ctx, InputConfig{
		Message:   "Extra options",
		Help:      "Options expression merged over the answers above, e.g. ['attributes' => ['disabled' => true]]",
		Validator: validExpression,
	})
	if err != nil {
		return options.Args{}, err
	}
	if strings.TrimSpace(extra) == "" {
		return args, nil
	}
	parsed, err := options.Parse(extra)
	if err != nil {
		return options.Args{}, err
	}
	return overlay(args, parsed), nil
}

func overlay(base, top options.Args) options.Args {
	out := base
	if top.ContainerClasses != "" {
		out.ContainerClasses = top.ContainerClasses
	}
	if top.LabelClasses != "" {
		out.LabelClasses = top.LabelClasses
	}
	if top.InputClasses != "" {
		out.InputClasses = top.InputClasses
	}
	if top.LabelText != nil {
		out.LabelText = top.LabelText
	}
	if top.LabelHTML != nil {
		out.LabelHTML = top.LabelHTML
	}
	if top.IDSuffix != "" {
		out.IDSuffix = top.IDSuffix
	}
	if top.ShowComment {
		out.ShowComment = true
	}
	if top.Attributes.Len() > 0 {
		out.Attributes = top.Attributes.Clone()
	}
	return out
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(what + " is required")
		}
		return nil
	}
}

func validExpression(s string) error {
	_, err := options.Parse(s)
	return err
}
