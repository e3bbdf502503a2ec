package generator

import (
	"github.com/goliatone/go-modelinput/pkg/column"
	"github.com/goliatone/go-modelinput/pkg/rules"
)

// Report is the serialisable view of a Result used by the preview server and
// the CLI inspect command.
type Report struct {
	Model      string          `json:"model" yaml:"model"`
	Field      string          `json:"field" yaml:"field"`
	Table      string          `json:"table" yaml:"table"`
	Column     column.Column   `json:"column" yaml:"column"`
	InputType  string          `json:"input_type" yaml:"input_type"`
	Fallback   bool            `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Derived    []AttributePair `json:"derived" yaml:"derived"`
	Attributes []AttributePair `json:"attributes" yaml:"attributes"`
	Markup     string          `json:"markup" yaml:"markup"`
}

// AttributePair keeps attribute order intact when serialised. Booleans and
// nil stay as they are; everything else is rendered the way it appears in
// markup.
type AttributePair struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Report converts r for serialisation.
func (r Result) Report() Report {
	return Report{
		Model:      r.Model,
		Field:      r.Field,
		Table:      r.Table,
		Column:     r.Column,
		InputType:  r.InputType,
		Fallback:   r.Fallback,
		Derived:    pairs(r.Derived),
		Attributes: pairs(r.Attributes),
		Markup:     r.Markup,
	}
}

func pairs(attrs rules.Attributes) []AttributePair {
	out := make([]AttributePair, 0, attrs.Len())
	attrs.Each(func(key string, value any) {
		switch v := value.(type) {
		case nil, bool:
			out = append(out, AttributePair{Name: key, Value: v})
		default:
			out = append(out, AttributePair{Name: key, Value: rules.FormatValue(v)})
		}
	})
	return out
}
