// Package markup assembles the container, label and input triple emitted for
// a model field.
package markup

import (
	"html"
	"strings"

	"github.com/goliatone/go-modelinput/pkg/options"
	"github.com/goliatone/go-modelinput/pkg/rules"
)

// CommentClass is applied to the help text rendered from a column comment.
const CommentClass = "modelinput-comment"

// Input carries everything needed to render one field.
type Input struct {
	Field     string
	InputType string
	Args      options.Args
	// Attributes is the merged attribute set. Reserved keys are ignored.
	Attributes rules.Attributes
	Comment    string
}

// ElementID returns the generated element id. The separator is kept when
// suffix is empty, so "email" yields "email_input_".
func ElementID(field, suffix string) string {
	return field + "_input_" + suffix
}

// Resolved returns the id, name and type after caller overrides.
func (in Input) Resolved() (id, name, inputType string) {
	id = ElementID(in.Field, in.Args.IDSuffix)
	name = in.Field
	inputType = in.InputType
	if value, ok := in.Args.AttributeString("id"); ok {
		id = value
	}
	if value, ok := in.Args.AttributeString("name"); ok {
		name = value
	}
	if value, ok := in.Args.AttributeString("type"); ok {
		inputType = value
	}
	return id, name, inputType
}

// Label returns the label body: sanitised label_html, escaped label_text or
// the escaped field name.
func (in Input) Label() string {
	if in.Args.LabelHTML != nil {
		if cleaned := SanitizeLabel(*in.Args.LabelHTML); cleaned != "" {
			return cleaned
		}
	}
	if in.Args.LabelText != nil {
		return html.EscapeString(*in.Args.LabelText)
	}
	return html.EscapeString(in.Field)
}

// Assemble renders the markup for in. Every interpolated value is escaped.
func Assemble(in Input) string {
	id, name, inputType := in.Resolved()
	attrs := rules.Serialize(in.Attributes)

	var builder strings.Builder
	builder.Grow(len(attrs) + 256)

	builder.WriteString(`<div class="`)
	builder.WriteString(html.EscapeString(in.Args.ContainerClasses))
	builder.WriteString("\">\n")

	builder.WriteString(`    <label for="`)
	builder.WriteString(html.EscapeString(id))
	builder.WriteString(`" class="`)
	builder.WriteString(html.EscapeString(in.Args.LabelClasses))
	builder.WriteString(`">`)
	builder.WriteString(in.Label())
	builder.WriteString("</label>\n")

	builder.WriteString(`    <input type="`)
	builder.WriteString(html.EscapeString(inputType))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(name))
	builder.WriteString(`" id="`)
	builder.WriteString(html.EscapeString(id))
	builder.WriteString(`" class="`)
	builder.WriteString(html.EscapeString(in.Args.InputClasses))
	builder.WriteString(`"`)
	builder.WriteString(attrs)
	builder.WriteString(">\n")

	if comment := strings.TrimSpace(in.Comment); in.Args.ShowComment && comment != "" {
		builder.WriteString(`    <small class="` + CommentClass + `">`)
		builder.WriteString(html.EscapeString(comment))
		builder.WriteString("</small>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String()
}
