package options

import (
	"fmt"
	"strings"
)

// Directive is the parsed argument list of a `Model, field[, options]`
// invocation.
type Directive struct {
	Model string
	Field string
	Args  Args
}

// ParseDirective parses raw directive arguments such as
// `User, email, ['label_text' => 'E-mail']`. Model and field may be bare
// identifiers or quoted strings.
func ParseDirective(expr string) (Directive, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return Directive{}, fmt.Errorf("%w: %v", ErrMalformedOptions, err)
	}
	stream := &tokenStream{tokens: tokens}

	model, err := stream.directiveName("model")
	if err != nil {
		return Directive{}, err
	}
	if !stream.match(tokenComma) {
		return Directive{}, fmt.Errorf("%w: %v", ErrMalformedOptions, stream.expected("',' after model"))
	}
	field, err := stream.directiveName("field")
	if err != nil {
		return Directive{}, err
	}

	directive := Directive{Model: model, Field: field}
	if stream.done() {
		return directive, nil
	}
	if !stream.match(tokenComma) {
		return Directive{}, fmt.Errorf("%w: %v", ErrMalformedOptions, stream.expected("',' after field"))
	}
	if stream.done() {
		return directive, nil
	}

	value, err := stream.parseValue()
	if err != nil {
		return Directive{}, fmt.Errorf("%w: %v", ErrMalformedOptions, err)
	}
	if !stream.done() {
		return Directive{}, fmt.Errorf("%w: unexpected token %s at offset %d", ErrMalformedOptions, stream.peek().describe(), stream.peek().pos)
	}

	args, err := FromValue(value)
	if err != nil {
		return Directive{}, err
	}
	directive.Args = args
	return directive, nil
}

func (s *tokenStream) directiveName(what string) (string, error) {
	tok, err := s.next()
	if err != nil {
		return "", fmt.Errorf("%w: missing %s", ErrMalformedOptions, what)
	}
	if tok.kind != tokenIdentifier && tok.kind != tokenString {
		return "", fmt.Errorf("%w: expected %s name, got %s", ErrMalformedOptions, what, tok.describe())
	}
	name := strings.TrimSpace(tok.raw)
	if name == "" {
		return "", fmt.Errorf("%w: %s name is empty", ErrMalformedOptions, what)
	}
	return name, nil
}
