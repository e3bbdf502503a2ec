// Package options parses the caller-supplied configuration of a model input
// directive. Expressions are parsed by a strict literal parser: only maps,
// lists, strings, numbers, booleans and null are accepted, so nothing in an
// options expression can execute code.
package options

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-modelinput/pkg/rules"
)

// ErrMalformedOptions reports an options expression that is not a well-formed
// configuration object.
var ErrMalformedOptions = errors.New("options: malformed options")

// Recognised option keys.
const (
	KeyContainerClasses = "container_classes"
	KeyLabelClasses     = "label_classes"
	KeyInputClasses     = "input_classes"
	KeyLabelText        = "label_text"
	KeyLabelHTML        = "label_html"
	KeyIDSuffix         = "id_suffix"
	KeyShowComment      = "show_comment"
	KeyAttributes       = "attributes"
)

// Args is the parsed directive configuration.
type Args struct {
	ContainerClasses string
	LabelClasses     string
	InputClasses     string
	// LabelText replaces the field name as label content when set.
	LabelText *string
	// LabelHTML is sanitised inline markup that takes precedence over LabelText.
	LabelHTML   *string
	IDSuffix    string
	ShowComment bool
	// Attributes override derived rules; id/name/type also override the
	// dedicated markup slots.
	Attributes rules.Attributes
}

// Parse decodes an options expression such as
// `['label_text' => 'E-mail', 'attributes' => ['disabled' => true]]`.
// An empty expression yields zero Args.
func Parse(expr string) (Args, error) {
	if strings.TrimSpace(expr) == "" {
		return Args{}, nil
	}
	value, err := ParseLiteral(expr)
	if err != nil {
		return Args{}, fmt.Errorf("%w: %v", ErrMalformedOptions, err)
	}
	if _, isString := value.(string); isString {
		return Args{}, fmt.Errorf("%w: expected a map, got a string", ErrMalformedOptions)
	}
	return FromValue(value)
}

// FromValue converts an already-decoded value (the result of ParseLiteral, a
// rules.Attributes or a map[string]any) into Args. nil yields zero Args.
func FromValue(value any) (Args, error) {
	switch v := value.(type) {
	case nil:
		return Args{}, nil
	case rules.Attributes:
		return fromAttributes(v)
	case map[string]any:
		return FromMap(v)
	case string:
		return Parse(v)
	default:
		return Args{}, fmt.Errorf("%w: expected a map, got %T", ErrMalformedOptions, value)
	}
}

// FromMap converts structured configuration supplied by a host (for example a
// template context map) into Args. Keys are processed in sorted order so
// nested attribute maps serialise deterministically.
func FromMap(values map[string]any) (Args, error) {
	return fromAttributes(attributesFromMap(values))
}

func fromAttributes(entries rules.Attributes) (Args, error) {
	var args Args
	var firstErr error
	entries.Each(func(key string, value any) {
		if firstErr != nil {
			return
		}
		if err := args.apply(key, value); err != nil {
			firstErr = err
		}
	})
	if firstErr != nil {
		return Args{}, firstErr
	}
	return args, nil
}

func (a *Args) apply(key string, value any) error {
	switch key {
	case KeyContainerClasses:
		classes, err := classList(key, value)
		a.ContainerClasses = classes
		return err
	case KeyLabelClasses:
		classes, err := classList(key, value)
		a.LabelClasses = classes
		return err
	case KeyInputClasses:
		classes, err := classList(key, value)
		a.InputClasses = classes
		return err
	case KeyLabelText:
		text, err := scalarString(key, value)
		if err != nil {
			return err
		}
		a.LabelText = &text
	case KeyLabelHTML:
		text, err := scalarString(key, value)
		if err != nil {
			return err
		}
		a.LabelHTML = &text
	case KeyIDSuffix:
		suffix, err := scalarString(key, value)
		if err != nil {
			return err
		}
		a.IDSuffix = suffix
	case KeyShowComment:
		flag, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s must be a boolean, got %T", ErrMalformedOptions, key, value)
		}
		a.ShowComment = flag
	case KeyAttributes:
		attrs, err := attributeMap(value)
		if err != nil {
			return err
		}
		a.Attributes = attrs
	default:
		return fmt.Errorf("%w: unknown option %q", ErrMalformedOptions, key)
	}
	return nil
}

// AttributeString returns the caller override for a reserved slot such as
// "id", "name" or "type".
func (a Args) AttributeString(key string) (string, bool) {
	value, ok := a.Attributes.Get(key)
	if !ok || value == nil {
		return "", false
	}
	return rules.FormatValue(value), true
}

func classList(key string, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return strings.Join(strings.Fields(v), " "), nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return "", fmt.Errorf("%w: %s entries must be strings, got %T", ErrMalformedOptions, key, item)
			}
			parts = append(parts, strings.Fields(s)...)
		}
		return strings.Join(parts, " "), nil
	case []string:
		return strings.Join(strings.Fields(strings.Join(v, " ")), " "), nil
	default:
		return "", fmt.Errorf("%w: %s must be a string or list, got %T", ErrMalformedOptions, key, value)
	}
}

func scalarString(key string, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrMalformedOptions, key, value)
	}
}

func attributeMap(value any) (rules.Attributes, error) {
	switch v := value.(type) {
	case nil:
		return rules.Attributes{}, nil
	case rules.Attributes:
		// HTML attribute names are case-insensitive; "ID" must reach the id slot
		// and "Required" must override the derived "required".
		var (
			out rules.Attributes
			err error
		)
		v.Each(func(key string, item any) {
			if err != nil {
				return
			}
			name := NormalizeAttributeName(key)
			if err = checkAttributeValue(name, item); err == nil {
				out.Set(name, item)
			}
		})
		if err != nil {
			return rules.Attributes{}, err
		}
		return out, nil
	case map[string]any:
		return attributeMap(attributesFromMap(v))
	default:
		return rules.Attributes{}, fmt.Errorf("%w: attributes must be a map, got %T", ErrMalformedOptions, value)
	}
}

// NormalizeAttributeName trims and lower-cases an attribute name.
func NormalizeAttributeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalize validates Args assembled in Go and normalises attribute names
// the same way Parse does. args is not modified.
func Normalize(args Args) (Args, error) {
	attrs, err := attributeMap(args.Attributes)
	if err != nil {
		return Args{}, err
	}
	args.Attributes = attrs
	return args, nil
}

func checkAttributeValue(key string, value any) error {
	if !rules.ValidAttributeName(key) {
		return fmt.Errorf("%w: invalid attribute name %q", ErrMalformedOptions, key)
	}
	switch value.(type) {
	case nil, bool, string, int, int64, float64:
		return nil
	default:
		return fmt.Errorf("%w: attribute %q must be a scalar, got %T", ErrMalformedOptions, key, value)
	}
}

func attributesFromMap(values map[string]any) rules.Attributes {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out rules.Attributes
	for _, key := range keys {
		value := values[key]
		if nested, ok := value.(map[string]any); ok {
			out.Set(key, attributesFromMap(nested))
			continue
		}
		out.Set(key, value)
	}
	return out
}
