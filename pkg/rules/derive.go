// Package rules derives HTML input attributes from column metadata, merges
// caller overrides on top, and serialises the result into an attribute string.
package rules

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/goliatone/go-modelinput/pkg/column"
)

// MaxPrecision bounds the digit counts used for numeric min/max/step. It
// matches the PostgreSQL numeric limit; larger values are clamped.
const MaxPrecision = 1000

// Attribute names produced by Derive.
const (
	AttrRequired     = "required"
	AttrMin          = "min"
	AttrMax          = "max"
	AttrMinLength    = "minlength"
	AttrMaxLength    = "maxlength"
	AttrDisabled     = "disabled"
	AttrReadonly     = "readonly"
	AttrStep         = "step"
	AttrPattern      = "pattern"
	AttrPlaceholder  = "placeholder"
	AttrAutocomplete = "autocomplete"
	AttrAutofocus    = "autofocus"
	AttrMultiple     = "multiple"
	AttrValue        = "value"
	AttrChecked      = "checked"
)

// Value layouts for date/time defaults.
const (
	DateLayout          = "2006-01-02"
	DateTimeLocalLayout = "2006-01-02T15:04"
	TimeLayout          = "15:04"
)

// DeriveOptions toggles derivations that go beyond the baseline rules.
type DeriveOptions struct {
	// ColumnDefaults seeds value/checked from the column's literal default.
	ColumnDefaults bool
}

// Baseline returns the default rule set every input starts from.
func Baseline() Attributes {
	return NewAttributes(
		AttrRequired, false,
		AttrMin, nil,
		AttrMax, nil,
		AttrMinLength, nil,
		AttrMaxLength, nil,
		AttrDisabled, false,
		AttrReadonly, false,
		AttrStep, nil,
		AttrPattern, nil,
		AttrPlaceholder, nil,
		AttrAutocomplete, nil,
		AttrAutofocus, false,
		AttrMultiple, false,
	)
}

// Derive computes the rule set for col rendered as inputType. clock may be nil,
// in which case SystemClock is used.
func Derive(col column.Column, inputType string, clock Clock, opts ...DeriveOptions) Attributes {
	if clock == nil {
		clock = SystemClock
	}
	var options DeriveOptions
	if len(opts) > 0 {
		options = opts[0]
	}

	rules := Baseline()
	if col.NotNull {
		rules.Set(AttrRequired, true)
	}

	switch inputType {
	case column.InputText, column.InputTextarea:
		length := col.LengthValue()
		rules.Set(AttrMinLength, 0)
		rules.Set(AttrMaxLength, length)
		if col.NotNull {
			rules.Set(AttrMinLength, 1)
		}
		if col.Fixed {
			rules.Set(AttrMinLength, length)
			rules.Set(AttrMaxLength, length)
		}
	case column.InputNumber:
		lower, upper, step := NumericBounds(col.Precision, col.Scale, col.Unsigned)
		rules.Set(AttrMin, lower)
		rules.Set(AttrMax, upper)
		rules.Set(AttrStep, step)
	case column.InputDate:
		rules.Set(AttrValue, clock.Now().Format(DateLayout))
	case column.InputDateTimeLocal:
		rules.Set(AttrValue, clock.Now().Format(DateTimeLocalLayout))
	case column.InputTime:
		rules.Set(AttrValue, clock.Now().Format(TimeLayout))
	case column.InputCheckbox, column.InputFile:
	}

	if options.ColumnDefaults {
		applyColumnDefault(&rules, col, inputType)
	}
	return rules
}

// NumericBounds returns min, max and step for a numeric column using exact
// big-number arithmetic. Precision and scale are clamped to [0, MaxPrecision]
// and the whole-digit count never drops below zero.
func NumericBounds(precision, scale int, unsigned bool) (*big.Int, *big.Int, *big.Rat) {
	precision = clampDigits(precision)
	scale = clampDigits(scale)
	whole := precision - scale
	if whole < 0 {
		whole = 0
	}

	var lower, upper *big.Int
	if unsigned {
		upper = new(big.Int).Sub(pow10(precision), big.NewInt(1))
		lower = big.NewInt(0)
	} else {
		limit := pow10(whole)
		upper = new(big.Int).Sub(limit, big.NewInt(1))
		lower = new(big.Int).Neg(limit)
	}

	step := new(big.Rat).SetFrac(big.NewInt(1), pow10(scale))
	return lower, upper, step
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

func clampDigits(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxPrecision {
		return MaxPrecision
	}
	return n
}

func applyColumnDefault(rules *Attributes, col column.Column, inputType string) {
	if col.Default == nil {
		return
	}
	if inputType == column.InputCheckbox {
		if truthyDefault(col.Default) {
			rules.Set(AttrChecked, true)
		}
		return
	}
	if inputType == column.InputFile || rules.Has(AttrValue) {
		return
	}
	rules.Set(AttrValue, col.Default)
}

func truthyDefault(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		trimmed := strings.Trim(strings.TrimSpace(v), `'"`)
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return n != 0
		}
		return false
	default:
		return false
	}
}
