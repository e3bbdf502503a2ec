package rules

import (
	"fmt"
	"html"
	"math/big"
	"strconv"
	"strings"
)

// reservedKeys are rendered through dedicated markup slots and never appear in
// the generic attribute string.
var reservedKeys = map[string]struct{}{
	"id":    {},
	"name":  {},
	"type":  {},
	"class": {},
}

// IsReserved reports whether key is handled by a dedicated markup slot.
func IsReserved(key string) bool {
	_, ok := reservedKeys[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// Merge returns derived with overrides applied on top. Overrides win on key
// collisions and keep the derived position; new keys are appended in override
// order. Reserved keys are dropped from the result.
func Merge(derived, overrides Attributes) Attributes {
	var out Attributes
	derived.Each(func(key string, value any) {
		if IsReserved(key) {
			return
		}
		out.Set(key, value)
	})
	overrides.Each(func(key string, value any) {
		if IsReserved(key) {
			return
		}
		out.Set(key, value)
	})
	return out
}

// Serialize renders attrs as ` key="value"` pairs. Nil and false values are
// skipped, true renders as a bare attribute, reserved keys are ignored and
// every value is HTML-escaped.
func Serialize(attrs Attributes) string {
	var builder strings.Builder
	attrs.Each(func(key string, value any) {
		name := strings.TrimSpace(key)
		if !ValidAttributeName(name) || IsReserved(name) || value == nil {
			return
		}
		if flag, ok := value.(bool); ok {
			if !flag {
				return
			}
			builder.WriteByte(' ')
			builder.WriteString(html.EscapeString(name))
			return
		}
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(name))
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(FormatValue(value)))
		builder.WriteByte('"')
	})
	return builder.String()
}

// ValidAttributeName reports whether name can be written into a start tag
// without breaking out of it.
func ValidAttributeName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r <= ' ', r == 0x7f:
			return false
		case strings.ContainsRune("\"'<>/=`", r):
			return false
		}
	}
	return true
}

// FormatValue converts an attribute value into its textual form.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case *big.Int:
		if v == nil {
			return ""
		}
		return v.String()
	case *big.Rat:
		if v == nil {
			return ""
		}
		return formatRat(v)
	default:
		return fmt.Sprint(value)
	}
}

// formatRat prints r with the fewest fractional digits that represent it
// exactly, falling back to 20 digits for non-terminating fractions.
func formatRat(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	if !terminates(r.Denom()) {
		return r.FloatString(20)
	}
	return r.FloatString(decimalDigits(r.Denom()))
}

func terminates(denom *big.Int) bool {
	d := new(big.Int).Set(denom)
	two, five := big.NewInt(2), big.NewInt(5)
	rem := new(big.Int)
	for rem.Mod(d, two).Sign() == 0 {
		d.Quo(d, two)
	}
	for rem.Mod(d, five).Sign() == 0 {
		d.Quo(d, five)
	}
	return d.Cmp(big.NewInt(1)) == 0
}

// decimalDigits returns the number of fractional digits needed for a
// terminating denominator: max(power of 2, power of 5).
func decimalDigits(denom *big.Int) int {
	d := new(big.Int).Set(denom)
	two, five := big.NewInt(2), big.NewInt(5)
	rem := new(big.Int)
	twos, fives := 0, 0
	for rem.Mod(d, two).Sign() == 0 {
		d.Quo(d, two)
		twos++
	}
	for rem.Mod(d, five).Sign() == 0 {
		d.Quo(d, five)
		fives++
	}
	if twos > fives {
		return twos
	}
	return fives
}
