package rules

import (
	"math/big"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelinput/pkg/column"
)

var fixedNow = time.Date(2024, time.March, 9, 14, 5, 0, 0, time.UTC)

func TestDeriveNotNullText(t *testing.T) {
	t.Parallel()

	col := column.Column{Type: column.TypeString, Length: column.IntPtr(50), NotNull: true}
	rules := Derive(col, column.InputText, FixedClock(fixedNow))

	assertAttr(t, rules, AttrRequired, true)
	assertAttr(t, rules, AttrMinLength, 1)
	assertAttr(t, rules, AttrMaxLength, 50)
}

func TestDeriveNullableText(t *testing.T) {
	t.Parallel()

	col := column.Column{Type: column.TypeText, Length: column.IntPtr(200)}
	rules := Derive(col, column.InputTextarea, FixedClock(fixedNow))

	assertAttr(t, rules, AttrRequired, false)
	assertAttr(t, rules, AttrMinLength, 0)
	assertAttr(t, rules, AttrMaxLength, 200)
}

func TestDeriveTextWithoutLengthKeepsNullMax(t *testing.T) {
	t.Parallel()

	rules := Derive(column.Column{Type: column.TypeText}, column.InputTextarea, FixedClock(fixedNow))
	value, ok := rules.Get(AttrMaxLength)
	if !ok || value != nil {
		t.Fatalf("expected maxlength present and nil, got %v (present=%v)", value, ok)
	}
}

func TestDeriveFixedTextOverridesNotNull(t *testing.T) {
	t.Parallel()

	for _, notNull := range []bool{true, false} {
		col := column.Column{Type: column.TypeString, Length: column.IntPtr(10), Fixed: true, NotNull: notNull}
		rules := Derive(col, column.InputText, FixedClock(fixedNow))

		assertAttr(t, rules, AttrMinLength, 10)
		assertAttr(t, rules, AttrMaxLength, 10)
	}
}

func TestDeriveUnsignedDecimal(t *testing.T) {
	t.Parallel()

	col := column.Column{Type: column.TypeDecimal, Precision: 5, Scale: 2, Unsigned: true}
	rules := Derive(col, column.InputNumber, FixedClock(fixedNow))

	assertBigInt(t, rules, AttrMin, "0")
	assertBigInt(t, rules, AttrMax, "99999")
	assertStep(t, rules, "0.01")
}

func TestDeriveSignedDecimal(t *testing.T) {
	t.Parallel()

	col := column.Column{Type: column.TypeDecimal, Precision: 5, Scale: 2}
	rules := Derive(col, column.InputNumber, FixedClock(fixedNow))

	assertBigInt(t, rules, AttrMin, "-1000")
	assertBigInt(t, rules, AttrMax, "999")
	assertStep(t, rules, "0.01")
}

func TestDeriveIntegerStepIsOne(t *testing.T) {
	t.Parallel()

	col := column.Column{Type: column.TypeInteger, Precision: 10}
	rules := Derive(col, column.InputNumber, FixedClock(fixedNow))

	assertBigInt(t, rules, AttrMax, "9999999999")
	assertBigInt(t, rules, AttrMin, "-10000000000")
	assertStep(t, rules, "1")
}

func TestNumericBoundsLargePrecisionDoesNotOverflow(t *testing.T) {
	t.Parallel()

	lower, upper, _ := NumericBounds(65, 0, false)
	want := new(big.Int).Sub(new(big.Int).Exp(big.NewInt(10), big.NewInt(65), nil), big.NewInt(1))
	if upper.Cmp(want) != 0 {
		t.Fatalf("upper = %s, want %s", upper, want)
	}
	if lower.Sign() >= 0 {
		t.Fatalf("expected negative lower bound, got %s", lower)
	}

	_, clamped, _ := NumericBounds(MaxPrecision+500, 0, true)
	_, limit, _ := NumericBounds(MaxPrecision, 0, true)
	if clamped.Cmp(limit) != 0 {
		t.Fatalf("expected precision to clamp at %d digits", MaxPrecision)
	}
}

func TestNumericBoundsScaleLargerThanPrecision(t *testing.T) {
	t.Parallel()

	lower, upper, step := NumericBounds(2, 4, false)
	if upper.String() != "0" || lower.String() != "-1" {
		t.Fatalf("unexpected bounds %s..%s", lower, upper)
	}
	if FormatValue(step) != "0.0001" {
		t.Fatalf("unexpected step %s", FormatValue(step))
	}
}

func TestDeriveDateTimeDefaultsUseClock(t *testing.T) {
	t.Parallel()

	clock := FixedClock(fixedNow)
	cases := map[string]string{
		column.InputDate:          "2024-03-09",
		column.InputDateTimeLocal: "2024-03-09T14:05",
		column.InputTime:          "14:05",
	}
	for inputType, want := range cases {
		rules := Derive(column.Column{}, inputType, clock)
		assertAttr(t, rules, AttrValue, want)
	}
}

func TestDeriveCheckboxAndFileKeepBaseline(t *testing.T) {
	t.Parallel()

	for _, inputType := range []string{column.InputCheckbox, column.InputFile, "color"} {
		rules := Derive(column.Column{}, inputType, FixedClock(fixedNow))
		if diff := cmp.Diff(Baseline().Map(), rules.Map()); diff != "" {
			t.Fatalf("%s: expected baseline rules (-want +got):\n%s", inputType, diff)
		}
	}
}

func TestDeriveBaselineOrder(t *testing.T) {
	t.Parallel()

	want := []string{
		"required", "min", "max", "minlength", "maxlength", "disabled", "readonly",
		"step", "pattern", "placeholder", "autocomplete", "autofocus", "multiple", "value",
	}
	rules := Derive(column.Column{}, column.InputDate, FixedClock(fixedNow))
	if diff := cmp.Diff(want, rules.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveColumnDefaults(t *testing.T) {
	t.Parallel()

	clock := FixedClock(fixedNow)
	opts := DeriveOptions{ColumnDefaults: true}

	text := Derive(column.Column{Default: "guest"}, column.InputText, clock, opts)
	assertAttr(t, text, AttrValue, "guest")

	checked := Derive(column.Column{Default: "1"}, column.InputCheckbox, clock, opts)
	assertAttr(t, checked, AttrChecked, true)

	unchecked := Derive(column.Column{Default: "false"}, column.InputCheckbox, clock, opts)
	if unchecked.Has(AttrChecked) {
		t.Fatalf("did not expect checked for a false default")
	}

	date := Derive(column.Column{Default: "2000-01-01"}, column.InputDate, clock, opts)
	assertAttr(t, date, AttrValue, "2024-03-09")

	plain := Derive(column.Column{Default: "guest"}, column.InputText, clock)
	if plain.Has(AttrValue) {
		t.Fatalf("column defaults must be opt-in")
	}
}

func assertAttr(t *testing.T, attrs Attributes, key string, want any) {
	t.Helper()
	got, ok := attrs.Get(key)
	if !ok {
		t.Fatalf("attribute %q missing", key)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("attribute %q mismatch (-want +got):\n%s", key, diff)
	}
}

func assertBigInt(t *testing.T, attrs Attributes, key, want string) {
	t.Helper()
	got, ok := attrs.Get(key)
	if !ok {
		t.Fatalf("attribute %q missing", key)
	}
	value, ok := got.(*big.Int)
	if !ok {
		t.Fatalf("attribute %q has type %T, want *big.Int", key, got)
	}
	if value.String() != want {
		t.Fatalf("attribute %q = %s, want %s", key, value, want)
	}
}

func assertStep(t *testing.T, attrs Attributes, want string) {
	t.Helper()
	got, ok := attrs.Get(AttrStep)
	if !ok {
		t.Fatalf("step missing")
	}
	if FormatValue(got) != want {
		t.Fatalf("step = %s, want %s", FormatValue(got), want)
	}
}
