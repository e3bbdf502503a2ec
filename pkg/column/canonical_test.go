package column

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"varchar(255)":                   TypeString,
		"VARCHAR(50)":                    TypeString,
		"character varying(120)":         TypeString,
		"char(10)":                       TypeString,
		"longtext":                       TypeText,
		"int unsigned":                   TypeInteger,
		"int4":                           TypeInteger,
		"int(11)":                        TypeInteger,
		"smallint":                       TypeSmallInt,
		"bigint(20) unsigned":            TypeBigInt,
		"decimal(8,2)":                   TypeDecimal,
		"numeric":                        TypeDecimal,
		"double precision":               TypeFloat,
		"tinyint(1)":                     TypeBoolean,
		"tinyint(4)":                     TypeBoolean,
		"tinyint unsigned":               TypeBoolean,
		"timestamptz":                    TypeDateTime,
		"timestamp(6) without time zone": TypeDateTime,
		"time":                           TypeTime,
		"jsonb":                          TypeJSONB,
		"uuid":                           TypeGUID,
		"bytea":                          TypeBlob,
		"varbinary(16)":                  TypeBinary,
		"integer[]":                      TypeArray,
		"_int4":                          TypeArray,
		"geometry":                       "geometry",
		"":                               "",
	}

	for native, want := range cases {
		if got := Canonicalize(native); got != want {
			t.Fatalf("Canonicalize(%q) = %q, want %q", native, got, want)
		}
	}
}

func TestSplitNativeType(t *testing.T) {
	t.Parallel()

	base, params := SplitNativeType("DECIMAL(10, 2) UNSIGNED ZEROFILL")
	if base != "decimal" {
		t.Fatalf("base = %q, want decimal", base)
	}
	if diff := cmp.Diff([]int{10, 2}, params); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}

	if !IsUnsignedNative("int(10) unsigned") {
		t.Fatalf("expected unsigned native")
	}
	if IsUnsignedNative("int(10)") {
		t.Fatalf("did not expect unsigned native")
	}
	if !IsFixedNative("char(10)") || IsFixedNative("varchar(10)") {
		t.Fatalf("fixed native detection mismatch")
	}
}

func TestIntegerPrecision(t *testing.T) {
	t.Parallel()

	if got := IntegerPrecision(TypeSmallInt); got != 5 {
		t.Fatalf("smallint precision = %d", got)
	}
	if got := IntegerPrecision(TypeBigInt); got != 19 {
		t.Fatalf("bigint precision = %d", got)
	}
	if got := IntegerPrecision(TypeInteger); got != DefaultPrecision {
		t.Fatalf("integer precision = %d", got)
	}
}
