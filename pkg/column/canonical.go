package column

import (
	"strconv"
	"strings"
)

// Doctrine reports precision 10 and scale 0 for columns that declare neither;
// the SQL adapters keep that convention so numeric bounds stay comparable.
const (
	DefaultPrecision = 10
	DefaultScale     = 0
)

var nativeTypes = map[string]string{
	"varchar":                     TypeString,
	"character varying":           TypeString,
	"nvarchar":                    TypeString,
	"char":                        TypeString,
	"character":                   TypeString,
	"nchar":                       TypeString,
	"bpchar":                      TypeString,
	"enum":                        TypeString,
	"set":                         TypeString,
	"citext":                      TypeString,
	"text":                        TypeText,
	"tinytext":                    TypeText,
	"mediumtext":                  TypeText,
	"longtext":                    TypeText,
	"clob":                        TypeText,
	"int":                         TypeInteger,
	"integer":                     TypeInteger,
	"int4":                        TypeInteger,
	"mediumint":                   TypeInteger,
	"serial":                      TypeInteger,
	"smallint":                    TypeSmallInt,
	"int2":                        TypeSmallInt,
	"smallserial":                 TypeSmallInt,
	"year":                        TypeSmallInt,
	"bigint":                      TypeBigInt,
	"int8":                        TypeBigInt,
	"bigserial":                   TypeBigInt,
	"decimal":                     TypeDecimal,
	"numeric":                     TypeDecimal,
	"money":                       TypeDecimal,
	"float":                       TypeFloat,
	"float4":                      TypeFloat,
	"float8":                      TypeFloat,
	"double":                      TypeFloat,
	"double precision":            TypeFloat,
	"real":                        TypeFloat,
	"bool":                        TypeBoolean,
	"boolean":                     TypeBoolean,
	"tinyint":                     TypeBoolean,
	"bit":                         TypeBoolean,
	"date":                        TypeDate,
	"datetime":                    TypeDateTime,
	"timestamp":                   TypeDateTime,
	"timestamptz":                 TypeDateTime,
	"timestamp without time zone": TypeDateTime,
	"timestamp with time zone":    TypeDateTime,
	"time":                        TypeTime,
	"timetz":                      TypeTime,
	"time without time zone":      TypeTime,
	"time with time zone":         TypeTime,
	"json":                        TypeJSON,
	"jsonb":                       TypeJSONB,
	"uuid":                        TypeGUID,
	"uniqueidentifier":            TypeGUID,
	"binary":                      TypeBinary,
	"varbinary":                   TypeBinary,
	"blob":                        TypeBlob,
	"tinyblob":                    TypeBlob,
	"mediumblob":                  TypeBlob,
	"longblob":                    TypeBlob,
	"bytea":                       TypeBlob,
}

// Canonicalize maps a native driver type such as "varchar(255)",
// "int unsigned" or "timestamptz" to its canonical name. Unknown natives are
// returned lower-cased without their parameters.
func Canonicalize(native string) string {
	base, _ := SplitNativeType(native)
	if base == "" {
		return ""
	}
	if canonical, ok := nativeTypes[base]; ok {
		return canonical
	}
	if strings.HasSuffix(base, "[]") || strings.HasPrefix(base, "_") {
		return TypeArray
	}
	return base
}

// SplitNativeType separates "decimal(10,2) unsigned" into "decimal" and
// [10 2]. Modifiers such as unsigned/zerofill are dropped from the base name.
func SplitNativeType(native string) (string, []int) {
	raw := strings.ToLower(strings.TrimSpace(native))
	if raw == "" {
		return "", nil
	}

	var params []int
	if open := strings.IndexByte(raw, '('); open >= 0 {
		if closeIdx := strings.IndexByte(raw[open:], ')'); closeIdx > 0 {
			for _, part := range strings.Split(raw[open+1:open+closeIdx], ",") {
				if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
					params = append(params, n)
				}
			}
			raw = strings.TrimSpace(raw[:open] + " " + raw[open+closeIdx+1:])
		}
	}

	for _, modifier := range []string{" unsigned", " zerofill", " signed"} {
		raw = strings.ReplaceAll(raw, modifier, "")
	}
	return strings.Join(strings.Fields(raw), " "), params
}

// IsUnsignedNative reports whether a native type declaration carries the
// UNSIGNED modifier.
func IsUnsignedNative(native string) bool {
	return strings.Contains(strings.ToLower(native), "unsigned")
}

// IsFixedNative reports whether a native type is fixed width (CHAR/BINARY).
func IsFixedNative(native string) bool {
	base, _ := SplitNativeType(native)
	switch base {
	case "char", "character", "nchar", "bpchar", "binary":
		return true
	default:
		return false
	}
}

// IntegerPrecision returns the decimal digit count used for integer families
// whose drivers report binary precision (or none at all).
func IntegerPrecision(canonical string) int {
	switch canonical {
	case TypeSmallInt:
		return 5
	case TypeBigInt:
		return 19
	default:
		return DefaultPrecision
	}
}
