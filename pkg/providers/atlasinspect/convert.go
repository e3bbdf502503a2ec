package atlasinspect

import (
	"strings"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/goliatone/go-modelinput/pkg/column"
)

// Convert maps an inspected atlas column onto column.Column.
func Convert(c *schema.Column) column.Column {
	out := column.Column{Name: c.Name}
	if c.Type != nil {
		out.NotNull = !c.Type.Null
		applyType(&out, c.Type.Type, c.Type.Raw)
	}

	switch d := c.Default.(type) {
	case *schema.Literal:
		out.Default = unquote(d.V)
	case *schema.RawExpr:
		out.Default = d.X
	}

	for _, attr := range c.Attrs {
		switch a := attr.(type) {
		case *schema.Comment:
			out.Comment = a.Text
		case *mysql.AutoIncrement, *sqlite.AutoIncrement, *postgres.Identity:
			out.AutoIncrement = true
		}
	}
	return out
}

func applyType(out *column.Column, t schema.Type, raw string) {
	switch t := t.(type) {
	case *schema.StringType:
		out.Type = column.Canonicalize(t.T)
		if out.Type != column.TypeText {
			out.Type = column.TypeString
		}
		if t.Size > 0 {
			out.Length = column.IntPtr(t.Size)
		}
		out.Fixed = column.IsFixedNative(t.T)
	case *schema.EnumType:
		out.Type = column.TypeString
	case *schema.IntegerType:
		applyInteger(out, t)
	case *postgres.SerialType:
		applyInteger(out, t.IntegerType())
		out.AutoIncrement = true
	case *schema.DecimalType:
		out.Type = column.TypeDecimal
		out.Precision = t.Precision
		out.Scale = t.Scale
		out.Unsigned = t.Unsigned
		if out.Precision == 0 {
			out.Precision = column.DefaultPrecision
		}
	case *schema.FloatType:
		out.Type = column.TypeFloat
		out.Precision = column.DefaultPrecision
		out.Unsigned = t.Unsigned
	case *schema.BoolType:
		out.Type = column.TypeBoolean
	case *schema.TimeType:
		out.Type = column.Canonicalize(t.T)
		switch out.Type {
		case column.TypeDate, column.TypeTime, column.TypeDateTime:
		default:
			out.Type = column.TypeDateTime
		}
	case *schema.JSONType:
		out.Type = column.TypeJSON
		if strings.EqualFold(t.T, column.TypeJSONB) {
			out.Type = column.TypeJSONB
		}
	case *schema.BinaryType:
		out.Type = column.Canonicalize(t.T)
		if out.Type != column.TypeBinary {
			out.Type = column.TypeBlob
		}
		if t.Size != nil {
			out.Length = column.IntPtr(*t.Size)
		}
		out.Fixed = column.IsFixedNative(t.T)
	case *schema.UUIDType:
		out.Type = column.TypeGUID
	case *postgres.ArrayType:
		out.Type = column.TypeArray
	default:
		out.Type = column.Canonicalize(raw)
	}
}

// applyInteger follows Canonicalize, so every tinyint is a boolean whatever
// its display width, matching the information_schema adapter.
func applyInteger(out *column.Column, t *schema.IntegerType) {
	out.Type = column.Canonicalize(t.T)
	switch out.Type {
	case column.TypeBoolean:
		return
	case column.TypeInteger, column.TypeSmallInt, column.TypeBigInt:
	default:
		out.Type = column.TypeInteger
	}
	out.Unsigned = t.Unsigned
	out.Precision = column.IntegerPrecision(out.Type)
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '\'' || v[0] == '"') && v[len(v)-1] == v[0] {
		q := string(v[0])
		return strings.ReplaceAll(v[1:len(v)-1], q+q, q)
	}
	return v
}
