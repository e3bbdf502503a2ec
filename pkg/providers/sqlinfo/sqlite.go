package sqlinfo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-modelinput/pkg/column"
)

const sqliteColumnQuery = `SELECT type, "notnull", dflt_value, pk FROM pragma_table_info(?) WHERE name = ?`

func (p *Provider) sqliteColumn(ctx context.Context, table, field string) (column.Column, error) {
	var (
		declared string
		notNull  int
		def      sql.NullString
		pk       int
	)
	err := p.db.QueryRowContext(ctx, sqliteColumnQuery, table, field).Scan(&declared, &notNull, &def, &pk)
	if err != nil {
		return column.Column{}, err
	}

	canonical := column.Canonicalize(declared)
	_, params := column.SplitNativeType(declared)
	col := column.Column{
		Type:     canonical,
		Unsigned: column.IsUnsignedNative(declared),
		Fixed:    column.IsFixedNative(declared),
		NotNull:  notNull != 0,
		// INTEGER PRIMARY KEY aliases the rowid
		AutoIncrement: pk > 0 && strings.EqualFold(strings.TrimSpace(declared), "integer"),
	}

	switch canonical {
	case column.TypeString, column.TypeText, column.TypeBinary, column.TypeBlob:
		if len(params) > 0 {
			col.Length = column.IntPtr(params[0])
		}
	case column.TypeDecimal, column.TypeFloat:
		if len(params) > 0 {
			col.Precision = params[0]
		}
		if len(params) > 1 {
			col.Scale = params[1]
		}
	}

	if def.Valid {
		col.Default = sqliteDefault(def.String)
	}
	return col, nil
}

func sqliteDefault(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, "NULL") {
		return nil
	}
	if len(trimmed) >= 2 && trimmed[0] == '\'' && trimmed[len(trimmed)-1] == '\'' {
		return strings.ReplaceAll(trimmed[1:len(trimmed)-1], "''", "'")
	}
	return trimmed
}
