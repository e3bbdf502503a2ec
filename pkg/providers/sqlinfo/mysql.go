package sqlinfo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-modelinput/pkg/column"
)

const mysqlColumnQuery = `SELECT COLUMN_TYPE, CHARACTER_MAXIMUM_LENGTH, NUMERIC_PRECISION, NUMERIC_SCALE, IS_NULLABLE, COLUMN_DEFAULT, EXTRA, COLUMN_COMMENT
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ?`

func (p *Provider) mysqlColumn(ctx context.Context, table, field string) (column.Column, error) {
	var (
		columnType string
		length     sql.NullInt64
		precision  sql.NullInt64
		scale      sql.NullInt64
		nullable   string
		def        sql.NullString
		extra      string
		comment    string
	)
	err := p.db.QueryRowContext(ctx, mysqlColumnQuery, table, field).
		Scan(&columnType, &length, &precision, &scale, &nullable, &def, &extra, &comment)
	if err != nil {
		return column.Column{}, err
	}

	col := column.Column{
		Type:          column.Canonicalize(columnType),
		Length:        nullableInt(length),
		Unsigned:      column.IsUnsignedNative(columnType),
		Fixed:         column.IsFixedNative(columnType),
		NotNull:       strings.EqualFold(nullable, "NO"),
		AutoIncrement: strings.Contains(strings.ToLower(extra), "auto_increment"),
		Default:       nullableString(def),
		Comment:       comment,
	}
	if precision.Valid {
		col.Precision = int(precision.Int64)
	}
	if scale.Valid {
		col.Scale = int(scale.Int64)
	}
	return col, nil
}
