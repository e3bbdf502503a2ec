package sqlinfo

import (
	"context"
	"database/sql"
	"regexp"
	"strings"

	"github.com/goliatone/go-modelinput/pkg/column"
)

const postgresColumnQuery = `SELECT c.data_type, c.udt_name, c.character_maximum_length, c.numeric_precision, c.numeric_scale, c.is_nullable, c.column_default, c.is_identity,
	col_description(format('%I.%I', c.table_schema, c.table_name)::regclass::oid, c.ordinal_position)
FROM information_schema.columns c
WHERE c.table_schema = current_schema() AND c.table_name = $1 AND c.column_name = $2`

// castLiteral matches defaults such as 'draft'::character varying.
var castLiteral = regexp.MustCompile(`^'((?:[^']|'')*)'::[a-z0-9_ "\[\]]+$`)

func (p *Provider) postgresColumn(ctx context.Context, table, field string) (column.Column, error) {
	var (
		dataType  string
		udtName   string
		length    sql.NullInt64
		precision sql.NullInt64
		scale     sql.NullInt64
		nullable  string
		def       sql.NullString
		identity  sql.NullString
		comment   sql.NullString
	)
	err := p.db.QueryRowContext(ctx, postgresColumnQuery, table, field).
		Scan(&dataType, &udtName, &length, &precision, &scale, &nullable, &def, &identity, &comment)
	if err != nil {
		return column.Column{}, err
	}

	canonical := column.Canonicalize(udtName)
	if strings.EqualFold(dataType, "ARRAY") {
		canonical = column.TypeArray
	}

	col := column.Column{
		Type:    canonical,
		Length:  nullableInt(length),
		Fixed:   column.IsFixedNative(udtName),
		NotNull: strings.EqualFold(nullable, "NO"),
		Comment: comment.String,
	}
	switch {
	case isIntegerType(canonical):
		// integer precision is reported in bits
		col.Precision = column.IntegerPrecision(canonical)
	case canonical == column.TypeDecimal && precision.Valid:
		col.Precision = int(precision.Int64)
		if scale.Valid {
			col.Scale = int(scale.Int64)
		}
	}

	serial := def.Valid && strings.HasPrefix(def.String, "nextval(")
	col.AutoIncrement = serial || strings.EqualFold(identity.String, "YES")
	if def.Valid && !serial {
		col.Default = postgresDefault(def.String)
	}
	return col, nil
}

// postgresDefault strips the type cast PostgreSQL attaches to literal
// defaults. Expressions such as now() are returned unchanged.
func postgresDefault(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToUpper(trimmed), "NULL") {
		return nil
	}
	if match := castLiteral.FindStringSubmatch(trimmed); match != nil {
		return strings.ReplaceAll(match[1], "''", "'")
	}
	return trimmed
}
