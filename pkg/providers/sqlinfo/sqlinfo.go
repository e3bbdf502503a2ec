// Package sqlinfo reads column metadata straight from the database catalog:
// information_schema on MySQL and PostgreSQL, PRAGMA table_info on SQLite.
// The caller owns the *sql.DB and its driver registration.
package sqlinfo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-modelinput/pkg/column"
)

// Dialect selects the catalog query.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DialectFromDriver maps a database/sql driver name to a Dialect.
func DialectFromDriver(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("sqlinfo: unsupported driver %q", driver)
	}
}

// Provider implements column.Provider with catalog queries.
type Provider struct {
	db      *sql.DB
	dialect Dialect
}

var _ column.Provider = (*Provider)(nil)

// New returns a provider for db speaking dialect.
func New(db *sql.DB, dialect Dialect) (*Provider, error) {
	if db == nil {
		return nil, errors.New("sqlinfo: db is required")
	}
	switch dialect {
	case MySQL, Postgres, SQLite:
	default:
		return nil, fmt.Errorf("sqlinfo: unsupported dialect %q", dialect)
	}
	return &Provider{db: db, dialect: dialect}, nil
}

// Dialect reports the configured dialect.
func (p *Provider) Dialect() Dialect {
	return p.dialect
}

// Column queries the catalog for table.field.
func (p *Provider) Column(ctx context.Context, table, field string) (column.Column, error) {
	var (
		col column.Column
		err error
	)
	switch p.dialect {
	case MySQL:
		col, err = p.mysqlColumn(ctx, table, field)
	case Postgres:
		col, err = p.postgresColumn(ctx, table, field)
	default:
		col, err = p.sqliteColumn(ctx, table, field)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return column.Column{}, fmt.Errorf("%w: %s.%s", column.ErrColumnNotFound, table, field)
	}
	if err != nil {
		return column.Column{}, fmt.Errorf("sqlinfo: %s column %s.%s: %w", p.dialect, table, field, err)
	}
	col.Name = field
	return withNumericDefaults(col), nil
}

// withNumericDefaults fills precision for numeric columns whose catalog row
// carried none.
func withNumericDefaults(col column.Column) column.Column {
	if col.Precision > 0 {
		return col
	}
	switch col.Type {
	case column.TypeInteger, column.TypeSmallInt, column.TypeBigInt:
		col.Precision = column.IntegerPrecision(col.Type)
	case column.TypeDecimal, column.TypeFloat:
		col.Precision = column.DefaultPrecision
	}
	return col
}

func isIntegerType(canonical string) bool {
	switch canonical {
	case column.TypeInteger, column.TypeSmallInt, column.TypeBigInt:
		return true
	default:
		return false
	}
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	return column.IntPtr(int(v.Int64))
}

func nullableString(v sql.NullString) any {
	if !v.Valid {
		return nil
	}
	return v.String
}
