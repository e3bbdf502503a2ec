// Package atlasinspect resolves column metadata through the ariga.io/atlas
// schema inspectors, which understand MySQL, PostgreSQL and SQLite catalogs
// including dialect attributes such as AUTO_INCREMENT, identity columns and
// comments.
package atlasinspect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/goliatone/go-modelinput/pkg/column"
)

// Provider implements column.Provider on top of a schema.Inspector.
type Provider struct {
	inspector schema.Inspector
	schema    string
}

var _ column.Provider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*Provider)

// WithSchema inspects the named schema instead of the connection default.
func WithSchema(name string) Option {
	return func(p *Provider) {
		p.schema = strings.TrimSpace(name)
	}
}

// New wraps an existing inspector, typically a migrate.Driver.
func New(inspector schema.Inspector, opts ...Option) (*Provider, error) {
	if inspector == nil {
		return nil, errors.New("atlasinspect: inspector is required")
	}
	p := &Provider{inspector: inspector}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Open builds the atlas driver matching dialect ("mysql", "postgres" or
// "sqlite") over db.
func Open(db *sql.DB, dialect string, opts ...Option) (*Provider, error) {
	if db == nil {
		return nil, errors.New("atlasinspect: db is required")
	}
	var (
		inspector schema.Inspector
		err       error
	)
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "mysql":
		inspector, err = mysql.Open(db)
	case "postgres", "postgresql", "pgx":
		inspector, err = postgres.Open(db)
	case "sqlite", "sqlite3":
		inspector, err = sqlite.Open(db)
	default:
		return nil, fmt.Errorf("atlasinspect: unsupported dialect %q", dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("atlasinspect: open %s driver: %w", dialect, err)
	}
	return New(inspector, opts...)
}

// Column inspects table and converts field into a column.Column.
func (p *Provider) Column(ctx context.Context, table, field string) (column.Column, error) {
	s, err := p.inspector.InspectSchema(ctx, p.schema, &schema.InspectOptions{
		Mode:   schema.InspectTables,
		Tables: []string{table},
	})
	if schema.IsNotExistError(err) {
		return column.Column{}, fmt.Errorf("%w: schema %q: %v", column.ErrColumnNotFound, p.schema, err)
	}
	if err != nil {
		return column.Column{}, fmt.Errorf("atlasinspect: inspect %s: %w", table, err)
	}

	t, ok := s.Table(table)
	if !ok {
		return column.Column{}, fmt.Errorf("%w: table %q", column.ErrColumnNotFound, table)
	}
	c, ok := t.Column(field)
	if !ok {
		return column.Column{}, fmt.Errorf("%w: %s.%s", column.ErrColumnNotFound, table, field)
	}
	return Convert(c), nil
}
