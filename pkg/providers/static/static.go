// Package static serves column metadata from in-memory tables or JSON/YAML
// fixture files. It backs tests, previews and hosts without a live database.
package static

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelinput/pkg/column"
)

// Provider implements column.Provider over a fixed set of tables.
type Provider struct {
	tables map[string]map[string]column.Column
}

var _ column.Provider = (*Provider)(nil)

// New builds a provider from table name to column list.
func New(tables map[string][]column.Column) (*Provider, error) {
	p := &Provider{tables: make(map[string]map[string]column.Column, len(tables))}
	for table, cols := range tables {
		if err := p.add(table, cols, "memory"); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Column returns a copy of the stored column.
func (p *Provider) Column(ctx context.Context, table, field string) (column.Column, error) {
	if err := ctx.Err(); err != nil {
		return column.Column{}, err
	}
	if p == nil {
		return column.Column{}, fmt.Errorf("%w: %s.%s", column.ErrColumnNotFound, table, field)
	}
	cols, ok := p.tables[table]
	if !ok {
		return column.Column{}, fmt.Errorf("%w: table %q", column.ErrColumnNotFound, table)
	}
	col, ok := cols[field]
	if !ok {
		return column.Column{}, fmt.Errorf("%w: %s.%s", column.ErrColumnNotFound, table, field)
	}
	if col.Length != nil {
		col.Length = column.IntPtr(*col.Length)
	}
	return col, nil
}

// Tables lists the known table names.
func (p *Provider) Tables() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.tables))
	for table := range p.tables {
		out = append(out, table)
	}
	return out
}

// LoadFile reads a single fixture file.
func LoadFile(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("static: read %s: %w", path, err)
	}
	p := &Provider{tables: make(map[string]map[string]column.Column)}
	if err := p.load(data, path); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadFS walks fsys and merges every .json/.yaml/.yml fixture. A table defined
// in more than one file is an error.
func LoadFS(fsys fs.FS) (*Provider, error) {
	p := &Provider{tables: make(map[string]map[string]column.Column)}
	if fsys == nil {
		return p, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isFixtureFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("static: read %s: %w", path, err)
		}
		return p.load(data, path)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

type fixtureFile struct {
	Tables map[string][]column.Column `json:"tables" yaml:"tables"`
}

func (p *Provider) load(data []byte, source string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("static: file %s is empty", source)
	}

	var doc fixtureFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = fixtureFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("static: parse %s: invalid JSON or YAML", source)
		}
	}

	for table, cols := range doc.Tables {
		if err := p.add(table, cols, source); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) add(table string, cols []column.Column, source string) error {
	name := strings.TrimSpace(table)
	if name == "" {
		return fmt.Errorf("static: file %s defines an empty table name", source)
	}
	if _, exists := p.tables[name]; exists {
		return fmt.Errorf("static: duplicate table %q (file %s)", name, source)
	}

	byField := make(map[string]column.Column, len(cols))
	for i, col := range cols {
		col.Name = strings.TrimSpace(col.Name)
		if col.Name == "" {
			return fmt.Errorf("static: table %q column %d has no name (file %s)", name, i, source)
		}
		if _, exists := byField[col.Name]; exists {
			return fmt.Errorf("static: table %q defines column %q twice (file %s)", name, col.Name, source)
		}
		col.Type = normaliseType(col.Type)
		byField[col.Name] = col
	}
	p.tables[name] = byField
	return nil
}

// normaliseType keeps canonical names and canonicalizes native ones, so
// fixtures may say either "string" or "varchar(255)".
func normaliseType(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if _, err := column.ResolveInputType(trimmed); err == nil {
		return trimmed
	}
	return column.Canonicalize(trimmed)
}

func isFixtureFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
