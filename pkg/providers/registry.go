// Package providers names the column.Provider implementations so hosts can
// pick one from configuration.
package providers

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/goliatone/go-modelinput/pkg/column"
	"github.com/goliatone/go-modelinput/pkg/providers/atlasinspect"
	"github.com/goliatone/go-modelinput/pkg/providers/sqlinfo"
	"github.com/goliatone/go-modelinput/pkg/providers/static"
)

// Built-in provider names.
const (
	SQL    = "sql"
	Atlas  = "atlas"
	Static = "static"
)

// Source carries what a factory may need. Database providers use DB and
// Driver; the static provider reads Fixtures.
type Source struct {
	DB       *sql.DB
	Driver   string
	Schema   string
	Fixtures fs.FS
}

// Factory builds a provider from a Source.
type Factory func(Source) (column.Provider, error)

// Registry stores factories by name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Default returns a registry holding the sql, atlas and static factories.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(SQL, newSQL)
	r.MustRegister(Atlas, newAtlas)
	r.MustRegister(Static, newStatic)
	return r
}

// Register adds a factory. Duplicate names return an error.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("providers: provider name is required")
	}
	if factory == nil {
		return fmt.Errorf("providers: factory for %q is required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("providers: provider %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Build looks up name and invokes its factory.
func (r *Registry) Build(name string, src Source) (column.Provider, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("providers: provider %q not found", name)
	}
	provider, err := factory(src)
	if err != nil {
		return nil, fmt.Errorf("providers: build %q: %w", name, err)
	}
	return provider, nil
}

// List returns a sorted list of provider names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a provider is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[name]
	return ok
}

func newSQL(src Source) (column.Provider, error) {
	dialect, err := sqlinfo.DialectFromDriver(src.Driver)
	if err != nil {
		return nil, err
	}
	return sqlinfo.New(src.DB, dialect)
}

func newAtlas(src Source) (column.Provider, error) {
	return atlasinspect.Open(src.DB, src.Driver, atlasinspect.WithSchema(src.Schema))
}

func newStatic(src Source) (column.Provider, error) {
	if src.Fixtures == nil {
		return nil, errors.New("fixtures are required")
	}
	return static.LoadFS(src.Fixtures)
}
