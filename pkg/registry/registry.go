// Package registry resolves model identifiers to table names.
package registry

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-openapi/inflect"

	"github.com/goliatone/go-modelinput/pkg/column"
)

// Model is implemented by types that know their backing table.
type Model interface {
	TableName() string
}

// Registry maps model names such as "User" to tables such as "users". It is
// safe for concurrent use; Replace swaps the whole table map at once.
type Registry struct {
	mu      sync.RWMutex
	tables  map[string]string
	inflect bool
}

var _ column.ModelRegistry = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithTables seeds the registry with model -> table entries.
func WithTables(tables map[string]string) Option {
	return func(r *Registry) {
		for model, table := range tables {
			r.tables[model] = table
		}
	}
}

// WithInflection derives a table name for unregistered models by
// pluralising and underscoring the model name ("BlogPost" -> "blog_posts").
// When disabled, unknown models report column.ErrModelNotFound.
func WithInflection(enabled bool) Option {
	return func(r *Registry) {
		r.inflect = enabled
	}
}

// New creates a registry.
func New(opts ...Option) *Registry {
	r := &Registry{tables: make(map[string]string)}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register maps model to table. Registering the same model twice is an error.
func (r *Registry) Register(model, table string) error {
	model = strings.TrimSpace(model)
	table = strings.TrimSpace(table)
	if model == "" {
		return errors.New("registry: model name is required")
	}
	if table == "" {
		return fmt.Errorf("registry: table for model %q is required", model)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.tables[model]; ok {
		return fmt.Errorf("registry: model %q already registered (table %q)", model, existing)
	}
	r.tables[model] = table
	return nil
}

// RegisterModel registers m under its Go type name.
func (r *Registry) RegisterModel(m Model) error {
	if m == nil {
		return errors.New("registry: model is required")
	}
	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return r.Register(t.Name(), m.TableName())
}

// Replace swaps the registered tables and inflection flag in one step.
func (r *Registry) Replace(tables map[string]string, inflection bool) {
	next := make(map[string]string, len(tables))
	for model, table := range tables {
		next[model] = table
	}

	r.mu.Lock()
	r.tables = next
	r.inflect = inflection
	r.mu.Unlock()
}

// Models returns the registered model names in sorted order.
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.tables))
	for model := range r.tables {
		out = append(out, model)
	}
	sort.Strings(out)
	return out
}

// TableName resolves model. The exact identifier wins; otherwise namespace
// prefixes are stripped ("App\Models\User" -> "User") and looked up again.
func (r *Registry) TableName(ctx context.Context, model string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	model = strings.TrimSpace(model)
	if model == "" {
		return "", fmt.Errorf("%w: empty model name", column.ErrModelNotFound)
	}
	base := BaseName(model)

	r.mu.RLock()
	table, ok := r.tables[model]
	if !ok {
		table, ok = r.tables[base]
	}
	inflection := r.inflect
	r.mu.RUnlock()

	if ok {
		return table, nil
	}
	if inflection && base != "" {
		return inflect.Tableize(base), nil
	}
	return "", fmt.Errorf("%w: %q", column.ErrModelNotFound, model)
}

// BaseName strips namespace prefixes separated by backslashes or slashes.
func BaseName(model string) string {
	model = strings.TrimSpace(model)
	if idx := strings.LastIndexAny(model, `\/`); idx >= 0 {
		return model[idx+1:]
	}
	return model
}
