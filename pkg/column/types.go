package column

import "context"

// Canonical column type names as reported by the schema adapters.
const (
	TypeString      = "string"
	TypeText        = "text"
	TypeInteger     = "integer"
	TypeSmallInt    = "smallint"
	TypeBigInt      = "bigint"
	TypeDecimal     = "decimal"
	TypeFloat       = "float"
	TypeBoolean     = "boolean"
	TypeDate        = "date"
	TypeDateTime    = "datetime"
	TypeTime        = "time"
	TypeJSON        = "json"
	TypeJSONB       = "jsonb"
	TypeBinary      = "binary"
	TypeBlob        = "blob"
	TypeGUID        = "guid"
	TypeUUID        = "uuid"
	TypeArray       = "array"
	TypeSimpleArray = "simple_array"
	TypeObject      = "object"
	TypeJSONArray   = "json_array"
)

// Column is a snapshot of a single database column. Values are built fresh
// for every lookup and never mutated afterwards.
type Column struct {
	Name          string `json:"name" yaml:"name"`
	Type          string `json:"type" yaml:"type"`
	Length        *int   `json:"length,omitempty" yaml:"length,omitempty"`
	Precision     int    `json:"precision" yaml:"precision"`
	Scale         int    `json:"scale" yaml:"scale"`
	Unsigned      bool   `json:"unsigned" yaml:"unsigned"`
	Fixed         bool   `json:"fixed" yaml:"fixed"`
	NotNull       bool   `json:"notnull" yaml:"notnull"`
	AutoIncrement bool   `json:"autoincrement" yaml:"autoincrement"`
	Default       any    `json:"default,omitempty" yaml:"default,omitempty"`
	Comment       string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// LengthValue returns the declared length, or nil when the column has none.
func (c Column) LengthValue() any {
	if c.Length == nil {
		return nil
	}
	return *c.Length
}

// IntPtr is a small helper for building Column literals.
func IntPtr(v int) *int {
	return &v
}

// Provider fetches column metadata for a table. Implementations wrap
// ErrColumnNotFound when the table or column does not exist.
type Provider interface {
	Column(ctx context.Context, table, field string) (Column, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, table, field string) (Column, error)

// Column delegates to the underlying function.
func (fn ProviderFunc) Column(ctx context.Context, table, field string) (Column, error) {
	return fn(ctx, table, field)
}

// ModelRegistry resolves a model identifier (for example "User" or
// "App\Models\User") to its backing table. Implementations wrap
// ErrModelNotFound for unknown models.
type ModelRegistry interface {
	TableName(ctx context.Context, model string) (string, error)
}
