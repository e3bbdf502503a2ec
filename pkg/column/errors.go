package column

import "errors"

var (
	// ErrModelNotFound reports an unknown model identifier.
	ErrModelNotFound = errors.New("column: model not found")
	// ErrColumnNotFound reports a missing table or column.
	ErrColumnNotFound = errors.New("column: column not found")
	// ErrUnknownColumnType reports a canonical type with no input mapping.
	ErrUnknownColumnType = errors.New("column: unknown column type")
)
