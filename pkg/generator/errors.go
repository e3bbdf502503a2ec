package generator

import "fmt"

// Stage names the pipeline step that failed.
type Stage string

const (
	StageOptions Stage = "options"
	StageModel   Stage = "model"
	StageColumn  Stage = "column"
	StageType    Stage = "type"
	StageTheme   Stage = "theme"
)

// Error wraps a failed invocation. Unwrap exposes the underlying sentinel
// (column.ErrModelNotFound, options.ErrMalformedOptions, ...).
type Error struct {
	Stage Stage
	Model string
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Model == "" && e.Field == "" {
		return fmt.Sprintf("modelinput: %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("modelinput: %s %s.%s: %v", e.Stage, e.Model, e.Field, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
