package column

import (
	"fmt"
	"strings"
)

// HTML input types produced by the resolver.
const (
	InputText          = "text"
	InputTextarea      = "textarea"
	InputNumber        = "number"
	InputCheckbox      = "checkbox"
	InputDate          = "date"
	InputDateTimeLocal = "datetime-local"
	InputTime          = "time"
	InputFile          = "file"
)

// inputTypes is read-only after package initialisation.
var inputTypes = map[string]string{
	TypeString:      InputText,
	TypeText:        InputTextarea,
	TypeInteger:     InputNumber,
	TypeSmallInt:    InputNumber,
	TypeBigInt:      InputNumber,
	TypeDecimal:     InputNumber,
	TypeFloat:       InputNumber,
	TypeBoolean:     InputCheckbox,
	TypeDate:        InputDate,
	TypeDateTime:    InputDateTimeLocal,
	TypeTime:        InputTime,
	TypeJSON:        InputText,
	TypeJSONB:       InputText,
	TypeBinary:      InputFile,
	TypeBlob:        InputFile,
	TypeGUID:        InputText,
	TypeUUID:        InputText,
	TypeArray:       InputText,
	TypeSimpleArray: InputText,
	TypeObject:      InputText,
	TypeJSONArray:   InputText,
}

// ResolveInputType maps a canonical column type to its HTML input type.
// Unmapped types return an error wrapping ErrUnknownColumnType.
func ResolveInputType(columnType string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(columnType))
	if inputType, ok := inputTypes[key]; ok {
		return inputType, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColumnType, columnType)
}

// InputTypeOrText resolves the input type and falls back to "text" for
// unmapped column types. The boolean reports whether the fallback was used.
func InputTypeOrText(columnType string) (string, bool) {
	inputType, err := ResolveInputType(columnType)
	if err != nil {
		return InputText, true
	}
	return inputType, false
}

// InputTypes returns a copy of the canonical type to input type table.
func InputTypes() map[string]string {
	out := make(map[string]string, len(inputTypes))
	for key, value := range inputTypes {
		out[key] = value
	}
	return out
}
