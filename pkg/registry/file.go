package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk model map:
//
//	inflect: true
//	models:
//	  User: users
//	  App\Models\Post: posts
type File struct {
	Inflect bool              `json:"inflect" yaml:"inflect"`
	Models  map[string]string `json:"models" yaml:"models"`
}

// LoadFile reads a JSON or YAML model map.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("registry: read %s: %w", path, err)
	}
	return parseFile(data, path)
}

func parseFile(data []byte, source string) (File, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return File{}, fmt.Errorf("registry: file %s is empty", source)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		file = File{}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return File{}, fmt.Errorf("registry: parse %s: invalid JSON or YAML", source)
		}
	}

	for model, table := range file.Models {
		if strings.TrimSpace(model) == "" || strings.TrimSpace(table) == "" {
			return File{}, fmt.Errorf("registry: file %s has an empty model or table name", source)
		}
	}
	return file, nil
}

// NewFromFile builds a registry from a model map file.
func NewFromFile(path string) (*Registry, error) {
	file, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(WithTables(file.Models), WithInflection(file.Inflect)), nil
}
