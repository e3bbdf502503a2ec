// Package themes loads go-theme manifests from disk so the generator can read
// class tokens from them.
package themes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	theme "github.com/goliatone/go-theme"
)

// LoadFile reads one JSON or YAML manifest. go-theme validates it.
func LoadFile(path string) (*theme.Manifest, error) {
	manifest, err := theme.LoadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("themes: %s: %w", path, err)
	}
	return manifest, nil
}

// LoadFiles registers every manifest in a go-theme registry and returns the
// name of the first one, which hosts use as the default theme.
func LoadFiles(paths ...string) (*theme.MemoryRegistry, string, error) {
	if len(paths) == 0 {
		return nil, "", errors.New("themes: at least one manifest file is required")
	}

	registry := theme.NewRegistry()
	var first string
	for _, path := range paths {
		manifest, err := LoadFile(path)
		if err != nil {
			return nil, "", err
		}
		if err := registry.Register(manifest); err != nil {
			return nil, "", fmt.Errorf("themes: register %s: %w", path, err)
		}
		if first == "" {
			first = manifest.Name
		}
	}
	return registry, first, nil
}
