package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelinput/pkg/column"
	"github.com/goliatone/go-modelinput/pkg/rules"
)

// FixedTime is the instant every time-dependent test renders against.
var FixedTime = time.Date(2024, time.March, 9, 14, 5, 0, 0, time.UTC)

// Clock returns a clock frozen at FixedTime.
func Clock() rules.Clock {
	return rules.FixedClock(FixedTime)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// LoadColumns reads a JSON fixture of table -> columns, the same shape the
// static provider accepts.
func LoadColumns(path string) (map[string][]column.Column, error) {
	if path == "" {
		return nil, errors.New("testsupport: columns path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read columns: %w", err)
	}
	var out map[string][]column.Column
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal columns: %w", err)
	}
	return out, nil
}

// MustLoadColumns is LoadColumns for tests.
func MustLoadColumns(t *testing.T, path string) map[string][]column.Column {
	t.Helper()

	out, err := LoadColumns(path)
	if err != nil {
		t.Fatalf("load columns: %v", err)
	}
	return out
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertGolden compares got with the golden file at path, rewriting it first
// when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path, got string) {
	t.Helper()

	if WriteMaybeGolden(t, path, []byte(got)) {
		return
	}
	want := MustReadGoldenString(t, path)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("golden mismatch for %s (-want +got):\n%s", filepath.Base(path), diff)
	}
}
