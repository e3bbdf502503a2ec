package modelinput

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"

	"github.com/goliatone/go-modelinput/pkg/column"
	"github.com/goliatone/go-modelinput/pkg/generator"
	"github.com/goliatone/go-modelinput/pkg/providers/static"
	"github.com/goliatone/go-modelinput/pkg/registry"
)

func testOptions(t *testing.T) []Option {
	t.Helper()
	provider, err := static.New(map[string][]column.Column{
		"users": {
			{Name: "email", Type: "string", Length: column.IntPtr(120), NotNull: true},
		},
	})
	if err != nil {
		t.Fatalf("static provider: %v", err)
	}
	reg := registry.New(registry.WithTables(map[string]string{"User": "users"}))
	return []Option{generator.WithRegistry(reg), generator.WithProvider(provider)}
}

func TestRender(t *testing.T) {
	t.Parallel()

	markup, err := Render(context.Background(), `App\Models\User`, "email", "['id_suffix' => 3]", testOptions(t)...)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{`id="email_input_3"`, `maxlength="120"`, ` required`} {
		if !strings.Contains(markup, want) {
			t.Fatalf("markup missing %q:\n%s", want, markup)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	_, err := Render(context.Background(), "Post", "title", "", testOptions(t)...)
	if !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("expected ErrModelNotFound, got %v", err)
	}
	var genErr *Error
	if !errors.As(err, &genErr) || genErr.Stage != generator.StageModel {
		t.Fatalf("expected model stage error, got %#v", err)
	}

	if _, err := Render(context.Background(), "User", "email", "['label_text' =>", testOptions(t)...); !errors.Is(err, ErrMalformedOptions) {
		t.Fatalf("expected ErrMalformedOptions, got %v", err)
	}
	if _, err := Render(context.Background(), "User", "email", ""); err == nil {
		t.Fatalf("expected error without registry and provider")
	}
}

func TestEngineAndFuncMap(t *testing.T) {
	t.Parallel()

	gen, err := New(testOptions(t)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	engine, err := NewEngine(gen)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	out, err := engine.RenderString(context.Background(), `{% modelinput "User" "email" %}`, nil)
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}

	tpl := template.Must(template.New("form").Funcs(FuncMap(gen)).Parse(`{{ modelInput "User" "email" }}`))
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, nil); err != nil {
		t.Fatalf("html/template: %v", err)
	}
	if buf.String() != out {
		t.Fatalf("expected identical markup from both hosts\npongo2: %s\nhtml/template: %s", out, buf.String())
	}
}
