package directive

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-modelinput/pkg/column"
	"github.com/goliatone/go-modelinput/pkg/generator"
	"github.com/goliatone/go-modelinput/pkg/options"
	"github.com/goliatone/go-modelinput/pkg/providers/static"
	"github.com/goliatone/go-modelinput/pkg/registry"
	"github.com/goliatone/go-modelinput/pkg/testsupport"
)

func newGenerator(t *testing.T) *generator.Generator {
	t.Helper()

	provider, err := static.New(testsupport.MustLoadColumns(t, filepath.Join("testdata", "columns.json")))
	if err != nil {
		t.Fatalf("static provider: %v", err)
	}
	gen, err := generator.New(
		generator.WithRegistry(registry.New(registry.WithTables(map[string]string{"User": "users"}))),
		generator.WithProvider(provider),
		generator.WithClock(testsupport.Clock()),
		generator.WithDefaults(generator.Defaults{
			ContainerClasses: "form-group",
			LabelClasses:     "form-label",
			InputClasses:     "form-control",
		}),
	)
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	return gen
}

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	engine, err := New(newGenerator(t), opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return engine
}

func TestEngineRenderTemplate(t *testing.T) {
	t.Parallel()

	engine := newEngine(t, WithFS(os.DirFS(filepath.Join("testdata", "templates"))))

	var written bytes.Buffer
	got, err := engine.RenderTemplate(testsupport.Context(), "signup", map[string]any{
		"born": map[string]any{
			"label_text": "Born",
			"attributes": map[string]any{"required": true},
		},
	}, &written)
	if err != nil {
		t.Fatalf("RenderTemplate returned error: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "signup.golden.html"), got)
	if written.String() != got {
		t.Fatalf("writer mismatch\nwant: %q\n got: %q", got, written.String())
	}

	again, err := engine.RenderTemplate(testsupport.Context(), "signup.tpl", map[string]any{"born": nil})
	if err != nil {
		t.Fatalf("cached RenderTemplate returned error: %v", err)
	}
	if !strings.Contains(again, `<label for="born_on_input_" class="form-label">born_on</label>`) {
		t.Fatalf("expected default label without options, got:\n%s", again)
	}
}

func TestEngineRenderStringTagOptions(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	got, err := engine.RenderString(testsupport.Context(),
		`{% modelinput model "email" opts %}`,
		map[string]any{
			"model": "User",
			"opts":  `['label_text' => '<E-mail>', 'attributes' => ['disabled' => true]]`,
		})
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if !strings.Contains(got, `>&lt;E-mail&gt;</label>`) {
		t.Fatalf("label text not escaped:\n%s", got)
	}
	if !strings.Contains(got, ` disabled>`) {
		t.Fatalf("disabled override missing:\n%s", got)
	}
}

func TestEngineFunctionOutputIsSafe(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	got, err := engine.RenderString(testsupport.Context(), `{{ model_input("User", "email") }}`, nil)
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if !strings.HasPrefix(got, `<div class="form-group">`) {
		t.Fatalf("function output was escaped:\n%s", got)
	}
}

func TestEngineTagErrorsAbortRender(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	cases := []struct {
		name string
		tpl  string
		want error
	}{
		{name: "unknown model", tpl: `before {% modelinput "Ghost" "email" %} after`, want: column.ErrModelNotFound},
		{name: "unknown column", tpl: `{% modelinput "User" "nickname" %}`, want: column.ErrColumnNotFound},
		{name: "malformed options", tpl: `{% modelinput "User" "email" "['label_text' => system()]" %}`, want: options.ErrMalformedOptions},
		{name: "options of wrong type", tpl: `{% modelinput "User" "email" 42 %}`, want: options.ErrMalformedOptions},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := engine.RenderString(testsupport.Context(), tc.tpl, nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var genErr *generator.Error
			if !errors.As(err, &genErr) {
				t.Fatalf("expected *generator.Error in chain, got %T", err)
			}
			if got != "" {
				t.Fatalf("expected no partial output, got %q", got)
			}
		})
	}
}

func TestEngineFunctionErrorsAbortRender(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	got, err := engine.RenderString(testsupport.Context(), `{{ model_input("Ghost", "email") }}`, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected no output, got %q", got)
	}
}

func TestEngineTagParseErrors(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	for _, tpl := range []string{
		`{% modelinput "User" %}`,
		`{% modelinput "User" "email" "[]" "extra" %}`,
	} {
		if _, err := engine.RenderString(testsupport.Context(), tpl, nil); err == nil {
			t.Fatalf("expected parse error for %q", tpl)
		}
	}
}

func TestEngineHonoursContext(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.RenderString(ctx, `{% modelinput "User" "email" %}`, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	var missing context.Context
	if _, err := engine.RenderString(missing, `{% modelinput "User" "email" %}`, nil); err == nil {
		t.Fatalf("expected error for nil context")
	}
}

func TestEngineGlobalsCannotReplaceGenerator(t *testing.T) {
	t.Parallel()

	engine := newEngine(t, WithGlobalData(map[string]any{
		generatorKey: "hijacked",
		"site":       "Shop",
	}))
	got, err := engine.RenderString(testsupport.Context(), `{{ site }}:{% modelinput "User" "email" %}`, map[string]any{
		generatorKey: "hijacked",
	})
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if !strings.HasPrefix(got, `Shop:<div class="form-group">`) {
		t.Fatalf("unexpected output:\n%s", got)
	}
}

func TestNewRequiresGenerator(t *testing.T) {
	t.Parallel()

	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil generator")
	}
	engine := newEngine(t)
	if _, err := engine.RenderTemplate(testsupport.Context(), "missing", nil); err == nil {
		t.Fatalf("expected error loading a template without a loader")
	}
}

func TestFuncMap(t *testing.T) {
	t.Parallel()

	gen := newGenerator(t)
	tpl := template.Must(template.New("form").Funcs(FuncMap(gen)).Parse(
		`<form>{{ modelInput "User" "email" "['id_suffix' => 1]" }}{{ modelInput "User" "born_on" .born }}</form>`,
	))

	var buf bytes.Buffer
	err := tpl.Execute(&buf, map[string]any{
		"born": map[string]any{"label_text": "Born"},
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, `id="email_input_1"`) {
		t.Fatalf("email input missing:\n%s", got)
	}
	if !strings.Contains(got, `class="form-label">Born</label>`) {
		t.Fatalf("map options not applied:\n%s", got)
	}
	if strings.Contains(got, "&lt;div") {
		t.Fatalf("markup was escaped by html/template:\n%s", got)
	}

	buf.Reset()
	failing := template.Must(template.New("bad").Funcs(FuncMap(gen)).Parse(`{{ modelInput "User" "nickname" }}`))
	if err := failing.Execute(&buf, nil); !errors.Is(err, column.ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}
