package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-modelinput/pkg/column"
	"github.com/goliatone/go-modelinput/pkg/config"
	"github.com/goliatone/go-modelinput/pkg/generator"
)

func TestRequestFromArgs(t *testing.T) {
	req, err := requestFromArgs([]string{"User", "email", "['id_suffix' => 2]"})
	require.NoError(t, err)
	assert.Equal(t, generator.Request{Model: "User", Field: "email", Options: "['id_suffix' => 2]"}, req)

	_, err = requestFromArgs([]string{"User"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MODEL and FIELD")
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"shown"`)
}

func TestLoadTemplateData(t *testing.T) {
	data, err := loadTemplateData(filepath.Join("testdata", "data.yaml"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"born": "2024-03-09"}, data)

	data, err = loadTemplateData("")
	require.NoError(t, err)
	assert.Nil(t, data)

	_, err = loadTemplateData(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
}

func TestNewAppWithStaticFixtures(t *testing.T) {
	cfg, err := config.Parse([]byte(`
database:
  fixtures: testdata/fixtures
models:
  tables:
    User: users
logging:
  level: error
`))
	require.NoError(t, err)
	require.Equal(t, "static", cfg.Database.Inspector)

	app, err := newApp(context.Background(), cfg, appOptions{withMetrics: true})
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, []string{"User"}, app.Registry.Models())
	require.NotNil(t, app.Metrics)
	require.NotNil(t, app.Gatherer)

	markup, err := app.Generator.Generate(context.Background(), generator.Request{Model: "User", Field: "email"})
	require.NoError(t, err)
	assert.Contains(t, markup, `name="email"`)
	assert.Contains(t, markup, `maxlength="255"`)

	_, err = app.Generator.Generate(context.Background(), generator.Request{Model: "Post", Field: "title"})
	require.Error(t, err)
	assert.ErrorIs(t, err, column.ErrModelNotFound)
}

func TestBuildRegistryInflection(t *testing.T) {
	reg, err := buildRegistry(config.ModelsConfig{Inflect: true})
	require.NoError(t, err)

	table, err := reg.TableName(context.Background(), `App\Models\BlogPost`)
	require.NoError(t, err)
	assert.Equal(t, "blog_posts", table)
}

func TestWatchModelsKeepsConfiguredInflection(t *testing.T) {
	cfg, err := config.Parse([]byte(`
database:
  fixtures: testdata/fixtures
models:
  file: testdata/models.yaml
  inflect: true
logging:
  level: error
`))
	require.NoError(t, err)

	app, err := newApp(context.Background(), cfg, appOptions{withMetrics: true})
	require.NoError(t, err)
	defer app.Close()

	watcher, err := watchModels(app)
	require.NoError(t, err)
	require.NotNil(t, watcher)

	table, err := app.Registry.TableName(context.Background(), "BlogPost")
	require.NoError(t, err)
	assert.Equal(t, "blog_posts", table)

	require.NoError(t, watcher.Reload())
	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.RegistryReloads))

	table, err = app.Registry.TableName(context.Background(), "BlogPost")
	require.NoError(t, err)
	assert.Equal(t, "blog_posts", table)
}

func TestNewAppWithThemeFiles(t *testing.T) {
	cfg, err := config.Parse([]byte(`
database:
  fixtures: testdata/fixtures
models:
  tables:
    User: users
render:
  theme_files:
    - ../../pkg/themes/testdata/admin.yaml
  variant: dark
logging:
  level: error
`))
	require.NoError(t, err)

	app, err := newApp(context.Background(), cfg, appOptions{})
	require.NoError(t, err)
	defer app.Close()

	markup, err := app.Generator.Generate(context.Background(), generator.Request{Model: "User", Field: "email"})
	require.NoError(t, err)
	assert.Contains(t, markup, `<div class="field">`)
	assert.Contains(t, markup, `class="field-label"`)
	assert.Contains(t, markup, `class="field-input field-input--dark"`)

	markup, err = app.Generator.Generate(context.Background(), generator.Request{Model: "User", Field: "email", Variant: "light"})
	require.NoError(t, err)
	assert.Contains(t, markup, `class="field-input"`)
}
