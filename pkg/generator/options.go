package generator

import (
	"strings"

	"github.com/rs/zerolog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-modelinput/pkg/column"
	"github.com/goliatone/go-modelinput/pkg/metrics"
	"github.com/goliatone/go-modelinput/pkg/rules"
)

// Option customises the generator configuration.
type Option func(*Generator)

// Defaults are the class lists applied when neither the caller nor the theme
// supplies one.
type Defaults struct {
	ContainerClasses string
	LabelClasses     string
	InputClasses     string
}

// Theme token names read from the selected go-theme manifest.
const (
	TokenContainer = "modelinput.container"
	TokenLabel     = "modelinput.label"
	TokenInput     = "modelinput.input"
)

// WithRegistry injects the model registry.
func WithRegistry(registry column.ModelRegistry) Option {
	return func(g *Generator) {
		g.registry = registry
	}
}

// WithProvider injects the column metadata provider.
func WithProvider(provider column.Provider) Option {
	return func(g *Generator) {
		g.provider = provider
	}
}

// WithClock overrides the clock used for date and time defaults.
func WithClock(clock rules.Clock) Option {
	return func(g *Generator) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithStrictTypes makes unknown column types fail with
// column.ErrUnknownColumnType instead of rendering as text.
func WithStrictTypes(strict bool) Option {
	return func(g *Generator) {
		g.strictTypes = strict
	}
}

// WithColumnDefaults seeds value/checked from column defaults.
func WithColumnDefaults(enabled bool) Option {
	return func(g *Generator) {
		g.columnDefaults = enabled
	}
}

// WithShowComments renders column comments as help text for every field,
// as if each call passed show_comment.
func WithShowComments(enabled bool) Option {
	return func(g *Generator) {
		g.showComments = enabled
	}
}

// WithDefaults sets fallback class lists.
func WithDefaults(defaults Defaults) Option {
	return func(g *Generator) {
		g.defaults = defaults
	}
}

// WithThemeSelector resolves class defaults from go-theme tokens.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(g *Generator) {
		g.themeSelector = selector
	}
}

// WithThemeProvider builds a go-theme selector over provider. defaultTheme
// and defaultVariant apply when a request does not name its own.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(g *Generator) {
		if provider == nil {
			return
		}
		g.themeSelector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   strings.TrimSpace(defaultTheme),
			DefaultVariant: strings.TrimSpace(defaultVariant),
		}
	}
}

// WithMetrics records render counts and durations.
func WithMetrics(collector *metrics.Collector) Option {
	return func(g *Generator) {
		g.metrics = collector
	}
}
