package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-modelinput/pkg/config"
	"github.com/goliatone/go-modelinput/pkg/generator"
	"github.com/goliatone/go-modelinput/pkg/metrics"
	"github.com/goliatone/go-modelinput/pkg/providers"
	"github.com/goliatone/go-modelinput/pkg/registry"
	"github.com/goliatone/go-modelinput/pkg/themes"
)

// App holds the wired collaborators shared by every command.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Registry  *registry.Registry
	Generator *generator.Generator
	Metrics   *metrics.Collector
	Gatherer  prometheus.Gatherer

	db *sql.DB
}

type appOptions struct {
	withMetrics bool
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

// newApp wires the generator described by cfg.
func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*App, error) {
	logger := setupLogger(cfg.Logging, os.Stderr)
	app := &App{Config: cfg, Logger: logger}

	reg, err := buildRegistry(cfg.Models)
	if err != nil {
		return nil, err
	}
	app.Registry = reg

	src := providers.Source{
		Driver: cfg.Database.Driver,
		Schema: cfg.Database.Schema,
	}
	if cfg.Database.Inspector == providers.Static {
		src.Fixtures = os.DirFS(cfg.Database.Fixtures)
	} else {
		db, err := openDB(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		app.db = db
		src.DB = db
	}

	provider, err := providers.Default().Build(cfg.Database.Inspector, src)
	if err != nil {
		app.Close()
		return nil, err
	}

	genOpts := []generator.Option{
		generator.WithRegistry(reg),
		generator.WithProvider(provider),
		generator.WithLogger(logger),
		generator.WithStrictTypes(cfg.Render.StrictTypes),
		generator.WithColumnDefaults(cfg.Render.ColumnDefaults),
		generator.WithShowComments(cfg.Render.ShowComments),
		generator.WithDefaults(generator.Defaults{
			ContainerClasses: cfg.Render.Defaults.Container,
			LabelClasses:     cfg.Render.Defaults.Label,
			InputClasses:     cfg.Render.Defaults.Input,
		}),
	}
	if len(cfg.Render.ThemeFiles) > 0 {
		registry, first, err := themes.LoadFiles(cfg.Render.ThemeFiles...)
		if err != nil {
			app.Close()
			return nil, err
		}
		defaultTheme := cfg.Render.Theme
		if defaultTheme == "" {
			defaultTheme = first
		}
		genOpts = append(genOpts, generator.WithThemeProvider(registry, defaultTheme, cfg.Render.Variant))
	}
	if opts.withMetrics {
		promRegistry := prometheus.NewRegistry()
		promRegistry.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
		app.Metrics = metrics.NewWithRegistry(promRegistry)
		app.Gatherer = promRegistry
		genOpts = append(genOpts, generator.WithMetrics(app.Metrics))
	}

	gen, err := generator.New(genOpts...)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Generator = gen

	logger.Debug().
		Str("inspector", cfg.Database.Inspector).
		Str("driver", cfg.Database.Driver).
		Int("models", len(reg.Models())).
		Msg("generator ready")
	return app, nil
}

// Close releases the database handle.
func (a *App) Close() {
	if a == nil || a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("close database")
	}
	a.db = nil
}

func buildRegistry(cfg config.ModelsConfig) (*registry.Registry, error) {
	if cfg.File != "" {
		file, err := registry.LoadFile(cfg.File)
		if err != nil {
			return nil, err
		}
		return registry.New(
			registry.WithTables(file.Models),
			registry.WithInflection(file.Inflect || cfg.Inflect),
		), nil
	}
	return registry.New(registry.WithTables(cfg.Tables), registry.WithInflection(cfg.Inflect)), nil
}

func openDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", cfg.Driver, err)
	}
	return db, nil
}

func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		return zerolog.New(output).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
