package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-modelinput/pkg/registry"
	"github.com/goliatone/go-modelinput/pkg/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview server",
	Long: `Serve rendered inputs over HTTP:

  GET /render/{model}/{field}?options=...&theme=...&variant=...
  GET /inspect/{model}/{field}
  GET /healthz
  GET /metrics

When models.file is configured it is watched and reloaded on change.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := withSignals(cmd.Context())
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	app, err := newApp(ctx, cfg, appOptions{withMetrics: true})
	if err != nil {
		return err
	}
	defer app.Close()

	watcher, err := watchModels(app)
	if err != nil {
		return err
	}
	if watcher != nil {
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	router := server.NewRouter(app.Generator, app.Logger, server.RouterConfig{
		Metrics:  app.Metrics,
		Gatherer: app.Gatherer,
		Timeout:  cfg.Server.WriteTimeout,
	})
	srv := server.New(cfg.Server.Addr, router, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, app.Logger)
	return srv.Run(ctx)
}

// watchModels prepares a reloading watcher over models.file. It returns nil
// when the models are configured inline.
func watchModels(app *App) (*registry.Watcher, error) {
	cfg := app.Config.Models
	if cfg.File == "" {
		return nil, nil
	}
	watcher, err := registry.NewWatcher(app.Registry, cfg.File, app.Logger,
		registry.WithInflectionDefault(cfg.Inflect))
	if err != nil {
		return nil, err
	}
	watcher.OnReload(func(_ registry.File, err error) {
		app.Metrics.RecordReload(err)
	})
	return watcher, nil
}
