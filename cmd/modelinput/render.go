package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-modelinput/pkg/generator"
	"github.com/goliatone/go-modelinput/pkg/prompt"
)

var (
	interactive   bool
	renderTheme   string
	renderVariant string
)

var renderCmd = &cobra.Command{
	Use:   "render [MODEL] [FIELD] [OPTIONS]",
	Short: "Render one model input",
	Long: `Render the labelled input for MODEL.FIELD and print the markup.

OPTIONS is an options expression, for example:
  modelinput render User email "['label_text' => 'E-mail', 'id_suffix' => 2]"

With --interactive, missing arguments are prompted for.`,
	Args: cobra.RangeArgs(0, 3),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for missing model, field and options")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "", "theme name (overrides render.theme)")
	renderCmd.Flags().StringVar(&renderVariant, "variant", "", "theme variant (overrides render.variant)")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, stop := withSignals(cmd.Context())
	defer stop()

	req, err := requestFromArgs(args)
	if err != nil && !interactive {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app, err := newApp(ctx, cfg, appOptions{})
	if err != nil {
		return err
	}
	defer app.Close()

	if interactive {
		wizard := prompt.NewWizard(prompt.WithModels(app.Registry.Models()))
		req, err = wizard.Complete(ctx, req)
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
			return nil
		}
		if err != nil {
			return err
		}
	}

	markup, err := app.Generator.Generate(ctx, req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), markup)
	return err
}

func requestFromArgs(args []string) (generator.Request, error) {
	req := generator.Request{Theme: renderTheme, Variant: renderVariant}
	if len(args) > 0 {
		req.Model = args[0]
	}
	if len(args) > 1 {
		req.Field = args[1]
	}
	if len(args) > 2 {
		req.Options = args[2]
	}
	if req.Model == "" || req.Field == "" {
		return req, errors.New("render needs MODEL and FIELD (or --interactive)")
	}
	return req, nil
}

func withSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}
