package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect MODEL FIELD [OPTIONS]",
	Short: "Show the column, input type, derived rules and markup",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print JSON instead of YAML")
	inspectCmd.Flags().StringVar(&renderTheme, "theme", "", "theme name (overrides render.theme)")
	inspectCmd.Flags().StringVar(&renderVariant, "variant", "", "theme variant (overrides render.variant)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx, stop := withSignals(cmd.Context())
	defer stop()

	req, err := requestFromArgs(args)
	if err != nil {
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

	res, err := app.Generator.Inspect(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if inspectJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Report())
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(res.Report()); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
