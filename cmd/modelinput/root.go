package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "modelinput",
	Short: "Render HTML form inputs from database column metadata",
	Long: `modelinput inspects a model's backing table and renders a labelled
<input> whose type and validation attributes follow the column definition.

Quick start:
  modelinput render User email                 # Print one input
  modelinput render --interactive              # Prompt for model and field
  modelinput inspect User email                # Show column, rules and markup
  modelinput template form.tpl                 # Render a template with directives
  modelinput serve                             # Start the preview server

Configuration is read from modelinput.yaml (or --config) and MODELINPUT_*
environment variables.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "modelinput.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level")
}
