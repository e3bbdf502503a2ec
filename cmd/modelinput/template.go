package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelinput/pkg/directive"
)

var templateData string

var templateCmd = &cobra.Command{
	Use:   "template FILE",
	Short: "Render a pongo2 template containing model input directives",
	Long: `Render FILE with the modelinput tag and function available:

  {% modelinput "User" "email" "['label_text' => 'E-mail']" %}
  {{ model_input("User", "born_on", opts) }}

--data points at a YAML or JSON file whose top-level map becomes the
template context.`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplate,
}

func init() {
	rootCmd.AddCommand(templateCmd)

	templateCmd.Flags().StringVar(&templateData, "data", "", "YAML or JSON file with template context")
	templateCmd.Flags().StringVar(&renderTheme, "theme", "", "theme name (overrides render.theme)")
	templateCmd.Flags().StringVar(&renderVariant, "variant", "", "theme variant (overrides render.variant)")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	ctx, stop := withSignals(cmd.Context())
	defer stop()

	data, err := loadTemplateData(templateData)
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

	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	engine, err := directive.New(app.Generator,
		directive.WithBaseDir(filepath.Dir(path)),
		directive.WithExtension(filepath.Ext(path)),
		directive.WithTheme(renderTheme, renderVariant),
	)
	if err != nil {
		return err
	}

	// Extensionless files bypass the loader, which appends ".tpl".
	if filepath.Ext(path) == "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		_, err = engine.RenderString(ctx, string(content), data, cmd.OutOrStdout())
		return err
	}
	_, err = engine.RenderTemplate(ctx, filepath.Base(path), data, cmd.OutOrStdout())
	return err
}

func loadTemplateData(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template data: %w", err)
	}
	// YAML is a superset of JSON.
	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse template data: %w", err)
	}
	return data, nil
}
