// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MODELINPUT_"

// Config is the root configuration structure.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Models   ModelsConfig   `yaml:"models"`
	Render   RenderConfig   `yaml:"render"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig selects where column metadata comes from.
type DatabaseConfig struct {
	Driver    string `yaml:"driver"` // "mysql", "postgres" or "sqlite"
	DSN       string `yaml:"dsn"`
	Schema    string `yaml:"schema"`    // atlas only; empty means the connection default
	Inspector string `yaml:"inspector"` // "sql", "atlas" or "static"
	Fixtures  string `yaml:"fixtures"`  // directory read by the static inspector
}

// ModelsConfig maps model identifiers to tables, either inline or through a
// model map file that the serve command hot-reloads.
type ModelsConfig struct {
	File    string            `yaml:"file"`
	Tables  map[string]string `yaml:"tables"`
	Inflect bool              `yaml:"inflect"`
}

// RenderConfig tunes the generator.
type RenderConfig struct {
	StrictTypes    bool          `yaml:"strict_types"`
	ColumnDefaults bool          `yaml:"column_defaults"`
	ShowComments   bool          `yaml:"show_comments"`
	ThemeFiles     []string      `yaml:"theme_files"` // go-theme manifests, first is the default
	Theme          string        `yaml:"theme"`
	Variant        string        `yaml:"variant"`
	Defaults       ClassDefaults `yaml:"defaults"`
}

// ClassDefaults fill class slots the caller leaves empty.
type ClassDefaults struct {
	Container string `yaml:"container"`
	Label     string `yaml:"label"`
	Input     string `yaml:"input"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references first.
func Parse(data []byte) (*Config, error) {
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return finish(&cfg)
}

// LoadFromEnv builds configuration from MODELINPUT_* variables only.
func LoadFromEnv() (*Config, error) {
	return finish(&Config{})
}

// LoadWithFallback loads path when it exists and falls back to the
// environment otherwise.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return LoadFromEnv()
}

func finish(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)
	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	// Database configuration
	if v := getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := getenv("DATABASE_SCHEMA"); v != "" {
		cfg.Database.Schema = v
	}
	if v := getenv("DATABASE_INSPECTOR"); v != "" {
		cfg.Database.Inspector = v
	}
	if v := getenv("DATABASE_FIXTURES"); v != "" {
		cfg.Database.Fixtures = v
	}

	// Models configuration
	if v := getenv("MODELS_FILE"); v != "" {
		cfg.Models.File = v
	}
	if v := getenv("MODELS_INFLECT"); v != "" {
		cfg.Models.Inflect = parseBool(v)
	}

	// Render configuration
	if v := getenv("RENDER_STRICT_TYPES"); v != "" {
		cfg.Render.StrictTypes = parseBool(v)
	}
	if v := getenv("RENDER_COLUMN_DEFAULTS"); v != "" {
		cfg.Render.ColumnDefaults = parseBool(v)
	}
	if v := getenv("RENDER_SHOW_COMMENTS"); v != "" {
		cfg.Render.ShowComments = parseBool(v)
	}
	if v := getenv("RENDER_THEME_FILES"); v != "" {
		cfg.Render.ThemeFiles = splitList(v)
	}
	if v := getenv("RENDER_THEME"); v != "" {
		cfg.Render.Theme = v
	}
	if v := getenv("RENDER_VARIANT"); v != "" {
		cfg.Render.Variant = v
	}

	// Server configuration
	if v := getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Addr = fmt.Sprintf(":%d", port)
		}
	}
	if v := getenv("SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if v := getenv("SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}

	// Logging configuration
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(EnvPrefix + key))
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Database.Inspector == "" {
		if cfg.Database.Fixtures != "" && cfg.Database.DSN == "" {
			cfg.Database.Inspector = "static"
		} else {
			cfg.Database.Inspector = "sql"
		}
	}
	if cfg.Database.Driver == "" && cfg.Database.Inspector != "static" {
		cfg.Database.Driver = "sqlite"
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validate(cfg *Config) error {
	validInspectors := map[string]bool{"sql": true, "atlas": true, "static": true}
	if !validInspectors[cfg.Database.Inspector] {
		return fmt.Errorf("database.inspector must be one of: sql, atlas, static, got %q", cfg.Database.Inspector)
	}
	if cfg.Database.Inspector == "static" {
		if cfg.Database.Fixtures == "" {
			return fmt.Errorf("database.fixtures is required when database.inspector is 'static'")
		}
	} else {
		validDrivers := map[string]bool{"mysql": true, "postgres": true, "sqlite": true}
		if !validDrivers[cfg.Database.Driver] {
			return fmt.Errorf("database.driver must be one of: mysql, postgres, sqlite, got %q", cfg.Database.Driver)
		}
		if cfg.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required when database.inspector is %q", cfg.Database.Inspector)
		}
	}

	if cfg.Models.File != "" && len(cfg.Models.Tables) > 0 {
		return fmt.Errorf("models.file and models.tables are mutually exclusive")
	}
	for model, table := range cfg.Models.Tables {
		if strings.TrimSpace(model) == "" || strings.TrimSpace(table) == "" {
			return fmt.Errorf("models.tables entries need a model and a table, got %q: %q", model, table)
		}
	}

	if (cfg.Render.Theme != "" || cfg.Render.Variant != "") && len(cfg.Render.ThemeFiles) == 0 {
		return fmt.Errorf("render.theme_files is required when render.theme or render.variant is set")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error, got %q", cfg.Logging.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}
	return nil
}
