// Package config resolves CLI settings from a YAML file, optional .env files
// and CHARTGEN_* environment variables. Later sources win; command line flags
// are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CHARTGEN_"

// Config carries the CLI defaults.
type Config struct {
	Renderer    string `yaml:"renderer"`
	Theme       string `yaml:"theme"`
	Variant     string `yaml:"variant"`
	Output      string `yaml:"output"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	AssetURL    string `yaml:"asset_url"`
	Charts      string `yaml:"charts"`
	Themes      string `yaml:"themes"`
	Concurrency int    `yaml:"concurrency"`
	LogLevel    string `yaml:"log_level"`
	Development bool   `yaml:"development"`

	HTTP HTTP `yaml:"http"`
	SQL  SQL  `yaml:"sql"`
}

// HTTP controls remote dataset loading.
type HTTP struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout"`
}

// SQL controls SQLite dataset loading.
type SQL struct {
	Driver  string `yaml:"driver"`
	MaxRows int    `yaml:"max_rows"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Renderer:    "html",
		Concurrency: 4,
		LogLevel:    "info",
		HTTP:        HTTP{Timeout: 30 * time.Second},
		SQL:         SQL{Driver: "sqlite"},
	}
}

// Options selects the sources Load reads.
type Options struct {
	// Path is the YAML config file. A missing file is an error only when
	// Required is set.
	Path     string
	Required bool

	// EnvFiles are loaded with godotenv before the environment is read.
	// Missing files are skipped. Variables already set are not overridden.
	EnvFiles []string
}

// Load resolves the configuration: defaults, then the YAML file, then the
// environment.
func Load(options Options) (Config, error) {
	cfg := Default()

	if options.Path != "" {
		raw, err := os.ReadFile(options.Path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !options.Required:
		case err != nil:
			return Config{}, fmt.Errorf("config: read %s: %w", options.Path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", options.Path, err)
			}
		}
	}

	for _, file := range options.EnvFiles {
		if err := loadDotEnv(file); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", file, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings no command could use.
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("config: width and height must not be negative")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("config: concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("config: http timeout must not be negative")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"RENDERER":   &cfg.Renderer,
		"THEME":      &cfg.Theme,
		"VARIANT":    &cfg.Variant,
		"OUTPUT":     &cfg.Output,
		"ASSET_URL":  &cfg.AssetURL,
		"CHARTS":     &cfg.Charts,
		"THEMES":     &cfg.Themes,
		"LOG_LEVEL":  &cfg.LogLevel,
		"SQL_DRIVER": &cfg.SQL.Driver,
	}
	for key, target := range strs {
		if value, ok := lookup(key); ok {
			*target = value
		}
	}

	ints := map[string]*int{
		"WIDTH":        &cfg.Width,
		"HEIGHT":       &cfg.Height,
		"CONCURRENCY":  &cfg.Concurrency,
		"SQL_MAX_ROWS": &cfg.SQL.MaxRows,
	}
	for key, target := range ints {
		value, ok := lookup(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*target = n
	}

	bools := map[string]*bool{
		"DEVELOPMENT":  &cfg.Development,
		"HTTP_ENABLED": &cfg.HTTP.Enabled,
	}
	for key, target := range bools {
		value, ok := lookup(key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*target = b
	}

	if value, ok := lookup("HTTP_TIMEOUT"); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("config: %sHTTP_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.HTTP.Timeout = d
	}
	return nil
}

func lookup(key string) (string, bool) {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
