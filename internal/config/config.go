// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/portfolio-builder/internal/store"
)

// Defaults applied by MergeWithDefaults when nothing else is set
const (
	DefaultStore      = store.DriverSQLite
	DefaultDSN        = "portfolio.db"
	DefaultPort       = "8080"
	DefaultOutputDir  = "."
	DefaultPDFTimeout = 30 * time.Second
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Storage
	Store string `json:"store,omitempty" yaml:"store,omitempty"` // memory, sqlite or postgres
	DSN   string `json:"dsn,omitempty" yaml:"dsn,omitempty"`     // SQLite path or PostgreSQL URL

	// Server
	Port string `json:"port,omitempty" yaml:"port,omitempty"`

	// Rendering
	SectionTemplates string `json:"section_templates,omitempty" yaml:"section_templates,omitempty"` // Override file for section templates
	FormFile         string `json:"form_file,omitempty" yaml:"form_file,omitempty"`                 // YAML/JSON form file for watch

	// Export
	OutputDir      string   `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	SanitizeExport bool     `json:"sanitize_export,omitempty" yaml:"sanitize_export,omitempty"`
	ChromePath     string   `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	PDFTimeout     Duration `json:"pdf_timeout,omitempty" yaml:"pdf_timeout,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Duration is a time.Duration written as a string such as "45s" in config files
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.parse(s)
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv builds a Config from PORTFOLIO_* environment variables.
func FromEnv() Config {
	return Config{
		Store:      os.Getenv("PORTFOLIO_STORE"),
		DSN:        os.Getenv("PORTFOLIO_DSN"),
		Port:       os.Getenv("PORTFOLIO_PORT"),
		OutputDir:  os.Getenv("PORTFOLIO_OUTPUT_DIR"),
		ChromePath: os.Getenv("PORTFOLIO_CHROME_PATH"),
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch c.Store {
	case "", store.DriverMemory, store.DriverSQLite, store.DriverPostgres:
	default:
		return fmt.Errorf("config error: unknown store %q (expected memory, sqlite or postgres)", c.Store)
	}

	if c.PDFTimeout < 0 {
		return fmt.Errorf("config error: 'pdf_timeout' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.SectionTemplates != "" {
		if _, err := os.Stat(c.SectionTemplates); os.IsNotExist(err) {
			return fmt.Errorf("config error: section templates file not found: %s", c.SectionTemplates)
		}
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer flags over environment over config file.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.DSN == "" {
		result.DSN = defaults.DSN
	}
	if result.Port == "" {
		result.Port = defaults.Port
	}
	if result.SectionTemplates == "" {
		result.SectionTemplates = defaults.SectionTemplates
	}
	if result.FormFile == "" {
		result.FormFile = defaults.FormFile
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.PDFTimeout == 0 {
		result.PDFTimeout = defaults.PDFTimeout
	}

	// Bool fields: cannot distinguish unset from false, so only true is carried over
	result.SanitizeExport = result.SanitizeExport || defaults.SanitizeExport
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// ApplyDefaults fills whatever is still empty with the built-in defaults.
// A postgres store without a DSN uses DATABASE_URL.
func (c *Config) ApplyDefaults() {
	if c.Store == "" {
		c.Store = DefaultStore
	}
	if c.DSN == "" {
		switch c.Store {
		case store.DriverSQLite:
			c.DSN = DefaultDSN
		case store.DriverPostgres:
			c.DSN = os.Getenv("DATABASE_URL")
		}
	}
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.PDFTimeout == 0 {
		c.PDFTimeout = Duration(DefaultPDFTimeout)
	}
}
