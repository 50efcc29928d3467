// Package config provides configuration loading and validation for the CLI and the editor server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "RESUME_STUDIO_"

// Defaults used when neither the config file nor flags set a value.
const (
	DefaultResume         = "resume.json"
	DefaultPort           = 8080
	DefaultPDFTimeout     = 30 * time.Second
	DefaultPDFConcurrency = 2
)

// Config represents settings that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or come from CLI flags.
type Config struct {
	// Document
	Resume string `json:"resume,omitempty" yaml:"resume,omitempty"` // Path or http(s) URL of resume.json
	Strict bool   `json:"strict,omitempty" yaml:"strict,omitempty"` // Validate against schema and struct tags on load

	// Server
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty" validate:"omitempty,min=1,max=65535"`

	// PDF export
	ChromePath     string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"` // Chrome/Chromium binary; empty uses PATH lookup
	PDFTimeout     string `json:"pdf_timeout,omitempty" yaml:"pdf_timeout,omitempty"` // Go duration, e.g. "45s"
	PDFConcurrency int    `json:"pdf_concurrency,omitempty" yaml:"pdf_concurrency,omitempty" validate:"omitempty,min=1,max=16"`

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Resume:         DefaultResume,
		Port:           DefaultPort,
		PDFTimeout:     DefaultPDFTimeout.String(),
		PDFConcurrency: DefaultPDFConcurrency,
	}
}

// LoadConfig loads configuration from a JSON file, or from YAML when the
// extension is .yaml or .yml.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// FromEnv overlays RESUME_STUDIO_* environment variables onto c. Unparseable
// numbers and booleans are reported rather than ignored.
func (c *Config) FromEnv() error {
	if v := os.Getenv(EnvPrefix + "RESUME"); v != "" {
		c.Resume = v
	}
	if v := os.Getenv(EnvPrefix + "HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvPrefix + "CHROME_PATH"); v != "" {
		c.ChromePath = v
	}
	if v := os.Getenv(EnvPrefix + "PDF_TIMEOUT"); v != "" {
		c.PDFTimeout = v
	}

	var err error
	if c.Port, err = envInt("PORT", c.Port); err != nil {
		return err
	}
	if c.PDFConcurrency, err = envInt("PDF_CONCURRENCY", c.PDFConcurrency); err != nil {
		return err
	}
	if c.Strict, err = envBool("STRICT", c.Strict); err != nil {
		return err
	}
	if c.Verbose, err = envBool("VERBOSE", c.Verbose); err != nil {
		return err
	}
	return nil
}

func envInt(name string, current int) (int, error) {
	v := os.Getenv(EnvPrefix + name)
	if v == "" {
		return current, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return current, fmt.Errorf("config error: %s%s must be an integer: %w", EnvPrefix, name, err)
	}
	return n, nil
}

func envBool(name string, current bool) (bool, error) {
	v := os.Getenv(EnvPrefix + name)
	if v == "" {
		return current, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return current, fmt.Errorf("config error: %s%s must be a boolean: %w", EnvPrefix, name, err)
	}
	return b, nil
}

// Validate checks that the configuration has valid values.
// Required values are checked by the commands after flags are merged.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.PDFTimeout != "" {
		d, err := time.ParseDuration(c.PDFTimeout)
		if err != nil {
			return fmt.Errorf("config error: 'pdf_timeout' is not a duration: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'pdf_timeout' must be positive")
		}
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// Timeout returns the parsed PDF timeout, or the default when unset or invalid.
func (c *Config) Timeout() time.Duration {
	if d, err := time.ParseDuration(c.PDFTimeout); err == nil && d > 0 {
		return d
	}
	return DefaultPDFTimeout
}

// Addr returns the listen address for the server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Host == "" {
		result.Host = defaults.Host
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.PDFTimeout == "" {
		result.PDFTimeout = defaults.PDFTimeout
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.PDFConcurrency == 0 {
		result.PDFConcurrency = defaults.PDFConcurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
