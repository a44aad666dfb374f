// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// EnvPrefix prefixes every environment variable the tool reads.
const EnvPrefix = "SURVEY_TOOL_"

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults.
type Config struct {
	// Check
	Extensions   []string `json:"extensions,omitempty" validate:"omitempty,dive,startswith=."` // Accepted file extensions, with the leading dot
	MinDocuments int      `json:"min_documents,omitempty" validate:"omitempty,min=1"`         // Header plus at least one page
	Parallelism  int      `json:"parallelism,omitempty" validate:"omitempty,min=1,max=64"`    // Documents validated at once
	Schema       string   `json:"schema,omitempty"`                                           // Path to a schema overriding the embedded one

	// Setup check
	MinJavaVersion int `json:"min_java_version,omitempty" validate:"omitempty,min=1"` // Minimum Java major version

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=console json"`
	Verbose   bool   `json:"verbose,omitempty"` // Print successes and debug logs
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Extensions:     []string{".yaml", ".yml"},
		MinDocuments:   2,
		Parallelism:    4,
		MinJavaVersion: 21,
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// Load builds the effective configuration: the optional JSON file at path,
// overlaid by SURVEY_TOOL_* environment variables, validated and merged with Defaults.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg.MergeWithDefaults(Defaults()), nil
}

// LoadConfig loads configuration from a JSON file.
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields with the SURVEY_TOOL_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "EXTENSIONS"); ok && v != "" {
		c.Extensions = nil
		for _, ext := range strings.Split(v, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				c.Extensions = append(c.Extensions, ext)
			}
		}
	}
	if v, ok := lookup(EnvPrefix + "SCHEMA"); ok && v != "" {
		c.Schema = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok && v != "" {
		c.LogFormat = strings.ToLower(v)
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"MIN_DOCUMENTS", &c.MinDocuments},
		{"PARALLELISM", &c.Parallelism},
		{"MIN_JAVA_VERSION", &c.MinJavaVersion},
	}
	for _, iv := range ints {
		v, ok := lookup(EnvPrefix + iv.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config error: %s%s must be an integer: %w", EnvPrefix, iv.name, err)
		}
		*iv.dst = n
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Zero values are accepted; they are filled in by MergeWithDefaults.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Schema != "" {
		if _, err := os.Stat(c.Schema); os.IsNotExist(err) {
			return fmt.Errorf("config error: schema file not found: %s", c.Schema)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if len(result.Extensions) == 0 {
		result.Extensions = append([]string(nil), defaults.Extensions...)
	}
	if result.Schema == "" {
		result.Schema = defaults.Schema
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.MinDocuments == 0 {
		result.MinDocuments = defaults.MinDocuments
	}
	if result.Parallelism == 0 {
		result.Parallelism = defaults.Parallelism
	}
	if result.MinJavaVersion == 0 {
		result.MinJavaVersion = defaults.MinJavaVersion
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
