// Package config loads the modeler's YAML configuration with environment
// overrides. Everything has a usable default so the binary runs with no
// config file at all.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	// Addr is the listen address of the REST server.
	Addr string `yaml:"addr"`
	// DataDir is the root directory holding one subdirectory per project.
	DataDir string `yaml:"dataDir"`
	// ReadOnly opens every project store read-only.
	ReadOnly bool `yaml:"readOnly"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
	// LogJSON switches the log encoder from console to JSON.
	LogJSON bool `yaml:"logJson"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:     ":8080",
		DataDir:  "./data",
		LogLevel: "info",
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers environment variables over the file values.
func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	if dir := os.Getenv("MODELER_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if level := os.Getenv("MODELER_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.DataDir == "" {
		return fmt.Errorf("dataDir must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logLevel %q", c.LogLevel)
	}
	return nil
}
