// Package config loads the optional YAML configuration file. Every field has
// a working default; a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/danghaonhien/reword-this/internal/api"
	"github.com/danghaonhien/reword-this/internal/store"
)

// Config is the complete tool configuration.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Premium  bool           `yaml:"premium"`
}

// APIConfig holds the rewrite backend settings.
type APIConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// DatabaseConfig holds the local database location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	dbPath, err := store.DefaultPath()
	if err != nil {
		dbPath = ".rewordthis.db"
	}
	return &Config{
		API: APIConfig{
			Endpoint:  api.DefaultEndpoint,
			Model:     api.DefaultModel,
			MaxTokens: api.DefaultMaxTokens,
		},
		Database: DatabaseConfig{Path: dbPath},
		Logging:  LoggingConfig{Level: "warn"},
	}
}

// DefaultPath returns the conventional config file location,
// ~/.rewordthis.yaml. Falls back to the working directory when the home
// directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rewordthis.yaml"
	}
	return filepath.Join(home, ".rewordthis.yaml")
}

// Load reads the config file at path, overlaying it on the defaults. A
// missing file yields the defaults. The REWORD_PREMIUM environment variable
// ("1" or "true") forces premium on regardless of the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		cfg.fillDefaults()
	}

	if v := os.Getenv("REWORD_PREMIUM"); v == "1" || v == "true" {
		cfg.Premium = true
	}
	return cfg, nil
}

// fillDefaults restores defaults for fields the file left empty.
func (c *Config) fillDefaults() {
	d := Default()
	if c.API.Endpoint == "" {
		c.API.Endpoint = d.API.Endpoint
	}
	if c.API.Model == "" {
		c.API.Model = d.API.Model
	}
	if c.API.MaxTokens <= 0 {
		c.API.MaxTokens = d.API.MaxTokens
	}
	if c.Database.Path == "" {
		c.Database.Path = d.Database.Path
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
}
