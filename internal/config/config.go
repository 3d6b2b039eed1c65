// Package config loads the moveline configuration: defaults, then the
// optional moveline.yaml file, then environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked for in the working directory when no explicit
// path is given.
const DefaultConfigFile = "moveline.yaml"

type GenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type Config struct {
	// DatabaseURL is the connection descriptor for the record store.
	// Required; startup fails without it.
	DatabaseURL string `yaml:"database_url"`

	// ListenAddr is the dashboard server's bind address.
	ListenAddr string `yaml:"listen_addr"`

	GenAI GenAIConfig `yaml:"genai"`
}

func Default() *Config {
	return &Config{
		ListenAddr: ":8501",
		GenAI: GenAIConfig{
			Model: "gemini-2.0-flash",
		},
	}
}

// Load reads configuration from path (or DefaultConfigFile when path is
// empty), then applies environment overrides. A missing default config file
// is fine; a missing explicit one is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Defaults plus environment only.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("MOVELINE_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.GenAI.APIKey = v
	}
	if v := os.Getenv("MOVELINE_MODEL"); v != "" {
		cfg.GenAI.Model = v
	}
}

// Validate checks the invariants every command needs. The database URL is a
// startup requirement, not a per-call concern.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database url is required: set DATABASE_URL or database_url in moveline.yaml")
	}
	return nil
}
