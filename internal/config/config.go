// Package config loads the loam CLI configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the loam CLI configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds remote store connection settings.
type ServerConfig struct {
	BaseURL  string `yaml:"base_url"`
	Tenant   string `yaml:"tenant"`
	Database string `yaml:"database"`
	APIKey   string `yaml:"api_key"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"` // "openai" or empty
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// CacheConfig holds embedding cache settings.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Defaults applied when the file leaves fields empty.
const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultTenant   = "default_tenant"
	DefaultDatabase = "default_database"
)

// Load reads a yaml config file and applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %q: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LOAM_BASE_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("LOAM_TENANT"); v != "" {
		cfg.Server.Tenant = v
	}
	if v := os.Getenv("LOAM_DATABASE"); v != "" {
		cfg.Server.Database = v
	}
	if v := os.Getenv("LOAM_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = DefaultBaseURL
	}
	if cfg.Server.Tenant == "" {
		cfg.Server.Tenant = DefaultTenant
	}
	if cfg.Server.Database == "" {
		cfg.Server.Database = DefaultDatabase
	}
}
