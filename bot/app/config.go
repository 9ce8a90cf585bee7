package app

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/sosedi-ryadom/sosedibot/core/config"
	coredatabase "github.com/sosedi-ryadom/sosedibot/core/database"
)

// Config is the full bot configuration: the shared core settings plus
// the database block.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// Load reads configuration from a YAML file, overlays environment
// variables, and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if cfg.Database.Host == "" || cfg.Database.Name == "" {
		return nil, fmt.Errorf("database host and name are required")
	}
	return &cfg, nil
}
