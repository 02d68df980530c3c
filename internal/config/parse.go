package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the config file at path. A missing file yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the workspace config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates ocrdws.yaml content on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config file to disk.
func Save(path string, cfg *Config) error {
	if err := validate(cfg); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // config file needs to be readable
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.Jobs < 1 {
		return fmt.Errorf("config: jobs must be >= 1 (got %d)", cfg.Jobs)
	}
	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("config: http.timeout must not be negative")
	}
	if cfg.HTTP.RetryMax != nil && *cfg.HTTP.RetryMax < 0 {
		return fmt.Errorf("config: http.retry_max must not be negative (got %d)", *cfg.HTTP.RetryMax)
	}
	return nil
}
