package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML configuration file, the lowest-precedence
// source for the provider API keys.
type fileConfig struct {
	PolygonKey   string `yaml:"polygon_key"`
	CoingeckoKey string `yaml:"coingecko_key"`
}

// loadConfig reads the config file when a path is given. No path means an
// empty config, but a path that cannot be read or parsed is an error: a user
// who asked for a config file wants it honored.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %q: %w", path, err)
	}
	return cfg, nil
}
