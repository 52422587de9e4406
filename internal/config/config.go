// Package config loads the dctool configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/HonzaMatousek/libdivecomputer/internal/parser"
)

// Config holds the tool configuration.
type Config struct {
	DataDir string  `yaml:"data_dir"`
	Listen  string  `yaml:"listen"`
	Logging Logging `yaml:"logging"`
	Parser  Parser  `yaml:"parser"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// Parser holds decoding defaults used when a command leaves them unset.
type Parser struct {
	Family       string  `yaml:"family"`
	Atmospheric  float64 `yaml:"atmospheric_pa"`
	WaterDensity float64 `yaml:"water_density"`
}

// Hydrostatic returns the pressure gradient in Pa/m for the configured
// water density.
func (p Parser) Hydrostatic() float64 {
	return p.WaterDensity * parser.Gravity
}

// Default returns the default configuration: a local logbook, a loopback
// API listener, and seawater decoding constants.
func Default() *Config {
	return &Config{
		DataDir: "./divelog",
		Listen:  "127.0.0.1:9301",
		Logging: Logging{Level: "info"},
		Parser: Parser{
			Family:       "reefnet_sensusultra",
			Atmospheric:  parser.Atm,
			WaterDensity: parser.DensitySalt,
		},
	}
}

// Load reads the configuration at path on top of the defaults, so keys the
// file omits keep their default values. A missing file is not an error; it
// yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return config, nil
}

// Save writes the configuration to path, creating the directory if needed.
func Save(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultPath returns the per-user configuration path.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./dctool.yaml"
	}
	return filepath.Join(homeDir, ".config", "dctool", "config.yaml")
}
