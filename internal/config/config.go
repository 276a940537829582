// Package config loads the application configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Database string       `yaml:"database,omitempty"` // SQLite path (fallback: ./baseline.db)
	Site     SiteConfig   `yaml:"site"`
	Model    ModelConfig  `yaml:"model,omitempty"`
	Server   ServerConfig `yaml:"server,omitempty"`
}

// SiteConfig describes the metered site whose records the database holds
type SiteConfig struct {
	Label          string `yaml:"label,omitempty"`
	Interpretation string `yaml:"interpretation"` // e.g. ELECTRICITY_CONSUMPTION_SUPPLIED
	Unit           string `yaml:"unit"`           // raw unit spelling, e.g. kWh
	Timezone       string `yaml:"timezone,omitempty"`
}

// ModelConfig holds the seasonal model parameters
type ModelConfig struct {
	CoolingBaseTempF float64 `yaml:"cooling_base_temp_f,omitempty"`
	HeatingBaseTempF float64 `yaml:"heating_base_temp_f,omitempty"`
	BaseFormula      string  `yaml:"base_formula,omitempty"`
}

// ServerConfig holds the WebSocket server settings
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"` // e.g. ":8080"
}

// Load reads the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	return "config.yaml"
}

func (c *Config) applyDefaults() {
	if c.Database == "" {
		c.Database = "baseline.db"
	}
	if c.Site.Label == "" {
		c.Site.Label = "0"
	}
	if c.Model.CoolingBaseTempF == 0 {
		c.Model.CoolingBaseTempF = 65
	}
	if c.Model.HeatingBaseTempF == 0 {
		c.Model.HeatingBaseTempF = 65
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}

// Location resolves the configured site timezone, defaulting to UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Site.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Site.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Site.Timezone, err)
	}
	return loc, nil
}
