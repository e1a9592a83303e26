// Package config loads tool defaults from an HCL file. Everything in it
// can be overridden per invocation by CLI flags; the file exists so a
// table profile (opponent count, iteration budget, latency bound) can be
// kept next to the seat configuration the capture tooling already uses.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete equity tool configuration
type Config struct {
	Simulation SimulationSettings `hcl:"simulation,block"`
	Server     ServerSettings     `hcl:"server,block"`
}

// SimulationSettings contains the Monte Carlo defaults
type SimulationSettings struct {
	Iterations int     `hcl:"iterations,optional"`
	Opponents  int     `hcl:"opponents,optional"`
	Workers    int     `hcl:"workers,optional"`
	Confidence float64 `hcl:"confidence,optional"`
	TimeBudget string  `hcl:"time_budget,optional"` // Go duration string, "" for none
}

// ServerSettings contains the equity service configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Simulation: SimulationSettings{
			Iterations: 100000,
			Opponents:  1,
			Confidence: 1.96,
		},
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8089,
			LogLevel: "info",
		},
	}
}

// Load loads configuration from an HCL file, falling back to defaults
// when the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Simulation.Iterations == 0 {
		config.Simulation.Iterations = 100000
	}
	if config.Simulation.Opponents == 0 {
		config.Simulation.Opponents = 1
	}
	if config.Simulation.Confidence == 0 {
		config.Simulation.Confidence = 1.96
	}
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8089
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}

	return &config, nil
}

// ParseTimeBudget parses the configured time budget, zero when unset.
func (s SimulationSettings) ParseTimeBudget() (time.Duration, error) {
	if s.TimeBudget == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.TimeBudget)
	if err != nil {
		return 0, fmt.Errorf("invalid time_budget %q: %w", s.TimeBudget, err)
	}
	return d, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Simulation.Iterations)
	}
	if c.Simulation.Opponents < 1 || c.Simulation.Opponents > 22 {
		return fmt.Errorf("opponents must be between 1 and 22, got %d", c.Simulation.Opponents)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Simulation.Workers)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := c.Simulation.ParseTimeBudget(); err != nil {
		return err
	}
	return nil
}
