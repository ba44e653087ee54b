package config

import "github.com/kbukum/seqkit/validation"

var validEnvironments = []string{"development", "staging", "production"}

// BaseConfig contains essential fields that every application needs.
type BaseConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// ApplyDefaults applies default values to base configuration.
func (c *BaseConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
}

// Validate validates base configuration.
func (c *BaseConfig) Validate() error {
	return validation.New().
		Custom(c.Name != "", "base.name", "is required").
		OneOf("base.environment", c.Environment, validEnvironments).
		Validate()
}
