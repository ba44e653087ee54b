package config

import (
	"fmt"

	"github.com/kbukum/seqkit/logger"
)

// ServiceConfig is the root of an application config: identity plus logging.
// Applications embed it and add their own sections.
//
// Example:
//
//	type DemoConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Pool pool.Config `yaml:"pool" mapstructure:"pool"`
//	}
type ServiceConfig struct {
	Base    BaseConfig    `yaml:"base" mapstructure:"base"`
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to every section.
// Embedding structs should call c.ServiceConfig.ApplyDefaults() first.
func (c *ServiceConfig) ApplyDefaults() {
	c.Base.ApplyDefaults()
	if c.Base.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
}

// Validate validates every section.
// Embedding structs should call c.ServiceConfig.Validate() first.
func (c *ServiceConfig) Validate() error {
	if err := c.Base.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
