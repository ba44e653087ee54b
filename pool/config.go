package pool

import (
	"sync/atomic"

	"github.com/kbukum/seqkit/validation"
)

const (
	// MinSegmentLen is the smallest slice the pool hands out.
	MinSegmentLen = 16
	// MaxSegmentLen caps the capacity of a single rented segment.
	MaxSegmentLen = 1 << 20
	// MaxPooledLen is the largest slice kept for reuse; bigger ones are left to the GC.
	MaxPooledLen = 1 << 20
)

// Config contains pooling configuration.
type Config struct {
	MinSegmentLen int `yaml:"min_segment_len" mapstructure:"min_segment_len" validate:"min=1,max=1073741824"`
	MaxSegmentLen int `yaml:"max_segment_len" mapstructure:"max_segment_len" validate:"gtefield=MinSegmentLen,max=1073741824"`
	MaxPooledLen  int `yaml:"max_pooled_len" mapstructure:"max_pooled_len" validate:"min=0"`
}

// ApplyDefaults applies default values to pooling configuration.
func (c *Config) ApplyDefaults() {
	if c.MinSegmentLen == 0 {
		c.MinSegmentLen = MinSegmentLen
	}
	if c.MaxSegmentLen == 0 {
		c.MaxSegmentLen = MaxSegmentLen
	}
	if c.MaxPooledLen == 0 {
		c.MaxPooledLen = MaxPooledLen
	}
}

// Validate validates pooling configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// DefaultConfig returns the configuration used when Configure was never called.
func DefaultConfig() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

var settings atomic.Pointer[Config]

// Configure installs cfg as the process-wide pooling configuration.
// Zero fields take their defaults.
func Configure(cfg Config) error {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	settings.Store(&cfg)
	return nil
}

// Current returns the active pooling configuration.
func Current() Config {
	if c := settings.Load(); c != nil {
		return *c
	}
	return DefaultConfig()
}
