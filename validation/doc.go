// Package validation validates seqkit configuration.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Failures are reported as
// INVALID_CONFIG errors from the errors package.
//
// # Struct Tag Validation
//
//	type PoolConfig struct {
//	    MinSegmentLen int `mapstructure:"min_segment_len" validate:"min=1"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.OneOf("logging.level", cfg.Level, levels)
//	err := v.Validate()
package validation
