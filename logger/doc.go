// Package logger provides structured logging for seqkit using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers. Init registers the "seq" and "pool" component
// loggers; their level can be raised or lowered independently of the base
// level. Library packages only emit debug or trace events, so a default
// "info" configuration keeps them silent.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  components:
//	    pool: "trace"
//
// # Usage
//
//	log := logger.Get(logger.ComponentSeq).GetLogger()
//	log.Debug().Int("count", n).Msg("resolved range by buffering upstream")
package logger
