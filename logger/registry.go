package logger

import (
	"sync"

	"github.com/rs/zerolog"
)

// Component names of the library packages that log.
const (
	ComponentSeq  = "seq"
	ComponentPool = "pool"
)

// libraryComponents are registered by every Init, whether or not the config
// names them.
var libraryComponents = []string{ComponentSeq, ComponentPool}

var registry = &componentRegistry{
	loggers: make(map[string]*Logger),
}

type componentRegistry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

// Register stores a named logger, replacing any previous one.
func Register(name string, l *Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loggers[name] = l
}

// Get returns the component logger registered under name. Unregistered names
// get the global logger tagged with the component.
func Get(name string) *Logger {
	registry.mu.RLock()
	l, ok := registry.loggers[name]
	registry.mu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// seedComponents registers the library components and every component named
// in cfg.Components, each at its configured level or the base level.
func seedComponents(base *Logger, cfg *Config) {
	baseLevel := parseLevel(cfg.Level, zerolog.InfoLevel)
	seed := func(name string) {
		level := parseLevel(cfg.Components[name], baseLevel)
		l := base.WithComponent(name)
		l.logger = l.logger.Level(level)
		Register(name, l)
	}
	for _, name := range libraryComponents {
		seed(name)
	}
	for name := range cfg.Components {
		seed(name)
	}
}

// lowestLevel is the most verbose of the base and component levels. The
// zerolog global level must not be above it or component overrides would be
// filtered out.
func lowestLevel(cfg *Config) zerolog.Level {
	lowest := parseLevel(cfg.Level, zerolog.InfoLevel)
	for _, s := range cfg.Components {
		lowest = min(lowest, parseLevel(s, lowest))
	}
	return lowest
}

func parseLevel(s string, def zerolog.Level) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil || level == zerolog.NoLevel {
		return def
	}
	return level
}
