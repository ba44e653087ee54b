package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/seqkit/logger"
)

// EnvPrefix prefixes every environment override: SEQKIT_POOL_MIN_SEGMENT_LEN
// sets pool.min_segment_len and SEQKIT_GRID_SIZE sets grid_size.
const EnvPrefix = "SEQKIT"

// FileSystem is the file access the loader needs. Tests substitute a fake.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

type osFileSystem struct{}

func (osFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a .env file. Variables already set in the process win.
func (osFileSystem) LoadEnv(path string) error { return godotenv.Load(path) }

// LoaderConfig holds the loader's dependencies and file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
	EnvPrefix  string
}

// LoaderOption is a functional option for LoadConfig and Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets the filesystem used to find and read files.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path, skipping the search.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path, skipping the search.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix replaces EnvPrefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

func newLoaderConfig(opts []LoaderOption) LoaderConfig {
	lc := LoaderConfig{FileSystem: osFileSystem{}, EnvPrefix: EnvPrefix}
	for _, opt := range opts {
		opt(&lc)
	}
	return lc
}

// searchDirs lists the directories searched for a service's files, nearest
// first. Each location is also tried one and two levels up so that tests run
// from a package directory find the repository's files.
func searchDirs(serviceName string) []string {
	var dirs []string
	for _, dir := range []string{filepath.Join("cmd", serviceName), filepath.Join("config", serviceName), "config", "."} {
		dirs = append(dirs, dir, filepath.Join("..", dir), filepath.Join("..", "..", dir))
	}
	return dirs
}

// findFile returns the first existing dir/name over searchDirs, trying names
// in order.
func findFile(fs FileSystem, serviceName string, names ...string) string {
	for _, name := range names {
		for _, dir := range searchDirs(serviceName) {
			if path := filepath.Join(dir, name); fs.Exists(path) {
				return path
			}
		}
	}
	return ""
}

// ResolveFiles returns the config and .env files LoadConfig would read for
// serviceName. Explicit paths in lc are returned as given. Either result is
// empty when nothing is found.
func ResolveFiles(serviceName string, lc LoaderConfig) (configFile, envFile string) {
	if lc.FileSystem == nil {
		lc.FileSystem = osFileSystem{}
	}
	configFile, envFile = lc.ConfigFile, lc.EnvFile
	if configFile == "" {
		configFile = findFile(lc.FileSystem, serviceName, "config.yml")
	}
	if envFile == "" {
		envFile = findFile(lc.FileSystem, serviceName, ".env."+serviceName, ".env")
	}
	return configFile, envFile
}

// LoadConfig fills cfg from the service's config.yml, then applies the .env
// file and prefixed environment overrides. Missing files are not an error;
// cfg keeps whatever values it already holds for keys nobody sets.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	lc := newLoaderConfig(opts)
	configFile, envFile := ResolveFiles(serviceName, lc)

	if envFile != "" && lc.FileSystem.Exists(envFile) {
		if err := lc.FileSystem.LoadEnv(envFile); err != nil {
			logger.Warn("failed to load env file", logger.Fields(
				logger.FieldPath, envFile,
				logger.FieldError, err.Error(),
			))
		}
	}

	v := viper.New()
	if configFile != "" && lc.FileSystem.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			logger.Warn("failed to load config file", logger.Fields(
				logger.FieldPath, configFile,
				logger.FieldError, err.Error(),
			))
		}
	}

	v.SetEnvPrefix(lc.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range configKeys(reflect.TypeOf(cfg), "") {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// configKeys lists the dotted mapstructure keys of every leaf field of t.
// Squashed embedded structs contribute their keys at the parent's level.
// Map fields are leaves of the file only and get no environment binding.
func configKeys(t reflect.Type, prefix string) []string {
	if t == nil {
		return nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	var keys []string
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		if strings.Contains(opts, "squash") {
			keys = append(keys, configKeys(f.Type, prefix)...)
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		key := prefix + name
		switch ft := f.Type; {
		case ft.Kind() == reflect.Map:
		case ft.Kind() == reflect.Struct:
			keys = append(keys, configKeys(ft, key+".")...)
		default:
			keys = append(keys, key)
		}
	}
	return keys
}

// Defaulter is implemented by configs that fill in zero fields.
type Defaulter interface {
	ApplyDefaults()
}

// Validatable is implemented by configs that can check themselves.
type Validatable interface {
	Validate() error
}

// Load runs LoadConfig, then applies defaults and validates cfg when it
// implements Defaulter and Validatable.
func Load(serviceName string, cfg any, opts ...LoaderOption) error {
	if err := LoadConfig(serviceName, cfg, opts...); err != nil {
		return err
	}
	if d, ok := cfg.(Defaulter); ok {
		d.ApplyDefaults()
	}
	if v, ok := cfg.(Validatable); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid config for service %s: %w", serviceName, err)
		}
	}
	return nil
}
