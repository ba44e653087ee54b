package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/seqkit/errors"
)

func TestBaseConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestBaseConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     BaseConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", BaseConfig{Name: "svc", Environment: "development"}, false, ""},
		{"valid staging", BaseConfig{Name: "svc", Environment: "staging"}, false, ""},
		{"valid production", BaseConfig{Name: "svc", Environment: "production"}, false, ""},
		{"missing name", BaseConfig{Environment: "production"}, true, "base.name: is required"},
		{"invalid environment", BaseConfig{Name: "svc", Environment: "invalid"}, true, "base.environment: must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
				if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("expected INVALID_CONFIG, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestServiceConfigDefaults(t *testing.T) {
	cfg := ServiceConfig{Base: BaseConfig{Name: "svc"}}
	cfg.ApplyDefaults()
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug logging in development, got %q", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg = ServiceConfig{Base: BaseConfig{Name: "svc", Environment: "production"}}
	cfg.ApplyDefaults()
	if cfg.Logging.Level != "info" {
		t.Errorf("expected info logging in production, got %q", cfg.Logging.Level)
	}
}

func TestServiceConfigValidateLogging(t *testing.T) {
	cfg := ServiceConfig{Base: BaseConfig{Name: "svc"}}
	cfg.ApplyDefaults()
	cfg.Logging.Level = "loud"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "config.logging") {
		t.Errorf("expected logging error, got %v", err)
	}
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Pool          struct {
		MinSegmentLen int `mapstructure:"min_segment_len"`
	} `yaml:"pool" mapstructure:"pool"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigWithYAML(t *testing.T) {
	path := writeConfig(t, `
base:
  name: test-service
  environment: staging
  version: "1.0.0"
pool:
  min_segment_len: 64
`)

	var cfg testConfig
	if err := LoadConfig("test-service", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Base.Name != "test-service" {
		t.Errorf("expected name 'test-service', got %q", cfg.Base.Name)
	}
	if cfg.Base.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Base.Environment)
	}
	if cfg.Pool.MinSegmentLen != 64 {
		t.Errorf("expected min_segment_len 64, got %d", cfg.Pool.MinSegmentLen)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, `
base:
  name: test-service
pool:
  min_segment_len: 64
`)
	t.Setenv("SEQKIT_POOL_MIN_SEGMENT_LEN", "128")
	t.Setenv("SEQKIT_BASE_VERSION", "2.1.0")
	t.Setenv("POOL_MIN_SEGMENT_LEN", "999")

	var cfg testConfig
	if err := LoadConfig("test-service", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Pool.MinSegmentLen != 128 {
		t.Errorf("expected env override 128, got %d", cfg.Pool.MinSegmentLen)
	}
	if cfg.Base.Version != "2.1.0" {
		t.Errorf("expected version from env for a key missing in the file, got %q", cfg.Base.Version)
	}
}

func TestLoadConfigEnvPrefix(t *testing.T) {
	t.Setenv("DEMO_POOL_MIN_SEGMENT_LEN", "32")
	var cfg testConfig
	err := LoadConfig("test-service", &cfg, WithConfigFile("/nonexistent/config.yml"), WithEnvPrefix("DEMO"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Pool.MinSegmentLen != 32 {
		t.Errorf("expected 32 from DEMO_ prefix, got %d", cfg.Pool.MinSegmentLen)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envPath, []byte("SEQKIT_BASE_NAME=from-dotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("SEQKIT_BASE_NAME") })

	var cfg testConfig
	err := LoadConfig("test-service", &cfg, WithConfigFile("/nonexistent/config.yml"), WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Base.Name != "from-dotenv" {
		t.Errorf("expected name from .env, got %q", cfg.Base.Name)
	}
}

func TestLoadConfigKeepsPresetValues(t *testing.T) {
	cfg := testConfig{}
	cfg.Pool.MinSegmentLen = 16
	cfg.Base.Name = "preset"
	if err := LoadConfig("test-service", &cfg, WithConfigFile(writeConfig(t, "base:\n  version: \"1\"\n"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Pool.MinSegmentLen != 16 || cfg.Base.Name != "preset" {
		t.Errorf("expected untouched keys to keep their values, got %+v", cfg)
	}
	if cfg.Base.Version != "1" {
		t.Errorf("expected version 1, got %q", cfg.Base.Version)
	}
}

func TestLoadAppliesDefaultsAndValidates(t *testing.T) {
	var cfg testConfig
	err := Load("test-service", &cfg, WithConfigFile(writeConfig(t, "base:\n  name: svc\n")))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Base.Environment != "development" || cfg.Logging.Format == "" {
		t.Errorf("expected defaults applied, got %+v", cfg.ServiceConfig)
	}

	var bad testConfig
	err = Load("test-service", &bad, WithConfigFile(writeConfig(t, "base:\n  environment: mars\n")))
	if err == nil || !strings.Contains(err.Error(), "invalid config for service test-service") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestResolveFiles(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		wantConf string
		wantEnv  string
	}{
		{
			name:     "service dir",
			files:    []string{"cmd/seqdemo/config.yml", "cmd/seqdemo/.env", "config.yml"},
			wantConf: "cmd/seqdemo/config.yml",
			wantEnv:  "cmd/seqdemo/.env",
		},
		{
			name:     "from a package dir",
			files:    []string{"../cmd/seqdemo/config.yml"},
			wantConf: "../cmd/seqdemo/config.yml",
		},
		{
			name:    "service specific env wins",
			files:   []string{".env.seqdemo", "cmd/seqdemo/.env"},
			wantEnv: ".env.seqdemo",
		},
		{
			name:     "config dir",
			files:    []string{"config/config.yml", "config/seqdemo/.env"},
			wantConf: "config/config.yml",
			wantEnv:  "config/seqdemo/.env",
		},
		{
			name: "nothing found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &mockFS{files: map[string]bool{}}
			for _, f := range tt.files {
				fs.files[f] = true
			}
			conf, env := ResolveFiles("seqdemo", LoaderConfig{FileSystem: fs})
			if conf != tt.wantConf {
				t.Errorf("expected config file %q, got %q", tt.wantConf, conf)
			}
			if env != tt.wantEnv {
				t.Errorf("expected env file %q, got %q", tt.wantEnv, env)
			}
		})
	}
}

func TestResolveFilesExplicitPathsWin(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"config.yml": true, ".env": true}}
	conf, env := ResolveFiles("svc", LoaderConfig{FileSystem: fs, ConfigFile: "a.yml", EnvFile: "b.env"})
	if conf != "a.yml" || env != "b.env" {
		t.Errorf("expected explicit paths, got %q and %q", conf, env)
	}
}

type mockFS struct {
	files  map[string]bool
	loaded []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }

func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}

func TestLoadConfigUsesFileSystem(t *testing.T) {
	fs := &mockFS{files: map[string]bool{".env.svc": true}}
	var cfg testConfig
	if err := LoadConfig("svc", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if diff := cmp.Diff([]string{".env.svc"}, fs.loaded); diff != "" {
		t.Errorf("loaded env files mismatch (-want +got):\n%s", diff)
	}
}

type keysConfig struct {
	ServiceConfig `mapstructure:",squash"`
	Pool          struct {
		MinSegmentLen int `mapstructure:"min_segment_len"`
	} `mapstructure:"pool"`
	GridSize int    `mapstructure:"grid_size"`
	Ignored  string `mapstructure:"-"`
	Plain    bool
	internal int
}

func TestConfigKeys(t *testing.T) {
	want := []string{
		"base.name", "base.environment", "base.version", "base.debug",
		"logging.level", "logging.format", "logging.output",
		"logging.no_color", "logging.timestamp", "logging.caller",
		"pool.min_segment_len", "grid_size", "plain",
	}
	if diff := cmp.Diff(want, configKeys(reflect.TypeOf(&keysConfig{}), "")); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if keys := configKeys(reflect.TypeOf(42), ""); keys != nil {
		t.Errorf("expected no keys for a non-struct, got %v", keys)
	}
}

func TestLoaderOptions(t *testing.T) {
	lc := newLoaderConfig([]LoaderOption{
		WithFileSystem(&mockFS{}),
		WithConfigFile("/path/to/config.yml"),
		WithEnvFile("/path/to/.env"),
		WithEnvPrefix("DEMO"),
	})
	if _, ok := lc.FileSystem.(*mockFS); !ok {
		t.Errorf("expected mock filesystem, got %T", lc.FileSystem)
	}
	if lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" || lc.EnvPrefix != "DEMO" {
		t.Errorf("unexpected loader config %+v", lc)
	}
	if newLoaderConfig(nil).EnvPrefix != EnvPrefix {
		t.Error("expected default env prefix")
	}
}
