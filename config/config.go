// Package config loads engine configuration from a YAML file with
// environment-variable overrides. The file is optional; every field has a
// working default so a zero-config startup behaves sensibly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Snapshot backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Generator providers.
const (
	ProviderNone      = "none"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Duration is a time.Duration that unmarshals from either a Go duration
// string ("30s", "1m") or a bare number, which is read as seconds. Bare
// numbers are never interpreted as nanoseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q", raw)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// GeneratorConfig selects and tunes the remote generator. Provider "none"
// runs heuristic-only.
type GeneratorConfig struct {
	Provider string   `yaml:"provider"`
	Model    string   `yaml:"model"`
	BaseURL  string   `yaml:"base_url"`
	APIKey   string   `yaml:"api_key"`
	Timeout  Duration `yaml:"timeout"`
}

// SnapshotConfig tunes persistence.
type SnapshotConfig struct {
	Backend  string   `yaml:"backend"`
	Path     string   `yaml:"path"`
	Interval Duration `yaml:"interval"`
}

// LogConfig tunes logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the root configuration document.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Log       LogConfig       `yaml:"log"`
}

// Default returns the configuration used when no file and no overrides are
// present.
func Default() Config {
	return Config{
		Generator: GeneratorConfig{
			Provider: ProviderNone,
			Timeout:  Duration(30 * time.Second),
		},
		Snapshot: SnapshotConfig{
			Backend:  BackendFile,
			Path:     "data/aicore.json",
			Interval: Duration(60 * time.Second),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist), applies AICORE_* environment overrides, and validates the
// result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv layers AICORE_* variables over the file values. Environment wins.
func applyEnv(cfg *Config) {
	setString(&cfg.Generator.Provider, "AICORE_GENERATOR_PROVIDER")
	setString(&cfg.Generator.Model, "AICORE_GENERATOR_MODEL")
	setString(&cfg.Generator.BaseURL, "AICORE_GENERATOR_BASE_URL")
	setString(&cfg.Generator.APIKey, "AICORE_GENERATOR_API_KEY")
	setDuration(&cfg.Generator.Timeout, "AICORE_GENERATOR_TIMEOUT")

	setString(&cfg.Snapshot.Backend, "AICORE_SNAPSHOT_BACKEND")
	setString(&cfg.Snapshot.Path, "AICORE_SNAPSHOT_PATH")
	setDuration(&cfg.Snapshot.Interval, "AICORE_SNAPSHOT_INTERVAL")

	setString(&cfg.Log.Level, "AICORE_LOG_LEVEL")
	setString(&cfg.Log.Format, "AICORE_LOG_FORMAT")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = Duration(d)
		return
	}
	// bare number means seconds
	if secs, err := strconv.Atoi(v); err == nil {
		*dst = Duration(time.Duration(secs) * time.Second)
	}
}

// Validate rejects values no component could act on.
func (c Config) Validate() error {
	switch c.Generator.Provider {
	case ProviderNone, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown generator provider %q", c.Generator.Provider)
	}
	switch c.Snapshot.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown snapshot backend %q", c.Snapshot.Backend)
	}
	if c.Snapshot.Path == "" {
		return fmt.Errorf("snapshot path must not be empty")
	}
	if c.Generator.Timeout < 0 {
		return fmt.Errorf("generator timeout must not be negative")
	}
	// Sub-second intervals are always a misconfiguration (a raw nanosecond
	// value slipping through would spin the snapshot loop).
	if c.Snapshot.Interval.Std() < time.Second {
		return fmt.Errorf("snapshot interval must be at least 1s, got %s", c.Snapshot.Interval.Std())
	}
	return nil
}
