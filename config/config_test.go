package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ProviderNone, cfg.Generator.Provider)
	assert.Equal(t, BackendFile, cfg.Snapshot.Backend)
	assert.Equal(t, 60*time.Second, cfg.Snapshot.Interval.Std())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aicore.yaml")
	doc := `
generator:
  provider: openai
  model: llama3
  base_url: http://localhost:11434/v1
  timeout: 10s
snapshot:
  backend: sqlite
  path: /tmp/aicore.db
  interval: 30s
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Generator.Provider)
	assert.Equal(t, "llama3", cfg.Generator.Model)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Generator.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Generator.Timeout.Std())
	assert.Equal(t, BackendSQLite, cfg.Snapshot.Backend)
	assert.Equal(t, 30*time.Second, cfg.Snapshot.Interval.Std())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_BareYAMLNumbersAreSeconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aicore.yaml")
	doc := `
generator:
  timeout: 10
snapshot:
  interval: 60
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Generator.Timeout.Std())
	assert.Equal(t, 60*time.Second, cfg.Snapshot.Interval.Std(), "a bare 60 must never mean 60ns")
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aicore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snapshot:\n  interval: soon\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aicore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator:\n  provider: openai\n"), 0o644))

	t.Setenv("AICORE_GENERATOR_PROVIDER", "anthropic")
	t.Setenv("AICORE_SNAPSHOT_INTERVAL", "45")
	t.Setenv("AICORE_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, cfg.Generator.Provider)
	assert.Equal(t, 45*time.Second, cfg.Snapshot.Interval.Std(), "bare numbers are seconds")
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aicore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - not valid"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown provider", func(c *Config) { c.Generator.Provider = "ollama" }},
		{"unknown backend", func(c *Config) { c.Snapshot.Backend = "redis" }},
		{"empty path", func(c *Config) { c.Snapshot.Path = "" }},
		{"negative timeout", func(c *Config) { c.Generator.Timeout = Duration(-time.Second) }},
		{"zero interval", func(c *Config) { c.Snapshot.Interval = 0 }},
		{"sub-second interval", func(c *Config) { c.Snapshot.Interval = Duration(60 * time.Nanosecond) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
