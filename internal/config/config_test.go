package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/live/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNew(t *testing.T) {
	cfg := New()
	assert.Equal(t, DefaultAddress, cfg.Bridge.Address)
	assert.Equal(t, DefaultPath, cfg.Bridge.Path)
	assert.EqualValues(t, DefaultReadLimit, cfg.Bridge.ReadLimit)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, DefaultMetricsPath, cfg.Metrics.Path)
	assert.Equal(t, DefaultTracerName, cfg.Tracing.TracerName)
	assert.Equal(t, 60*time.Second, cfg.ReadTimeout())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
	assert.Empty(t, cfg.Dir())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
  "bridge": {
    "address": "127.0.0.1:9000",
    "readTimeout": "5s",
    "allowedOrigins": ["https://example.com"],
    "page": "page.html"
  },
  "metrics": {"enabled": false},
  "log": {"level": "debug"}
}
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Bridge.Address)
	assert.Equal(t, DefaultPath, cfg.Bridge.Path, "defaults fill unset fields")
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout())
	assert.Equal(t, []string{"https://example.com"}, cfg.Bridge.AllowedOrigins)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, DefaultNamespace, cfg.Metrics.Namespace)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, filepath.Join(dir, "page.html"), cfg.PagePath())
	assert.Equal(t, dir, cfg.Dir())
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, "L010", errors.Code(err))

	path := writeConfig(t, t.TempDir(), `{"bridge": `)
	_, err = LoadFile(path)
	assert.Equal(t, "L011", errors.Code(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative bridge path", func(c *Config) { c.Bridge.Path = "ws" }},
		{"negative read limit", func(c *Config) { c.Bridge.ReadLimit = -1 }},
		{"bad timeout", func(c *Config) { c.Bridge.ReadTimeout = "soon" }},
		{"zero timeout", func(c *Config) { c.Bridge.ReadTimeout = "0s" }},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }},
		{"metrics path collides", func(c *Config) { c.Metrics.Path = c.Bridge.Path }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, "L012", errors.Code(err))
		})
	}

	cfg := New()
	cfg.Metrics.Enabled = false
	cfg.Metrics.Path = "ignored"
	assert.NoError(t, cfg.Validate())
}

func TestReadTimeoutFallback(t *testing.T) {
	cfg := New()
	cfg.Bridge.ReadTimeout = "later"
	assert.Equal(t, 60*time.Second, cfg.ReadTimeout())
}

func TestPagePath(t *testing.T) {
	cfg := New()
	assert.Empty(t, cfg.PagePath())

	cfg.Bridge.Page = "/abs/page.html"
	assert.Equal(t, "/abs/page.html", cfg.PagePath())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := New()
	cfg.Bridge.Page = "index.html"
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, cfg.SaveTo(path))
	assert.Equal(t, path, cfg.Path())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "index.html", loaded.Bridge.Page)
	assert.True(t, Exists(dir))
}
