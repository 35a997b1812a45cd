package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/live/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "live.json"

	// DefaultAddress is the default bridge listen address.
	DefaultAddress = ":7070"

	// DefaultPath is the default websocket endpoint.
	DefaultPath = "/ws"

	// DefaultReadLimit is the default maximum frame size in bytes.
	DefaultReadLimit = 64 * 1024

	// DefaultReadTimeout is the default idle read deadline.
	DefaultReadTimeout = "60s"

	// DefaultMetricsPath is the default Prometheus endpoint.
	DefaultMetricsPath = "/metrics"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "live"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "github.com/vango-dev/live"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
)

// Config represents the complete live.json configuration.
type Config struct {
	// Bridge contains websocket bridge settings.
	Bridge BridgeConfig `json:"bridge"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing"`

	// Log contains logging settings.
	Log LogConfig `json:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// BridgeConfig contains websocket bridge settings.
type BridgeConfig struct {
	// Address is the listen address.
	Address string `json:"address,omitempty"`

	// Path is the websocket endpoint path.
	Path string `json:"path,omitempty"`

	// ReadLimit is the maximum size of one client frame in bytes.
	ReadLimit int64 `json:"readLimit,omitempty"`

	// ReadTimeout is how long a connection may stay silent (e.g., "60s").
	ReadTimeout string `json:"readTimeout,omitempty"`

	// AllowedOrigins lists accepted Origin headers. Empty accepts
	// same-origin requests only.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`

	// Page is the HTML file every session document starts from.
	Page string `json:"page,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes the metrics endpoint.
	Enabled bool `json:"enabled"`

	// Path is the metrics endpoint path.
	Path string `json:"path,omitempty"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// TracerName names the tracer engine spans are recorded on.
	TracerName string `json:"tracerName,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Bridge: BridgeConfig{
			Address:     DefaultAddress,
			Path:        DefaultPath,
			ReadLimit:   DefaultReadLimit,
			ReadTimeout: DefaultReadTimeout,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      DefaultMetricsPath,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads live.json from dir. A directory without one yields the
// defaults.
func Load(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("L010").
			WithDetail("Could not read " + path).
			Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("L011").
			WithDetail("Failed to parse " + path).
			WithSuggestion("Check that live.json is valid JSON").
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("L010").Wrap(err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("L010").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Bridge.Address == "" {
		c.Bridge.Address = DefaultAddress
	}
	if c.Bridge.Path == "" {
		c.Bridge.Path = DefaultPath
	}
	if c.Bridge.ReadLimit == 0 {
		c.Bridge.ReadLimit = DefaultReadLimit
	}
	if c.Bridge.ReadTimeout == "" {
		c.Bridge.ReadTimeout = DefaultReadTimeout
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New("L012").WithDetailf(format, args...)
	}
	if !strings.HasPrefix(c.Bridge.Path, "/") {
		return invalid("bridge.path must start with '/', got %q", c.Bridge.Path)
	}
	if c.Bridge.ReadLimit < 0 {
		return invalid("bridge.readLimit must be positive, got %d", c.Bridge.ReadLimit)
	}
	if d, err := time.ParseDuration(c.Bridge.ReadTimeout); err != nil || d <= 0 {
		return invalid("bridge.readTimeout must be a positive duration, got %q", c.Bridge.ReadTimeout)
	}
	if c.Metrics.Enabled {
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			return invalid("metrics.path must start with '/', got %q", c.Metrics.Path)
		}
		if c.Metrics.Path == c.Bridge.Path {
			return invalid("metrics.path and bridge.path are both %q", c.Metrics.Path)
		}
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// ReadTimeout returns the bridge read timeout, or the default when the
// configured value does not parse.
func (c *Config) ReadTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Bridge.ReadTimeout); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultReadTimeout)
	return d
}

// PagePath returns the absolute path of the session page, or "" when
// sessions start from an empty document.
func (c *Config) PagePath() string {
	if c.Bridge.Page == "" || filepath.IsAbs(c.Bridge.Page) {
		return c.Bridge.Page
	}
	return filepath.Join(c.Dir(), c.Bridge.Page)
}

// LogLevel returns the configured slog level, defaulting to Info.
func (c *Config) LogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q is not one of debug, info, warn, error", s)
	}
	return level, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
