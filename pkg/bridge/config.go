package bridge

import (
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/live/internal/config"
	"github.com/vango-dev/live/internal/errors"
	"github.com/vango-dev/live/pkg/scenario"
)

// SetupFunc prepares a new session before its first frame, typically by
// binding callbacks on its engine.
type SetupFunc func(*Session) error

// Config configures a Server.
type Config struct {
	// Address is the listen address for Run.
	Address string

	// Path is the WebSocket endpoint.
	Path string

	// ReadLimit is the maximum size of one client frame in bytes.
	ReadLimit int64

	// ReadTimeout closes connections silent for longer than this.
	ReadTimeout time.Duration

	// WriteTimeout bounds each frame write.
	WriteTimeout time.Duration

	// PingInterval is how often the server pings idle clients.
	// Default: half of ReadTimeout.
	PingInterval time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// CheckOrigin validates the request origin.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// Page is the HTML every session document starts from when Scenario
	// is nil.
	Page string

	// Scenario, when set, provides the session page, layout and bindings.
	Scenario *scenario.Scenario

	// Setup runs for every new session after the scenario bindings.
	Setup SetupFunc

	// MetricsPath exposes Prometheus metrics. Empty disables the endpoint.
	MetricsPath string

	// MetricsNamespace prefixes engine and bridge metrics.
	MetricsNamespace string

	// Registry collects metrics. Default: a new registry per server.
	Registry *prometheus.Registry

	// Tracer records engine spans. Default: the global tracer provider.
	Tracer trace.Tracer

	// Logger is the server logger.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with the default settings.
func DefaultConfig() *Config {
	return &Config{
		Address:          config.DefaultAddress,
		Path:             config.DefaultPath,
		ReadLimit:        config.DefaultReadLimit,
		ReadTimeout:      60 * time.Second,
		WriteTimeout:     10 * time.Second,
		ShutdownTimeout:  10 * time.Second,
		CheckOrigin:      SameOriginCheck,
		MetricsPath:      config.DefaultMetricsPath,
		MetricsNamespace: config.DefaultNamespace,
	}
}

// FromConfig builds a Config from live.json settings, reading the page
// file when one is configured.
func FromConfig(cfg *config.Config) (*Config, error) {
	c := DefaultConfig()
	c.Address = cfg.Bridge.Address
	c.Path = cfg.Bridge.Path
	c.ReadLimit = cfg.Bridge.ReadLimit
	c.ReadTimeout = cfg.ReadTimeout()
	if len(cfg.Bridge.AllowedOrigins) > 0 {
		c.CheckOrigin = AllowOrigins(cfg.Bridge.AllowedOrigins)
	}
	if cfg.Metrics.Enabled {
		c.MetricsPath = cfg.Metrics.Path
	} else {
		c.MetricsPath = ""
	}
	c.MetricsNamespace = cfg.Metrics.Namespace
	c.Tracer = otel.Tracer(cfg.Tracing.TracerName)

	if path := cfg.PagePath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.New("L010").WithDetail("Could not read page " + path).Wrap(err)
		}
		c.Page = string(data)
	}
	return c, nil
}

// withDefaults fills unset fields.
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.Path == "" {
		out.Path = d.Path
	}
	if out.ReadLimit == 0 {
		out.ReadLimit = d.ReadLimit
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = d.ReadTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.PingInterval == 0 {
		out.PingInterval = out.ReadTimeout / 2
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}
	if out.MetricsNamespace == "" {
		out.MetricsNamespace = d.MetricsNamespace
	}
	if out.Registry == nil {
		out.Registry = prometheus.NewRegistry()
	}
	if out.Tracer == nil {
		out.Tracer = otel.Tracer(config.DefaultTracerName)
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}

// SameOriginCheck accepts requests without an Origin header and requests
// whose Origin host matches the Host header.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// AllowOrigins accepts same-origin requests and the listed origins.
func AllowOrigins(origins []string) func(*http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(strings.ToLower(o), "/")] = true
	}
	return func(r *http.Request) bool {
		if SameOriginCheck(r) {
			return true
		}
		return allowed[strings.ToLower(r.Header.Get("Origin"))]
	}
}
