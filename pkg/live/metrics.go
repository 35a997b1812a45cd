package live

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "live").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for fire duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "live",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the engine's Prometheus collectors. One Metrics may be
// shared by many engines. A nil *Metrics records nothing.
type Metrics struct {
	dispatches    *prometheus.CounterVec
	callbacks     *prometheus.CounterVec
	cancellations *prometheus.CounterVec
	suppressed    *prometheus.CounterVec
	contexts      prometheus.Counter
	bindings      prometheus.Counter
	materialized  prometheus.Counter
	fireDuration  prometheus.Histogram
}

// NewMetrics registers the engine collectors.
//
// Metrics collected:
//   - live_dispatches_total: native events fanned out, by event
//   - live_callbacks_total: callbacks invoked, by effective event
//   - live_cancellations_total: callbacks that returned false, by effective event
//   - live_hover_suppressed_total: motion events dropped by hover classification
//   - live_contexts_total: contexts initialised
//   - live_bindings_total: bindings created
//   - live_future_materialized_total: future bindings materialized
//   - live_fire_duration_seconds: time spent fanning out one native event
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counterVec := func(name, help, label string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, []string{label})
	}
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &Metrics{
		dispatches:    counterVec("dispatches_total", "Native events fanned out to bindings", "event"),
		callbacks:     counterVec("callbacks_total", "Delegated callbacks invoked", "event"),
		cancellations: counterVec("cancellations_total", "Callbacks that canceled the native event", "event"),
		suppressed:    counterVec("hover_suppressed_total", "Motion events suppressed by hover classification", "event"),
		contexts:      counter("contexts_total", "Contexts initialised with native listeners"),
		bindings:      counter("bindings_total", "Bindings created"),
		materialized:  counter("future_materialized_total", "Future bindings materialized"),
		fireDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "fire_duration_seconds",
			Help:        "Time spent fanning out one native event",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

func (m *Metrics) recordDispatch(name EventName, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(name.String()).Inc()
	m.fireDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) recordCallback(name EventName, canceled bool) {
	if m == nil {
		return
	}
	m.callbacks.WithLabelValues(name.String()).Inc()
	if canceled {
		m.cancellations.WithLabelValues(name.String()).Inc()
	}
}

func (m *Metrics) recordSuppressed(name EventName) {
	if m == nil {
		return
	}
	m.suppressed.WithLabelValues(name.String()).Inc()
}

func (m *Metrics) recordContext() {
	if m != nil {
		m.contexts.Inc()
	}
}

func (m *Metrics) recordBinding() {
	if m != nil {
		m.bindings.Inc()
	}
}

func (m *Metrics) recordMaterialized() {
	if m != nil {
		m.materialized.Inc()
	}
}
