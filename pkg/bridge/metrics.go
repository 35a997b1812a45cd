package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the bridge collectors.
type metrics struct {
	sessions prometheus.Gauge
	opened   prometheus.Counter
	frames   *prometheus.CounterVec
	errors   *prometheus.CounterVec
}

// newMetrics registers the bridge collectors on reg.
//
// Metrics collected:
//   - <ns>_bridge_sessions: sessions currently connected
//   - <ns>_bridge_sessions_total: sessions opened
//   - <ns>_bridge_frames_total: client frames handled, by frame kind
//   - <ns>_bridge_frame_errors_total: frames rejected, by error code
func newMetrics(reg prometheus.Registerer, namespace string) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		sessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "bridge",
			Name:      "sessions",
			Help:      "Sessions currently connected",
		}),
		opened: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bridge",
			Name:      "sessions_total",
			Help:      "Sessions opened",
		}),
		frames: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bridge",
			Name:      "frames_total",
			Help:      "Client frames handled",
		}, []string{"frame"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bridge",
			Name:      "frame_errors_total",
			Help:      "Client frames rejected",
		}, []string{"code"}),
	}
}
