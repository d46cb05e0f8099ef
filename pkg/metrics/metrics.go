package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Upstream API metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec

	// Gateway metrics
	ProxyForwards *prometheus.CounterVec
}

// New creates the application metrics. Call Register to attach them to a
// prometheus registry; unregistered metrics are safe to use in tests.
func New(namespace string) *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream API requests",
		}, []string{"resource", "outcome"}),
		UpstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of upstream API requests",
			Buckets:   []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"resource"}),
		ProxyForwards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proxy_forwards_total",
			Help:      "Total number of proxied requests by upstream status",
		}, []string{"method", "status"}),
	}
}

// Register attaches all metrics to the given registerer.
func (m *Metrics) Register(r prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.UpstreamRequests,
		m.UpstreamLatency,
		m.ProxyForwards,
	}
	for _, c := range collectors {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveUpstream records one upstream call. Nil receiver is a no-op so
// callers constructed without metrics stay valid.
func (m *Metrics) ObserveUpstream(resource, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(resource, outcome).Inc()
	m.UpstreamLatency.WithLabelValues(resource).Observe(elapsed.Seconds())
}

// CountForward records one proxied request. Nil receiver is a no-op.
func (m *Metrics) CountForward(method, status string) {
	if m == nil {
		return
	}
	m.ProxyForwards.WithLabelValues(method, status).Inc()
}
