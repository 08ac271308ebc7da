package router

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsOption configures NewMetrics.
type MetricsOption func(*metricsConfig)

type metricsConfig struct {
	namespace string
	registry  prometheus.Registerer
	buckets   []float64
}

// WithNamespace sets the metrics namespace (default "linkrouter").
func WithNamespace(namespace string) MetricsOption {
	return func(c *metricsConfig) {
		if namespace != "" {
			c.namespace = namespace
		}
	}
}

// WithRegistry sets the Prometheus registerer (default prometheus.DefaultRegisterer).
func WithRegistry(reg prometheus.Registerer) MetricsOption {
	return func(c *metricsConfig) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// WithBuckets sets the dispatch duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *metricsConfig) {
		if len(buckets) > 0 {
			c.buckets = buckets
		}
	}
}

// Metrics records dispatch outcomes. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Resolutions by operation (open, object, can_open) and outcome
	Resolutions *prometheus.CounterVec

	// Time from receiving an address to the handler returning
	Duration *prometheus.HistogramVec

	// Number of registered routes
	Routes prometheus.Gauge
}

// NewMetrics creates and registers the router metrics.
// It panics if the collectors are already registered with the registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	c := metricsConfig{
		namespace: "linkrouter",
		registry:  prometheus.DefaultRegisterer,
		buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}
	for _, opt := range opts {
		opt(&c)
	}

	f := promauto.With(c.registry)
	return &Metrics{
		Resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: c.namespace,
			Name:      "resolutions_total",
			Help:      "Total address resolutions by operation and outcome",
		}, []string{"op", "outcome"}),

		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: c.namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Duration of address resolution including handler execution",
			Buckets:   c.buckets,
		}, []string{"op"}),

		Routes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: c.namespace,
			Name:      "routes",
			Help:      "Number of registered routes",
		}),
	}
}

// observe records one resolution.
func (m *Metrics) observe(op string, o Outcome, d time.Duration) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(op, o.String()).Inc()
	m.Duration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) setRoutes(n int) {
	if m != nil {
		m.Routes.Set(float64(n))
	}
}
