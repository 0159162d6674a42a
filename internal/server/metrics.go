package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the API.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	ScenarioRuns     prometheus.Counter
	PipelineDuration prometheus.Histogram
	RateLimited      prometheus.Counter
}

// NewMetrics builds an isolated registry so tests never collide on the
// default global one.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "equilibrium_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "equilibrium_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"route"},
		),
		ScenarioRuns: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "equilibrium_scenario_runs_total",
				Help: "Scenario recomputations served",
			},
		),
		PipelineDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "equilibrium_pipeline_duration_seconds",
				Help:    "Full-table pipeline recompute duration",
				Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
		),
		RateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "equilibrium_http_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
	}
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
