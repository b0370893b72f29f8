// Package observability holds logger construction and Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the tool server.
type Metrics struct {
	ToolInvocations *prometheus.CounterVec   // labels: tool, outcome={ok,error}
	ToolDuration    *prometheus.HistogramVec // labels: tool
	StoreRequests   *prometheus.CounterVec   // labels: operation, outcome={ok,error}
	WeatherLookups  *prometheus.CounterVec   // labels: outcome={ok,error,skipped}
}

// NewMetrics creates and registers all metrics with the default Prometheus
// registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ToolInvocations,
		m.ToolDuration,
		m.StoreRequests,
		m.WeatherLookups,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ToolInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_mcp",
			Name:      "tool_invocations_total",
			Help:      "Tool calls by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		ToolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hazard_mcp",
			Name:      "tool_duration_seconds",
			Help:      "Tool call duration, store fetch included.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"tool"}),
		StoreRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_mcp",
			Name:      "store_requests_total",
			Help:      "Remote store operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		WeatherLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_mcp",
			Name:      "weather_lookups_total",
			Help:      "Weather collaborator lookups by outcome.",
		}, []string{"outcome"}),
	}
}
