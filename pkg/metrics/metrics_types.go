package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Grid Metrics
	GridNodesTotal     prometheus.Gauge
	GridEdgesTotal     prometheus.Gauge
	GridConnected      prometheus.Gauge
	RejectedInputTotal *prometheus.CounterVec

	// Simulation Metrics
	SimulationsTotal    *prometheus.CounterVec
	SimulationDuration  prometheus.Histogram
	SimulationPercent   prometheus.Histogram
	OverloadedNodes     prometheus.Gauge
	OverloadedEdges     prometheus.Gauge
	ScaledGridConnected prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initGridMetrics()
	r.initSimulationMetrics()

	return r
}
