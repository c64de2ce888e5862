package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Simulation outcome labels
const (
	StatusSuccess  = "success"
	StatusRejected = "rejected"
	StatusCanceled = "canceled"
)

// RecordGrid records the shape and connectivity of a freshly built grid
func (r *Registry) RecordGrid(nodes, edges int, connected bool) {
	r.GridNodesTotal.Set(float64(nodes))
	r.GridEdgesTotal.Set(float64(edges))
	r.GridConnected.Set(boolToFloat(connected))
}

// RecordRejectedInput counts a validation failure of the given kind
// ("size", "node", "edge", "percent")
func (r *Registry) RecordRejectedInput(kind string) {
	r.RejectedInputTotal.WithLabelValues(kind).Inc()
}

// RecordSimulation records a completed simulation
func (r *Registry) RecordSimulation(percent float64, duration time.Duration, overloadedNodes, overloadedEdges int, connected bool) {
	r.SimulationsTotal.WithLabelValues(StatusSuccess).Inc()
	r.SimulationDuration.Observe(duration.Seconds())
	r.SimulationPercent.Observe(percent)
	r.OverloadedNodes.Set(float64(overloadedNodes))
	r.OverloadedEdges.Set(float64(overloadedEdges))
	r.ScaledGridConnected.Set(boolToFloat(connected))
}

// RecordSimulationFailure records a simulation that did not run
func (r *Registry) RecordSimulationFailure(status string) {
	r.SimulationsTotal.WithLabelValues(status).Inc()
}

// Handler serves this registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
