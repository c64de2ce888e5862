package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGridMetrics() {
	r.GridNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridsim_grid_nodes_total",
			Help: "Number of substations in the loaded grid",
		},
	)

	r.GridEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridsim_grid_edges_total",
			Help: "Number of transmission lines in the loaded grid",
		},
	)

	r.GridConnected = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridsim_grid_connected",
			Help: "Whether the unscaled grid is connected (1 = connected)",
		},
	)

	r.RejectedInputTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridsim_rejected_input_total",
			Help: "Node, edge and percentage inputs rejected by validation",
		},
		[]string{"kind"},
	)
}
