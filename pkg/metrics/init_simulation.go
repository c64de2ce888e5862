package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimulationMetrics() {
	r.SimulationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridsim_simulations_total",
			Help: "Total number of load-scaling simulations",
		},
		[]string{"status"},
	)

	r.SimulationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridsim_simulation_duration_seconds",
			Help:    "Load-scaling simulation duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		},
	)

	r.SimulationPercent = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridsim_simulation_percent",
			Help:    "Requested load increase percentage per simulation",
			Buckets: []float64{0, 5, 10, 25, 50, 100, 200},
		},
	)

	r.OverloadedNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridsim_overloaded_nodes",
			Help: "Overloaded substations in the most recent simulation",
		},
	)

	r.OverloadedEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridsim_overloaded_edges",
			Help: "Overloaded transmission lines in the most recent simulation",
		},
	)

	r.ScaledGridConnected = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridsim_scaled_grid_connected",
			Help: "Whether the scaled grid of the most recent simulation is connected (1 = connected)",
		},
	)
}
