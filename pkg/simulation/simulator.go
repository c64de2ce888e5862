// Package simulation forecasts how a grid behaves under a uniform increase
// in demand.
//
// A run multiplies every substation load and every line load by
// 1 + percent/100 and evaluates overloads and connectivity on the result.
// The multiplication happens in a read-only view (grid.Scale), so the grid
// itself is never written and needs no restoring afterwards.
package simulation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/gridsim/pkg/algorithms"
	"github.com/dd0wney/gridsim/pkg/grid"
	"github.com/dd0wney/gridsim/pkg/logging"
	"github.com/dd0wney/gridsim/pkg/metrics"
	"github.com/dd0wney/gridsim/pkg/validation"
)

// ErrInvalidPercent is returned for a negative or non-finite percentage.
var ErrInvalidPercent = errors.New("simulation: load increase percentage must be >= 0")

// Simulator runs load-scaling forecasts. The zero value is not usable; use
// NewSimulator.
type Simulator struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// WithMetrics records every run into r.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Simulator) { s.metrics = r }
}

// NewSimulator creates a Simulator.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logging.Component("simulation"))
	return s
}

// Factor converts a load increase percentage into a load multiplier.
func Factor(percent float64) float64 {
	return 1 + percent/100
}

// PredictFailures forecasts overloads and connectivity of v with every load
// raised by percent. percent = 0 evaluates the grid as it is.
func (s *Simulator) PredictFailures(ctx context.Context, v grid.View, percent float64) (*Report, error) {
	op := logging.StartTimer(s.logger, "simulation run", logging.Percent(percent))

	if err := validation.ValidateSimulationRequest(&validation.SimulationRequest{Percent: percent}); err != nil {
		s.recordFailure(metrics.StatusRejected)
		if s.metrics != nil {
			s.metrics.RecordRejectedInput("percent")
		}
		err = fmt.Errorf("%w: %v", ErrInvalidPercent, err)
		op.EndError(err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		s.recordFailure(metrics.StatusCanceled)
		err = fmt.Errorf("simulation: %w", err)
		op.EndError(err)
		return nil, err
	}

	report := &Report{
		RunID:   uuid.New().String(),
		Percent: percent,
		Factor:  Factor(percent),
	}
	log := s.logger.With(logging.RunID(report.RunID))

	scaled := grid.Scale(v, report.Factor)

	overloads := algorithms.CheckOverloads(scaled)
	report.OverloadedNodes = overloads.Nodes
	report.OverloadedEdges = overloads.Edges

	report.Connected = algorithms.IsConnected(scaled)
	if !report.Connected {
		report.Islands = algorithms.Islands(scaled)
	}

	for i := 0; i < scaled.NodeCount(); i++ {
		if node := scaled.Node(i); node.Overloaded() {
			log.Debug("substation overloaded",
				logging.NodeIndex(i),
				logging.NodeName(node.Name),
				logging.Float64("load", node.Load),
				logging.Float64("max_capacity", node.MaxCapacity))
		}
	}
	if report.HasOverloads() {
		log.Warn("overloads forecast",
			logging.Strings("nodes", report.OverloadedNodes),
			logging.Int("lines", len(report.OverloadedEdges)))
	}
	if !report.Connected {
		log.Warn("scaled grid is disconnected",
			logging.Int("count", len(report.Islands)),
			logging.Any("islands", report.Islands))
	}

	if s.metrics != nil {
		s.metrics.RecordSimulation(percent, op.Elapsed(), len(report.OverloadedNodes), len(report.OverloadedEdges), report.Connected)
	}
	op.End(
		logging.RunID(report.RunID),
		logging.Factor(report.Factor),
		logging.String("summary", report.Summary()))

	return report, nil
}

func (s *Simulator) recordFailure(status string) {
	if s.metrics != nil {
		s.metrics.RecordSimulationFailure(status)
	}
}

// PredictFailures runs a single forecast without logging or metrics.
func PredictFailures(v grid.View, percent float64) (*Report, error) {
	return NewSimulator().PredictFailures(context.Background(), v, percent)
}
