package health

import (
	"github.com/dd0wney/gridsim/pkg/algorithms"
	"github.com/dd0wney/gridsim/pkg/grid"
	"github.com/dd0wney/gridsim/pkg/simulation"
)

// GridCheck reports the unscaled grid: unhealthy when disconnected,
// degraded when anything is overloaded.
func GridCheck(v grid.View) CheckFunc {
	return func() Check {
		overloads := algorithms.CheckOverloads(v)
		connected := algorithms.IsConnected(v)

		check := Check{
			Details: map[string]any{
				"nodes":            v.NodeCount(),
				"connected":        connected,
				"overloaded_nodes": len(overloads.Nodes),
				"overloaded_lines": len(overloads.Edges),
			},
		}

		switch {
		case !connected:
			check.Status = StatusUnhealthy
			check.Message = "Grid is disconnected"
		case !overloads.Empty():
			check.Status = StatusDegraded
			check.Message = "Overloads present"
		default:
			check.Status = StatusHealthy
			check.Message = "Connected, no overloads"
		}
		return check
	}
}

// ForecastCheck reports the outcome of a load-scaling run with the same
// rules as GridCheck.
func ForecastCheck(r *simulation.Report) CheckFunc {
	return func() Check {
		check := Check{
			Message: r.Summary(),
			Details: map[string]any{
				"run_id":           r.RunID,
				"percent":          r.Percent,
				"connected":        r.Connected,
				"overloaded_nodes": len(r.OverloadedNodes),
				"overloaded_lines": len(r.OverloadedEdges),
			},
		}

		switch {
		case !r.Connected:
			check.Status = StatusUnhealthy
		case r.HasOverloads():
			check.Status = StatusDegraded
		default:
			check.Status = StatusHealthy
		}
		return check
	}
}
