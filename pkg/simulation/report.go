package simulation

import (
	"fmt"

	"github.com/dd0wney/gridsim/pkg/algorithms"
)

// Report is the outcome of one load-scaling run. It carries data only;
// turning it into text is up to the caller.
type Report struct {
	RunID   string  `json:"runId"`
	Percent float64 `json:"percent"`
	Factor  float64 `json:"factor"`

	OverloadedNodes []string              `json:"overloadedNodes"`
	OverloadedEdges []algorithms.EdgePair `json:"overloadedEdges"`

	Connected bool `json:"connected"`
	// Islands lists the components of the scaled grid when it is not connected
	Islands [][]int `json:"islands,omitempty"`
}

// HasOverloads reports whether any substation or line is overloaded
func (r *Report) HasOverloads() bool {
	return len(r.OverloadedNodes) > 0 || len(r.OverloadedEdges) > 0
}

// Summary is a one-line digest suitable for logs
func (r *Report) Summary() string {
	overloads := "none detected"
	if r.HasOverloads() {
		overloads = fmt.Sprintf("%d node(s), %d line(s)", len(r.OverloadedNodes), len(r.OverloadedEdges))
	}
	connectivity := "connected"
	if !r.Connected {
		connectivity = fmt.Sprintf("disconnected (%d islands)", len(r.Islands))
	}
	return fmt.Sprintf("+%g%%: overloads %s; grid %s", r.Percent, overloads, connectivity)
}
