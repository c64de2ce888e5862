package algorithms

import (
	"github.com/dd0wney/gridsim/pkg/grid"
)

// EdgePair identifies an overloaded line by its endpoints, From < To.
type EdgePair struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// Overloads is the result of a threshold scan.
type Overloads struct {
	// Nodes holds overloaded substation names in index order
	Nodes []string `json:"nodes"`
	// Edges holds overloaded lines in adjacency iteration order
	Edges []EdgePair `json:"edges"`
}

// Empty reports whether nothing is overloaded.
func (o Overloads) Empty() bool {
	return len(o.Nodes) == 0 && len(o.Edges) == 0
}

// CheckOverloads scans v for substations with Load > MaxCapacity and lines
// with CurrentLoad > Capacity. Both comparisons are strict: running exactly
// at capacity is not an overload. A line is reported only from its
// lower-indexed endpoint, so each appears once.
// Complexity: O(N + E).
func CheckOverloads(v grid.View) Overloads {
	var out Overloads
	n := v.NodeCount()

	for i := 0; i < n; i++ {
		if node := v.Node(i); node.Overloaded() {
			out.Nodes = append(out.Nodes, node.Name)
		}
	}

	for u := 0; u < n; u++ {
		for _, e := range v.Adjacent(u) {
			if u < e.To && e.Overloaded() {
				out.Edges = append(out.Edges, EdgePair{From: u, To: e.To})
			}
		}
	}

	return out
}
