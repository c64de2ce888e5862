package grid

import (
	"fmt"

	"github.com/dd0wney/gridsim/pkg/validation"
)

// New creates a grid with n empty node slots and no lines.
func New(n int) (*Grid, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	return &Grid{
		nodes:     make([]Node, n),
		populated: make([]bool, n),
		adj:       make([][]Edge, n),
	}, nil
}

// AddNode stores a substation in slot index. A slot can be filled once.
// On error the grid is unchanged.
func (g *Grid) AddNode(index int, name string, load, maxCapacity float64) error {
	if err := validation.ValidateIndex(index, len(g.nodes)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidNodeIndex, err)
	}
	spec := validation.NodeSpec{Name: name, Load: load, MaxCapacity: maxCapacity}
	if err := validation.ValidateNodeSpec(&spec); err != nil {
		return fmt.Errorf("%w: node %q: %v", ErrInvalidNodeSpec, name, err)
	}
	if g.populated[index] {
		return fmt.Errorf("%w: slot %d holds %q", ErrDuplicateNodeIndex, index, g.nodes[index].Name)
	}

	g.nodes[index] = Node{Name: name, Load: load, MaxCapacity: maxCapacity}
	g.populated[index] = true
	return nil
}

// AddEdge connects from and to with a transmission line. The line may start
// overloaded. Endpoints are checked before values. On error the grid is
// unchanged.
func (g *Grid) AddEdge(from, to int, capacity, currentLoad float64) error {
	n := len(g.nodes)
	if validation.ValidateIndex(from, n) != nil || validation.ValidateIndex(to, n) != nil {
		return fmt.Errorf("%w: %d-%d, must be between 0 and %d", ErrInvalidEdgeIndex, from, to, n-1)
	}
	spec := validation.EdgeSpec{Capacity: capacity, CurrentLoad: currentLoad}
	if err := validation.ValidateEdgeSpec(&spec); err != nil {
		return fmt.Errorf("%w: edge %d-%d: %v", ErrInvalidEdgeSpec, from, to, err)
	}

	g.adj[from] = append(g.adj[from], Edge{To: to, Capacity: capacity, CurrentLoad: currentLoad})
	g.adj[to] = append(g.adj[to], Edge{To: from, Capacity: capacity, CurrentLoad: currentLoad})
	g.lines++
	return nil
}

// NodeName returns the name at index, or UnknownNodeName when index is out
// of range.
func (g *Grid) NodeName(index int) string {
	if index < 0 || index >= len(g.nodes) {
		return UnknownNodeName
	}
	return g.nodes[index].Name
}

// NodeCount returns the fixed number of node slots.
func (g *Grid) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of undirected lines added.
func (g *Grid) EdgeCount() int {
	return g.lines
}

// IsPopulated reports whether AddNode has filled slot index.
func (g *Grid) IsPopulated(index int) bool {
	return index >= 0 && index < len(g.populated) && g.populated[index]
}

// Node returns the substation in slot i. Empty slots yield the zero Node.
func (g *Grid) Node(i int) Node {
	return g.nodes[i]
}

// Nodes returns a copy of all node slots in index order.
func (g *Grid) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Adjacent returns a copy of the adjacency entries of node i.
func (g *Grid) Adjacent(i int) []Edge {
	out := make([]Edge, len(g.adj[i]))
	copy(out, g.adj[i])
	return out
}

// Edges lists every line once, from the lower-indexed endpoint, in
// adjacency order. Self-loops are not listed.
func (g *Grid) Edges() []Line {
	return Lines(g)
}

// Lines lists every line of v once, From < To.
// Complexity: O(N + E).
func Lines(v View) []Line {
	var out []Line
	for u := 0; u < v.NodeCount(); u++ {
		for _, e := range v.Adjacent(u) {
			if u < e.To {
				out = append(out, Line{From: u, To: e.To, Capacity: e.Capacity, CurrentLoad: e.CurrentLoad})
			}
		}
	}
	return out
}
