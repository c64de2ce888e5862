// Package grid holds the substation grid model: a fixed number of node slots
// joined by undirected transmission lines.
//
// Loads and capacities are plain megawatt annotations. Nothing in this
// package derives them from power flow.
//
// Errors:
//
//	ErrInvalidSize        - grid created with fewer than one node slot.
//	ErrInvalidNodeIndex   - AddNode slot outside [0, N).
//	ErrDuplicateNodeIndex - AddNode on an already populated slot.
//	ErrInvalidNodeSpec    - negative load, non-positive capacity, or load above capacity.
//	ErrInvalidEdgeIndex   - AddEdge endpoint outside [0, N).
//	ErrInvalidEdgeSpec    - non-positive capacity or negative load on a line.
package grid

import "errors"

// Sentinel errors for grid construction.
var (
	ErrInvalidSize        = errors.New("grid: node count must be at least 1")
	ErrInvalidNodeIndex   = errors.New("grid: node index out of range")
	ErrDuplicateNodeIndex = errors.New("grid: node index already populated")
	ErrInvalidNodeSpec    = errors.New("grid: invalid node load or capacity")
	ErrInvalidEdgeIndex   = errors.New("grid: edge endpoint out of range")
	ErrInvalidEdgeSpec    = errors.New("grid: invalid edge load or capacity")
)

// UnknownNodeName is returned by NodeName for indices outside the grid.
const UnknownNodeName = "Unknown"

// Node is a substation.
type Node struct {
	Name        string
	Load        float64 // current demand, MW
	MaxCapacity float64 // MW
}

// Overloaded reports whether demand strictly exceeds capacity.
func (n Node) Overloaded() bool {
	return n.Load > n.MaxCapacity
}

// Edge is one adjacency entry of a transmission line. Each line is stored
// twice, once in the list of either endpoint, with identical values.
type Edge struct {
	To          int
	Capacity    float64 // MW
	CurrentLoad float64 // MW
}

// Overloaded reports whether the line load strictly exceeds its capacity.
func (e Edge) Overloaded() bool {
	return e.CurrentLoad > e.Capacity
}

// Line is an undirected transmission line listed once, From < To.
type Line struct {
	From        int
	To          int
	Capacity    float64
	CurrentLoad float64
}

// View is read-only access to a grid. Analyses take a View so they can run
// on the live grid or on a scaled projection of it.
//
// Node and Adjacent require i in [0, NodeCount()). Adjacent returns a slice
// the caller owns.
type View interface {
	NodeCount() int
	Node(i int) Node
	Adjacent(i int) []Edge
	NodeName(i int) string
}

// Grid is the mutable grid model. It has no internal locking; a Grid must
// not be built from several goroutines at once.
type Grid struct {
	nodes     []Node
	populated []bool
	adj       [][]Edge
	lines     int
}
