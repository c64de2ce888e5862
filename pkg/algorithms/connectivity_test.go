package algorithms

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/dd0wney/gridsim/pkg/grid"
)

// setupTestGrid creates a grid of n idle substations named N0..Nn-1
func setupTestGrid(t *testing.T, n int) *grid.Grid {
	t.Helper()
	g, err := grid.New(n)
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}
	for i := 0; i < n; i++ {
		if err := g.AddNode(i, fmt.Sprintf("N%d", i), 1, 10); err != nil {
			t.Fatalf("AddNode(%d) failed: %v", i, err)
		}
	}
	return g
}

func link(t *testing.T, g *grid.Grid, from, to int) {
	t.Helper()
	if err := g.AddEdge(from, to, 10, 1); err != nil {
		t.Fatalf("AddEdge(%d, %d) failed: %v", from, to, err)
	}
}

// TestIsConnected_SingleNode tests the trivially connected one-node grid
func TestIsConnected_SingleNode(t *testing.T) {
	g := setupTestGrid(t, 1)

	if !IsConnected(g) {
		t.Error("Single node grid should be connected")
	}
}

// TestIsConnected_TwoNodesNoEdges tests that node 1 is unreachable without a line
func TestIsConnected_TwoNodesNoEdges(t *testing.T) {
	g := setupTestGrid(t, 2)

	if IsConnected(g) {
		t.Error("Two nodes without lines should be disconnected")
	}
}

// TestIsConnected_Chain tests a linear chain 0-1-2-3
func TestIsConnected_Chain(t *testing.T) {
	g := setupTestGrid(t, 4)
	link(t, g, 0, 1)
	link(t, g, 1, 2)
	link(t, g, 2, 3)

	if !IsConnected(g) {
		t.Error("Chain should be connected")
	}
}

// TestIsConnected_ReachedThroughReverseEntry tests that lines added from the
// far endpoint are still traversed from node 0
func TestIsConnected_ReachedThroughReverseEntry(t *testing.T) {
	g := setupTestGrid(t, 3)
	link(t, g, 2, 1)
	link(t, g, 1, 0)

	if !IsConnected(g) {
		t.Error("Undirected lines should connect regardless of insertion direction")
	}
}

// TestIsConnected_Cycle tests that a ring with a tail terminates and is connected
func TestIsConnected_Cycle(t *testing.T) {
	g := setupTestGrid(t, 5)
	link(t, g, 0, 1)
	link(t, g, 1, 2)
	link(t, g, 2, 0)
	link(t, g, 2, 3)
	link(t, g, 3, 4)
	link(t, g, 4, 4) // self-loop

	if !IsConnected(g) {
		t.Error("Ring with tail should be connected")
	}
}

// TestIsConnected_IsolatedTail tests a grid whose last node has no line
func TestIsConnected_IsolatedTail(t *testing.T) {
	g := setupTestGrid(t, 4)
	link(t, g, 0, 1)
	link(t, g, 1, 2)

	if IsConnected(g) {
		t.Error("Grid with isolated node 3 should be disconnected")
	}
}

// TestIsConnected_Deep tests a long chain that would exhaust a recursive walk's
// budget in languages with small stacks
func TestIsConnected_Deep(t *testing.T) {
	const n = 200000
	g, err := grid.New(n)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := 0; i < n; i++ {
		if err := g.AddNode(i, "n", 0, 1); err != nil {
			t.Fatalf("AddNode failed: %v", err)
		}
	}
	for i := 0; i+1 < n; i++ {
		if err := g.AddEdge(i, i+1, 1, 0); err != nil {
			t.Fatalf("AddEdge failed: %v", err)
		}
	}

	if !IsConnected(g) {
		t.Error("Long chain should be connected")
	}
}

// TestIslands tests component listing on a fragmented grid
func TestIslands(t *testing.T) {
	g := setupTestGrid(t, 6)
	link(t, g, 0, 3)
	link(t, g, 4, 1)
	link(t, g, 1, 5)

	got := Islands(g)
	want := [][]int{{0, 3}, {1, 4, 5}, {2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Islands = %v, want %v", got, want)
	}
}

// TestIslands_Connected tests that a connected grid is a single island
func TestIslands_Connected(t *testing.T) {
	g := setupTestGrid(t, 3)
	link(t, g, 0, 1)
	link(t, g, 1, 2)

	got := Islands(g)
	if len(got) != 1 || len(got[0]) != 3 {
		t.Errorf("Islands = %v, want one island of 3", got)
	}
}

// TestIslands_TwoNodesNoEdges tests the smallest disconnected grid
func TestIslands_TwoNodesNoEdges(t *testing.T) {
	g := setupTestGrid(t, 2)

	got := Islands(g)
	want := [][]int{{0}, {1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Islands = %v, want %v", got, want)
	}
}
