package algorithms

import (
	"sort"

	"github.com/dd0wney/gridsim/pkg/grid"
)

// IsConnected reports whether every node of v is reachable from node 0 over
// the undirected lines. A grid with a single node is connected.
// Complexity: O(N + E) time, O(N) memory.
func IsConnected(v grid.View) bool {
	n := v.NodeCount()
	if n <= 1 {
		return true
	}

	visited := make([]bool, n)
	reached := 0
	walk(v, 0, visited, func(int) { reached++ })

	return reached == n
}

// Islands returns the connected components of v. Each island is sorted
// ascending and islands are ordered by their smallest node index, so a
// connected grid yields exactly one island.
// Complexity: O(N log N + E).
func Islands(v grid.View) [][]int {
	n := v.NodeCount()
	visited := make([]bool, n)
	var islands [][]int

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		var island []int
		walk(v, start, visited, func(u int) { island = append(island, u) })
		sort.Ints(island)
		islands = append(islands, island)
	}

	return islands
}

// walk runs a depth-first traversal from start with an explicit stack,
// calling visit once per newly reached node. Nodes are marked when pushed so
// each enters the stack at most once.
func walk(v grid.View, start int, visited []bool, visit func(int)) {
	stack := []int{start}
	visited[start] = true

	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(u)

		for _, e := range v.Adjacent(u) {
			if !visited[e.To] {
				visited[e.To] = true
				stack = append(stack, e.To)
			}
		}
	}
}
