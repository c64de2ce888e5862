package grid

// scaledView projects a View with every node load and line load multiplied
// by factor. Capacities and topology are untouched and the base is never
// written to.
type scaledView struct {
	base   View
	factor float64
}

// Scale returns a read-only View of v whose loads are multiplied by factor.
func Scale(v View, factor float64) View {
	return &scaledView{base: v, factor: factor}
}

func (s *scaledView) NodeCount() int {
	return s.base.NodeCount()
}

func (s *scaledView) Node(i int) Node {
	n := s.base.Node(i)
	n.Load *= s.factor
	return n
}

func (s *scaledView) Adjacent(i int) []Edge {
	src := s.base.Adjacent(i)
	out := make([]Edge, len(src))
	for j, e := range src {
		e.CurrentLoad *= s.factor
		out[j] = e
	}
	return out
}

func (s *scaledView) NodeName(i int) string {
	return s.base.NodeName(i)
}
