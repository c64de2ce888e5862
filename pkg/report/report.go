// Package report renders grid status, overload listings and simulation
// results as terminal text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/gridsim/pkg/algorithms"
	"github.com/dd0wney/gridsim/pkg/grid"
	"github.com/dd0wney/gridsim/pkg/simulation"
)

// Printer writes reports to a terminal or any other writer. Styling is
// dropped automatically when w is not a color-capable terminal.
type Printer struct {
	w    io.Writer
	unit string

	headingStyle lipgloss.Style
	warningStyle lipgloss.Style
	successStyle lipgloss.Style
	mutedStyle   lipgloss.Style
}

// NewPrinter creates a Printer labelling quantities with unit (e.g. "MW")
func NewPrinter(w io.Writer, unit string) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:    w,
		unit: unit,

		headingStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")),
		warningStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000")),
		successStyle: r.NewStyle().
			Foreground(lipgloss.Color("#00FF00")),
		mutedStyle: r.NewStyle().
			Foreground(lipgloss.Color("#888888")),
	}
}

// Grid lists every substation and every transmission line once
func (p *Printer) Grid(v grid.View) {
	var b strings.Builder

	b.WriteString("\n" + p.headingStyle.Render("Grid Status:") + "\n")
	b.WriteString("Nodes (Substations):\n")
	for i := 0; i < v.NodeCount(); i++ {
		n := v.Node(i)
		fmt.Fprintf(&b, "Node %s: Load = %g %s, Max Capacity = %g %s\n",
			n.Name, n.Load, p.unit, n.MaxCapacity, p.unit)
	}

	b.WriteString("Edges (Transmission Lines):\n")
	lines := grid.Lines(v)
	if len(lines) == 0 {
		b.WriteString(p.mutedStyle.Render("(none)") + "\n")
	}
	for _, l := range lines {
		fmt.Fprintf(&b, "Between %s and %s: Load = %g %s, Capacity = %g %s\n",
			v.NodeName(l.From), v.NodeName(l.To), l.CurrentLoad, p.unit, l.Capacity, p.unit)
	}

	io.WriteString(p.w, b.String())
}

// InitialOverloads reports overloads present before any load increase
func (p *Printer) InitialOverloads(v grid.View, o algorithms.Overloads) {
	var b strings.Builder
	if o.Empty() {
		b.WriteString("\n" + p.successStyle.Render("No initial overloads detected.") + "\n")
	} else {
		b.WriteString("\n" + p.warningStyle.Render("Initial Overloads Detected:") + "\n")
		p.writeOverloads(&b, v, o.Nodes, o.Edges)
	}
	io.WriteString(p.w, b.String())
}

// Connectivity reports whether the unscaled grid is connected
func (p *Printer) Connectivity(connected bool) {
	if connected {
		io.WriteString(p.w, p.successStyle.Render("Grid is connected.")+"\n")
		return
	}
	io.WriteString(p.w, p.warningStyle.Render("Grid is disconnected!")+"\n")
}

// Simulation renders a load-scaling report. Names are resolved against v,
// which must be the grid the report was produced from.
func (p *Printer) Simulation(v grid.View, r *simulation.Report) {
	var b strings.Builder

	b.WriteString("\n" + p.headingStyle.Render(fmt.Sprintf("Simulating load increase by %g%%", r.Percent)) + "\n")
	if r.HasOverloads() {
		p.writeOverloads(&b, v, r.OverloadedNodes, r.OverloadedEdges)
	} else {
		b.WriteString(p.successStyle.Render("No overloads detected after load increase.") + "\n")
	}

	if r.Connected {
		b.WriteString(p.successStyle.Render("Grid remains connected.") + "\n")
	} else {
		b.WriteString(p.warningStyle.Render("Warning: Grid is disconnected after load increase!") + "\n")
		p.writeIslands(&b, v, r.Islands)
	}

	b.WriteString(p.mutedStyle.Render("Run "+r.RunID) + "\n")
	io.WriteString(p.w, b.String())
}

func (p *Printer) writeOverloads(b *strings.Builder, v grid.View, nodes []string, edges []algorithms.EdgePair) {
	if len(nodes) > 0 {
		b.WriteString("Overloaded Nodes:\n")
		for _, name := range nodes {
			b.WriteString("- " + name + "\n")
		}
	}
	if len(edges) > 0 {
		b.WriteString("Overloaded Transmission Lines:\n")
		for _, e := range edges {
			fmt.Fprintf(b, "- Between %s and %s\n", v.NodeName(e.From), v.NodeName(e.To))
		}
	}
}

func (p *Printer) writeIslands(b *strings.Builder, v grid.View, islands [][]int) {
	for i, island := range islands {
		names := make([]string, len(island))
		for k, idx := range island {
			names[k] = v.NodeName(idx)
		}
		fmt.Fprintf(b, "Island %d: %s\n", i+1, strings.Join(names, ", "))
	}
}
