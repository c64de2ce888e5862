package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dd0wney/gridsim/pkg/grid"
)

var (
	errInputClosed       = errors.New("unexpected end of input")
	errNegativeEdgeCount = errors.New("number of edges must be >= 0")
)

// prompter reads whitespace-separated answers, so values may share a line
// or be split across lines.
type prompter struct {
	in   *bufio.Scanner
	out  io.Writer
	unit string
}

func newPrompter(r io.Reader, w io.Writer, unit string) *prompter {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return &prompter{in: s, out: w, unit: unit}
}

func (p *prompter) token(what string) (string, error) {
	if p.in.Scan() {
		return p.in.Text(), nil
	}
	if err := p.in.Err(); err != nil {
		return "", fmt.Errorf("reading %s: %w", what, err)
	}
	return "", fmt.Errorf("reading %s: %w", what, errInputClosed)
}

func (p *prompter) int(what string) (int, error) {
	tok, err := p.token(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: not an integer", what, tok)
	}
	return v, nil
}

func (p *prompter) float(what string) (float64, error) {
	tok, err := p.token(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: not a number", what, tok)
	}
	return v, nil
}

func (p *prompter) readGrid() (*grid.Grid, error) {
	fmt.Fprint(p.out, "Enter number of nodes (substations): ")
	n, err := p.int("number of nodes")
	if err != nil {
		return nil, err
	}
	g, err := grid.New(n)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		fmt.Fprintf(p.out, "Enter name, load (%s), and max capacity (%s) for node %d: ", p.unit, p.unit, i)
		name, err := p.token("node name")
		if err != nil {
			return nil, err
		}
		load, err := p.float("node load")
		if err != nil {
			return nil, err
		}
		maxCapacity, err := p.float("node max capacity")
		if err != nil {
			return nil, err
		}
		if err := g.AddNode(i, name, load, maxCapacity); err != nil {
			return nil, err
		}
	}

	fmt.Fprint(p.out, "Enter number of edges (transmission lines): ")
	m, err := p.int("number of edges")
	if err != nil {
		return nil, err
	}
	if m < 0 {
		return nil, fmt.Errorf("%w, got %d", errNegativeEdgeCount, m)
	}

	for i := 0; i < m; i++ {
		fmt.Fprintf(p.out, "Enter edge %d: from node index, to node index, load (%s), capacity (%s): ", i, p.unit, p.unit)
		from, err := p.int("from node index")
		if err != nil {
			return nil, err
		}
		to, err := p.int("to node index")
		if err != nil {
			return nil, err
		}
		load, err := p.float("edge load")
		if err != nil {
			return nil, err
		}
		capacity, err := p.float("edge capacity")
		if err != nil {
			return nil, err
		}
		if err := g.AddEdge(from, to, capacity, load); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (p *prompter) readPercent() (float64, error) {
	fmt.Fprint(p.out, "Enter load increase percentage to simulate (e.g., 10 for 10%): ")
	return p.float("load increase percentage")
}
