// Package gridfile reads grid definitions from YAML documents:
//
//	nodes:
//	  - {name: A, load: 5, max_capacity: 10}
//	  - {name: B, load: 8, max_capacity: 10}
//	edges:
//	  - {from: 0, to: 1, load: 9, capacity: 10}
//
// A node's index is its position in the nodes list.
package gridfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/gridsim/pkg/grid"
	"github.com/dd0wney/gridsim/pkg/validation"
)

// Document is the YAML shape of a grid
type Document struct {
	Nodes []validation.NodeSpec `yaml:"nodes"`
	Edges []EdgeEntry           `yaml:"edges"`
}

// EdgeEntry is one transmission line of a Document
type EdgeEntry struct {
	From                int `yaml:"from"`
	To                  int `yaml:"to"`
	validation.EdgeSpec `yaml:",inline"`
}

// Parse decodes a Document, rejecting unknown keys
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("gridfile: %w", err)
	}
	return &doc, nil
}

// Build creates a grid from the document. Errors wrap the grid sentinel
// errors and name the offending entry.
func (d *Document) Build() (*grid.Grid, error) {
	g, err := grid.New(len(d.Nodes))
	if err != nil {
		return nil, fmt.Errorf("gridfile: nodes: %w", err)
	}
	for i, n := range d.Nodes {
		if err := g.AddNode(i, n.Name, n.Load, n.MaxCapacity); err != nil {
			return nil, fmt.Errorf("gridfile: nodes[%d]: %w", i, err)
		}
	}
	for i, e := range d.Edges {
		if err := g.AddEdge(e.From, e.To, e.Capacity, e.CurrentLoad); err != nil {
			return nil, fmt.Errorf("gridfile: edges[%d]: %w", i, err)
		}
	}
	return g, nil
}

// Load parses and builds a grid from r
func Load(r io.Reader) (*grid.Grid, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// LoadFile parses and builds a grid from the file at path
func LoadFile(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gridfile: %w", err)
	}
	defer f.Close()

	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
