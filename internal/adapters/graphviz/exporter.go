// Package graphviz renders the target graph of an installation in the DOT language.
package graphviz

import (
	"errors"
	"io"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"go.trai.ch/podgen/internal/core/domain"
	"go.trai.ch/podgen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GraphExporter = (*Exporter)(nil)

const (
	podShape       = "box"
	aggregateShape = "folder"
)

// Exporter implements ports.GraphExporter. Pod targets are drawn as boxes and aggregate
// targets as folders; dependency cycles between pods are kept.
type Exporter struct{}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes g to w in DOT format.
func (e *Exporter) Export(w io.Writer, g *domain.Graph) error {
	dot, err := Build(g)
	if err != nil {
		return err
	}
	if err := draw.DOT(dot, w, draw.GraphAttribute("rankdir", "LR")); err != nil {
		return zerr.Wrap(err, "failed to render graph")
	}
	return nil
}

// Build converts g into a directed graph keyed by target label. Aggregates point at the
// pods they integrate and pods point at their dependents. Test-only dependencies are dashed.
func Build(g *domain.Graph) (graph.Graph[string, string], error) {
	out := graph.New(graph.StringHash, graph.Directed())

	for p := range g.Pods() {
		if err := addVertex(out, p.Label(), podShape); err != nil {
			return nil, err
		}
	}
	for a := range g.Aggregates() {
		if err := addVertex(out, a.Label(), aggregateShape); err != nil {
			return nil, err
		}
	}

	for p := range g.Pods() {
		for _, dep := range g.DependentTargets(p.ID()) {
			if err := addEdge(out, p.Label(), dep.Label(), "solid"); err != nil {
				return nil, err
			}
		}
		for _, id := range p.TestDependents() {
			if err := addEdge(out, p.Label(), g.Pod(id).Label(), "dashed"); err != nil {
				return nil, err
			}
		}
	}
	for a := range g.Aggregates() {
		for _, pod := range g.AggregatedPods(a) {
			if err := addEdge(out, a.Label(), pod.Label(), "solid"); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func addVertex(g graph.Graph[string, string], label, shape string) error {
	err := g.AddVertex(label, graph.VertexAttribute("shape", shape))
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return zerr.With(zerr.Wrap(err, "failed to add vertex"), "target", label)
	}
	return nil
}

// addEdge adds an edge unless one already connects the two targets.
func addEdge(g graph.Graph[string, string], from, to, style string) error {
	err := g.AddEdge(from, to, graph.EdgeAttribute("style", style))
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		err = zerr.With(zerr.Wrap(err, "failed to add edge"), "from", from)
		return zerr.With(err, "to", to)
	}
	return nil
}
