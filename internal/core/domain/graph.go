// Package domain contains the core domain models and business logic for the pod target graph.
package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// PodID is the arena handle of a PodTarget.
type PodID int

// AggregateID is the arena handle of an AggregateTarget.
type AggregateID int

const unregistered = -1

// closureCache memoises a transitive closure for one graph generation.
type closureCache struct {
	ids        []PodID
	generation uint64
	valid      bool
}

func (c *closureCache) get(gen uint64) ([]PodID, bool) {
	if !c.valid || c.generation != gen {
		return nil, false
	}
	return c.ids, true
}

func (c *closureCache) put(gen uint64, ids []PodID) {
	c.ids = ids
	c.generation = gen
	c.valid = true
}

// Graph is the arena owning every pod and aggregate target of an installation.
// Targets refer to each other through PodID and AggregateID handles.
type Graph struct {
	pods       []*PodTarget
	aggregates []*AggregateTarget
	podLabels  map[string]PodID
	aggLabels  map[string]AggregateID

	// generation is bumped on every dependent list mutation.
	generation uint64
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		podLabels: make(map[string]PodID),
		aggLabels: make(map[string]AggregateID),
	}
}

// AddPod registers a pod target and returns its handle.
// It returns an error if a pod target with the same label already exists.
func (g *Graph) AddPod(p *PodTarget) (PodID, error) {
	label := p.Label()
	if _, exists := g.podLabels[label]; exists {
		return unregistered, zerr.With(ErrDuplicateTarget, "target", label)
	}
	id := PodID(len(g.pods))
	p.id = id
	g.pods = append(g.pods, p)
	g.podLabels[label] = id
	g.generation++
	return id, nil
}

// AddAggregate registers an aggregate target and returns its handle.
func (g *Graph) AddAggregate(a *AggregateTarget) (AggregateID, error) {
	label := a.Label()
	if _, exists := g.aggLabels[label]; exists {
		return unregistered, zerr.With(ErrDuplicateTarget, "target", label)
	}
	id := AggregateID(len(g.aggregates))
	a.id = id
	g.aggregates = append(g.aggregates, a)
	g.aggLabels[label] = id
	return id, nil
}

// Pod returns the pod target for id.
func (g *Graph) Pod(id PodID) *PodTarget {
	return g.pods[id]
}

// PodByLabel looks up a pod target by label.
func (g *Graph) PodByLabel(label string) (*PodTarget, bool) {
	id, ok := g.podLabels[label]
	if !ok {
		return nil, false
	}
	return g.pods[id], true
}

// Aggregate returns the aggregate target for id.
func (g *Graph) Aggregate(id AggregateID) *AggregateTarget {
	return g.aggregates[id]
}

// AggregateByLabel looks up an aggregate target by label.
func (g *Graph) AggregateByLabel(label string) (*AggregateTarget, bool) {
	id, ok := g.aggLabels[label]
	if !ok {
		return nil, false
	}
	return g.aggregates[id], true
}

// Pods yields the pod targets in registration order.
func (g *Graph) Pods() iter.Seq[*PodTarget] {
	return func(yield func(*PodTarget) bool) {
		for _, p := range g.pods {
			if !yield(p) {
				return
			}
		}
	}
}

// Aggregates yields the aggregate targets in registration order.
func (g *Graph) Aggregates() iter.Seq[*AggregateTarget] {
	return func(yield func(*AggregateTarget) bool) {
		for _, a := range g.aggregates {
			if !yield(a) {
				return
			}
		}
	}
}

// PodCount returns the number of registered pod targets.
func (g *Graph) PodCount() int { return len(g.pods) }

// SetDependents replaces the direct dependents of id.
func (g *Graph) SetDependents(id PodID, deps ...PodID) {
	g.pods[id].dependents = slices.Clone(deps)
	g.generation++
}

// AddDependent appends dep to the direct dependents of id.
func (g *Graph) AddDependent(id, dep PodID) {
	g.pods[id].dependents = append(g.pods[id].dependents, dep)
	g.generation++
}

// SetTestDependents replaces the test-only dependents of id.
func (g *Graph) SetTestDependents(id PodID, deps ...PodID) {
	g.pods[id].testDependents = slices.Clone(deps)
	g.generation++
}

// DependentTargets returns the direct dependents of id in declaration order.
func (g *Graph) DependentTargets(id PodID) []*PodTarget {
	return g.resolve(g.pods[id].dependents)
}

// RecursiveDependents returns the transitive dependents of id, first discovered first.
// The result never contains id and the computation terminates on cyclic graphs.
func (g *Graph) RecursiveDependents(id PodID) []PodID {
	p := g.pods[id]
	if ids, ok := p.cache.get(g.generation); ok {
		return slices.Clone(ids)
	}
	ids := g.closure(p.dependents, id)
	p.cache.put(g.generation, ids)
	return slices.Clone(ids)
}

// RecursiveDependentTargets is RecursiveDependents resolved to targets.
func (g *Graph) RecursiveDependentTargets(id PodID) []*PodTarget {
	return g.resolve(g.RecursiveDependents(id))
}

// RecursiveTestDependents returns the transitive dependents of a test target. The closure
// starts from the parent's direct dependents followed by the test's own dependents.
func (g *Graph) RecursiveTestDependents(t *TestPodTarget) []PodID {
	if ids, ok := t.cache.get(g.generation); ok {
		return slices.Clone(ids)
	}
	start := slices.Concat(t.Pod.dependents, t.dependents)
	ids := g.closure(start, unregistered)
	t.cache.put(g.generation, ids)
	return slices.Clone(ids)
}

// RecursiveTestDependentTargets is RecursiveTestDependents resolved to targets.
func (g *Graph) RecursiveTestDependentTargets(t *TestPodTarget) []*PodTarget {
	return g.resolve(g.RecursiveTestDependents(t))
}

// TestTargets builds one TestPodTarget per test spec of id. Each test target
// receives the pod's test-only dependents.
func (g *Graph) TestTargets(id PodID) ([]*TestPodTarget, error) {
	p := g.pods[id]
	specs := p.TestSpecs()
	out := make([]*TestPodTarget, 0, len(specs))
	for _, spec := range specs {
		t, err := NewTestPodTarget(spec, p)
		if err != nil {
			return nil, err
		}
		t.dependents = slices.Clone(p.testDependents)
		out = append(out, t)
	}
	return out, nil
}

// closure walks the growing result list once; appending while scanning reaches the fixed point.
func (g *Graph) closure(start []PodID, origin PodID) []PodID {
	seen := make(map[PodID]bool, len(start))
	out := make([]PodID, 0, len(start))
	push := func(id PodID) {
		if id == origin || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
	}
	for _, id := range start {
		push(id)
	}
	for i := 0; i < len(out); i++ {
		for _, dep := range g.pods[out[i]].dependents {
			push(dep)
		}
	}
	return out
}

func (g *Graph) resolve(ids []PodID) []*PodTarget {
	out := make([]*PodTarget, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.pods[id])
	}
	return out
}
