// Package linkage decides which static dependencies are linked into which aggregate target.
package linkage

import (
	"slices"

	"go.trai.ch/podgen/internal/core/domain"
)

// Resolver answers ShouldLink queries over one target graph. The set of pods already linked
// by the search-paths ancestors of an aggregate is computed once per aggregate.
type Resolver struct {
	graph  *domain.Graph
	linked map[domain.AggregateID][]domain.PodID
}

// NewResolver creates a Resolver for g.
func NewResolver(g *domain.Graph) *Resolver {
	return &Resolver{
		graph:  g,
		linked: make(map[domain.AggregateID][]domain.PodID),
	}
}

// ShouldLink reports whether dep must be statically linked into consumer.
// A nil consumer is a pod-level build context, which always links its own dependencies.
func (r *Resolver) ShouldLink(consumer *domain.AggregateTarget, dep domain.PodID) bool {
	if consumer == nil {
		return true
	}
	if !consumer.IncludesPod(dep) && consumer.Inheritance() != domain.InheritanceComplete {
		return false
	}
	return !slices.Contains(r.AlreadyLinked(consumer), dep)
}

// AlreadyLinked returns the pods linked by the search-paths ancestors of a, in discovery order.
func (r *Resolver) AlreadyLinked(a *domain.AggregateTarget) []domain.PodID {
	return slices.Clone(r.alreadyLinked(a, map[domain.AggregateID]bool{}))
}

func (r *Resolver) alreadyLinked(a *domain.AggregateTarget, visiting map[domain.AggregateID]bool) []domain.PodID {
	if ids, ok := r.linked[a.ID()]; ok {
		return ids
	}
	visiting[a.ID()] = true
	defer delete(visiting, a.ID())

	var out []domain.PodID
	for _, ancestorID := range a.SearchPathsAncestors {
		if visiting[ancestorID] {
			continue
		}
		for _, id := range r.linkedBy(r.graph.Aggregate(ancestorID), visiting) {
			if !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	}
	r.linked[a.ID()] = out
	return out
}

// linkedBy returns the pods an ancestor links itself.
func (r *Resolver) linkedBy(a *domain.AggregateTarget, visiting map[domain.AggregateID]bool) []domain.PodID {
	if a.Inheritance() == domain.InheritanceComplete {
		return a.PodTargets
	}
	excluded := r.alreadyLinked(a, visiting)
	var out []domain.PodID
	for _, id := range a.PodTargets {
		if !slices.Contains(excluded, id) {
			out = append(out, id)
		}
	}
	return out
}
