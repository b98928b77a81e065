// Package flows maps path-flow vectors onto per-edge loads and evaluates the
// social-cost objective Σ flow·cost(flow) over the loaded edges.
//
// A PathFlows vector is always indexed by the enumeration order of the path
// set it was produced for (see the paths package); Aggregate and
// CostOfPathFlows reject vectors whose length disagrees with the path set.
//
// Errors:
//
//	ErrLengthMismatch - path-flow vector length != number of paths.
//	ErrUnknownEdge    - an edge-flow mapping references an edge absent
//	                    from the graph.
package flows

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/trafficlab/wardrop/paths"
	"github.com/trafficlab/wardrop/roadnet"
)

var (
	// ErrLengthMismatch indicates len(pathFlows) != len(paths).
	ErrLengthMismatch = errors.New("flows: path-flow vector length mismatch")

	// ErrUnknownEdge indicates an EdgeFlows key with no edge in the graph.
	ErrUnknownEdge = errors.New("flows: edge not in graph")
)

// PathFlows is a vector of non-negative per-path flows, indexed by the
// enumeration order of the path set it belongs to. Its sum equals the total
// vehicle demand (flow conservation).
type PathFlows []float64

// Sum returns the total flow carried by the vector.
func (pf PathFlows) Sum() float64 { return floats.Sum(pf) }

// EdgeFlows maps an edge (by its ordered node pair) to the total flow
// routed through it.
type EdgeFlows map[roadnet.EdgeKey]float64

// Aggregate sums per-path flows into per-edge loads.
//
// Every edge traversed by at least one path appears in the result, at 0 if
// its paths carry no flow; edges referenced by no path are absent.
// Deterministic and idempotent: identical inputs yield identical output.
// Returns ErrLengthMismatch unless len(pf) == len(ps).
func Aggregate(ps []paths.Path, pf PathFlows) (EdgeFlows, error) {
	if len(pf) != len(ps) {
		return nil, fmt.Errorf("%w: %d flows for %d paths", ErrLengthMismatch, len(pf), len(ps))
	}

	ef := make(EdgeFlows)
	for i, p := range ps {
		for _, key := range p.Edges() {
			ef[key] += pf[i]
		}
	}

	return ef, nil
}

// TotalCost evaluates the social cost of an edge-flow mapping against the
// graph's cost coefficients: the sum over mapped edges of flow·cost(flow).
// An empty mapping costs 0. Returns ErrUnknownEdge if the mapping references
// an edge the graph does not contain.
func TotalCost(g *roadnet.Graph, ef EdgeFlows) (float64, error) {
	total := 0.0
	for key, flow := range ef {
		e, ok := g.Edge(key.From, key.To)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownEdge, key)
		}
		total += e.Delay(flow)
	}

	return total, nil
}

// CostOfPathFlows aggregates pf over ps and evaluates the social cost in one
// call. This composition is the objective minimized by assign.SocialOptimum.
func CostOfPathFlows(g *roadnet.Graph, ps []paths.Path, pf PathFlows) (float64, error) {
	ef, err := Aggregate(ps, pf)
	if err != nil {
		return 0, err
	}

	return TotalCost(g, ef)
}
