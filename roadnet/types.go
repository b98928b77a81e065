// Package roadnet defines the directed road-network graph used throughout
// wardrop: opaque string node IDs and edges carrying the two coefficients of
// an affine congestion cost, cost(x) = A·x + B for flow x.
//
// A Graph is built once (by hand or by the gml loader) and is read-only for
// the rest of a run; no internal locking is performed. All accessors return
// deterministic, sorted views so that downstream path enumeration is stable.
//
// Errors:
//
//	ErrEmptyNodeID         - node ID is the empty string.
//	ErrNodeNotFound        - requested node does not exist.
//	ErrNegativeCoefficient - edge coefficient A or B is negative.
//	ErrLoopNotAllowed      - self-loop when loops are disabled.
//	ErrDuplicateEdge       - the ordered node pair already has an edge.
package roadnet

import (
	"errors"
	"fmt"
)

// Sentinel errors for road-network construction and queries.
var (
	// ErrEmptyNodeID indicates that a node ID was the empty string.
	ErrEmptyNodeID = errors.New("roadnet: node ID is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("roadnet: node not found")

	// ErrNegativeCoefficient indicates a cost coefficient below zero.
	// Affine congestion costs require A ≥ 0 and B ≥ 0 so that cost is
	// non-negative and non-decreasing in flow.
	ErrNegativeCoefficient = errors.New("roadnet: negative cost coefficient")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are
	// disabled (the default).
	ErrLoopNotAllowed = errors.New("roadnet: self-loop not allowed")

	// ErrDuplicateEdge indicates a second edge on an ordered node pair.
	// Edge identity is the (From, To) pair, so parallel roads must be
	// modeled through distinct intermediate junctions.
	ErrDuplicateEdge = errors.New("roadnet: duplicate edge")
)

// EdgeKey identifies an edge by its ordered endpoints.
type EdgeKey struct {
	From string
	To   string
}

// String renders the key as "From→To".
func (k EdgeKey) String() string { return k.From + "→" + k.To }

// Edge is a directed road segment with an affine congestion cost.
//
// Cost per vehicle at flow x is A·x + B; A captures how quickly the road
// congests, B its free-flow travel cost.
type Edge struct {
	// From is the source node ID.
	From string

	// To is the destination node ID.
	To string

	// A is the congestion coefficient (cost growth per unit of flow).
	A float64

	// B is the free-flow cost (cost at zero flow).
	B float64
}

// Key returns the edge's identifying ordered node pair.
func (e *Edge) Key() EdgeKey { return EdgeKey{From: e.From, To: e.To} }

// Cost returns the per-vehicle travel cost at the given flow: A·flow + B.
// Pure; Cost(0) == B.
func (e *Edge) Cost(flow float64) float64 { return e.A*flow + e.B }

// Delay returns the total delay experienced by all vehicles on the edge at
// the given flow: flow·Cost(flow) = A·flow² + B·flow. This is the edge's
// contribution to the social-cost objective.
func (e *Edge) Delay(flow float64) float64 { return flow * e.Cost(flow) }

// String renders the edge as "From→To (a·x + b)".
func (e *Edge) String() string {
	return fmt.Sprintf("%s→%s (%g·x + %g)", e.From, e.To, e.A, e.B)
}

// Option configures a Graph before use.
type Option func(*Graph)

// WithAllowLoops permits self-loop edges (from == to). Loops can never lie
// on a simple path, but tolerating them keeps loaders permissive.
func WithAllowLoops() Option {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is a directed road network. The zero value is not usable; construct
// with New.
//
// Node and edge storage is map-based; all exported accessors sort their
// results so traversal order never depends on map iteration.
type Graph struct {
	allowLoops bool

	nodes map[string]struct{}
	edges map[EdgeKey]*Edge

	// out[from] holds outgoing edges sorted by To ascending. Maintained on
	// insert so OutEdges needs no per-call sort.
	out map[string][]*Edge
}

// New creates an empty directed Graph. By default self-loops are rejected.
func New(opts ...Option) *Graph {
	g := &Graph{
		nodes: make(map[string]struct{}),
		edges: make(map[EdgeKey]*Edge),
		out:   make(map[string][]*Edge),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
