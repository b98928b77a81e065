// Package paths enumerates simple paths (no repeated node) between an origin
// and a destination of a roadnet.Graph, with cancellation, per-path hooks,
// and depth/count limits.
//
// The enumeration order is deterministic: depth-first exploration with
// neighbors visited in ascending node-ID order. Every path-flow vector
// produced afterwards (see the assign package) is indexed by this order, so
// stability within a run is a hard requirement, not a convenience.
//
// Options:
//
//   - WithContext(ctx)   allows cancellation via context.Context.
//   - WithOnPath(fn)     hook invoked for each discovered path; error aborts.
//   - WithMaxDepth(n)    bounds path length to n edges (n ≥ 0).
//   - WithMaxPaths(n)    aborts with ErrPathLimit after n paths (n > 0).
//
// Errors:
//
//   - ErrGraphNil        if the graph is nil.
//   - ErrStartNotFound   if the origin node is absent.
//   - ErrEndNotFound     if the destination node is absent.
//   - ErrPathLimit       if WithMaxPaths is exceeded.
//   - context.Canceled   if the context is done.
//   - any error returned by the OnPath hook.
package paths

import (
	"context"
	"errors"
	"strings"

	"github.com/trafficlab/wardrop/roadnet"
)

var (
	// ErrGraphNil is returned when a nil *roadnet.Graph is passed to Enumerate.
	ErrGraphNil = errors.New("paths: graph is nil")

	// ErrStartNotFound indicates the origin node does not exist in the graph.
	ErrStartNotFound = errors.New("paths: start node not found")

	// ErrEndNotFound indicates the destination node does not exist in the graph.
	ErrEndNotFound = errors.New("paths: end node not found")

	// ErrPathLimit indicates enumeration was aborted because the number of
	// simple paths exceeded the WithMaxPaths cap.
	ErrPathLimit = errors.New("paths: simple-path limit exceeded")
)

// Path is an ordered node sequence with no repeated node; consecutive pairs
// are connected by a directed edge of the enumerated graph.
type Path []string

// Edges returns the ordered edge keys traversed by the path.
// A path of fewer than two nodes traverses no edge.
func (p Path) Edges() []roadnet.EdgeKey {
	if len(p) < 2 {
		return nil
	}
	keys := make([]roadnet.EdgeKey, len(p)-1)
	for i := 1; i < len(p); i++ {
		keys[i-1] = roadnet.EdgeKey{From: p[i-1], To: p[i]}
	}

	return keys
}

// String renders the path as "A→B→C".
func (p Path) String() string { return strings.Join(p, "→") }

// Option configures optional behavior of Enumerate.
type Option func(*Options)

// Options holds configurable parameters for path enumeration.
type Options struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// OnPath, if non-nil, is invoked with each discovered path (a copy the
	// hook may retain). Returning an error aborts enumeration with that error.
	OnPath func(p Path) error

	// MaxDepth, if non-negative, bounds path length to MaxDepth edges.
	// Default is -1 (no limit).
	MaxDepth int

	// MaxPaths, if positive, aborts enumeration with ErrPathLimit once more
	// than MaxPaths paths are found. Default is 0 (no limit).
	MaxPaths int
}

// DefaultOptions returns Options with a background context, no hook, and no
// depth or count limits.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		OnPath:   nil,
		MaxDepth: -1,
		MaxPaths: 0,
	}
}

// WithContext returns an Option that sets the enumeration context.
// Passing a nil context has no effect (Background is retained).
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnPath returns an Option that installs fn as the per-path hook.
func WithOnPath(fn func(p Path) error) Option {
	return func(o *Options) {
		o.OnPath = fn
	}
}

// WithMaxDepth returns an Option bounding path length to limit edges.
// A limit of 0 only admits the degenerate start == end path.
func WithMaxDepth(limit int) Option {
	return func(o *Options) {
		o.MaxDepth = limit
	}
}

// WithMaxPaths returns an Option capping the number of enumerated paths.
// Values ≤ 0 leave enumeration unbounded.
func WithMaxPaths(limit int) Option {
	return func(o *Options) {
		o.MaxPaths = limit
	}
}
