package paths

import (
	"fmt"

	"github.com/trafficlab/wardrop/roadnet"
)

// walker encapsulates state during path enumeration.
type walker struct {
	graph *roadnet.Graph
	opts  Options
	end   string

	stack   []string        // current node sequence, start at index 0
	onStack map[string]bool // nodes in stack, simple-path guard
	found   []Path
}

// Enumerate returns every simple path from start to end in g, in
// deterministic depth-first order (neighbors in ascending node-ID order).
//
// Both start and end must be present in the graph; a graph containing both
// but no connecting route yields an empty slice and a nil error — the
// zero-path case is a valid result, not a failure. When start == end the
// single degenerate path [start] is returned; it traverses no edge.
//
// Returns ErrGraphNil, ErrStartNotFound, ErrEndNotFound, ErrPathLimit,
// the context's error on cancellation, or any error from the OnPath hook.
func Enumerate(g *roadnet.Graph, start, end string, opts ...Option) ([]Path, error) {
	// 1. Validate input graph.
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2. Apply options.
	eopts := DefaultOptions()
	for _, fn := range opts {
		fn(&eopts)
	}

	// 3. Verify endpoints.
	if !g.HasNode(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartNotFound, start)
	}
	if !g.HasNode(end) {
		return nil, fmt.Errorf("%w: %q", ErrEndNotFound, end)
	}

	// 4. Walk.
	w := &walker{
		graph:   g,
		opts:    eopts,
		end:     end,
		stack:   make([]string, 0, g.NodeCount()),
		onStack: make(map[string]bool, g.NodeCount()),
	}
	if err := w.extend(start); err != nil {
		return nil, err
	}

	return w.found, nil
}

// extend pushes node onto the path and explores its outgoing edges,
// recording a path whenever the destination is reached. It honors context
// cancellation, the depth and count limits, and the OnPath hook.
func (w *walker) extend(node string) error {
	// Cancellation check once per visited node.
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	w.stack = append(w.stack, node)
	w.onStack[node] = true
	defer func() {
		w.stack = w.stack[:len(w.stack)-1]
		delete(w.onStack, node)
	}()

	if node == w.end {
		return w.record()
	}

	// Depth limit counts edges: a stack of k nodes has k-1 edges.
	if w.opts.MaxDepth >= 0 && len(w.stack)-1 >= w.opts.MaxDepth {
		return nil
	}

	out, err := w.graph.OutEdges(node)
	if err != nil {
		return fmt.Errorf("paths: out-edges of %q: %w", node, err)
	}
	for _, e := range out {
		if w.onStack[e.To] {
			continue // revisiting would break simplicity
		}
		if err = w.extend(e.To); err != nil {
			return err
		}
	}

	return nil
}

// record copies the current stack into the result set, applying the count
// limit and the OnPath hook.
func (w *walker) record() error {
	if w.opts.MaxPaths > 0 && len(w.found) >= w.opts.MaxPaths {
		return fmt.Errorf("%w: more than %d", ErrPathLimit, w.opts.MaxPaths)
	}

	p := make(Path, len(w.stack))
	copy(p, w.stack)

	if w.opts.OnPath != nil {
		if err := w.opts.OnPath(p); err != nil {
			return fmt.Errorf("paths: OnPath hook for %s: %w", p, err)
		}
	}
	w.found = append(w.found, p)

	return nil
}
