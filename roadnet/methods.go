package roadnet

import (
	"sort"
)

// AddNode inserts a node with the given ID. Adding an existing node is a
// no-op. Returns ErrEmptyNodeID for the empty string.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	g.nodes[id] = struct{}{}

	return nil
}

// AddEdge creates the directed edge from→to with cost coefficients a and b,
// implicitly adding missing endpoint nodes.
//
// Errors:
//   - ErrEmptyNodeID if either endpoint ID is empty.
//   - ErrNegativeCoefficient if a < 0 or b < 0.
//   - ErrLoopNotAllowed if from == to without WithAllowLoops.
//   - ErrDuplicateEdge if the ordered pair already has an edge.
func (g *Graph) AddEdge(from, to string, a, b float64) (*Edge, error) {
	if from == "" || to == "" {
		return nil, ErrEmptyNodeID
	}
	if a < 0 || b < 0 {
		return nil, ErrNegativeCoefficient
	}
	if from == to && !g.allowLoops {
		return nil, ErrLoopNotAllowed
	}

	key := EdgeKey{From: from, To: to}
	if _, exists := g.edges[key]; exists {
		return nil, ErrDuplicateEdge
	}

	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}

	e := &Edge{From: from, To: to, A: a, B: b}
	g.edges[key] = e

	// Insert into the outgoing list keeping it sorted by To ascending.
	// Networks here are small; an O(deg) insert keeps OutEdges allocation-free.
	list := g.out[from]
	i := sort.Search(len(list), func(i int) bool { return list[i].To >= to })
	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = e
	g.out[from] = list

	return e, nil
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all node IDs sorted ascending.
func (g *Graph) Nodes() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Edge returns the edge on the ordered pair (from, to), if present.
func (g *Graph) Edge(from, to string) (*Edge, bool) {
	e, ok := g.edges[EdgeKey{From: from, To: to}]
	return e, ok
}

// Edges returns all edges sorted by (From, To) ascending.
func (g *Graph) Edges() []*Edge {
	all := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].From != all[j].From {
			return all[i].From < all[j].From
		}

		return all[i].To < all[j].To
	})

	return all
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// OutEdges returns the outgoing edges of id sorted by To ascending.
// Returns ErrNodeNotFound for an unknown node. The returned slice is shared;
// callers must not mutate it.
func (g *Graph) OutEdges(id string) ([]*Edge, error) {
	if !g.HasNode(id) {
		return nil, ErrNodeNotFound
	}

	return g.out[id], nil
}
