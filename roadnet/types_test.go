// Package roadnet_test validates graph construction, the affine cost model,
// and the deterministic accessor ordering the path enumerator relies on.
package roadnet_test

import (
	"errors"
	"testing"

	"github.com/trafficlab/wardrop/roadnet"
)

func TestAddEdge_ImplicitNodes(t *testing.T) {
	g := roadnet.New()
	e, err := g.AddEdge("A", "B", 1.5, 2)
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if !g.HasNode("A") || !g.HasNode("B") {
		t.Fatal("endpoints were not implicitly added")
	}
	if e.Key() != (roadnet.EdgeKey{From: "A", To: "B"}) {
		t.Fatalf("unexpected key %v", e.Key())
	}
	if g.EdgeCount() != 1 || g.NodeCount() != 2 {
		t.Fatalf("counts = (%d nodes, %d edges)", g.NodeCount(), g.EdgeCount())
	}
}

func TestAddEdge_Validation(t *testing.T) {
	g := roadnet.New()

	if _, err := g.AddEdge("", "B", 1, 1); !errors.Is(err, roadnet.ErrEmptyNodeID) {
		t.Errorf("empty from: got %v", err)
	}
	if _, err := g.AddEdge("A", "B", -1, 0); !errors.Is(err, roadnet.ErrNegativeCoefficient) {
		t.Errorf("negative a: got %v", err)
	}
	if _, err := g.AddEdge("A", "B", 0, -1); !errors.Is(err, roadnet.ErrNegativeCoefficient) {
		t.Errorf("negative b: got %v", err)
	}
	if _, err := g.AddEdge("A", "A", 1, 1); !errors.Is(err, roadnet.ErrLoopNotAllowed) {
		t.Errorf("loop: got %v", err)
	}

	if _, err := g.AddEdge("A", "B", 1, 1); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if _, err := g.AddEdge("A", "B", 2, 2); !errors.Is(err, roadnet.ErrDuplicateEdge) {
		t.Errorf("duplicate: got %v", err)
	}
}

func TestAddEdge_LoopsOption(t *testing.T) {
	g := roadnet.New(roadnet.WithAllowLoops())
	if _, err := g.AddEdge("A", "A", 0, 1); err != nil {
		t.Fatalf("loop with WithAllowLoops: %v", err)
	}
}

func TestEdge_CostAndDelay(t *testing.T) {
	g := roadnet.New()
	e, err := g.AddEdge("A", "B", 2, 3)
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	// Cost(0) must return the free-flow cost b.
	if got := e.Cost(0); got != 3 {
		t.Errorf("Cost(0) = %g; want 3", got)
	}
	if got := e.Cost(4); got != 11 {
		t.Errorf("Cost(4) = %g; want 11", got)
	}
	// Delay is flow·cost: 4·11 = 44.
	if got := e.Delay(4); got != 44 {
		t.Errorf("Delay(4) = %g; want 44", got)
	}
	if got := e.Delay(0); got != 0 {
		t.Errorf("Delay(0) = %g; want 0", got)
	}
}

func TestAccessors_Deterministic(t *testing.T) {
	g := roadnet.New()
	for _, pair := range [][2]string{{"C", "A"}, {"C", "B"}, {"A", "B"}, {"B", "A"}} {
		if _, err := g.AddEdge(pair[0], pair[1], 0, 1); err != nil {
			t.Fatalf("AddEdge %v: %v", pair, err)
		}
	}

	wantNodes := []string{"A", "B", "C"}
	for i, id := range g.Nodes() {
		if id != wantNodes[i] {
			t.Fatalf("Nodes() = %v; want %v", g.Nodes(), wantNodes)
		}
	}

	out, err := g.OutEdges("C")
	if err != nil {
		t.Fatalf("OutEdges: %v", err)
	}
	if len(out) != 2 || out[0].To != "A" || out[1].To != "B" {
		t.Fatalf("OutEdges(C) not sorted by target: %v", out)
	}

	all := g.Edges()
	prev := roadnet.EdgeKey{}
	for i, e := range all {
		if i > 0 && (e.From < prev.From || (e.From == prev.From && e.To < prev.To)) {
			t.Fatalf("Edges() not sorted at %d: %v", i, all)
		}
		prev = e.Key()
	}

	if _, err := g.OutEdges("Z"); !errors.Is(err, roadnet.ErrNodeNotFound) {
		t.Errorf("OutEdges(Z): got %v", err)
	}
}
