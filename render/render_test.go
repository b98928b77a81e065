package render_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trafficlab/wardrop/flows"
	"github.com/trafficlab/wardrop/render"
	"github.com/trafficlab/wardrop/roadnet"
)

func comparison(t *testing.T) render.Comparison {
	t.Helper()
	g := roadnet.New()
	_, err := g.AddEdge("S", "A", 1, 0)
	require.NoError(t, err)
	_, err = g.AddEdge("A", "T", 0, 10)
	require.NoError(t, err)

	sa := roadnet.EdgeKey{From: "S", To: "A"}
	at := roadnet.EdgeKey{From: "A", To: "T"}

	return render.Comparison{
		Graph:           g,
		Start:           "S",
		End:             "T",
		Demand:          10,
		PathCount:       2,
		Optimum:         flows.EdgeFlows{sa: 5, at: 5},
		Equilibrium:     flows.EdgeFlows{sa: 4, at: 6},
		OptimumCost:     75,
		EquilibriumCost: 88,
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.WriteSummary(&buf, comparison(t)))

	out := buf.String()
	require.Contains(t, out, "10 vehicles S → T over 2 paths")
	require.Contains(t, out, "S→A")
	require.Contains(t, out, "A→T")
	require.Contains(t, out, "5.000")
	require.Contains(t, out, "total cost")
	require.Contains(t, out, "75.000")
	require.Contains(t, out, "88.000")

	// Edges appear in sorted order for stable terminal output.
	require.Less(t, strings.Index(out, "A→T"), strings.Index(out, "S→A"))
}

func TestWriteSummary_NoRoute(t *testing.T) {
	c := comparison(t)
	c.PathCount = 0
	c.Optimum = flows.EdgeFlows{}
	c.Equilibrium = flows.EdgeFlows{}

	var buf bytes.Buffer
	require.NoError(t, render.WriteSummary(&buf, c))
	require.Equal(t, "no route from S to T\n", buf.String())
}

func TestSavePlot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cmp.png")
	require.NoError(t, render.SavePlot(comparison(t), file))

	info, err := os.Stat(file)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}
