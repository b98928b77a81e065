package gml_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trafficlab/wardrop/gml"
)

const pigouGML = `Creator "wardrop test"
graph [
  directed 1
  node [ id 0 label "S" ]
  node [ id 1 label "A" ]
  node [ id 2 label "T" ]
  edge [ source 0 target 1 a 1.0 b 0 ]
  edge [ source 1 target 2 a 0 b 0 ]
  edge [ source 0 target 2 a 0 b 10 ]
]
`

func TestParse_Basic(t *testing.T) {
	g, err := gml.Parse(strings.NewReader(pigouGML))
	require.NoError(t, err)

	require.Equal(t, 3, g.NodeCount())
	require.Equal(t, 3, g.EdgeCount())
	require.Equal(t, []string{"A", "S", "T"}, g.Nodes())

	e, ok := g.Edge("S", "T")
	require.True(t, ok)
	require.Equal(t, 0.0, e.A)
	require.Equal(t, 10.0, e.B)

	e, ok = g.Edge("S", "A")
	require.True(t, ok)
	require.Equal(t, 1.0, e.A)
	require.Equal(t, 0.0, e.B)
}

func TestParse_UnlabeledNodesUseID(t *testing.T) {
	src := `graph [
  directed 1
  node [ id 0 ]
  node [ id 1 ]
  edge [ source 0 target 1 a 2 b 3 ]
]`
	g, err := gml.Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.True(t, g.HasNode("0"))
	require.True(t, g.HasNode("1"))

	_, ok := g.Edge("0", "1")
	require.True(t, ok)
}

func TestParse_SkipsUnknownKeysAndBlocks(t *testing.T) {
	src := `graph [
  directed 1
  name "annotated"
  node [
    id 0
    label "S"
    graphics [ x 1.0 y 2.0 fill "#ff0000" ]
  ]
  node [ id 1 label "T" ]
  edge [ source 0 target 1 a 1 b 1 weight 99 ]
]`
	g, err := gml.Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 2, g.NodeCount())
	require.Equal(t, 1, g.EdgeCount())
}

func TestParse_Comments(t *testing.T) {
	src := `# header comment
graph [
  directed 1
  node [ id 0 label "S" ] # inline comment
  node [ id 1 label "T" ]
  edge [ source 0 target 1 a 0 b 1 ]
]`
	g, err := gml.Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 2, g.NodeCount())
}

func TestParse_NotDirected(t *testing.T) {
	src := `graph [
  node [ id 0 label "S" ]
]`
	_, err := gml.Parse(strings.NewReader(src))
	require.ErrorIs(t, err, gml.ErrNotDirected)

	src = strings.Replace(pigouGML, "directed 1", "directed 0", 1)
	_, err = gml.Parse(strings.NewReader(src))
	require.ErrorIs(t, err, gml.ErrNotDirected)
}

func TestParse_Malformed(t *testing.T) {
	cases := map[string]string{
		"no graph block": `Creator "x"`,
		"node without id": `graph [
  directed 1
  node [ label "S" ]
]`,
		"edge missing coefficients": `graph [
  directed 1
  node [ id 0 label "S" ]
  node [ id 1 label "T" ]
  edge [ source 0 target 1 a 1 ]
]`,
		"edge unknown node": `graph [
  directed 1
  node [ id 0 label "S" ]
  edge [ source 0 target 7 a 1 b 1 ]
]`,
		"duplicate node id": `graph [
  directed 1
  node [ id 0 label "S" ]
  node [ id 0 label "T" ]
]`,
		"non-numeric coefficient": `graph [
  directed 1
  node [ id 0 label "S" ]
  node [ id 1 label "T" ]
  edge [ source 0 target 1 a high b 1 ]
]`,
		"unterminated block": `graph [
  directed 1
  node [ id 0 label "S"
]`,
	}

	for name, src := range cases {
		_, err := gml.Parse(strings.NewReader(src))
		require.ErrorIs(t, err, gml.ErrMalformed, name)
	}
}

func TestParse_NegativeCoefficientRejected(t *testing.T) {
	src := `graph [
  directed 1
  node [ id 0 label "S" ]
  node [ id 1 label "T" ]
  edge [ source 0 target 1 a -1 b 0 ]
]`
	_, err := gml.Parse(strings.NewReader(src))
	require.ErrorIs(t, err, gml.ErrMalformed)
	require.Contains(t, err.Error(), "negative cost coefficient")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pigou.gml")
	require.NoError(t, os.WriteFile(file, []byte(pigouGML), 0o644))

	g, err := gml.Load(file)
	require.NoError(t, err)
	require.Equal(t, 3, g.NodeCount())

	_, err = gml.Load(filepath.Join(dir, "missing.gml"))
	require.Error(t, err)
}
