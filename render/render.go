// Package render presents the outcome of a social-optimum vs. equal-split
// comparison: an aligned text summary for terminals and a grouped bar chart
// (PNG) of per-edge flows under both policies. It is a pure consumer; nothing
// feeds back into the assignment pipeline.
package render

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/trafficlab/wardrop/flows"
	"github.com/trafficlab/wardrop/roadnet"
)

// Comparison bundles everything a renderer needs: the network, the
// origin–destination query, and both assignments with their social costs.
type Comparison struct {
	Graph *roadnet.Graph

	Start  string
	End    string
	Demand float64

	// PathCount is the size of the enumerated path set. Zero means the
	// destination is unreachable and both mappings are empty.
	PathCount int

	Optimum     flows.EdgeFlows
	Equilibrium flows.EdgeFlows

	OptimumCost     float64
	EquilibriumCost float64
}

// edgeKeys returns the union of both mappings' keys, sorted for stable
// tables and charts.
func (c Comparison) edgeKeys() []roadnet.EdgeKey {
	seen := make(map[roadnet.EdgeKey]struct{}, len(c.Optimum)+len(c.Equilibrium))
	for k := range c.Optimum {
		seen[k] = struct{}{}
	}
	for k := range c.Equilibrium {
		seen[k] = struct{}{}
	}
	keys := make([]roadnet.EdgeKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].From != keys[j].From {
			return keys[i].From < keys[j].From
		}

		return keys[i].To < keys[j].To
	})

	return keys
}

// WriteSummary writes an aligned per-edge flow table for both policies,
// followed by both social costs. When the path set is empty it writes a
// single "no route" line instead.
func WriteSummary(w io.Writer, c Comparison) error {
	if c.PathCount == 0 {
		_, err := fmt.Fprintf(w, "no route from %s to %s\n", c.Start, c.End)
		return err
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%d vehicles %s → %s over %d paths\n", int(c.Demand), c.Start, c.End, c.PathCount)
	fmt.Fprintf(tw, "edge\tsocial optimum\tequal split\n")
	for _, key := range c.edgeKeys() {
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\n", key, c.Optimum[key], c.Equilibrium[key])
	}
	fmt.Fprintf(tw, "total cost\t%.3f\t%.3f\n", c.OptimumCost, c.EquilibriumCost)

	return tw.Flush()
}

// SavePlot renders a grouped bar chart of per-edge flows under both policies
// and writes it to file (format chosen by extension, e.g. .png). The chart
// title carries both social costs; an unreachable destination yields an
// empty chart titled "no route".
func SavePlot(c Comparison, file string) error {
	p := plot.New()
	p.Y.Label.Text = "vehicles"
	p.Title.Text = fmt.Sprintf(
		"%s → %s: social optimum %.2f vs equal split %.2f",
		c.Start, c.End, c.OptimumCost, c.EquilibriumCost,
	)
	if c.PathCount == 0 {
		p.Title.Text = fmt.Sprintf("no route from %s to %s", c.Start, c.End)
	}

	keys := c.edgeKeys()
	optVals := make(plotter.Values, len(keys))
	eqVals := make(plotter.Values, len(keys))
	labels := make([]string, len(keys))
	for i, key := range keys {
		optVals[i] = c.Optimum[key]
		eqVals[i] = c.Equilibrium[key]
		labels[i] = key.String()
	}

	barWidth := vg.Points(16)
	optBars, err := plotter.NewBarChart(optVals, barWidth)
	if err != nil {
		return fmt.Errorf("render: optimum bars: %w", err)
	}
	optBars.LineStyle.Width = 0
	optBars.Color = plotutil.Color(0)
	optBars.Offset = -barWidth / 2

	eqBars, err := plotter.NewBarChart(eqVals, barWidth)
	if err != nil {
		return fmt.Errorf("render: equilibrium bars: %w", err)
	}
	eqBars.LineStyle.Width = 0
	eqBars.Color = plotutil.Color(1)
	eqBars.Offset = barWidth / 2

	p.Add(optBars, eqBars)
	p.Legend.Add("social optimum", optBars)
	p.Legend.Add("equal split", eqBars)
	p.Legend.Top = true
	p.NominalX(labels...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, file); err != nil {
		return fmt.Errorf("render: save %s: %w", file, err)
	}

	return nil
}
