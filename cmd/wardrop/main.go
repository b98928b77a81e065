// Command wardrop loads a directed road network from a GML file, enumerates
// every simple path between an origin and a destination, assigns a vehicle
// demand to those paths under both the social optimum and the equal-split
// equilibrium approximation, and prints a side-by-side comparison of edge
// flows and social costs. With -plot it also writes a bar-chart PNG.
//
// Usage:
//
//	wardrop -graph network.gml -vehicles 10 -start S -end T [-plot] [-out traffic.png]
//
// The process exits non-zero on any failure: unreadable or malformed graph,
// unknown origin/destination, non-positive vehicle count, or a solver that
// fails to converge. An unreachable destination is reported as "no route"
// and is not a failure.
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/trafficlab/wardrop/assign"
	"github.com/trafficlab/wardrop/flows"
	"github.com/trafficlab/wardrop/gml"
	"github.com/trafficlab/wardrop/paths"
	"github.com/trafficlab/wardrop/render"
)

var flagGraphFile = flag.String(
	"graph",
	"",
	"Path to the GML network file",
)

var flagVehicles = flag.Int(
	"vehicles",
	0,
	"Number of vehicles to route (positive)",
)

var flagStart = flag.String(
	"start",
	"",
	"Origin node",
)

var flagEnd = flag.String(
	"end",
	"",
	"Destination node",
)

var flagPlot = flag.Bool(
	"plot",
	false,
	"Write a bar-chart comparison of the two assignments",
)

var flagOut = flag.String(
	"out",
	"traffic.png",
	"Output image path used with -plot",
)

func validateFlags() error {
	if *flagGraphFile == "" {
		return fmt.Errorf("missing graph file")
	}
	if n := *flagVehicles; n <= 0 {
		return fmt.Errorf("vehicles must be positive, got %d", n)
	}
	if *flagStart == "" {
		return fmt.Errorf("missing start node")
	}
	if *flagEnd == "" {
		return fmt.Errorf("missing end node")
	}
	return nil
}

func run() error {
	g, err := gml.Load(*flagGraphFile)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"nodes": g.NodeCount(),
		"edges": g.EdgeCount(),
	}).Info("network loaded")

	ps, err := paths.Enumerate(g, *flagStart, *flagEnd)
	if err != nil {
		return err
	}
	log.WithField("paths", len(ps)).Info("simple paths enumerated")

	demand := float64(*flagVehicles)

	optFlows, err := assign.SocialOptimum(g, ps, demand)
	if err != nil {
		return err
	}
	eqFlows, err := assign.NashEqualSplit(ps, demand)
	if err != nil {
		return err
	}

	optEdges, err := flows.Aggregate(ps, optFlows)
	if err != nil {
		return err
	}
	eqEdges, err := flows.Aggregate(ps, eqFlows)
	if err != nil {
		return err
	}

	optCost, err := flows.TotalCost(g, optEdges)
	if err != nil {
		return err
	}
	eqCost, err := flows.TotalCost(g, eqEdges)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"social_optimum": optCost,
		"equal_split":    eqCost,
	}).Info("assignments computed")

	cmp := render.Comparison{
		Graph:           g,
		Start:           *flagStart,
		End:             *flagEnd,
		Demand:          demand,
		PathCount:       len(ps),
		Optimum:         optEdges,
		Equilibrium:     eqEdges,
		OptimumCost:     optCost,
		EquilibriumCost: eqCost,
	}
	if err := render.WriteSummary(os.Stdout, cmp); err != nil {
		return err
	}
	if *flagPlot {
		if err := render.SavePlot(cmp, *flagOut); err != nil {
			return err
		}
		log.WithField("file", *flagOut).Info("comparison chart written")
	}

	return nil
}

func main() {
	flag.Parse()
	if err := validateFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "wardrop: %s\n", err)
		flag.Usage()
		os.Exit(2)
	}

	if err := run(); err != nil {
		log.WithError(err).Error("run failed")
		os.Exit(1)
	}
}
