// Package wardrop models single-commodity traffic routing on a directed road
// network and compares two flow-assignment policies: the social optimum
// (centrally planned flows minimizing total travel cost) and the naive
// equal-split approximation of a Nash/Wardrop equilibrium (selfish routing).
//
// The pipeline, leaf-first:
//
//	gml/      — load a directed network with per-edge affine cost coefficients
//	roadnet/  — graph core: nodes, edges, cost(x) = a·x + b
//	paths/    — enumerate every simple path between an origin and destination
//	flows/    — aggregate path flows into edge flows, evaluate social cost
//	assign/   — the two assignment policies (convex QP vs. equal split)
//	render/   — side-by-side summary table and bar-chart comparison
//
// A typical run:
//
//	g, _ := gml.Load("network.gml")
//	ps, _ := paths.Enumerate(g, "S", "T")
//	opt, _ := assign.SocialOptimum(g, ps, 10)
//	eq, _ := assign.NashEqualSplit(ps, 10)
//
// Both assigners produce a path-flow vector indexed by the enumeration order;
// flows.Aggregate turns either vector into per-edge loads, and
// flows.TotalCost evaluates Σ flow·cost(flow) over the loaded edges. Since
// every edge cost is affine with non-negative coefficients, the social
// optimum is a convex quadratic program and the solver's converged point is
// the global minimum.
//
// The equal-split equilibrium is a deliberate simplification: a true Wardrop
// equilibrium equalizes marginal travel time across used paths, not flow.
// See assign.NashEqualSplit for the contract.
//
// The cmd/wardrop binary wires the whole pipeline behind a small CLI, and
// examples/ contains runnable Pigou and Braess scenarios.
package wardrop
