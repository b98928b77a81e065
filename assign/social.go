package assign

import (
	"math"

	"github.com/trafficlab/wardrop/flows"
	"github.com/trafficlab/wardrop/paths"
	"github.com/trafficlab/wardrop/roadnet"
)

// SocialOptimum computes the path-flow vector minimizing total system travel
// cost (flows.CostOfPathFlows) subject to flow conservation (the entries sum
// to demand) and non-negativity.
//
// With affine edge costs a·x + b, a ≥ 0, the objective is a convex quadratic
// form of the path flows, so the converged minimizer is the global optimum.
// Conservation holds exactly (the clamping of sub-tolerance negative noise
// folds the residual back into the largest entry); tie-breaking between
// cost-equivalent paths is solver-defined.
//
// Edge cases: zero paths yield an empty vector; zero demand yields an
// all-zero vector without invoking the solver. A negative or NaN demand
// yields ErrNegativeDemand; a nil graph yields ErrNilGraph. If the solver
// cannot converge within its iteration budget it returns ErrNotConverged and
// no vector.
func SocialOptimum(g *roadnet.Graph, ps []paths.Path, demand float64, opts ...Option) (flows.PathFlows, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if math.IsNaN(demand) || demand < 0 {
		return nil, ErrNegativeDemand
	}
	if len(ps) == 0 {
		return flows.PathFlows{}, nil
	}
	if demand == 0 {
		return make(flows.PathFlows, len(ps)), nil
	}

	sopts := DefaultOptions()
	for _, fn := range opts {
		fn(&sopts)
	}

	prog, err := buildProgram(g, ps)
	if err != nil {
		return nil, err
	}

	return prog.minimize(demand, sopts)
}
