// Package assign produces path-flow vectors for a single origin–destination
// demand over an enumerated path set, under two policies:
//
//   - SocialOptimum: the centrally planned assignment minimizing total system
//     travel cost. With affine edge costs the objective is a convex quadratic
//     form, solved exactly by an active-set method over the flow-conservation
//     equality and the non-negativity bounds.
//   - NashEqualSplit: the naive selfish-routing approximation that divides
//     demand evenly across all paths. This is a documented simplification of
//     a true Wardrop equilibrium (which equalizes marginal travel time, not
//     flow) and is intentionally not an iterative equilibrium solve.
//
// Both assigners return vectors indexed by the path set's enumeration order
// and satisfying flow conservation; neither ever returns a partial or
// unconverged result.
//
// Errors:
//
//	ErrNilGraph       - nil graph passed to SocialOptimum.
//	ErrNegativeDemand - demand is negative or NaN.
//	ErrNotConverged   - the optimizer exhausted its iteration budget or hit
//	                    a singular KKT system; no iterate is returned.
package assign

import (
	"errors"
)

var (
	// ErrNilGraph is returned when a nil *roadnet.Graph is passed to
	// SocialOptimum.
	ErrNilGraph = errors.New("assign: graph is nil")

	// ErrNegativeDemand indicates a demand for which flow conservation
	// cannot be satisfied meaningfully (negative or NaN).
	ErrNegativeDemand = errors.New("assign: demand must be non-negative")

	// ErrNotConverged indicates the constrained optimizer failed to reach a
	// feasible converged solution within its iteration budget.
	ErrNotConverged = errors.New("assign: optimizer did not converge")
)

// Option configures the social-optimum solver.
type Option func(*Options)

// Options holds solver parameters. The defaults are generous for the small
// road networks this package targets: the active-set method touches each
// bound at most a handful of times.
type Options struct {
	// MaxIterations bounds the number of active-set steps. Default 100.
	MaxIterations int

	// Tolerance is the threshold below which a negative path flow is
	// treated as numerical noise (clamped to zero) rather than an active
	// bound. Default 1e-9.
	Tolerance float64
}

// DefaultOptions returns the solver defaults.
func DefaultOptions() Options {
	return Options{
		MaxIterations: 100,
		Tolerance:     1e-9,
	}
}

// WithMaxIterations sets the active-set iteration budget.
// Non-positive values are ignored (the default is retained).
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxIterations = n
		}
	}
}

// WithTolerance sets the numerical-noise threshold.
// Non-positive values are ignored (the default is retained).
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.Tolerance = tol
		}
	}
}
