package assign

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/trafficlab/wardrop/flows"
	"github.com/trafficlab/wardrop/paths"
	"github.com/trafficlab/wardrop/roadnet"
)

// ridge is a Tikhonov term added to the quadratic diagonal so the KKT system
// stays nonsingular when the quadratic part is rank-deficient (path sets
// whose edges all have a == 0). It perturbs the optimum by well under the
// solver tolerance at realistic flow magnitudes.
const ridge = 1e-9

// program is the convex quadratic form of the social-cost objective over
// path flows x:
//
//	f(x) = ½·xᵀQx + cᵀx,  Q = 2·AᵀDA + ridge·I,  c = Aᵀb
//
// where A is the edge–path incidence matrix, D = diag(a_e) and b the vector
// of free-flow costs. Q is positive semidefinite because every a_e ≥ 0.
type program struct {
	n    int
	quad *mat.SymDense
	lin  *mat.VecDense
}

// buildProgram assembles Q and c directly from the per-edge path-incidence
// sets, avoiding explicit matrix products: an edge with coefficient pair
// (a, b) traversed by paths S contributes 2a to Q[i][j] for all i, j ∈ S and
// b to c[i] for all i ∈ S.
func buildProgram(g *roadnet.Graph, ps []paths.Path) (*program, error) {
	n := len(ps)
	p := &program{
		n:    n,
		quad: mat.NewSymDense(n, nil),
		lin:  mat.NewVecDense(n, nil),
	}

	byEdge := make(map[roadnet.EdgeKey][]int)
	for i, path := range ps {
		for _, key := range path.Edges() {
			byEdge[key] = append(byEdge[key], i)
		}
	}

	for key, users := range byEdge {
		e, ok := g.Edge(key.From, key.To)
		if !ok {
			return nil, fmt.Errorf("assign: objective references %w: %s", flows.ErrUnknownEdge, key)
		}
		for _, i := range users {
			p.lin.SetVec(i, p.lin.AtVec(i)+e.B)
			for _, j := range users {
				if j >= i { // SymDense stores the upper triangle
					p.quad.SetSym(i, j, p.quad.At(i, j)+2*e.A)
				}
			}
		}
	}

	for i := 0; i < n; i++ {
		p.quad.SetSym(i, i, p.quad.At(i, i)+ridge)
	}

	return p, nil
}

// minimize runs an active-set method over the non-negativity bounds.
//
// Each step solves the equality-constrained subproblem restricted to the
// free variables via its KKT system (dense LU):
//
//	Qx - λ·1 = -c,  1ᵀx = demand
//
// A free variable driven below -Tolerance is fixed at its bound; once the
// free solution is feasible, a fixed variable whose reduced multiplier
// μ = (Qx + c) - λ is below -Tolerance is released. With a convex objective
// the loop terminates at the global minimum; exhausting MaxIterations or
// hitting a singular system reports ErrNotConverged instead of returning
// the iterate.
func (p *program) minimize(demand float64, opts Options) (flows.PathFlows, error) {
	free := make([]bool, p.n)
	for i := range free {
		free[i] = true
	}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		idx := freeIndices(free)

		xf, lambda, err := p.solveKKT(idx, demand)
		if err != nil {
			return nil, err
		}

		// Fix the most negative free variable at zero, if any.
		if at := mostNegative(xf, opts.Tolerance); at >= 0 {
			free[idx[at]] = false
			continue
		}

		// Assemble the full iterate; fixed variables sit at zero.
		x := make([]float64, p.n)
		for k, i := range idx {
			x[i] = xf[k]
		}

		// Release the fixed variable with the most negative reduced
		// multiplier, if any; otherwise the KKT conditions hold.
		if at := p.worstFixed(x, lambda, free, opts.Tolerance); at >= 0 {
			free[at] = true
			continue
		}

		finalize(x, demand)

		return x, nil
	}

	return nil, fmt.Errorf("%w: active-set budget of %d exhausted", ErrNotConverged, opts.MaxIterations)
}

// solveKKT solves the equality-constrained subproblem on the free index set
// idx. Returns the free sub-vector and the conservation multiplier λ.
func (p *program) solveKKT(idx []int, demand float64) ([]float64, float64, error) {
	m := len(idx)
	kkt := mat.NewDense(m+1, m+1, nil)
	rhs := mat.NewVecDense(m+1, nil)

	for r, i := range idx {
		for c, j := range idx {
			kkt.Set(r, c, p.quad.At(i, j))
		}
		kkt.Set(r, m, -1) // -λ column of the stationarity rows
		kkt.Set(m, r, 1)  // conservation row
		rhs.SetVec(r, -p.lin.AtVec(i))
	}
	rhs.SetVec(m, demand)

	var sol mat.VecDense
	if err := sol.SolveVec(kkt, rhs); err != nil {
		return nil, 0, fmt.Errorf("%w: singular KKT system: %v", ErrNotConverged, err)
	}

	xf := make([]float64, m)
	for r := range xf {
		xf[r] = sol.AtVec(r)
	}

	return xf, sol.AtVec(m), nil
}

// worstFixed returns the fixed index with the most negative reduced
// multiplier μ_i = (Qx + c)_i - λ, or -1 if every fixed bound is optimal.
func (p *program) worstFixed(x []float64, lambda float64, free []bool, tol float64) int {
	worst, at := -tol, -1
	for i := 0; i < p.n; i++ {
		if free[i] {
			continue
		}
		grad := p.lin.AtVec(i)
		for j := 0; j < p.n; j++ {
			grad += p.quad.At(i, j) * x[j]
		}
		if mu := grad - lambda; mu < worst {
			worst, at = mu, i
		}
	}

	return at
}

// freeIndices lists the indices currently off their bound.
func freeIndices(free []bool) []int {
	idx := make([]int, 0, len(free))
	for i, ok := range free {
		if ok {
			idx = append(idx, i)
		}
	}

	return idx
}

// mostNegative returns the position of the most negative entry below -tol,
// or -1 if none.
func mostNegative(xs []float64, tol float64) int {
	worst, at := -tol, -1
	for i, v := range xs {
		if v < worst {
			worst, at = v, i
		}
	}

	return at
}

// finalize clamps sub-tolerance negative noise to zero and folds the
// conservation residual into the largest entry so the sum is exact.
func finalize(x []float64, demand float64) {
	for i, v := range x {
		if v < 0 {
			x[i] = 0
		}
	}
	if residual := demand - floats.Sum(x); residual != 0 {
		x[floats.MaxIdx(x)] += residual
	}
}
