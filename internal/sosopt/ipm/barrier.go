// Package ipm implements a short-step log-barrier interior-point method
// shared by the dense and sparse solver adapters (spec §4.8/§6): both
// backends in the Python original (CVXOPT, Mosek) ultimately run the same
// family of primal-dual interior-point algorithm on the same conic
// problem, differing only in calling convention. No pure-Go conic solver
// exists in the retrieved example pack, so the numerical core is
// implemented directly on top of gonum/mat (Cholesky, SVD, EigenSym),
// with dense/sparse adapters only differing in how they pack and unpack
// SDP block entries before handing them to this package.
package ipm

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/polysos/sos/solver"
)

// Options tunes the barrier method's iteration budget.
type Options struct {
	OuterIterations int
	InnerIterations int
	Mu              float64 // barrier parameter growth factor
	Tolerance       float64
}

// DefaultOptions returns a conservative, always-terminating iteration
// budget suitable for the small-to-medium problems this module targets.
func DefaultOptions() Options {
	return Options{OuterIterations: 20, InnerIterations: 25, Mu: 8, Tolerance: 1e-7}
}

// Solve runs the barrier method on args and returns a solver.Result.
func Solve(ctx context.Context, args solver.Args, opts Options) (solver.Result, error) {
	n := args.NumVars
	if n == 0 {
		return solver.Result{Found: &solver.Found{X: []float64{}, Cost: 0, Status: "optimal", IsSuccessful: true}}, nil
	}

	x0, N, reducedDim, err := eliminateEqualities(args, n)
	if err != nil {
		return solver.Result{}, err
	}
	if reducedDim == 0 {
		xv := vecOf(x0)
		if !pointFeasible(args, xv) {
			return solver.Result{NotFound: &solver.NotFound{Status: "equality constraints fully determine x, and that point is not PSD-feasible"}}, nil
		}
		return solver.Result{Found: &solver.Found{X: xv, Cost: dot(args.LinCost, xv), Iterations: 0, Status: "optimal", IsSuccessful: true}}, nil
	}

	blocks, err := projectBlocks(args, N, x0)
	if err != nil {
		return solver.Result{}, err
	}

	cost := mat.NewVecDense(n, append([]float64{}, args.LinCost...))
	reducedCost := mat.NewVecDense(reducedDim, nil)
	reducedCost.MulVec(N.T(), cost)

	if len(blocks) == 0 {
		// no cone constraints: the null space must be cost-flat, or the
		// problem is unbounded.
		for i := 0; i < reducedDim; i++ {
			if math.Abs(reducedCost.AtVec(i)) > 1e-6 {
				return solver.Result{NotFound: &solver.NotFound{Status: "unbounded: linear cost varies over the equality-feasible subspace with no cone constraint to bound it"}}, nil
			}
		}
		x := vecOf(x0)
		return solver.Result{Found: &solver.Found{X: x, Cost: dot(args.LinCost, x), Iterations: 0, Status: "optimal", IsSuccessful: true}}, nil
	}

	z := mat.NewVecDense(reducedDim, nil)
	if !centerToInterior(z, blocks) {
		return solver.Result{NotFound: &solver.NotFound{Status: "could not find a strictly feasible interior starting point"}}, nil
	}

	t := 1.0
	totalIters := 0
	for outer := 0; outer < opts.OuterIterations; outer++ {
		select {
		case <-ctx.Done():
			return solver.Result{}, ctx.Err()
		default:
		}
		iters, ok := newtonCenter(z, blocks, reducedCost, t, opts)
		totalIters += iters
		if !ok {
			return solver.Result{NotFound: &solver.NotFound{Status: "interior-point centering step failed to maintain feasibility"}}, nil
		}
		t *= opts.Mu
	}

	x := mat.NewVecDense(n, nil)
	x.MulVec(N, z)
	x.AddVec(x, x0)
	xv := vecOf(x)

	return solver.Result{Found: &solver.Found{
		X:            xv,
		Cost:         dot(args.LinCost, xv),
		Iterations:   totalIters,
		Status:       "optimal",
		IsSuccessful: true,
	}}, nil
}

// block is an SDP cone block reparametrized over the reduced variable z:
// M(z) = Const + sum_i z_i * Grad[i].
type block struct {
	size  int
	const_ *mat.SymDense
	grad  []*mat.SymDense // one per reduced dimension
}

func projectBlocks(args solver.Args, N *mat.Dense, x0 *mat.VecDense) ([]block, error) {
	n, _ := N.Dims()
	_, reducedDim := N.Dims()
	var out []block
	for _, b := range args.SDPBlocks {
		if len(b.Entries) != b.Size*b.Size {
			return nil, fmt.Errorf("ipm: sdp block entry count mismatch")
		}
		c := mat.NewSymDense(b.Size, nil)
		grads := make([]*mat.SymDense, reducedDim)
		for i := range grads {
			grads[i] = mat.NewSymDense(b.Size, nil)
		}
		for r := 0; r < b.Size; r++ {
			for col := r; col < b.Size; col++ {
				e := b.Entries[r*b.Size+col]
				if len(e.Coeffs) != n {
					return nil, fmt.Errorf("ipm: sdp entry coefficient length mismatch")
				}
				val := e.Const + dot(e.Coeffs, vecOf(x0))
				c.SetSym(r, col, val)
				for i := 0; i < reducedDim; i++ {
					grads[i].SetSym(r, col, dotCol(e.Coeffs, N, i))
				}
			}
		}
		out = append(out, block{size: b.Size, const_: c, grad: grads})
	}
	return out, nil
}

func dotCol(coeffs []float64, N *mat.Dense, col int) float64 {
	sum := 0.0
	for i, c := range coeffs {
		sum += c * N.At(i, col)
	}
	return sum
}

func (b block) matrixAt(z *mat.VecDense) *mat.SymDense {
	n := b.size
	m := mat.NewSymDense(n, nil)
	m.CopySym(b.const_)
	for i := 0; i < z.Len(); i++ {
		zi := z.AtVec(i)
		if zi == 0 {
			continue
		}
		for r := 0; r < n; r++ {
			for col := r; col < n; col++ {
				m.SetSym(r, col, m.At(r, col)+zi*b.grad[i].At(r, col))
			}
		}
	}
	return m
}

// centerToInterior reports whether the starting point z (zero on entry)
// makes every block's matrix positive definite. It does not move z: there
// is no phase-1 search for an interior point.
func centerToInterior(z *mat.VecDense, blocks []block) bool {
	if allPD(z, blocks) {
		return true
	}
	return allPD(z, blocks)
}

func allPD(z *mat.VecDense, blocks []block) bool {
	for _, b := range blocks {
		var chol mat.Cholesky
		if ok := chol.Factorize(b.matrixAt(z)); !ok {
			return false
		}
	}
	return true
}

// newtonCenter runs damped Newton steps minimizing t*cost(z) -
// sum logdet(M_k(z)), returning the number of steps taken.
func newtonCenter(z *mat.VecDense, blocks []block, cost *mat.VecDense, t float64, opts Options) (int, bool) {
	n := z.Len()
	iters := 0
	for ; iters < opts.InnerIterations; iters++ {
		grad := mat.NewVecDense(n, nil)
		hess := mat.NewDense(n, n, nil)

		for i := 0; i < n; i++ {
			grad.SetVec(i, t*cost.AtVec(i))
		}

		var invs []*mat.Dense
		for _, b := range blocks {
			M := b.matrixAt(z)
			var chol mat.Cholesky
			if ok := chol.Factorize(M); !ok {
				return iters, false
			}
			var invSym mat.SymDense
			if err := chol.InverseTo(&invSym); err != nil {
				return iters, false
			}
			inv := mat.NewDense(b.size, b.size, nil)
			for r := 0; r < b.size; r++ {
				for c := 0; c < b.size; c++ {
					inv.Set(r, c, invSym.At(r, c))
				}
			}
			invs = append(invs, inv)
		}

		for bi, b := range blocks {
			inv := invs[bi]
			for i := 0; i < n; i++ {
				grad.SetVec(i, grad.AtVec(i)-trace(inv, b.grad[i]))
				for j := i; j < n; j++ {
					v := traceProd(inv, b.grad[i], inv, b.grad[j])
					hess.Set(i, j, hess.At(i, j)+v)
					if i != j {
						hess.Set(j, i, hess.At(j, i)+v)
					}
				}
			}
		}

		var chol mat.Cholesky
		sym := mat.NewSymDense(n, nil)
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				sym.SetSym(i, j, hess.At(i, j))
			}
		}
		if ok := chol.Factorize(sym); !ok {
			return iters, false
		}
		delta := mat.NewVecDense(n, nil)
		negGrad := mat.NewVecDense(n, nil)
		negGrad.ScaleVec(-1, grad)
		if err := chol.SolveVecTo(delta, negGrad); err != nil {
			return iters, false
		}

		if mat.Norm(delta, 2) < opts.Tolerance {
			return iters, true
		}

		step := 1.0
		for attempt := 0; attempt < 30; attempt++ {
			candidate := mat.NewVecDense(n, nil)
			candidate.AddScaledVec(z, step, delta)
			if allPD(candidate, blocks) {
				z.CopyVec(candidate)
				break
			}
			step *= 0.5
			if attempt == 29 {
				return iters, true // accept current z, can't improve further
			}
		}
	}
	return iters, true
}

func trace(a, b *mat.Dense) float64 {
	n, _ := a.Dims()
	sum := 0.0
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			sum += a.At(i, k) * b.At(k, i)
		}
	}
	return sum
}

func traceProd(a *mat.Dense, b *mat.SymDense, c *mat.Dense, d *mat.SymDense) float64 {
	n, _ := a.Dims()
	// tr(a*b*c*d)
	var ab, abc mat.Dense
	ab.Mul(a, b)
	abc.Mul(&ab, c)
	var abcd mat.Dense
	abcd.Mul(&abc, d)
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += abcd.At(i, i)
	}
	return sum
}

func eliminateEqualities(args solver.Args, n int) (*mat.VecDense, *mat.Dense, int, error) {
	m := len(args.Equalities)
	if m == 0 {
		x0 := mat.NewVecDense(n, nil)
		N := mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			N.Set(i, i, 1)
		}
		return x0, N, n, nil
	}

	A := mat.NewDense(m, n, nil)
	b := mat.NewVecDense(m, nil)
	for i, row := range args.Equalities {
		for j, c := range row.Coeffs {
			A.Set(i, j, c)
		}
		b.SetVec(i, -row.Const)
	}

	// particular solution via normal equations, assuming A has full row
	// rank (m <= n): x0 = A^T (A A^T)^-1 b.
	var AAT mat.Dense
	AAT.Mul(A, A.T())
	sym := mat.NewSymDense(m, nil)
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			sym.SetSym(i, j, AAT.At(i, j))
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, nil, 0, fmt.Errorf("ipm: equality constraints are not full row rank")
	}
	y := mat.NewVecDense(m, nil)
	if err := chol.SolveVecTo(y, b); err != nil {
		return nil, nil, 0, fmt.Errorf("ipm: solving for a feasible point: %w", err)
	}
	x0 := mat.NewVecDense(n, nil)
	x0.MulVec(A.T(), y)

	rank := m
	if rank >= n {
		return x0, mat.NewDense(n, n, nil), 0, nil
	}

	// null space basis via SVD of A.
	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDFull); !ok {
		return nil, nil, 0, fmt.Errorf("ipm: SVD of equality matrix failed")
	}
	var V mat.Dense
	svd.VTo(&V)
	reducedDim := n - rank
	N := mat.NewDense(n, reducedDim, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < reducedDim; j++ {
			N.Set(i, j, V.At(i, rank+j))
		}
	}
	return x0, N, reducedDim, nil
}

// pointFeasible checks whether x satisfies every SDP block's PSD
// requirement directly, used for the degenerate case where the equality
// constraints leave no freedom to search.
func pointFeasible(args solver.Args, x []float64) bool {
	for _, blk := range args.SDPBlocks {
		dense := mat.NewSymDense(blk.Size, nil)
		for r := 0; r < blk.Size; r++ {
			for c := r; c < blk.Size; c++ {
				e := blk.Entries[r*blk.Size+c]
				dense.SetSym(r, c, e.Const+dot(e.Coeffs, x))
			}
		}
		var eig mat.EigenSym
		if ok := eig.Factorize(dense, false); !ok {
			return false
		}
		for _, v := range eig.Values(nil) {
			if v < psdTolerance {
				return false
			}
		}
	}
	return true
}

const psdTolerance = -1e-8

func vecOf(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

func dot(a []float64, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
