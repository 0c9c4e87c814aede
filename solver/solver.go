// Package solver defines the conic solver adapter boundary (spec §4.8):
// the dense/sparse cone-block data an Adapter consumes and the
// Found/NotFound result shape it returns. Concrete adapters live in
// solver/dense (grounded on CVXOPT's stacked dense cone-block calling
// convention) and solver/sparse (grounded on Mosek's lower-triangle-only
// PSD vectorization); this package only fixes the contract between them
// and the conic assembler, the same role gnark's frontend.Builder
// interface plays between frontend/compile.go and a concrete backend.
package solver

import "context"

// EqualityRow is one flattened equality constraint: dot(Coeffs, x) +
// Const == 0.
type EqualityRow struct {
	Coeffs []float64
	Const  float64
}

// SDPBlock is one flattened positive-semidefinite cone block: a Size x
// Size symmetric matrix whose (row-major) entries are each affine in x.
type SDPBlock struct {
	Size    int
	Entries []AffineEntry // row-major, length Size*Size
}

// AffineEntry is one flattened SDP matrix entry: dot(Coeffs, x) + Const.
type AffineEntry struct {
	Coeffs []float64
	Const  float64
}

// Args is the solver-facing view of an assembled conic problem: minimize
// dot(LinCost, x) subject to Equalities[k].Coeffs.x + Const == 0 for every
// k and SDPBlocks[k] being PSD for every k, over x in R^NumVars. QuadCost
// is non-empty only when a caller reaches an Adapter without going through
// the conic.Problem.ToLinearCost rewrite (spec §4.7 step 5); neither
// adapter in this module accepts it natively, so both reject it with
// errs.SolverIncapable.
type Args struct {
	NumVars    int
	LinCost    []float64
	QuadCost   []AffineEntry
	Equalities []EqualityRow
	SDPBlocks  []SDPBlock
}

// Found is a successful solve: X is the primal point, Cost its objective
// value, Iterations the interior-point step count taken, Status a
// human-readable terminal status ("optimal" on every convergent path this
// module's interior-point core takes), IsSuccessful the machine-checkable
// flag spec §6 requires callers to branch on instead of parsing Status.
type Found struct {
	X            []float64
	Cost         float64
	Iterations   int
	Status       string
	IsSuccessful bool
}

// NotFound reports why a solve failed to converge.
type NotFound struct {
	Status string
}

// Result is the outcome of Adapter.Solve: exactly one of Found, NotFound
// is non-nil.
type Result struct {
	Found    *Found
	NotFound *NotFound
}

// Adapter solves one conic feasibility/optimization problem.
type Adapter interface {
	Solve(ctx context.Context, args Args) (Result, error)
}

// Fake is a scripted Adapter for tests: it ignores args and returns a
// prescribed Result, letting tests pin down assembly/back-substitution
// wiring independent of whether a real interior-point method converges.
type Fake struct {
	Result Result
	Err    error
}

func (f Fake) Solve(ctx context.Context, args Args) (Result, error) {
	return f.Result, f.Err
}
