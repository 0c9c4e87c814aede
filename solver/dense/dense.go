// Package dense implements the dense cone-block solver adapter (spec
// §4.8), modeled on CVXOPT's calling convention: every SDP block is
// passed as a full, redundant row-major matrix (Gs/hs in cvxoptsolver.py
// terms) rather than a lower-triangle-only vectorization. That
// convention maps directly onto solver.Args as given, so this adapter is
// a thin pass-through to the shared interior-point core in
// internal/sosopt/ipm.
package dense

import (
	"context"
	"fmt"

	"github.com/polysos/sos/internal/sosopt/errs"
	"github.com/polysos/sos/internal/sosopt/ipm"
	"github.com/polysos/sos/solver"
)

// Adapter solves conic problems using the dense (CVXOPT-style) cone-block
// convention.
type Adapter struct {
	Options ipm.Options
}

// New builds a dense Adapter with the default iteration budget.
func New() Adapter {
	return Adapter{Options: ipm.DefaultOptions()}
}

var _ solver.Adapter = Adapter{}

func (a Adapter) Solve(ctx context.Context, args solver.Args) (solver.Result, error) {
	if len(args.QuadCost) > 0 {
		return solver.Result{}, fmt.Errorf("dense adapter: %w", errs.SolverIncapable)
	}
	opts := a.Options
	if opts == (ipm.Options{}) {
		opts = ipm.DefaultOptions()
	}
	return ipm.Solve(ctx, args, opts)
}
