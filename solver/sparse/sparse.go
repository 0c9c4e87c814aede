// Package sparse implements the sparse SDP solver adapter (spec §4.8),
// modeled on Mosek's lower-triangle-only PSD vectorization
// (to_vectorized_tril_indices in moseksolver.py): rather than trusting a
// block's full row-major entry list, this adapter only reads each
// matrix's lower triangle and mirrors it across the diagonal before
// handing the problem to the shared interior-point core, matching the
// convention Mosek's afeidx/varidx/f_val triples are built against.
package sparse

import (
	"context"
	"fmt"

	"github.com/polysos/sos/internal/sosopt/errs"
	"github.com/polysos/sos/internal/sosopt/ipm"
	"github.com/polysos/sos/solver"
)

// Adapter solves conic problems using the sparse (Mosek-style)
// lower-triangle cone-block convention.
type Adapter struct {
	Options ipm.Options
}

// New builds a sparse Adapter with the default iteration budget.
func New() Adapter {
	return Adapter{Options: ipm.DefaultOptions()}
}

var _ solver.Adapter = Adapter{}

func (a Adapter) Solve(ctx context.Context, args solver.Args) (solver.Result, error) {
	if len(args.QuadCost) > 0 {
		return solver.Result{}, fmt.Errorf("sparse adapter: %w", errs.SolverIncapable)
	}
	mirrored := mirrorLowerTriangle(args)
	opts := a.Options
	if opts == (ipm.Options{}) {
		opts = ipm.DefaultOptions()
	}
	return ipm.Solve(ctx, mirrored, opts)
}

// mirrorLowerTriangle rebuilds every SDP block's upper triangle from its
// lower triangle, so the solver core only ever consumes data this
// adapter itself deemed authoritative.
func mirrorLowerTriangle(args solver.Args) solver.Args {
	out := args
	out.SDPBlocks = make([]solver.SDPBlock, len(args.SDPBlocks))
	for bi, b := range args.SDPBlocks {
		entries := make([]solver.AffineEntry, len(b.Entries))
		for r := 0; r < b.Size; r++ {
			for c := 0; c < b.Size; c++ {
				if r >= c {
					entries[r*b.Size+c] = b.Entries[r*b.Size+c]
				} else {
					entries[r*b.Size+c] = b.Entries[c*b.Size+r]
				}
			}
		}
		out.SDPBlocks[bi] = solver.SDPBlock{Size: b.Size, Entries: entries}
	}
	return out
}
