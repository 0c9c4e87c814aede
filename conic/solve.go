package conic

import (
	"context"
	"fmt"

	"github.com/polysos/sos/cone"
	"github.com/polysos/sos/internal/sosopt/errs"
	"github.com/polysos/sos/internal/sosopt/logger"
	"github.com/polysos/sos/solver"
)

// ToArgs flattens p into the solver-facing Args form. Any QuadCost still
// present (a caller that bypassed Solve/ToLinearCost) is flattened into
// Args.QuadCost as-is, so an adapter reached this way still has something
// concrete to reject with errs.SolverIncapable.
func (p Problem) ToArgs() (solver.Args, error) {
	linCost, err := p.toLinearCostVector()
	if err != nil {
		return solver.Args{}, err
	}

	args := solver.Args{NumVars: p.State.NIndices(), LinCost: linCost}

	for _, q := range p.QuadCost {
		row, err := p.ToAffineRow(q)
		if err != nil {
			return solver.Args{}, err
		}
		args.QuadCost = append(args.QuadCost, solver.AffineEntry{Coeffs: row.Coeffs, Const: row.Const})
	}

	for _, prim := range p.Primitives {
		switch prim.Kind() {
		case cone.KindEquality:
			for _, a := range prim.Flatten() {
				row, err := p.ToAffineRow(a)
				if err != nil {
					return solver.Args{}, err
				}
				args.Equalities = append(args.Equalities, solver.EqualityRow{Coeffs: row.Coeffs, Const: row.Const})
			}
		case cone.KindSDP:
			entries := make([]solver.AffineEntry, 0, prim.Size()*prim.Size())
			for _, a := range prim.Flatten() {
				row, err := p.ToAffineRow(a)
				if err != nil {
					return solver.Args{}, err
				}
				entries = append(entries, solver.AffineEntry{Coeffs: row.Coeffs, Const: row.Const})
			}
			args.SDPBlocks = append(args.SDPBlocks, solver.SDPBlock{Size: prim.Size(), Entries: entries})
		case cone.KindLinear:
			// reserved cone (DESIGN.md Open Question 1): neither adapter
			// accepts linear-inequality data, spec §4.8/§7.
			return solver.Args{}, fmt.Errorf("assemble: linear-inequality primitive %q: %w", prim.Name(), errs.SolverIncapable)
		default:
			return solver.Args{}, fmt.Errorf("assemble: %w", errs.SolverIncapable)
		}
	}

	return args, nil
}

// Solve rewrites away any quadratic cost (spec §4.7 step 5), assembles
// the result, hands it to adapter, and back-substitutes a found solution
// into a name-keyed value map of the decision (non-auxiliary) symbols. A
// NotFound result is reported as errs.SolverFailed.
func Solve(ctx context.Context, p Problem, adapter solver.Adapter) (map[string][]float64, *solver.Found, error) {
	rewritten, err := p.ToLinearCost(p.State)
	if err != nil {
		return nil, nil, err
	}
	p = *rewritten

	args, err := p.ToArgs()
	if err != nil {
		return nil, nil, err
	}

	logger.Logger().Debug().
		Int("num_vars", args.NumVars).
		Int("num_equalities", len(args.Equalities)).
		Int("num_sdp_blocks", len(args.SDPBlocks)).
		Msg("dispatching conic problem to solver adapter")

	result, err := adapter.Solve(ctx, args)
	if err != nil {
		return nil, nil, fmt.Errorf("solve: %w", err)
	}
	if result.Found == nil {
		status := "unspecified"
		if result.NotFound != nil {
			status = result.NotFound.Status
		}
		return nil, nil, fmt.Errorf("solve: %s: %w", status, errs.SolverFailed)
	}

	values, err := SplitSolution(p.State, result.Found.X)
	if err != nil {
		return nil, nil, err
	}
	return NamedValues(values), result.Found, nil
}
