// Package errs enumerates the error kinds of the constraint-lowering
// pipeline's error taxonomy (spec §7). Call sites wrap one of these
// sentinels with fmt.Errorf("...: %w", errs.ShapeMismatch) so callers can
// dispatch on kind via errors.Is, following the wrapped-error idiom gnark
// itself uses in frontend/compile.go.
package errs

import "errors"

var (
	// ConstraintIncomplete: a constraint constructor was called with
	// neither a greater-than-zero nor a less-than-zero side.
	ConstraintIncomplete = errors.New("constraint incomplete: neither greater_than_zero nor less_than_zero given")

	// UnknownSymbol: solver-args assembly tried to look up an index range
	// for a decision symbol never allocated in State.
	UnknownSymbol = errors.New("unknown symbol: not allocated in this state")

	// ShapeMismatch: matrix constraint on a non-square condition, or a
	// vector stack with incompatible sizes.
	ShapeMismatch = errors.New("shape mismatch")

	// DegreeInferenceFailed: the degree of an expression could not be
	// bounded (a symbolic exponent was encountered).
	DegreeInferenceFailed = errors.New("degree inference failed")

	// SolverIncapable: the selected adapter cannot accept a quadratic cost
	// (and the assembler was not instructed to rewrite it), or cannot
	// accept linear-inequality data.
	SolverIncapable = errors.New("solver incapable of the requested cone data")

	// SolverFailed: the adapter returned SolutionNotFound.
	SolverFailed = errors.New("solver failed to find a solution")

	// ConfigConflict: sparse SMR was requested for a problem the engine
	// cannot sparsify.
	ConfigConflict = errors.New("sparse SMR requested but not applicable")

	// InfeasibleSubstitution: a fully-substituted cone primitive evaluated
	// to a violated numeric constraint.
	InfeasibleSubstitution = errors.New("infeasible substitution")

	// SymbolAlreadyAllocated: Allocate was called twice for the same symbol.
	SymbolAlreadyAllocated = errors.New("symbol already allocated")
)
