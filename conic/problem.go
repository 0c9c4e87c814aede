// Package conic implements the conic problem assembler and result
// back-substitution (spec §4.7/§4.9): it gathers every cone.Primitive a
// problem has accumulated (plus any auxiliary equations the sparse SMR
// path recorded on State), flattens them against State's index registry
// into the dense/row form a solver.Adapter consumes, and slices a
// returned solution vector back into named decision-variable values. This
// is the conic-programming analog of gnark's compile step turning a
// circuit's constraint list into the backend's concrete R1CS/PLONK
// system (frontend/compile.go).
package conic

import (
	"fmt"

	"github.com/polysos/sos/cone"
	"github.com/polysos/sos/constraint"
	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/internal/sosopt/errs"
	"github.com/polysos/sos/poly"
)

// Problem bundles a linear cost and the cone primitives it is subject to,
// already tied to the State whose index registry defines the flat
// decision-variable vector both operate over. QuadCost, if present, is a
// vector q(x) whose squared Euclidean norm adds to the objective (spec
// §4.7 step 5, §6's quad_cost); it is only solved directly by an adapter
// that declares native quadratic-cost support (none in this module), so
// Solve always rewrites it away via ToLinearCost before assembling Args.
type Problem struct {
	State      *dvar.State
	LinCost    poly.AffineExpr
	QuadCost   []poly.AffineExpr
	Primitives []cone.Primitive
}

// WithQuadCost attaches a quadratic cost vector to p: the objective
// becomes LinCost(x) + ||quad||^2. Mirrors the Python original's
// quad_cost argument to assemble_problem.
func (p Problem) WithQuadCost(quad ...poly.AffineExpr) Problem {
	p.QuadCost = append([]poly.AffineExpr{}, quad...)
	return p
}

// Assemble builds a Problem from a linear cost and a set of primitives,
// additionally lowering every auxiliary equation State accumulated (from
// sparse Gram factorization) into its own equality primitive so the
// solver sees a single flat primitive list.
func Assemble(state *dvar.State, linCost poly.AffineExpr, primitives ...cone.Primitive) Problem {
	all := append([]cone.Primitive{}, primitives...)
	for i, eq := range state.AuxiliaryEquations() {
		p, ok := eq.(poly.Polynomial)
		if !ok {
			continue
		}
		all = append(all, constraint.NewZeroPolynomial(fmt.Sprintf("aux_eq_%d", i), p))
	}
	return Problem{State: state, LinCost: linCost, Primitives: all}
}

// toLinearCostVector flattens LinCost into a dense vector over State's
// full index range, one coefficient per decision-variable component. It
// assumes QuadCost has already been rewritten away (see ToLinearCost).
func (p Problem) toLinearCostVector() ([]float64, error) {
	vec := make([]float64, p.State.NIndices())
	for _, t := range p.LinCost.Components() {
		r, err := p.State.RangeOf(t.Symbol)
		if err != nil {
			return nil, fmt.Errorf("linear cost: %w", err)
		}
		if t.Component < 0 || t.Component >= r.Len() {
			return nil, fmt.Errorf("linear cost: component %d out of range for %q: %w", t.Component, t.Symbol, errs.ShapeMismatch)
		}
		vec[r.Start+t.Component] += t.Coeff
	}
	return vec, nil
}

// ToLinearCost performs the quadratic-to-linear-cost rewrite (spec §4.7
// step 5): it introduces a fresh epigraph scalar t, lifts the
// constraint t >= ||QuadCost(x)||^2 as the positive semidefinite block
//
//	[[ t,       QuadCost^T ],
//	 [ QuadCost, I          ]]
//
// (the Schur-complement embedding: that block is PSD iff
// t - ||QuadCost||^2 >= 0), and replaces LinCost with LinCost + t.
// Because the assembler always minimizes LinCost, t is driven down to
// exactly ||QuadCost(x)||^2 at the optimum, so the rewrite is exact, not
// an approximation. A Problem with
// no QuadCost is returned unchanged. Neither solver adapter in this
// module accepts a native quadratic cost, so Solve calls this
// unconditionally before assembling Args.
func (p Problem) ToLinearCost(state *dvar.State) (*Problem, error) {
	if len(p.QuadCost) == 0 {
		out := p
		return &out, nil
	}

	t := dvar.NewAuxiliarySymbol("quad_cost_epigraph")
	if err := state.Allocate(t, 1); err != nil {
		return nil, fmt.Errorf("quadratic cost rewrite: %w", err)
	}
	tExpr := poly.VarAffine(t, 0)

	size := len(p.QuadCost) + 1
	matrix := make([]poly.AffineExpr, size*size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			switch {
			case i == 0 && j == 0:
				matrix[i*size+j] = tExpr
			case i == 0:
				matrix[i*size+j] = p.QuadCost[j-1]
			case j == 0:
				matrix[i*size+j] = p.QuadCost[i-1]
			case i == j:
				matrix[i*size+j] = poly.ConstAffine(1)
			default:
				matrix[i*size+j] = poly.ConstAffine(0)
			}
		}
	}
	soc := cone.SDP{NameVal: "quad_cost_soc", SizeVal: size, Matrix: matrix}

	out := Problem{
		State:      state,
		LinCost:    p.LinCost.Add(tExpr),
		Primitives: append(append([]cone.Primitive{}, p.Primitives...), soc),
	}
	return &out, nil
}

// ToAffineRow flattens a single AffineExpr into the dense row form a
// solver adapter expects (a coefficient per index, plus the constant
// term kept separately).
func (p Problem) ToAffineRow(e poly.AffineExpr) (AffineRow, error) {
	row := make([]float64, p.State.NIndices())
	for _, t := range e.Components() {
		r, err := p.State.RangeOf(t.Symbol)
		if err != nil {
			return AffineRow{}, fmt.Errorf("affine row: %w", err)
		}
		if t.Component < 0 || t.Component >= r.Len() {
			return AffineRow{}, fmt.Errorf("affine row: component %d out of range for %q: %w", t.Component, t.Symbol, errs.ShapeMismatch)
		}
		row[r.Start+t.Component] += t.Coeff
	}
	return AffineRow{Coeffs: row, Const: e.Const}, nil
}

// AffineRow is an AffineExpr flattened against a State's index registry:
// value(x) = dot(Coeffs, x) + Const.
type AffineRow struct {
	Coeffs []float64
	Const  float64
}

// SplitSolution slices a flat solution vector back into one slice per
// allocated symbol (spec §4.9's back-substitution), decision and
// auxiliary alike. flat must have length State.NIndices().
func SplitSolution(state *dvar.State, flat []float64) (map[dvar.Symbol][]float64, error) {
	if len(flat) != state.NIndices() {
		return nil, fmt.Errorf("split solution: expected %d values, got %d: %w", state.NIndices(), len(flat), errs.ShapeMismatch)
	}
	out := make(map[dvar.Symbol][]float64, len(state.Symbols()))
	for _, sym := range state.Symbols() {
		r, err := state.RangeOf(sym)
		if err != nil {
			return nil, err
		}
		out[sym] = append([]float64{}, flat[r.Start:r.Stop]...)
	}
	return out, nil
}

// NamedValues projects a symbol-keyed solution map down to user-visible
// decision variables only, dropping internally synthesized auxiliary
// symbols (sparse-SMR slack, null-space parameters) and keying by name.
func NamedValues(values map[dvar.Symbol][]float64) map[string][]float64 {
	out := make(map[string][]float64, len(values))
	for sym, v := range values {
		if sym.Kind() == dvar.Decision {
			out[sym.Name()] = v
		}
	}
	return out
}
