// Package poly implements the polynomial IR facade (spec §4.1): the
// algebra engine that every downstream package (decisionpoly, smr,
// constraint, conic) composes against instead of reimplementing monomial
// or coefficient bookkeeping. The design mirrors gnark's own split between
// a plain value representation and a mutation API operating on it (see
// frontend/r1cs/api.go): poly.Polynomial is the value, the functions in
// this package are the "builder" methods a circuit.Define would call.
//
// Coefficients are never bare float64 for long: every monomial coefficient
// is a poly.AffineExpr, an expression affine in zero or more dvar.Symbol
// components. A plain numeric polynomial is simply one whose AffineExprs
// all carry zero terms. This keeps one representation for "polynomial in
// x with numeric coefficients" (a domain inequality) and "polynomial in x
// with decision-variable coefficients" (a decision polynomial variable),
// which is exactly what spec §3's data model asks for.
package poly

import "sync/atomic"

var nextVarID uint64

// Var is an indeterminate of the polynomial ring (the "x" spec.md talks
// about), distinct from a dvar.Symbol: Vars never get an index range in
// State, they only ever appear as monomial exponents.
type Var struct {
	name string
	id   uint64
}

// NewVar allocates a fresh indeterminate. Two Vars built from the same
// name are distinct unless they are literally the same value, matching
// dvar.Symbol's identity-by-construction discipline.
func NewVar(name string) Var {
	return Var{name: name, id: atomic.AddUint64(&nextVarID, 1)}
}

// NewVars allocates n fresh indeterminates named prefix0..prefix(n-1).
func NewVars(prefix string, n int) []Var {
	out := make([]Var, n)
	for i := range out {
		out[i] = NewVar(varName(prefix, i))
	}
	return out
}

func varName(prefix string, i int) string {
	digits := [...]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9'}
	if i < 10 {
		return prefix + string(digits[i])
	}
	// rare path, simple recursive base-10 rendering
	return varName(prefix, i/10) + string(digits[i%10])
}

// Name returns the declared name.
func (v Var) Name() string { return v.name }

// String renders the variable for logging/debugging.
func (v Var) String() string { return v.name }
