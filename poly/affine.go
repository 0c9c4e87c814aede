package poly

import (
	"sort"

	"github.com/polysos/sos/dvar"
)

// Term is one addend of an AffineExpr: coeff * symbol[component].
type Term struct {
	Symbol    dvar.Symbol
	Component int
	Coeff     float64
}

type termKey struct {
	sym dvar.Symbol
	idx int
}

// AffineExpr is a real-valued expression affine in a set of decision
// symbol components: const + sum(coeff_k * symbol_k[component_k]). This is
// the real-arithmetic analog of gnark's compiled.LinExp (frontend/r1cs/api.go),
// trading modular big.Int coefficients for float64 ones.
type AffineExpr struct {
	Const float64
	Terms []Term
}

// ConstAffine builds a constant AffineExpr.
func ConstAffine(c float64) AffineExpr { return AffineExpr{Const: c} }

// VarAffine builds the AffineExpr referencing a single decision symbol
// component with unit coefficient.
func VarAffine(sym dvar.Symbol, component int) AffineExpr {
	return AffineExpr{Terms: []Term{{Symbol: sym, Component: component, Coeff: 1}}}
}

// IsConstant reports whether e has no decision-variable terms (after
// normalization zero-coefficient terms don't count).
func (e AffineExpr) IsConstant() bool {
	return len(e.normalizedTerms()) == 0
}

func (e AffineExpr) normalizedTerms() []Term {
	acc := make(map[termKey]float64, len(e.Terms))
	order := make([]termKey, 0, len(e.Terms))
	for _, t := range e.Terms {
		k := termKey{t.Symbol, t.Component}
		if _, ok := acc[k]; !ok {
			order = append(order, k)
		}
		acc[k] += t.Coeff
	}
	out := make([]Term, 0, len(order))
	for _, k := range order {
		c := acc[k]
		if c == 0 {
			continue
		}
		out = append(out, Term{Symbol: k.sym, Component: k.idx, Coeff: c})
	}
	return out
}

// Add returns e + other, combining terms referencing the same
// symbol/component.
func (e AffineExpr) Add(other AffineExpr) AffineExpr {
	merged := append(append([]Term{}, e.Terms...), other.Terms...)
	return AffineExpr{Const: e.Const + other.Const, Terms: merged}.normalize()
}

// Sub returns e - other.
func (e AffineExpr) Sub(other AffineExpr) AffineExpr {
	return e.Add(other.Scale(-1))
}

// Neg returns -e.
func (e AffineExpr) Neg() AffineExpr { return e.Scale(-1) }

// Scale returns c*e.
func (e AffineExpr) Scale(c float64) AffineExpr {
	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = Term{Symbol: t.Symbol, Component: t.Component, Coeff: t.Coeff * c}
	}
	return AffineExpr{Const: e.Const * c, Terms: terms}
}

func (e AffineExpr) normalize() AffineExpr {
	return AffineExpr{Const: e.Const, Terms: e.normalizedTerms()}
}

// mulAffine multiplies a by b where one side is a plain constant. Callers
// must have already checked that at least one side of the product is
// constant (poly.Mul enforces the "stay affine in decision variables"
// invariant); this helper assumes it.
func mulAffine(a, b AffineExpr) AffineExpr {
	switch {
	case a.IsConstant() && b.IsConstant():
		return ConstAffine(a.Const * b.Const)
	case a.IsConstant():
		return b.Scale(a.Const)
	case b.IsConstant():
		return a.Scale(b.Const)
	default:
		panic("poly: product of two non-constant affine expressions is not affine in decision variables")
	}
}

// Components returns e's normalized, deduplicated, zero-stripped terms.
func (e AffineExpr) Components() []Term { return e.normalizedTerms() }

// Symbols returns the distinct decision symbols referenced by e, sorted by
// name for deterministic iteration.
func (e AffineExpr) Symbols() []dvar.Symbol {
	seen := map[dvar.Symbol]bool{}
	var out []dvar.Symbol
	for _, t := range e.normalizedTerms() {
		if !seen[t.Symbol] {
			seen[t.Symbol] = true
			out = append(out, t.Symbol)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Eval substitutes every symbol component found in values and returns the
// resulting numeric value. Eval panics if any term remains unresolved;
// EvalPartial instead leaves such terms in the residual sum, so callers
// that may hold a partial substitution should use EvalPartial and check
// IsConstant.
func (e AffineExpr) Eval(values map[dvar.Symbol][]float64) float64 {
	r := e.EvalPartial(values)
	if !r.IsConstant() {
		panic("poly: Eval called with a partial substitution; use EvalPartial")
	}
	return r.Const
}

// EvalPartial substitutes every symbol component found in values, folding
// resolved terms into the constant and leaving unresolved ones in place.
func (e AffineExpr) EvalPartial(values map[dvar.Symbol][]float64) AffineExpr {
	out := AffineExpr{Const: e.Const}
	for _, t := range e.normalizedTerms() {
		if vec, ok := values[t.Symbol]; ok && t.Component < len(vec) {
			out.Const += t.Coeff * vec[t.Component]
			continue
		}
		out.Terms = append(out.Terms, t)
	}
	return out
}
