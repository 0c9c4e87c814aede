package cone

import (
	"fmt"

	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/internal/sosopt/errs"
	"github.com/polysos/sos/poly"
)

// Equality is a KindEquality Primitive: every component of Vector must
// equal zero. It backs the zero-polynomial constraint (spec §4.4),
// including the auxiliary equations conic.Assemble lowers.
type Equality struct {
	NameVal string
	Vector  []poly.AffineExpr
}

var _ Primitive = Equality{}

func (e Equality) Name() string { return e.NameVal }
func (e Equality) Kind() Kind   { return KindEquality }
func (e Equality) Size() int    { return 0 }
func (e Equality) Flatten() []poly.AffineExpr {
	return append([]poly.AffineExpr{}, e.Vector...)
}

func (e Equality) DecisionVariableSymbols() []dvar.Symbol {
	seen := map[dvar.Symbol]bool{}
	var out []dvar.Symbol
	for _, a := range e.Vector {
		for _, s := range a.Symbols() {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// Eval substitutes values into e's vector. Components that fully resolve
// to a nonzero numeric value make the primitive infeasible. If every
// component resolves (to zero), Eval reports ok=false: nothing is left to
// hand to the solver.
func (e Equality) Eval(values map[dvar.Symbol][]float64) (Equality, bool, error) {
	residual := make([]poly.AffineExpr, 0, len(e.Vector))
	for i, a := range e.Vector {
		r := a.EvalPartial(values)
		if r.IsConstant() {
			if r.Const != 0 {
				return Equality{}, false, fmt.Errorf("equality %q component %d evaluated to %v: %w", e.NameVal, i, r.Const, errs.InfeasibleSubstitution)
			}
			continue // satisfied, drop
		}
		residual = append(residual, r)
	}
	if len(residual) == 0 {
		return Equality{}, false, nil
	}
	return Equality{NameVal: e.NameVal, Vector: residual}, true, nil
}
