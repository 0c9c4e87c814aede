package cone

import (
	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/poly"
)

// Linear is a KindLinear Primitive (componentwise Vector >= 0). No
// constraint constructor currently produces Linear primitives: every
// polynomial constraint in this module lowers to Equality or SDP. The
// type is kept in the cone taxonomy; solver.Args has no field for linear
// inequality data, and conic.Problem.ToArgs rejects a KindLinear
// primitive with errs.SolverIncapable.
type Linear struct {
	NameVal string
	Vector  []poly.AffineExpr
}

var _ Primitive = Linear{}

func (l Linear) Name() string                 { return l.NameVal }
func (l Linear) Kind() Kind                    { return KindLinear }
func (l Linear) Size() int                     { return 0 }
func (l Linear) Flatten() []poly.AffineExpr    { return append([]poly.AffineExpr{}, l.Vector...) }
func (l Linear) DecisionVariableSymbols() []dvar.Symbol {
	seen := map[dvar.Symbol]bool{}
	var out []dvar.Symbol
	for _, a := range l.Vector {
		for _, s := range a.Symbols() {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
