// Package decisionpoly implements decision polynomial variables (spec
// §4.2): the bridge between the name/index registry (dvar) and the
// polynomial IR (poly). A decision polynomial variable is a coefficient
// vector (a freshly allocated dvar.Symbol of length |Z|) paired with a
// monomial basis Z and indeterminate list x, assembled into the concrete
// polynomial expr = sum_i coeffs[i] * Z[i]. This mirrors how gnark's
// frontend builds a compiled.Variable: allocate storage first
// (cs.newInternalVariable / here state.Allocate), then wrap it in the
// expression type the rest of the API composes against.
package decisionpoly

import (
	"fmt"

	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/poly"
)

// Variable is a single decision polynomial variable: p(x) = coeffs . Z.
type Variable struct {
	Name   string
	Z      poly.Monomials
	X      []poly.Var
	Coeffs dvar.Symbol
	Expr   poly.Polynomial
}

// Define allocates a fresh coefficient symbol of length len(z) in state
// and builds the associated polynomial expression over the monomial
// basis z.
func Define(state *dvar.State, name string, z poly.Monomials, x []poly.Var) (Variable, error) {
	sym := dvar.NewSymbol(name)
	if err := state.Allocate(sym, len(z)); err != nil {
		return Variable{}, fmt.Errorf("define decision variable %q: %w", name, err)
	}
	return Variable{
		Name:   name,
		Z:      z,
		X:      x,
		Coeffs: sym,
		Expr:   exprFromBasis(x, z, sym),
	}, nil
}

func exprFromBasis(x []poly.Var, z poly.Monomials, sym dvar.Symbol) poly.Polynomial {
	expr := poly.Zero(x)
	for i, mono := range z {
		term := poly.FromMonomial(x, mono, poly.VarAffine(sym, i))
		expr = poly.Add(expr, term)
	}
	return expr
}

// DefineMultiplier synthesizes a fresh SOS multiplier variable for a
// Putinar certificate cell (spec §4.3): given the certificate's target
// degree and the multiplicand g it will be paired against (condition -
// sigma*g), its monomial basis covers every monomial up to
// roundUpEven(degree - deg(g)), the same degree-inference rule
// define_psatz_multipliers in the Python original uses.
func DefineMultiplier(state *dvar.State, name string, degree int, multiplicand poly.Polynomial, x []poly.Var) (Variable, error) {
	bound := degree - multiplicand.Degree()
	if bound < 0 {
		bound = 0
	}
	if bound%2 != 0 {
		bound++
	}
	z := poly.Combinations(x, bound)
	return Define(state, name, z, x)
}

// DecisionVariableSymbols returns the symbols referenced by v (exactly
// one: v.Coeffs), mirroring cone.Primitive's DecisionVariableSymbols
// method.
func (v Variable) DecisionVariableSymbols() []dvar.Symbol {
	return []dvar.Symbol{v.Coeffs}
}
