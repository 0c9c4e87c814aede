// Package cone implements cone constraint primitives (spec §4.5): the
// flat, decision-variable-only representation every polynomial constraint
// eventually lowers to before assembly. A Primitive no longer mentions the
// indeterminates x at all, only poly.AffineExpr components over
// dvar.Symbol, the same way gnark's R1CS constraints no longer mention
// the source circuit's control flow, only compiled.Term linear
// expressions (frontend/r1cs/api.go).
package cone

import (
	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/poly"
)

// Kind tags which cone a Primitive's flattened vector must lie in.
type Kind uint8

const (
	// KindEquality: the primitive's vector must equal zero.
	KindEquality Kind = iota
	// KindSDP: the primitive's matrix must be positive semidefinite.
	KindSDP
	// KindLinear is reserved for a future linear-inequality (x >= 0) cone;
	// no constraint constructor in this module produces it yet.
	KindLinear
)

func (k Kind) String() string {
	switch k {
	case KindEquality:
		return "equality"
	case KindSDP:
		return "sdp"
	case KindLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Primitive is one cone membership constraint: Flatten()'s vector must lie
// in the cone named by Kind().
type Primitive interface {
	Name() string
	Kind() Kind
	// Size is the matrix dimension for KindSDP primitives, 0 otherwise.
	Size() int
	// Flatten returns the primitive's scalar components in a fixed,
	// deterministic order (row-major for SDP).
	Flatten() []poly.AffineExpr
	DecisionVariableSymbols() []dvar.Symbol
}

// DecisionVariableSymbols collects the union of symbols referenced by a
// set of primitives, in the order each symbol is first seen.
func DecisionVariableSymbols(primitives []Primitive) []dvar.Symbol {
	seen := map[dvar.Symbol]bool{}
	var out []dvar.Symbol
	for _, p := range primitives {
		for _, s := range p.DecisionVariableSymbols() {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
