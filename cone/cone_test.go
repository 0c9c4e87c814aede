package cone_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polysos/sos/cone"
	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/internal/sosopt/errs"
	"github.com/polysos/sos/poly"
)

func TestEqualityEvalSatisfiedDrops(t *testing.T) {
	s := dvar.NewSymbol("a")
	eq := cone.Equality{NameVal: "e", Vector: []poly.AffineExpr{
		poly.VarAffine(s, 0).Sub(poly.ConstAffine(2)),
	}}

	_, ok, err := eq.Eval(map[dvar.Symbol][]float64{s: {2}})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEqualityEvalInfeasible(t *testing.T) {
	s := dvar.NewSymbol("a")
	eq := cone.Equality{NameVal: "e", Vector: []poly.AffineExpr{
		poly.VarAffine(s, 0).Sub(poly.ConstAffine(2)),
	}}

	_, _, err := eq.Eval(map[dvar.Symbol][]float64{s: {3}})
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.InfeasibleSubstitution))
}

func TestEqualityEvalResidual(t *testing.T) {
	s := dvar.NewSymbol("a")
	other := dvar.NewSymbol("b")
	eq := cone.Equality{NameVal: "e", Vector: []poly.AffineExpr{
		poly.VarAffine(s, 0).Add(poly.VarAffine(other, 0)),
	}}

	residual, ok, err := eq.Eval(map[dvar.Symbol][]float64{s: {2}})
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, residual.Vector, 1)
}

func TestSDPEvalPSD(t *testing.T) {
	s := dvar.NewSymbol("q")
	// identity-ish 2x2 matrix, all entries already constant via substitution
	sdp := cone.SDP{NameVal: "Q", SizeVal: 2, Matrix: []poly.AffineExpr{
		poly.VarAffine(s, 0), poly.ConstAffine(0),
		poly.ConstAffine(0), poly.VarAffine(s, 0),
	}}

	_, ok, err := sdp.Eval(map[dvar.Symbol][]float64{s: {1}})
	require.NoError(t, err)
	require.False(t, ok) // fully resolved and feasible, nothing left
}

func TestSDPEvalInfeasible(t *testing.T) {
	s := dvar.NewSymbol("q")
	sdp := cone.SDP{NameVal: "Q", SizeVal: 1, Matrix: []poly.AffineExpr{
		poly.VarAffine(s, 0),
	}}

	_, _, err := sdp.Eval(map[dvar.Symbol][]float64{s: {-1}})
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.InfeasibleSubstitution))
}

func TestDecisionVariableSymbolsUnion(t *testing.T) {
	a := dvar.NewSymbol("a")
	b := dvar.NewSymbol("b")
	p1 := cone.Equality{NameVal: "e1", Vector: []poly.AffineExpr{poly.VarAffine(a, 0)}}
	p2 := cone.Equality{NameVal: "e2", Vector: []poly.AffineExpr{poly.VarAffine(a, 0), poly.VarAffine(b, 0)}}

	syms := cone.DecisionVariableSymbols([]cone.Primitive{p1, p2})
	require.Len(t, syms, 2)
}
