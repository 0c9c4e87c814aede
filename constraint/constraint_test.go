package constraint_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polysos/sos/cone"
	"github.com/polysos/sos/constraint"
	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/internal/sosopt/errs"
	"github.com/polysos/sos/poly"
	"github.com/polysos/sos/semialgebraic"
)

func TestNewZeroPolynomial(t *testing.T) {
	x := poly.NewVar("x")
	vars := []poly.Var{x}
	s := dvar.NewSymbol("c")

	// p = (c - 2) + 0*x, zero_polynomial asserts c == 2
	p := poly.FromConst(vars, 0)
	p = poly.Add(p, poly.FromMonomial(vars, poly.NewMonomial(nil), poly.VarAffine(s, 0).Sub(poly.ConstAffine(2))))

	prim := constraint.NewZeroPolynomial("z", p)
	eq, ok := prim.(cone.Equality)
	require.True(t, ok)
	require.Len(t, eq.Vector, 1)
}

func TestNewSOSRequiresOneSide(t *testing.T) {
	state := dvar.New()
	x := poly.NewVar("x")
	_, err := constraint.NewSOS(state, "c", nil, nil, []poly.Var{x})
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ConstraintIncomplete))
}

func TestNewSOSBuildsSDPPrimitive(t *testing.T) {
	state := dvar.New()
	x1 := poly.NewVar("x1")
	x2 := poly.NewVar("x2")
	vars := []poly.Var{x1, x2}

	p := poly.Zero(vars)
	p = poly.Add(p, poly.FromMonomial(vars, poly.MonomialOf(x1, 2), poly.ConstAffine(1)))
	p = poly.Add(p, poly.FromMonomial(vars, poly.NewMonomial(map[poly.Var]int{x1: 1, x2: 2}), poly.ConstAffine(-1)))
	p = poly.Add(p, poly.FromMonomial(vars, poly.MonomialOf(x2, 4), poly.ConstAffine(1)))
	p = poly.Add(p, poly.FromConst(vars, 1))

	prim, err := constraint.NewSOS(state, "c", &p, nil, vars)
	require.NoError(t, err)
	sdp, ok := prim.(cone.SDP)
	require.True(t, ok)
	require.Equal(t, 6, sdp.Size())
}

func TestNewSOSMatrixRejectsNonSquare(t *testing.T) {
	state := dvar.New()
	x := poly.NewVar("x")
	vars := []poly.Var{x}
	m := poly.NewMatrix(1, 2, []poly.Polynomial{poly.FromConst(vars, 1), poly.FromConst(vars, 1)})

	_, err := constraint.NewSOSMatrix(state, "m", m, vars)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ShapeMismatch))
}

func TestNewPutinarProducesMultiplierAndResidualPrimitives(t *testing.T) {
	state := dvar.New()
	x := poly.NewVar("x")
	vars := []poly.Var{x}

	// domain: x >= 0
	domain := semialgebraic.Define(nil, []poly.Polynomial{poly.FromVar(vars, x)}, nil)
	// condition: x^2 >= 0 trivially certified with sigma_0 = 0
	condition := poly.FromMonomial(vars, poly.MonomialOf(x, 2), poly.ConstAffine(1))

	primitives, err := constraint.NewPutinar(state, "p", condition, domain, vars)
	require.NoError(t, err)
	require.Len(t, primitives, 2) // residual gram + sigma_0 gram

	for _, p := range primitives {
		require.Equal(t, cone.KindSDP, p.Kind())
	}
}

func TestNewPutinarWithDegreeBoundOverride(t *testing.T) {
	state := dvar.New()
	x := poly.NewVar("x")
	vars := []poly.Var{x}

	domain := semialgebraic.Define(nil, []poly.Polynomial{poly.FromVar(vars, x)}, nil)
	condition := poly.FromMonomial(vars, poly.MonomialOf(x, 2), poly.ConstAffine(1))

	primitives, err := constraint.NewPutinar(state, "p", condition, domain, vars, constraint.WithDegreeBound(6))
	require.NoError(t, err)
	require.Len(t, primitives, 2)

	sigmaGram, ok := primitives[1].(cone.SDP)
	require.True(t, ok)
	// degree bound 6, multiplicand (x) has degree 1: sigma's own basis
	// degree is roundUpEven(6-1) = 6, so its Gram factorization (half that,
	// rounded up) uses Combinations(x,3): {1,x,x^2,x^3}, size 4.
	require.Equal(t, 4, sigmaGram.Size())
}
