package conic_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polysos/sos/cone"
	"github.com/polysos/sos/conic"
	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/internal/sosopt/errs"
	"github.com/polysos/sos/poly"
	"github.com/polysos/sos/solver"
)

func TestToArgsFlattensLinearCostOverIndexRegistry(t *testing.T) {
	state := dvar.New()
	a := dvar.NewSymbol("a")
	b := dvar.NewSymbol("b")
	require.NoError(t, state.Allocate(a, 2))
	require.NoError(t, state.Allocate(b, 1))

	cost := poly.VarAffine(a, 1).Add(poly.VarAffine(b, 0).Scale(3))
	problem := conic.Assemble(state, cost)

	args, err := problem.ToArgs()
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 3}, args.LinCost)
}

func TestToLinearCostRewritesQuadraticCostIntoEpigraph(t *testing.T) {
	state := dvar.New()
	a := dvar.NewSymbol("a")
	require.NoError(t, state.Allocate(a, 2))

	problem := conic.Assemble(state, poly.VarAffine(a, 0)).WithQuadCost(poly.VarAffine(a, 1))

	rewritten, err := problem.ToLinearCost(state)
	require.NoError(t, err)
	require.Empty(t, rewritten.QuadCost)
	require.Len(t, rewritten.Primitives, 1)
	require.Equal(t, cone.KindSDP, rewritten.Primitives[0].Kind())

	args, err := rewritten.ToArgs()
	require.NoError(t, err)
	require.Empty(t, args.QuadCost)
	require.Len(t, args.SDPBlocks, 1)
	require.Equal(t, 2, args.SDPBlocks[0].Size)
}

func TestAssembleLowersAuxiliaryEquations(t *testing.T) {
	state := dvar.New()
	x := poly.NewVar("x")
	vars := []poly.Var{x}
	a := dvar.NewSymbol("a")
	require.NoError(t, state.Allocate(a, 1))

	eq := poly.FromMonomial(vars, poly.MonomialOf(x, 1), poly.VarAffine(a, 0))
	state.AddAuxiliaryEquation(eq)

	problem := conic.Assemble(state, poly.AffineExpr{})
	require.Len(t, problem.Primitives, 1)
	require.Equal(t, cone.KindEquality, problem.Primitives[0].Kind())
}

func TestSolveWithFakeAdapterBackSubstitutes(t *testing.T) {
	state := dvar.New()
	a := dvar.NewSymbol("a")
	require.NoError(t, state.Allocate(a, 2))

	problem := conic.Assemble(state, poly.VarAffine(a, 0))

	fake := solver.Fake{Result: solver.Result{Found: &solver.Found{X: []float64{1.5, -2}, Cost: 1.5, Iterations: 4}}}

	values, found, err := conic.Solve(context.Background(), problem, fake)
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, -2}, values["a"])
	require.Equal(t, 4, found.Iterations)
}

func TestSolveReportsSolverFailed(t *testing.T) {
	state := dvar.New()
	problem := conic.Assemble(state, poly.AffineExpr{})
	fake := solver.Fake{Result: solver.Result{NotFound: &solver.NotFound{Status: "infeasible"}}}

	_, _, err := conic.Solve(context.Background(), problem, fake)
	require.Error(t, err)
}

// linearPrimitive is a minimal cone.Primitive stand-in for KindLinear,
// exercising ToArgs' rejection path: no constructor in this module
// produces one (DESIGN.md Open Question 1), so the test builds one
// directly.
type linearPrimitive struct{}

func (linearPrimitive) Name() string              { return "linear" }
func (linearPrimitive) Kind() cone.Kind            { return cone.KindLinear }
func (linearPrimitive) Size() int                  { return 0 }
func (linearPrimitive) Flatten() []poly.AffineExpr { return nil }
func (linearPrimitive) DecisionVariableSymbols() []dvar.Symbol {
	return nil
}

func TestToArgsRejectsLinearCone(t *testing.T) {
	state := dvar.New()
	problem := conic.Assemble(state, poly.AffineExpr{}, linearPrimitive{})

	_, err := problem.ToArgs()
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.SolverIncapable))
}
