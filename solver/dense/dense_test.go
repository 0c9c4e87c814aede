package dense_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polysos/sos/solver"
	"github.com/polysos/sos/solver/dense"
)

func TestAdapterSatisfiesInterface(t *testing.T) {
	var _ solver.Adapter = dense.New()
}

func TestAdapterSolvesDegenerateProblem(t *testing.T) {
	a := dense.New()
	args := solver.Args{
		NumVars:    1,
		LinCost:    []float64{1},
		Equalities: []solver.EqualityRow{{Coeffs: []float64{1}, Const: -2}}, // x == 2
		SDPBlocks: []solver.SDPBlock{{
			Size:    1,
			Entries: []solver.AffineEntry{{Coeffs: []float64{1}, Const: 0}},
		}},
	}

	result, err := a.Solve(context.Background(), args)
	require.NoError(t, err)
	require.NotNil(t, result.Found)
	require.InDelta(t, 2.0, result.Found.X[0], 1e-9)
}
