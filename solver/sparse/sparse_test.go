package sparse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polysos/sos/solver"
	"github.com/polysos/sos/solver/sparse"
)

func TestAdapterSatisfiesInterface(t *testing.T) {
	var _ solver.Adapter = sparse.New()
}

func TestAdapterMirrorsLowerTriangleBeforeSolving(t *testing.T) {
	a := sparse.New()

	// Only the lower triangle (indices 0, 2 and 3) carries real data; the
	// upper-triangle entry at index 1 is deliberately wrong and must be
	// ignored/overwritten by the adapter before the block reaches the
	// solver core.
	args := solver.Args{
		NumVars: 1,
		LinCost: []float64{1},
		Equalities: []solver.EqualityRow{
			{Coeffs: []float64{1}, Const: -2}, // x == 2
		},
		SDPBlocks: []solver.SDPBlock{{
			Size: 2,
			Entries: []solver.AffineEntry{
				{Coeffs: []float64{0}, Const: 1}, // (0,0) const 1
				{Coeffs: []float64{0}, Const: 999}, // (0,1) bogus, must be discarded
				{Coeffs: []float64{0}, Const: 0}, // (1,0) const 0
				{Coeffs: []float64{1}, Const: 0}, // (1,1) == x
			},
		}},
	}

	result, err := a.Solve(context.Background(), args)
	require.NoError(t, err)
	require.NotNil(t, result.Found)
	require.InDelta(t, 2.0, result.Found.X[0], 1e-9)
}
