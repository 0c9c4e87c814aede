package dvar_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/internal/sosopt/errs"
)

func TestAllocateMonotonicity(t *testing.T) {
	state := dvar.New()

	a := dvar.NewSymbol("a")
	b := dvar.NewSymbol("b")
	c := dvar.NewSymbol("c")

	require.NoError(t, state.Allocate(a, 2))
	require.NoError(t, state.Allocate(b, 3))
	require.NoError(t, state.Allocate(c, 1))

	ra, err := state.RangeOf(a)
	require.NoError(t, err)
	rb, err := state.RangeOf(b)
	require.NoError(t, err)
	rc, err := state.RangeOf(c)
	require.NoError(t, err)

	require.Equal(t, dvar.Range{Start: 0, Stop: 2}, ra)
	require.Equal(t, dvar.Range{Start: 2, Stop: 5}, rb)
	require.Equal(t, dvar.Range{Start: 5, Stop: 6}, rc)
	require.Equal(t, 6, state.NIndices())

	// ranges are disjoint and contiguous
	require.Equal(t, ra.Stop, rb.Start)
	require.Equal(t, rb.Stop, rc.Start)
}

func TestAllocateRejectsDuplicate(t *testing.T) {
	state := dvar.New()
	a := dvar.NewSymbol("a")
	require.NoError(t, state.Allocate(a, 1))

	err := state.Allocate(a, 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.SymbolAlreadyAllocated))
}

func TestRangeOfUnknownSymbol(t *testing.T) {
	state := dvar.New()
	_, err := state.RangeOf(dvar.NewSymbol("ghost"))
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.UnknownSymbol))
}

func TestIndexDeterminism(t *testing.T) {
	// Two independent runs issuing the same sequence of allocations
	// (same names, same lengths) produce identical column ordering when
	// their ranges are concatenated in allocation order.
	run := func() []dvar.Range {
		state := dvar.New()
		names := []string{"a", "b", "c"}
		lengths := []int{2, 1, 3}
		var ranges []dvar.Range
		for i, n := range names {
			sym := dvar.NewSymbol(n)
			require.NoError(t, state.Allocate(sym, lengths[i]))
			r, err := state.RangeOf(sym)
			require.NoError(t, err)
			ranges = append(ranges, r)
		}
		return ranges
	}

	first := run()
	second := run()
	require.Equal(t, first, second)
}

func TestSymbolAt(t *testing.T) {
	state := dvar.New()
	a := dvar.NewSymbol("a")
	b := dvar.NewAuxiliarySymbol("b_aux")
	require.NoError(t, state.Allocate(a, 2))
	require.NoError(t, state.Allocate(b, 2))

	sym, ok := state.SymbolAt(0)
	require.True(t, ok)
	require.Equal(t, a, sym)

	sym, ok = state.SymbolAt(2)
	require.True(t, ok)
	require.Equal(t, b, sym)
	require.Equal(t, dvar.Auxiliary, sym.Kind())

	_, ok = state.SymbolAt(4)
	require.False(t, ok)
}

func TestAllocateRejectsNonPositiveLength(t *testing.T) {
	state := dvar.New()
	err := state.Allocate(dvar.NewSymbol("a"), 0)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ShapeMismatch))
}
