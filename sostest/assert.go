// Package sostest provides a thin require.Assertions wrapper for exercising
// the full semialgebraic -> constraint -> conic -> solver pipeline in tests,
// mirroring the Assert/NewAssert/Run helper shape gnark's test package builds
// around testify.
package sostest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polysos/sos/conic"
	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/solver"
)

// Assert embeds a testify Assertions object and adds pipeline-level helpers.
type Assert struct {
	t *testing.T
	*require.Assertions
}

// NewAssert returns an Assert helper bound to t.
func NewAssert(t *testing.T) *Assert {
	return &Assert{t, require.New(t)}
}

// Run runs fn as a subtest named desc.
func (a *Assert) Run(desc string, fn func(a *Assert)) {
	a.t.Run(desc, func(t *testing.T) {
		fn(&Assert{t, require.New(t)})
	})
}

// SolveSucceeds asserts that solving problem p with adapter produces a Found
// result, and returns the named decision variable values.
func (a *Assert) SolveSucceeds(p conic.Problem, adapter solver.Adapter) map[string][]float64 {
	values, found, err := conic.Solve(context.Background(), p, adapter)
	a.NoError(err)
	a.NotNil(found)
	return values
}

// SolveFails asserts that solving problem p with adapter reports infeasible
// or otherwise fails.
func (a *Assert) SolveFails(p conic.Problem, adapter solver.Adapter) {
	_, _, err := conic.Solve(context.Background(), p, adapter)
	a.Error(err)
}

// NewState is a convenience constructor so scenario tests don't repeat the
// dvar.New(opts...) boilerplate.
func NewState(opts ...dvar.Option) *dvar.State {
	return dvar.New(opts...)
}
