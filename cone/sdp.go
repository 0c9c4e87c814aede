package cone

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/internal/sosopt/errs"
	"github.com/polysos/sos/poly"
)

// psdTolerance bounds how negative the smallest eigenvalue of a fully
// resolved matrix may be before Eval reports it infeasible, absorbing
// floating point noise from upstream substitution.
const psdTolerance = -1e-8

// SDP is a KindSDP Primitive: Matrix (Size x Size, row-major, symmetric)
// must be positive semidefinite. It backs the Gram matrix produced by the
// square matricial representation (spec §4.6).
type SDP struct {
	NameVal string
	SizeVal int
	Matrix  []poly.AffineExpr // row-major, Size*Size, symmetric
}

var _ Primitive = SDP{}

func (s SDP) Name() string { return s.NameVal }
func (s SDP) Kind() Kind   { return KindSDP }
func (s SDP) Size() int    { return s.SizeVal }
func (s SDP) Flatten() []poly.AffineExpr {
	return append([]poly.AffineExpr{}, s.Matrix...)
}

// At returns the (i,j) entry of the matrix.
func (s SDP) At(i, j int) poly.AffineExpr { return s.Matrix[i*s.SizeVal+j] }

func (s SDP) DecisionVariableSymbols() []dvar.Symbol {
	seen := map[dvar.Symbol]bool{}
	var out []dvar.Symbol
	for _, a := range s.Matrix {
		for _, sym := range a.Symbols() {
			if !seen[sym] {
				seen[sym] = true
				out = append(out, sym)
			}
		}
	}
	return out
}

// Eval substitutes values into s's matrix entries. If every entry
// resolves to a number, the resulting symmetric matrix's eigenvalues are
// checked for PSD-ness (rather than handed to the solver); a violation
// reports errs.InfeasibleSubstitution. If anything remains symbolic,
// Eval returns the residual SDP primitive with ok=true.
func (s SDP) Eval(values map[dvar.Symbol][]float64) (SDP, bool, error) {
	residual := make([]poly.AffineExpr, len(s.Matrix))
	allConst := true
	for i, a := range s.Matrix {
		r := a.EvalPartial(values)
		residual[i] = r
		if !r.IsConstant() {
			allConst = false
		}
	}
	if !allConst {
		return SDP{NameVal: s.NameVal, SizeVal: s.SizeVal, Matrix: residual}, true, nil
	}

	dense := mat.NewSymDense(s.SizeVal, nil)
	for i := 0; i < s.SizeVal; i++ {
		for j := i; j < s.SizeVal; j++ {
			dense.SetSym(i, j, residual[i*s.SizeVal+j].Const)
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(dense, false); !ok {
		return SDP{}, false, fmt.Errorf("eigendecomposition of %q failed: %w", s.NameVal, errs.InfeasibleSubstitution)
	}
	for _, v := range eig.Values(nil) {
		if v < psdTolerance {
			return SDP{}, false, fmt.Errorf("matrix %q is not positive semidefinite (min eigenvalue %v): %w", s.NameVal, v, errs.InfeasibleSubstitution)
		}
	}
	return SDP{}, false, nil
}
