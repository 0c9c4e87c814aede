// Package constraint implements the polynomial constraint constructors
// (spec §4.4): the SOS, zero-polynomial, SOS-matrix and Putinar
// constraints that lower a polynomial-level assertion into one or more
// cone.Primitive values. This is the same layer gnark's
// frontend/cs/plonk/assertions.go occupies: AssertIsEqual/AssertIsBoolean
// translate a circuit-level assertion into R1CS/PLONK primitives the way
// NewSOS/NewPutinar translate a polynomial assertion into cone
// primitives.
package constraint

import (
	"fmt"

	"github.com/polysos/sos/cone"
	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/internal/sosopt/errs"
	"github.com/polysos/sos/poly"
	"github.com/polysos/sos/smr"
)

// NewZeroPolynomial lowers "p == 0" into an equality cone primitive: one
// scalar component per nonzero monomial coefficient of p.
func NewZeroPolynomial(name string, p poly.Polynomial) cone.Primitive {
	monos := p.Monomials()
	vec := make([]poly.AffineExpr, len(monos))
	for i, m := range monos {
		vec[i] = p.CoefficientOf(m)
	}
	return cone.Equality{NameVal: name, Vector: vec}
}

// NewSOS lowers a scalar "greaterThanZero >= 0" or "lessThanZero <= 0"
// assertion into an SOS (SDP) cone primitive via the square matricial
// representation. At least one of greaterThanZero, lessThanZero must be
// non-nil; when both are, greaterThanZero is used. lessThanZero is negated
// onto the same "greater than zero" convention, mirroring the Python
// original's sos_constraint.
func NewSOS(state *dvar.State, name string, greaterThanZero, lessThanZero *poly.Polynomial, x []poly.Var) (cone.Primitive, error) {
	condition, err := resolveCondition(name, greaterThanZero, lessThanZero)
	if err != nil {
		return nil, err
	}
	sdp, err := smr.Factor(state, name+"_gram", condition, x)
	if err != nil {
		return nil, fmt.Errorf("sos constraint %q: %w", name, err)
	}
	return sdp, nil
}

func resolveCondition(name string, greaterThanZero, lessThanZero *poly.Polynomial) (poly.Polynomial, error) {
	switch {
	case greaterThanZero != nil:
		return *greaterThanZero, nil
	case lessThanZero != nil:
		return poly.Neg(*lessThanZero), nil
	default:
		return poly.Polynomial{}, fmt.Errorf("sos constraint %q: %w", name, errs.ConstraintIncomplete)
	}
}

// NewSOSMatrix lowers a matrix condition M(x) >= 0 (M symmetric, r x r)
// into a scalar SOS constraint in (x, y): the reduction tests whether
// y^T M(x) y is SOS in the joint variables, where y is a fresh vector of
// indeterminates with no relation to the decision-variable registry. This
// mirrors sos_constraint_matrix in the Python original, which allocates a
// throwaway variable of size shape[0] purely to form the quadratic test
// vector.
func NewSOSMatrix(state *dvar.State, name string, condition poly.Matrix, x []poly.Var) (cone.Primitive, error) {
	if !condition.IsSquare() {
		return nil, fmt.Errorf("sos matrix constraint %q: %w", name, errs.ShapeMismatch)
	}
	r := condition.Rows
	y := poly.NewVars(name+"_y", r)
	joint := append(append([]poly.Var{}, x...), y...)

	entries := make([]poly.Polynomial, r)
	for i, v := range y {
		entries[i] = poly.FromVar(joint, v)
	}
	yVec := poly.NewVector(entries)

	greaterThanZero := poly.QuadForm(yVec, condition)
	return NewSOS(state, name, &greaterThanZero, nil, joint)
}
