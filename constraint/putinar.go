package constraint

import (
	"fmt"

	"github.com/polysos/sos/cone"
	"github.com/polysos/sos/decisionpoly"
	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/internal/sosopt/errs"
	"github.com/polysos/sos/poly"
	"github.com/polysos/sos/semialgebraic"
	"github.com/polysos/sos/smr"
)

// PutinarOption configures NewPutinar/NewPutinarMatrix beyond their
// auto-inferred defaults.
type PutinarOption func(*putinarOptions)

type putinarOptions struct {
	degreeBound *int
}

// WithDegreeBound overrides the certificate's target degree d (spec §9
// Open Question ii), which otherwise defaults to
// max(domain.MaxDegree(), condition.Degree()) rounded up to the next even
// number.
func WithDegreeBound(d int) PutinarOption {
	return func(o *putinarOptions) { o.degreeBound = &d }
}

// NewPutinar lowers a Putinar Positivstellensatz certificate for
// "condition(x) >= 0 on domain" into cone primitives: one SOS multiplier
// sigma_i per domain inequality (itself constrained SOS via its own Gram
// factorization), one sign-free multiplier lambda_j per domain equality,
// and a final SOS primitive for the residual
//
//	condition - sum_i sigma_i*g_i - sum_j lambda_j*h_j
//
// The certificate's target degree d defaults to max(domain.MaxDegree(),
// condition.Degree()) rounded up to the next even number (override via
// WithDegreeBound); each multiplier's own basis is then
// roundUpEven(d - deg(multiplicand)) (spec §4.3), not d itself, so a
// multiplier paired with a higher-degree domain inequality gets a
// correspondingly smaller basis. Equality multipliers carry no sign
// constraint (Open Question resolved in DESIGN.md): only the residual and
// the inequality multipliers contribute an SDP primitive.
func NewPutinar(state *dvar.State, name string, condition poly.Polynomial, domain semialgebraic.Set, x []poly.Var, opts ...PutinarOption) ([]cone.Primitive, error) {
	var o putinarOptions
	for _, apply := range opts {
		apply(&o)
	}

	d := domain.MaxDegree()
	if cd := condition.Degree(); cd > d {
		d = cd
	}
	if d < 0 {
		d = 0
	}
	if d%2 != 0 {
		d++
	}
	if o.degreeBound != nil {
		d = *o.degreeBound
	}

	acc := condition
	var primitives []cone.Primitive

	for i, g := range domain.Inequalities {
		sigma, err := decisionpoly.DefineMultiplier(state, fmt.Sprintf("%s_sigma_%d", name, i), d, g, x)
		if err != nil {
			return nil, fmt.Errorf("putinar constraint %q: %w", name, err)
		}
		sigmaGram, err := smr.Factor(state, fmt.Sprintf("%s_sigma_%d_gram", name, i), sigma.Expr, x)
		if err != nil {
			return nil, fmt.Errorf("putinar constraint %q: %w", name, err)
		}
		primitives = append(primitives, sigmaGram)
		acc = poly.Sub(acc, poly.Mul(sigma.Expr, g))
	}

	for j, h := range domain.Equalities {
		lambda, err := decisionpoly.DefineMultiplier(state, fmt.Sprintf("%s_lambda_%d", name, j), d, h, x)
		if err != nil {
			return nil, fmt.Errorf("putinar constraint %q: %w", name, err)
		}
		acc = poly.Sub(acc, poly.Mul(lambda.Expr, h))
	}

	residualGram, err := smr.Factor(state, name+"_gram", acc, x)
	if err != nil {
		return nil, fmt.Errorf("putinar constraint %q: %w", name, err)
	}

	return append([]cone.Primitive{residualGram}, primitives...), nil
}

// NewPutinarMatrix lowers a matrix-valued Putinar certificate for
// "condition(x) >= 0 on domain" (condition symmetric, r x r) using the
// same y-vector quadratic-form reduction NewSOSMatrix uses: the joint
// scalar polynomial y^T condition(x) y is certified via NewPutinar over
// the extended variable list (x, y), with domain constraints (which never
// depend on y) multiplying through unchanged.
func NewPutinarMatrix(state *dvar.State, name string, condition poly.Matrix, domain semialgebraic.Set, x []poly.Var, opts ...PutinarOption) ([]cone.Primitive, error) {
	if !condition.IsSquare() {
		return nil, fmt.Errorf("putinar matrix constraint %q: %w", name, errs.ShapeMismatch)
	}
	r := condition.Rows
	y := poly.NewVars(name+"_y", r)
	joint := append(append([]poly.Var{}, x...), y...)

	entries := make([]poly.Polynomial, r)
	for i, v := range y {
		entries[i] = poly.FromVar(joint, v)
	}
	yVec := poly.NewVector(entries)

	scalarCondition := poly.QuadForm(yVec, condition)
	return NewPutinar(state, name, scalarCondition, domain, joint, opts...)
}
