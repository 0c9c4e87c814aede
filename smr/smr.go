// Package smr implements the square matricial representation (spec §4.6):
// factoring a scalar polynomial p(x) into Z(x)^T Q Z(x) for a monomial
// basis Z and a symmetric Gram matrix Q whose entries are affine in
// decision variables, then handing Q off as a cone.SDP primitive. Q is
// rarely determined uniquely by p: whenever two or more basis products
// Z_i*Z_j land on the same monomial, one cell is solved in terms of p's
// own coefficient and the rest become fresh free (auxiliary) decision
// variables, which is exactly the null-space parametrization an
// interior-point solver needs to explore while keeping p fixed.
//
// Dense mode uses the full monomial basis up to half p's degree. Sparse
// mode (dvar.WithSparseSMR) restricts the basis with a per-variable
// bounding-box reduction derived from p's support before running the same
// incidence-based solve; monomials of p the reduced basis cannot reach
// are instead forced to zero via an auxiliary equation recorded on State,
// following the Mosek-oriented sparse path the Python original's
// moseksolver.py takes (reduce first, patch the gaps with equations).
package smr

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/polysos/sos/cone"
	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/internal/sosopt/errs"
	"github.com/polysos/sos/poly"
)

type pair struct {
	i, j   int
	weight float64
}

type group struct {
	mono  poly.Monomial
	pairs []pair
}

// Factor factors p over x into a cone.SDP Gram-matrix primitive named
// name, choosing dense or sparse reduction according to state.SparseSMR().
func Factor(state *dvar.State, name string, p poly.Polynomial, x []poly.Var) (cone.SDP, error) {
	if state.SparseSMR() {
		return factor(state, name, p, x, true)
	}
	return factor(state, name, p, x, false)
}

// Decompose computes a rational square root q of a symmetric positive
// semidefinite matrix Q, satisfying q^T q = Q (spec §8 property 3's
// numeric SOS-decomposition check: p = q^T q). It factors Q = U diag(L)
// U^T via its eigendecomposition and returns q = diag(sqrt(L)) U^T, the
// same construction the SVD-based rational_sos_decomposition check in the
// Python original verifies against. An eigenvalue below -1e-8 reports
// errs.InfeasibleSubstitution; smaller negative noise is clamped to zero.
func Decompose(Q *mat.SymDense) (*mat.Dense, error) {
	n, _ := Q.Dims()
	var eig mat.EigenSym
	if ok := eig.Factorize(Q, true); !ok {
		return nil, fmt.Errorf("smr: eigendecomposition failed")
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	q := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		lambda := values[i]
		if lambda < -1e-8 {
			return nil, fmt.Errorf("smr: matrix is not positive semidefinite (eigenvalue %v): %w", lambda, errs.InfeasibleSubstitution)
		}
		if lambda < 0 {
			lambda = 0
		}
		sqrtLambda := math.Sqrt(lambda)
		for r := 0; r < n; r++ {
			q.Set(i, r, sqrtLambda*vectors.At(r, i))
		}
	}
	return q, nil
}

func roundUpEven(d int) int {
	if d < 0 {
		return 0
	}
	if d%2 != 0 {
		return d + 1
	}
	return d
}

func factor(state *dvar.State, name string, p poly.Polynomial, x []poly.Var, sparse bool) (cone.SDP, error) {
	half := roundUpEven(p.Degree()) / 2
	z := poly.Combinations(x, half)
	if sparse {
		z = reduceBasis(z, p)
	}
	m := len(z)

	groups := buildGroups(z)
	covered := map[string]bool{}
	Q := make([]poly.AffineExpr, m*m)

	for _, g := range groups {
		covered[g.mono.Key()] = true
		target := p.CoefficientOf(g.mono)
		if err := solveGroup(state, name, g, target, Q, m); err != nil {
			return cone.SDP{}, err
		}
	}

	for _, mono := range p.Monomials() {
		if covered[mono.Key()] {
			continue
		}
		if !sparse {
			return cone.SDP{}, fmt.Errorf("smr %q: monomial %q unreachable by dense basis: %w", name, mono.Key(), errs.ShapeMismatch)
		}
		// sparse reduction dropped this monomial from the basis: force its
		// coefficient to zero via an auxiliary equation instead of failing.
		eq := poly.FromMonomial(x, mono, p.CoefficientOf(mono))
		state.AddAuxiliaryEquation(eq)
	}

	return cone.SDP{NameVal: name, SizeVal: m, Matrix: Q}, nil
}

func buildGroups(z poly.Monomials) []*group {
	byKey := map[string]*group{}
	var order []*group
	for i := 0; i < len(z); i++ {
		for j := i; j < len(z); j++ {
			mono := z[i].Mul(z[j])
			w := 1.0
			if i != j {
				w = 2.0
			}
			g, ok := byKey[mono.Key()]
			if !ok {
				g = &group{mono: mono}
				byKey[mono.Key()] = g
				order = append(order, g)
			}
			g.pairs = append(g.pairs, pair{i: i, j: j, weight: w})
		}
	}
	return order
}

func solveGroup(state *dvar.State, name string, g *group, target poly.AffineExpr, Q []poly.AffineExpr, m int) error {
	set := func(i, j int, v poly.AffineExpr) {
		Q[i*m+j] = v
		Q[j*m+i] = v
	}

	if len(g.pairs) == 1 {
		pr := g.pairs[0]
		set(pr.i, pr.j, target.Scale(1/pr.weight))
		return nil
	}

	dep := g.pairs[0]
	acc := target
	for k, pr := range g.pairs[1:] {
		auxName := fmt.Sprintf("%s_aux_%s_%d", name, g.mono.Key(), k)
		aux := dvar.NewAuxiliarySymbol(auxName)
		if err := state.Allocate(aux, 1); err != nil {
			return fmt.Errorf("smr %q: %w", name, err)
		}
		val := poly.VarAffine(aux, 0)
		set(pr.i, pr.j, val)
		acc = acc.Sub(val.Scale(pr.weight))
	}
	set(dep.i, dep.j, acc.Scale(1/dep.weight))
	return nil
}

// reduceBasis restricts z to the monomials whose doubled exponent is
// dominated, variable by variable, by the exponent bound observed in p's
// own support. This is a simplified stand-in for full Newton-polytope
// membership: it never drops a monomial the real reduction would keep,
// but may keep a few more than the polytope test would, which only costs
// a slightly larger Gram matrix, never correctness.
func reduceBasis(z poly.Monomials, p poly.Polynomial) poly.Monomials {
	bound := map[poly.Var]int{}
	for _, mono := range p.Monomials() {
		for _, v := range mono.Vars() {
			if e := mono.Exponent(v); e > bound[v] {
				bound[v] = e
			}
		}
	}

	out := make(poly.Monomials, 0, len(z))
	for _, mono := range z {
		ok := true
		for _, v := range mono.Vars() {
			if 2*mono.Exponent(v) > bound[v] {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, mono)
		}
	}
	if len(out) == 0 {
		// always keep the constant monomial so Q is never 0x0
		for _, mono := range z {
			if mono.IsOne() {
				return poly.Monomials{mono}
			}
		}
	}
	return out
}
