package poly

import (
	"sort"

	"github.com/polysos/sos/dvar"
)

// Polynomial is a finite sum of monomial*AffineExpr terms over a fixed
// list of indeterminates. Vars records the variable ordering this
// polynomial was built against; operations that combine two polynomials
// (Add, Mul, ...) merge their Vars lists.
type Polynomial struct {
	vars  []Var
	terms map[string]polyTerm
}

type polyTerm struct {
	mono  Monomial
	coeff AffineExpr
}

// Zero returns the zero polynomial over vars.
func Zero(vars []Var) Polynomial {
	return Polynomial{vars: append([]Var{}, vars...), terms: map[string]polyTerm{}}
}

// FromConst returns the constant polynomial c over vars.
func FromConst(vars []Var, c float64) Polynomial {
	p := Zero(vars)
	if c == 0 {
		return p
	}
	p.terms[monomialOne.Key()] = polyTerm{mono: monomialOne, coeff: ConstAffine(c)}
	return p
}

// FromMonomial returns the single-term polynomial coeff*mono over vars.
func FromMonomial(vars []Var, mono Monomial, coeff AffineExpr) Polynomial {
	p := Zero(vars)
	if coeff.IsConstant() && coeff.Const == 0 {
		return p
	}
	p.terms[mono.Key()] = polyTerm{mono: mono, coeff: coeff}
	return p
}

// FromVar returns the degree-1 polynomial 1*v over vars (v must be a
// member of vars).
func FromVar(vars []Var, v Var) Polynomial {
	return FromMonomial(vars, MonomialOf(v, 1), ConstAffine(1))
}

// Vars returns the indeterminate list this polynomial is expressed over.
func (p Polynomial) Vars() []Var { return append([]Var{}, p.vars...) }

// Monomials returns the polynomial's monomials in graded-lex order.
func (p Polynomial) Monomials() Monomials {
	out := make(Monomials, 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, t.mono)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// CoefficientOf returns the AffineExpr coefficient of mono (the zero
// AffineExpr if mono does not appear).
func (p Polynomial) CoefficientOf(mono Monomial) AffineExpr {
	t, ok := p.terms[mono.Key()]
	if !ok {
		return AffineExpr{}
	}
	return t.coeff
}

// NumTerms reports how many nonzero monomial terms p has.
func (p Polynomial) NumTerms() int { return len(p.terms) }

func mergedVars(a, b []Var) []Var {
	seen := map[Var]bool{}
	out := make([]Var, 0, len(a)+len(b))
	for _, v := range a {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range b {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Add returns p+q.
func Add(p, q Polynomial) Polynomial {
	out := Zero(mergedVars(p.vars, q.vars))
	for _, t := range p.terms {
		out.terms[t.mono.Key()] = polyTerm{mono: t.mono, coeff: t.coeff}
	}
	for _, t := range q.terms {
		if existing, ok := out.terms[t.mono.Key()]; ok {
			out.terms[t.mono.Key()] = polyTerm{mono: t.mono, coeff: existing.coeff.Add(t.coeff)}
		} else {
			out.terms[t.mono.Key()] = polyTerm{mono: t.mono, coeff: t.coeff}
		}
	}
	out.dropZeros()
	return out
}

// Sub returns p-q.
func Sub(p, q Polynomial) Polynomial { return Add(p, Neg(q)) }

// Neg returns -p.
func Neg(p Polynomial) Polynomial {
	out := Zero(p.vars)
	for k, t := range p.terms {
		out.terms[k] = polyTerm{mono: t.mono, coeff: t.coeff.Neg()}
	}
	return out
}

// Scale returns c*p.
func Scale(p Polynomial, c float64) Polynomial {
	if c == 0 {
		return Zero(p.vars)
	}
	out := Zero(p.vars)
	for k, t := range p.terms {
		out.terms[k] = polyTerm{mono: t.mono, coeff: t.coeff.Scale(c)}
	}
	return out
}

// Mul returns p*q. At least one of p, q must have every coefficient
// constant (no decision-variable terms) at every overlapping monomial
// product, preserving the system-wide invariant that every expression
// stays affine in the decision variables; Mul panics if that invariant
// would be violated, mirroring gnark's panic-on-misuse builder methods
// (e.g. api.Inverse on a known-zero constant).
func Mul(p, q Polynomial) Polynomial {
	out := Zero(mergedVars(p.vars, q.vars))
	for _, tp := range p.terms {
		for _, tq := range q.terms {
			mono := tp.mono.Mul(tq.mono)
			coeff := mulAffine(tp.coeff, tq.coeff)
			if existing, ok := out.terms[mono.Key()]; ok {
				out.terms[mono.Key()] = polyTerm{mono: mono, coeff: existing.coeff.Add(coeff)}
			} else {
				out.terms[mono.Key()] = polyTerm{mono: mono, coeff: coeff}
			}
		}
	}
	out.dropZeros()
	return out
}

func (p Polynomial) dropZeros() {
	for k, t := range p.terms {
		if t.coeff.IsConstant() && t.coeff.Const == 0 {
			delete(p.terms, k)
		}
	}
}

// Degree returns the total degree of p (the max degree among its
// monomials), or -1 for the zero polynomial.
func (p Polynomial) Degree() int {
	d := -1
	for _, t := range p.terms {
		if deg := t.mono.Degree(); deg > d {
			d = deg
		}
	}
	return d
}

// Differentiate returns dp/dv, the formal partial derivative of p with
// respect to v.
func Differentiate(p Polynomial, v Var) Polynomial {
	out := Zero(p.vars)
	for _, t := range p.terms {
		e := t.mono.Exponent(v)
		if e == 0 {
			continue
		}
		exps := map[Var]int{}
		for _, vv := range t.mono.Vars() {
			exps[vv] = t.mono.Exponent(vv)
		}
		exps[v] = e - 1
		mono := NewMonomial(exps)
		coeff := t.coeff.Scale(float64(e))
		if existing, ok := out.terms[mono.Key()]; ok {
			out.terms[mono.Key()] = polyTerm{mono: mono, coeff: existing.coeff.Add(coeff)}
		} else {
			out.terms[mono.Key()] = polyTerm{mono: mono, coeff: coeff}
		}
	}
	out.dropZeros()
	return out
}

// IsZero reports whether p has no nonzero terms.
func (p Polynomial) IsZero() bool { return len(p.terms) == 0 }

// Eval evaluates p at a numeric point x (one value per variable in
// p.Vars()) after resolving every decision-variable coefficient via
// values. Panics if any coefficient remains unresolved after substitution
// (see AffineExpr.Eval).
func (p Polynomial) Eval(x map[Var]float64, values map[dvar.Symbol][]float64) float64 {
	total := 0.0
	for _, t := range p.terms {
		monoVal := 1.0
		for _, v := range t.mono.Vars() {
			xv, ok := x[v]
			if !ok {
				panic("poly: Eval called without a value for variable " + v.Name())
			}
			for e := 0; e < t.mono.Exponent(v); e++ {
				monoVal *= xv
			}
		}
		total += monoVal * t.coeff.Eval(values)
	}
	return total
}
