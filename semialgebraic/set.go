// Package semialgebraic implements semialgebraic domain sets (spec §3/§4.3):
// the { g_i(x) >= 0, h_j(x) = 0 } constraints a Putinar certificate
// searches multipliers against. The package is intentionally thin, the
// same way gnark's frontend.Builder interface is thin: it owns a value
// type and one constructor, leaving every consumer (constraint, conic) to
// range over Inequalities/Equalities directly.
package semialgebraic

import "github.com/polysos/sos/poly"

// Set is a basic semialgebraic set described by finitely many polynomial
// inequalities and equalities over a shared indeterminate list.
type Set struct {
	Inequalities []poly.Polynomial // g_i(x) >= 0
	Equalities   []poly.Polynomial // h_j(x) == 0
}

// Define builds a Set from three possibly-nil polynomial lists:
// equalToZero contributes directly to Equalities; greaterThanZero
// contributes directly to Inequalities; lessThanZero is negated (h <= 0
// becomes -h >= 0) before joining Inequalities, following the CVXOPT-era
// convention the Python original uses to normalize every inequality onto
// one sign.
func Define(equalToZero, greaterThanZero, lessThanZero []poly.Polynomial) Set {
	s := Set{
		Equalities:   append([]poly.Polynomial{}, equalToZero...),
		Inequalities: append([]poly.Polynomial{}, greaterThanZero...),
	}
	for _, h := range lessThanZero {
		s.Inequalities = append(s.Inequalities, poly.Neg(h))
	}
	return s
}

// IsEmpty reports whether the set carries no constraints at all (the
// whole space).
func (s Set) IsEmpty() bool { return len(s.Inequalities) == 0 && len(s.Equalities) == 0 }

// MaxDegree returns the largest polynomial degree appearing among s's
// inequalities and equalities, used to infer Putinar multiplier degrees.
func (s Set) MaxDegree() int {
	d := -1
	for _, p := range s.Inequalities {
		if pd := p.Degree(); pd > d {
			d = pd
		}
	}
	for _, p := range s.Equalities {
		if pd := p.Degree(); pd > d {
			d = pd
		}
	}
	return d
}
