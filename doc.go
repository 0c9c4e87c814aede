// Package sos is the root of a sum-of-squares polynomial optimization
// modeling front end: it turns polynomial assertions (SOS, zero-equality,
// Putinar Positivstellensatz certificates) into conic programs and hands
// them to a pluggable solver.Adapter.
//
// A typical session threads a single *dvar.State through:
//
//	x := poly.NewVars("x", 1)
//	state := dvar.New()
//	c, _ := decisionpoly.Define(state, "c", poly.Combinations(nil, 0), x)
//	xSq := poly.Mul(poly.FromVar(x, x[0]), poly.FromVar(x, x[0]))
//	lin := poly.Scale(poly.FromVar(x, x[0]), -2)
//	condition := poly.Add(poly.Add(xSq, lin), c.Expr)
//	sdp, _ := constraint.NewSOS(state, "sos", &condition, nil, x)
//	problem := conic.Assemble(state, poly.VarAffine(c.Coeffs, 0), sdp)
//	values, _, _ := conic.Solve(ctx, problem, dense.New())
//
// See SPEC_FULL.md for the full module map.
package sos
