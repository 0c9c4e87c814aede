package decisionpoly

import (
	"fmt"

	"github.com/polysos/sos/dvar"
	"github.com/polysos/sos/poly"
)

// Matrix is a symmetric matrix of decision polynomial variables: cell
// (i,j) and (j,i) share the same coefficient symbol, so the matrix is
// symmetric by construction rather than by an added equality constraint.
// Setting z to the constant monomial basis (poly.Combinations(x, 0))
// degenerates Matrix into a plain symmetric matrix of scalar decision
// variables. Cell (i,j) is named name{i+1}{j+1}, or plain name when size
// is 1.
type Matrix struct {
	Name string
	Size int
	Z    poly.Monomials
	X    []poly.Var
	Cell [][]Variable
	Expr poly.Matrix
}

// DefineSymmetric allocates a symmetric size x size matrix of decision
// polynomial variables over basis z.
func DefineSymmetric(state *dvar.State, name string, size int, z poly.Monomials, x []poly.Var) (Matrix, error) {
	cell := make([][]Variable, size)
	for i := range cell {
		cell[i] = make([]Variable, size)
	}
	entries := make([]poly.Polynomial, size*size)

	for i := 0; i < size; i++ {
		for j := i; j < size; j++ {
			cellName := name
			if size > 1 {
				cellName = fmt.Sprintf("%s%d%d", name, i+1, j+1)
			}
			v, err := Define(state, cellName, z, x)
			if err != nil {
				return Matrix{}, fmt.Errorf("define symmetric matrix %q: %w", name, err)
			}
			cell[i][j] = v
			cell[j][i] = v
			entries[i*size+j] = v.Expr
			entries[j*size+i] = v.Expr
		}
	}

	return Matrix{
		Name: name,
		Size: size,
		Z:    z,
		X:    x,
		Cell: cell,
		Expr: poly.NewMatrix(size, size, entries),
	}, nil
}

// DecisionVariableSymbols returns every distinct coefficient symbol
// referenced in the upper triangle of m.
func (m Matrix) DecisionVariableSymbols() []dvar.Symbol {
	seen := map[dvar.Symbol]bool{}
	var out []dvar.Symbol
	for i := 0; i < m.Size; i++ {
		for j := i; j < m.Size; j++ {
			sym := m.Cell[i][j].Coeffs
			if !seen[sym] {
				seen[sym] = true
				out = append(out, sym)
			}
		}
	}
	return out
}
