package poly

// Matrix is a row-major r*c grid of polynomials, the common shape spec §3
// uses for vectors (c==1), polynomial-matrix conditions (the Putinar
// cell-matrix case) and Gram matrices. A Vector is a Matrix with one
// column.
type Matrix struct {
	Rows, Cols int
	entries    []Polynomial
}

// Vector is a single-column Matrix.
type Vector = Matrix

// NewMatrix builds a Matrix from a row-major entry slice. Panics if
// len(entries) != rows*cols.
func NewMatrix(rows, cols int, entries []Polynomial) Matrix {
	if len(entries) != rows*cols {
		panic("poly: NewMatrix entry count does not match rows*cols")
	}
	return Matrix{Rows: rows, Cols: cols, entries: append([]Polynomial{}, entries...)}
}

// NewVector builds a single-column Matrix from entries.
func NewVector(entries []Polynomial) Vector {
	return NewMatrix(len(entries), 1, entries)
}

// At returns the (i,j) entry (0-indexed).
func (m Matrix) At(i, j int) Polynomial { return m.entries[i*m.Cols+j] }

// Set returns a copy of m with (i,j) replaced by p.
func (m Matrix) Set(i, j int, p Polynomial) Matrix {
	out := append([]Polynomial{}, m.entries...)
	out[i*m.Cols+j] = p
	return Matrix{Rows: m.Rows, Cols: m.Cols, entries: out}
}

// Entries returns the row-major entry slice.
func (m Matrix) Entries() []Polynomial { return append([]Polynomial{}, m.entries...) }

// IsSquare reports whether Rows == Cols.
func (m Matrix) IsSquare() bool { return m.Rows == m.Cols }

// Transpose returns m^T.
func Transpose(m Matrix) Matrix {
	out := make([]Polynomial, m.Rows*m.Cols)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out[j*m.Rows+i] = m.At(i, j)
		}
	}
	return Matrix{Rows: m.Cols, Cols: m.Rows, entries: out}
}

// VStack concatenates vectors row-wise into one taller vector.
func VStack(vectors ...Vector) Vector {
	var entries []Polynomial
	for _, v := range vectors {
		if v.Cols != 1 {
			panic("poly: VStack requires single-column vectors")
		}
		entries = append(entries, v.entries...)
	}
	return NewVector(entries)
}

// HStack concatenates matrices column-wise; all operands must share the
// same row count.
func HStack(matrices ...Matrix) Matrix {
	if len(matrices) == 0 {
		return Matrix{}
	}
	rows := matrices[0].Rows
	cols := 0
	for _, m := range matrices {
		if m.Rows != rows {
			panic("poly: HStack requires matching row counts")
		}
		cols += m.Cols
	}
	out := make([]Polynomial, rows*cols)
	colOffset := 0
	for _, m := range matrices {
		for i := 0; i < m.Rows; i++ {
			for j := 0; j < m.Cols; j++ {
				out[i*cols+colOffset+j] = m.At(i, j)
			}
		}
		colOffset += m.Cols
	}
	return Matrix{Rows: rows, Cols: cols, entries: out}
}

// AddMatrix returns a+b entrywise.
func AddMatrix(a, b Matrix) Matrix {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		panic("poly: AddMatrix shape mismatch")
	}
	out := make([]Polynomial, len(a.entries))
	for i := range out {
		out[i] = Add(a.entries[i], b.entries[i])
	}
	return Matrix{Rows: a.Rows, Cols: a.Cols, entries: out}
}

// ScaleMatrix returns c*m entrywise.
func ScaleMatrix(m Matrix, c float64) Matrix {
	out := make([]Polynomial, len(m.entries))
	for i := range out {
		out[i] = Scale(m.entries[i], c)
	}
	return Matrix{Rows: m.Rows, Cols: m.Cols, entries: out}
}

// MatMul returns a*b. Panics if a.Cols != b.Rows.
func MatMul(a, b Matrix) Matrix {
	if a.Cols != b.Rows {
		panic("poly: MatMul shape mismatch")
	}
	vars := mergedVars(varsOf(a), varsOf(b))
	out := make([]Polynomial, a.Rows*b.Cols)
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < b.Cols; j++ {
			acc := Zero(vars)
			for k := 0; k < a.Cols; k++ {
				acc = Add(acc, Mul(a.At(i, k), b.At(k, j)))
			}
			out[i*b.Cols+j] = acc
		}
	}
	return Matrix{Rows: a.Rows, Cols: b.Cols, entries: out}
}

func varsOf(m Matrix) []Var {
	var vars []Var
	for _, p := range m.entries {
		vars = mergedVars(vars, p.Vars())
	}
	return vars
}

// QuadForm returns z^T * q * z, the scalar polynomial condition backing a
// Gram-matrix factorization (spec §4.6).
func QuadForm(z Vector, q Matrix) Polynomial {
	if z.Rows != q.Rows || q.Rows != q.Cols {
		panic("poly: QuadForm requires a square q matching z's length")
	}
	result := MatMul(Transpose(z), MatMul(q, z))
	return result.At(0, 0)
}

// MaxDegree returns the largest Degree() among polys (-1 if all are zero
// or polys is empty).
func MaxDegree(polys ...Polynomial) int {
	d := -1
	for _, p := range polys {
		if pd := p.Degree(); pd > d {
			d = pd
		}
	}
	return d
}
