// Package linalg provides the dense complex matrix arithmetic used to
// build walk operators: multiplication, Kronecker products, conjugate
// transposition, and the structural checks (unitarity, permutation)
// the walk construction relies on.
package linalg

import (
	"fmt"
	"math"
	"math/cmplx"
)

// DefaultTol is the tolerance used by Equal, IsUnitary, and
// IsPermutation when callers pass a non-positive tolerance.
const DefaultTol = 1e-9

// Matrix is a dense complex128 matrix in row-major order.
type Matrix struct {
	Rows int
	Cols int
	Data []complex128
}

// New creates a rows x cols zero matrix.
func New(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("linalg: invalid dimensions %dx%d", rows, cols))
	}
	return &Matrix{
		Rows: rows,
		Cols: cols,
		Data: make([]complex128, rows*cols),
	}
}

// FromRows creates a matrix from row slices. All rows must have the
// same length.
func FromRows(rows [][]complex128) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("linalg: empty row data")
	}
	m := New(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.Cols {
			return nil, fmt.Errorf("linalg: row %d has %d entries, want %d", i, len(row), m.Cols)
		}
		copy(m.Data[i*m.Cols:(i+1)*m.Cols], row)
	}
	return m, nil
}

// Identity creates the n x n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.Data[i*n+i] = 1
	}
	return m
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) complex128 {
	return m.Data[i*m.Cols+j]
}

// Set assigns the element at row i, column j.
func (m *Matrix) Set(i, j int, v complex128) {
	m.Data[i*m.Cols+j] = v
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	out := New(m.Rows, m.Cols)
	copy(out.Data, m.Data)
	return out
}

// Mul returns the matrix product m * other.
func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	if m.Cols != other.Rows {
		return nil, fmt.Errorf("linalg: dimension mismatch %dx%d * %dx%d", m.Rows, m.Cols, other.Rows, other.Cols)
	}
	out := New(m.Rows, other.Cols)
	for i := 0; i < m.Rows; i++ {
		for k := 0; k < m.Cols; k++ {
			a := m.Data[i*m.Cols+k]
			if a == 0 {
				continue
			}
			for j := 0; j < other.Cols; j++ {
				out.Data[i*out.Cols+j] += a * other.Data[k*other.Cols+j]
			}
		}
	}
	return out, nil
}

// MatVec returns the matrix-vector product m * v.
func (m *Matrix) MatVec(v []complex128) ([]complex128, error) {
	if m.Cols != len(v) {
		return nil, fmt.Errorf("linalg: dimension mismatch %dx%d * vec(%d)", m.Rows, m.Cols, len(v))
	}
	out := make([]complex128, m.Rows)
	for i := 0; i < m.Rows; i++ {
		var sum complex128
		row := m.Data[i*m.Cols : (i+1)*m.Cols]
		for j, a := range row {
			if a != 0 {
				sum += a * v[j]
			}
		}
		out[i] = sum
	}
	return out, nil
}

// Add returns the element-wise sum m + other.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	if m.Rows != other.Rows || m.Cols != other.Cols {
		return nil, fmt.Errorf("linalg: dimension mismatch %dx%d + %dx%d", m.Rows, m.Cols, other.Rows, other.Cols)
	}
	out := New(m.Rows, m.Cols)
	for i := range m.Data {
		out.Data[i] = m.Data[i] + other.Data[i]
	}
	return out, nil
}

// Scale returns m with every element multiplied by s.
func (m *Matrix) Scale(s complex128) *Matrix {
	out := New(m.Rows, m.Cols)
	for i, v := range m.Data {
		out.Data[i] = s * v
	}
	return out
}

// Kron returns the Kronecker product a ⊗ b. The result has dimensions
// (a.Rows*b.Rows) x (a.Cols*b.Cols); block (i,j) is a[i][j] * b.
func Kron(a, b *Matrix) *Matrix {
	out := New(a.Rows*b.Rows, a.Cols*b.Cols)
	for ai := 0; ai < a.Rows; ai++ {
		for aj := 0; aj < a.Cols; aj++ {
			f := a.Data[ai*a.Cols+aj]
			if f == 0 {
				continue
			}
			for bi := 0; bi < b.Rows; bi++ {
				oi := ai*b.Rows + bi
				for bj := 0; bj < b.Cols; bj++ {
					out.Data[oi*out.Cols+aj*b.Cols+bj] = f * b.Data[bi*b.Cols+bj]
				}
			}
		}
	}
	return out
}

// Dagger returns the conjugate transpose of m.
func (m *Matrix) Dagger() *Matrix {
	out := New(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Data[j*out.Cols+i] = cmplx.Conj(m.Data[i*m.Cols+j])
		}
	}
	return out
}

// Transpose returns the (non-conjugated) transpose of m.
func (m *Matrix) Transpose() *Matrix {
	out := New(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Data[j*out.Cols+i] = m.Data[i*m.Cols+j]
		}
	}
	return out
}

// Equal reports whether m and other have the same shape and all
// elements agree within tol. A non-positive tol uses DefaultTol.
func (m *Matrix) Equal(other *Matrix, tol float64) bool {
	if m.Rows != other.Rows || m.Cols != other.Cols {
		return false
	}
	if tol <= 0 {
		tol = DefaultTol
	}
	for i := range m.Data {
		if cmplx.Abs(m.Data[i]-other.Data[i]) > tol {
			return false
		}
	}
	return true
}

// IsUnitary reports whether m is square and m† * m = I within tol.
func (m *Matrix) IsUnitary(tol float64) bool {
	if m.Rows != m.Cols {
		return false
	}
	prod, err := m.Dagger().Mul(m)
	if err != nil {
		return false
	}
	return prod.Equal(Identity(m.Rows), tol)
}

// IsPermutation reports whether m is a permutation matrix: square,
// every entry 0 or 1 within DefaultTol, and exactly one 1 per row and
// per column.
func (m *Matrix) IsPermutation() bool {
	if m.Rows != m.Cols {
		return false
	}
	colOnes := make([]int, m.Cols)
	for i := 0; i < m.Rows; i++ {
		rowOnes := 0
		for j := 0; j < m.Cols; j++ {
			v := m.Data[i*m.Cols+j]
			switch {
			case cmplx.Abs(v) <= DefaultTol:
				// zero entry
			case cmplx.Abs(v-1) <= DefaultTol:
				rowOnes++
				colOnes[j]++
			default:
				return false
			}
		}
		if rowOnes != 1 {
			return false
		}
	}
	for _, c := range colOnes {
		if c != 1 {
			return false
		}
	}
	return true
}

// MaxAbsDiff returns the largest element-wise absolute difference
// between m and other. Shapes must match.
func (m *Matrix) MaxAbsDiff(other *Matrix) (float64, error) {
	if m.Rows != other.Rows || m.Cols != other.Cols {
		return 0, fmt.Errorf("linalg: dimension mismatch %dx%d vs %dx%d", m.Rows, m.Cols, other.Rows, other.Cols)
	}
	max := 0.0
	for i := range m.Data {
		if d := cmplx.Abs(m.Data[i] - other.Data[i]); d > max {
			max = d
		}
	}
	return max, nil
}

// Norm2 returns the Euclidean norm of a complex vector.
func Norm2(v []complex128) float64 {
	sum := 0.0
	for _, a := range v {
		re, im := real(a), imag(a)
		sum += re*re + im*im
	}
	return math.Sqrt(sum)
}
