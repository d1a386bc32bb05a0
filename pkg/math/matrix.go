package math

import (
	"fmt"
	"math"
)

// Matrix is a general rows x cols matrix stored row-major.
// Its size is fixed after construction.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix creates a rows x cols matrix from row-major content. With no
// content the matrix is zero-filled; otherwise len(content) must equal rows*cols.
func NewMatrix(rows, cols int, content ...float64) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensionMismatch, rows, cols)
	}
	m := &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
	if len(content) == 0 {
		return m, nil
	}
	if len(content) != rows*cols {
		return nil, fmt.Errorf("%w: %dx%d needs %d values, got %d",
			ErrDimensionMismatch, rows, cols, rows*cols, len(content))
	}
	copy(m.data, content)
	return m, nil
}

// IdentityMatrix returns the n x n identity.
func IdentityMatrix(n int) (*Matrix, error) {
	m, err := NewMatrix(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m, nil
}

// MatrixFromMat3 copies a fixed 3x3 matrix into a general one.
func MatrixFromMat3(m3 Mat3) *Matrix {
	m := &Matrix{rows: 3, cols: 3, data: make([]float64, 9)}
	copy(m.data, m3[:])
	return m
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.cols }

// IsSquare reports whether rows == cols.
func (m *Matrix) IsSquare() bool { return m.rows == m.cols }

func (m *Matrix) inRange(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// At returns the cell at (row, col).
func (m *Matrix) At(row, col int) (float64, error) {
	if !m.inRange(row, col) {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIndexOutOfRange, row, col, m.rows, m.cols)
	}
	return m.data[row*m.cols+col], nil
}

// Set overwrites the cell at (row, col).
func (m *Matrix) Set(row, col int, value float64) error {
	if !m.inRange(row, col) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIndexOutOfRange, row, col, m.rows, m.cols)
	}
	m.data[row*m.cols+col] = value
	return nil
}

// Clone returns an independent copy.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(c.data, m.data)
	return c
}

// Transpose returns a transposed copy.
func (m *Matrix) Transpose() *Matrix {
	t := &Matrix{rows: m.cols, cols: m.rows, data: make([]float64, len(m.data))}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			t.data[c*m.rows+r] = m.data[r*m.cols+c]
		}
	}
	return t
}

// Mul returns m * other.
func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, fmt.Errorf("%w: %dx%d * %dx%d", ErrDimensionMismatch, m.rows, m.cols, other.rows, other.cols)
	}
	out := &Matrix{rows: m.rows, cols: other.cols, data: make([]float64, m.rows*other.cols)}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < other.cols; c++ {
			var sum float64
			for k := 0; k < m.cols; k++ {
				sum += m.data[r*m.cols+k] * other.data[k*other.cols+c]
			}
			out.data[r*out.cols+c] = sum
		}
	}
	return out, nil
}

// Trace returns the sum of the diagonal of a square matrix.
func (m *Matrix) Trace() (float64, error) {
	if !m.IsSquare() {
		return 0, ErrNotSquare
	}
	var sum float64
	for i := 0; i < m.rows; i++ {
		sum += m.data[i*m.cols+i]
	}
	return sum, nil
}

// Determinant computes det(m) by Gaussian elimination with partial pivoting.
func (m *Matrix) Determinant() (float64, error) {
	if !m.IsSquare() {
		return 0, ErrNotSquare
	}
	n := m.rows
	a := make([]float64, len(m.data))
	copy(a, m.data)

	det := 1.0
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r*n+col]) > math.Abs(a[pivot*n+col]) {
				pivot = r
			}
		}
		if a[pivot*n+col] == 0 {
			return 0, nil
		}
		if pivot != col {
			for k := 0; k < n; k++ {
				a[col*n+k], a[pivot*n+k] = a[pivot*n+k], a[col*n+k]
			}
			det = -det
		}
		p := a[col*n+col]
		det *= p
		for r := col + 1; r < n; r++ {
			f := a[r*n+col] / p
			if f == 0 {
				continue
			}
			for k := col; k < n; k++ {
				a[r*n+k] -= f * a[col*n+k]
			}
		}
	}
	return det, nil
}

// Minor returns the matrix with the given row and column removed.
func (m *Matrix) Minor(row, col int) (*Matrix, error) {
	if !m.IsSquare() {
		return nil, ErrNotSquare
	}
	if !m.inRange(row, col) {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIndexOutOfRange, row, col, m.rows, m.cols)
	}
	if m.rows == 1 {
		return nil, fmt.Errorf("%w: 1x1 matrix has no minor", ErrDimensionMismatch)
	}
	n := m.rows - 1
	out := &Matrix{rows: n, cols: n, data: make([]float64, 0, n*n)}
	for r := 0; r < m.rows; r++ {
		if r == row {
			continue
		}
		for c := 0; c < m.cols; c++ {
			if c == col {
				continue
			}
			out.data = append(out.data, m.data[r*m.cols+c])
		}
	}
	return out, nil
}

// Cofactor returns (-1)^(row+col) * det(Minor(row, col)).
func (m *Matrix) Cofactor(row, col int) (float64, error) {
	minor, err := m.Minor(row, col)
	if err != nil {
		return 0, err
	}
	det, err := minor.Determinant()
	if err != nil {
		return 0, err
	}
	if (row+col)%2 == 1 {
		det = -det
	}
	return det, nil
}

// Adjugate returns the transposed cofactor matrix.
func (m *Matrix) Adjugate() (*Matrix, error) {
	if !m.IsSquare() {
		return nil, ErrNotSquare
	}
	n := m.rows
	adj := &Matrix{rows: n, cols: n, data: make([]float64, n*n)}
	if n == 1 {
		adj.data[0] = 1
		return adj, nil
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cof, err := m.Cofactor(r, c)
			if err != nil {
				return nil, err
			}
			adj.data[c*n+r] = cof
		}
	}
	return adj, nil
}

// Inverse returns adj(m)/det(m). A determinant within Epsilon of zero yields
// ErrSingularMatrix rather than a meaningless result.
func (m *Matrix) Inverse() (*Matrix, error) {
	det, err := m.Determinant()
	if err != nil {
		return nil, err
	}
	if IsZero(det) {
		return nil, ErrSingularMatrix
	}
	adj, err := m.Adjugate()
	if err != nil {
		return nil, err
	}
	inv := 1.0 / det
	for i := range adj.data {
		adj.data[i] *= inv
	}
	return adj, nil
}

// Mat3 converts a 3x3 matrix to the fixed-size type.
func (m *Matrix) Mat3() (Mat3, error) {
	if m.rows != 3 || m.cols != 3 {
		return Mat3{}, fmt.Errorf("%w: want 3x3, have %dx%d", ErrDimensionMismatch, m.rows, m.cols)
	}
	var out Mat3
	copy(out[:], m.data)
	return out, nil
}

// Equals compares dimensions and cells within Epsilon.
func (m *Matrix) Equals(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if !Equals(m.data[i], other.data[i]) {
			return false
		}
	}
	return true
}
