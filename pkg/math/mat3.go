package math

// Mat3 is a 3x3 matrix in row-major order.
// Layout: [m0 m1 m2]
//
//	[m3 m4 m5]
//	[m6 m7 m8]
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromColumns builds a matrix whose columns are a, b and c.
func Mat3FromColumns(a, b, c Vec3) Mat3 {
	return Mat3{
		a.X, b.X, c.X,
		a.Y, b.Y, c.Y,
		a.Z, b.Z, c.Z,
	}
}

// Row returns row i (0..2).
func (m Mat3) Row(i int) Vec3 {
	return Vec3{m[i*3], m[i*3+1], m[i*3+2]}
}

// Col returns column j (0..2).
func (m Mat3) Col(j int) Vec3 {
	return Vec3{m[j], m[3+j], m[6+j]}
}

// Mul returns m * other.
func (m Mat3) Mul(other Mat3) Mat3 {
	var result Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			result[row*3+col] =
				m[row*3+0]*other[0*3+col] +
					m[row*3+1]*other[1*3+col] +
					m[row*3+2]*other[2*3+col]
		}
	}
	return result
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant returns det(m).
func (m Mat3) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Trace returns the sum of the diagonal.
func (m Mat3) Trace() float64 {
	return m[0] + m[4] + m[8]
}

// Adjugate returns the transposed cofactor matrix.
func (m Mat3) Adjugate() Mat3 {
	return Mat3{
		m[4]*m[8] - m[5]*m[7], m[2]*m[7] - m[1]*m[8], m[1]*m[5] - m[2]*m[4],
		m[5]*m[6] - m[3]*m[8], m[0]*m[8] - m[2]*m[6], m[2]*m[3] - m[0]*m[5],
		m[3]*m[7] - m[4]*m[6], m[1]*m[6] - m[0]*m[7], m[0]*m[4] - m[1]*m[3],
	}
}

// Inverse returns m⁻¹, or ErrSingularMatrix when det(m) is within Epsilon of zero.
func (m Mat3) Inverse() (Mat3, error) {
	det := m.Determinant()
	if IsZero(det) {
		return Mat3{}, ErrSingularMatrix
	}
	adj := m.Adjugate()
	inv := 1.0 / det
	for i := range adj {
		adj[i] *= inv
	}
	return adj, nil
}

// IsOrthonormal reports whether the columns are mutually orthogonal unit
// vectors, using a tolerance loose enough for matrices built from
// normalized quaternions.
func (m Mat3) IsOrthonormal() bool {
	const tol = 1e-9
	near := func(a, b float64) bool {
		d := a - b
		return d <= tol && d >= -tol
	}
	a, b, c := m.Col(0), m.Col(1), m.Col(2)
	return near(a.LengthSquared(), 1) && near(b.LengthSquared(), 1) && near(c.LengthSquared(), 1) &&
		near(a.Dot(b), 0) && near(a.Dot(c), 0) && near(b.Dot(c), 0)
}

// Equals compares element-wise within Epsilon.
func (m Mat3) Equals(other Mat3) bool {
	for i := range m {
		if !Equals(m[i], other[i]) {
			return false
		}
	}
	return true
}
