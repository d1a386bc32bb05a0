package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
// Nothing here normalizes implicitly; only unit quaternions are pure rotations.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	halfAngle := angle / 2
	s := math.Sin(halfAngle)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math.Cos(halfAngle),
	}
}

// LengthSquared returns the squared norm.
func (q Quat) LengthSquared() float64 {
	return q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
}

// Length returns the norm.
func (q Quat) Length() float64 {
	return math.Sqrt(q.LengthSquared())
}

// Normalize returns a unit quaternion. Undefined (NaN) for the zero quaternion.
func (q Quat) Normalize() Quat {
	invLen := 1.0 / q.Length()
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Conjugate returns (-x, -y, -z, w).
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Inverse returns conj(q)/|q|². Undefined for the zero quaternion.
func (q Quat) Inverse() Quat {
	inv := 1.0 / q.LengthSquared()
	return Quat{X: -q.X * inv, Y: -q.Y * inv, Z: -q.Z * inv, W: q.W * inv}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float64 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Mul returns the Hamilton product q * other. As rotations, other is
// applied first and q second.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// MulAssign replaces q with q * other.
func (q *Quat) MulAssign(other Quat) {
	*q = q.Mul(other)
}

// Product composes two rotations: a applied, then b. It equals b.Mul(a).
func Product(a, b Quat) Quat {
	return b.Mul(a)
}

// Rotate rotates p by q as q * p * conj(q). q must be unit length,
// otherwise the result is also scaled by |q|².
func (q Quat) Rotate(p Vec3) Vec3 {
	r := q.Mul(Quat{X: p.X, Y: p.Y, Z: p.Z}).Mul(q.Conjugate())
	return Vec3{r.X, r.Y, r.Z}
}

// RotateScaled rotates p by q and divides by |q|², so q need not be unit length.
func (q Quat) RotateScaled(p Vec3) Vec3 {
	return q.Rotate(p).Scale(1 / q.LengthSquared())
}

// Equals compares component-wise within Epsilon.
func (q Quat) Equals(other Quat) bool {
	return Equals(q.X, other.X) && Equals(q.Y, other.Y) && Equals(q.Z, other.Z) && Equals(q.W, other.W)
}

// Slerp performs spherical linear interpolation between two quaternions.
// t should be in range [0, 1].
func (q Quat) Slerp(other Quat, t float64) Quat {
	dot := q.Dot(other)

	// Take the shorter path
	if dot < 0 {
		other = Quat{X: -other.X, Y: -other.Y, Z: -other.Z, W: -other.W}
		dot = -dot
	}

	// Nearly parallel: fall back to lerp
	if dot > 0.9995 {
		return q.Lerp(other, t)
	}

	theta0 := math.Acos(dot)
	theta := theta0 * t
	sinTheta := math.Sin(theta)
	sinTheta0 := math.Sin(theta0)

	s0 := math.Cos(theta) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return Quat{
		X: q.X*s0 + other.X*s1,
		Y: q.Y*s0 + other.Y*s1,
		Z: q.Z*s0 + other.Z*s1,
		W: q.W*s0 + other.W*s1,
	}
}

// Lerp performs normalized linear interpolation between two quaternions.
func (q Quat) Lerp(other Quat, t float64) Quat {
	return Quat{
		X: q.X + t*(other.X-q.X),
		Y: q.Y + t*(other.Y-q.Y),
		Z: q.Z + t*(other.Z-q.Z),
		W: q.W + t*(other.W-q.W),
	}.Normalize()
}

// ToMat3 converts a unit quaternion to a rotation matrix.
func (q Quat) ToMat3() Mat3 {
	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - zw), 2 * (xz + yw),
		2 * (xy + zw), 1 - 2*(xx+zz), 2 * (yz - xw),
		2 * (xz - yw), 2 * (yz + xw), 1 - 2*(xx+yy),
	}
}

// ToMat4 converts a unit quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	return FromMat3(q.ToMat3())
}
