// Package math provides the vector, matrix and quaternion types the collision
// kernel is built on.
package math

import "math"

// Epsilon is the absolute tolerance used by every fuzzy comparison in the kernel.
const Epsilon = 1e-10

// Equals reports whether a and b differ by at most Epsilon.
func Equals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// IsZero reports whether x is within Epsilon of zero.
func IsZero(x float64) bool {
	return math.Abs(x) <= Epsilon
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Hypot3 returns sqrt(x*x + y*y + z*z).
func Hypot3(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}
