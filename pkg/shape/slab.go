package shape

import (
	"fmt"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Slab3 is the infinite region min <= normal·x <= max between two parallel
// planes. Depths are measured in units of the supplied normal.
type Slab3 struct {
	normal   math.Vec3
	min, max float64
}

// NewSlab creates a slab. The normal must be finite and non-zero, and
// min <= max (NaN depths fail that check).
func NewSlab(normal math.Vec3, min, max float64) (Slab3, error) {
	if normal.IsZero() {
		return Slab3{}, ErrZeroNormal
	}
	if !normal.IsFinite() {
		return Slab3{}, fmt.Errorf("%w: normal %v", ErrNotFinite, normal)
	}
	if !(min <= max) {
		return Slab3{}, fmt.Errorf("%w: %v > %v", ErrInvertedSlab, min, max)
	}
	return Slab3{normal: normal, min: min, max: max}, nil
}

// Kind implements Shape.
func (s Slab3) Kind() Kind { return KindSlab }

// Normal returns the slab normal.
func (s Slab3) Normal() math.Vec3 { return s.normal }

// Min returns the lower depth.
func (s Slab3) Min() float64 { return s.min }

// Max returns the upper depth.
func (s Slab3) Max() float64 { return s.max }

// Thickness returns the distance between the bounding planes.
func (s Slab3) Thickness() float64 {
	return (s.max - s.min) / s.normal.Length()
}

// SetMin changes the lower depth, keeping min <= max.
func (s *Slab3) SetMin(min float64) error {
	if !(min <= s.max) {
		return fmt.Errorf("%w: %v > %v", ErrInvertedSlab, min, s.max)
	}
	s.min = min
	return nil
}

// SetMax changes the upper depth, keeping min <= max.
func (s *Slab3) SetMax(max float64) error {
	if !(s.min <= max) {
		return fmt.Errorf("%w: %v > %v", ErrInvertedSlab, s.min, max)
	}
	s.max = max
	return nil
}

// SetBounds replaces both depths at once.
func (s *Slab3) SetBounds(min, max float64) error {
	if !(min <= max) {
		return fmt.Errorf("%w: %v > %v", ErrInvertedSlab, min, max)
	}
	s.min, s.max = min, max
	return nil
}

// Translate shifts the slab by offset.
func (s *Slab3) Translate(offset math.Vec3) {
	d := s.normal.Dot(offset)
	s.min += d
	s.max += d
}

// Contains reports whether p lies between or on the bounding planes.
func (s Slab3) Contains(p math.Vec3) bool {
	d := s.normal.Dot(p)
	return d >= s.min-math.Epsilon && d <= s.max+math.Epsilon
}

// MinPlane returns the bounding plane normal·x = min.
func (s Slab3) MinPlane() Plane {
	return Plane{point: s.normal.Scale(s.min / s.normal.LengthSquared()), normal: s.normal}
}

// MaxPlane returns the bounding plane normal·x = max.
func (s Slab3) MaxPlane() Plane {
	return Plane{point: s.normal.Scale(s.max / s.normal.LengthSquared()), normal: s.normal}
}
