package shape

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Sphere is a solid ball.
type Sphere struct {
	center math.Vec3
	radius float64
}

// NewSphere creates a sphere with a non-negative radius.
func NewSphere(center math.Vec3, radius float64) (Sphere, error) {
	if radius < 0 || gomath.IsNaN(radius) {
		return Sphere{}, fmt.Errorf("%w: %v", ErrNegativeRadius, radius)
	}
	if !center.IsFinite() {
		return Sphere{}, fmt.Errorf("%w: center %v", ErrNotFinite, center)
	}
	return Sphere{center: center, radius: radius}, nil
}

// Kind implements Shape.
func (s Sphere) Kind() Kind { return KindSphere }

// Center returns the center.
func (s Sphere) Center() math.Vec3 { return s.center }

// Radius returns the radius.
func (s Sphere) Radius() float64 { return s.radius }

// Contains reports whether p is inside or on the sphere.
func (s Sphere) Contains(p math.Vec3) bool {
	return p.DistanceSquared(s.center) <= s.radius*s.radius+math.Epsilon
}

// Bounds returns the enclosing AABB.
func (s Sphere) Bounds() AABB {
	return AABB{center: s.center, half: math.Vec3{X: s.radius, Y: s.radius, Z: s.radius}}
}

// Volume returns 4/3 π r³.
func (s Sphere) Volume() float64 {
	return 4.0 / 3.0 * gomath.Pi * s.radius * s.radius * s.radius
}

// SetRadius changes the radius.
func (s *Sphere) SetRadius(radius float64) error {
	if radius < 0 || gomath.IsNaN(radius) {
		return fmt.Errorf("%w: %v", ErrNegativeRadius, radius)
	}
	s.radius = radius
	return nil
}

// Translate moves the sphere by offset.
func (s *Sphere) Translate(offset math.Vec3) {
	s.center = s.center.Add(offset)
}

// Scale multiplies the radius by factor.
func (s *Sphere) Scale(factor float64) error {
	if factor < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeScale, factor)
	}
	s.radius *= factor
	return nil
}

// Circle3 is a circle embedded in 3D, such as the intersection of two spheres.
type Circle3 struct {
	Center math.Vec3
	Normal math.Vec3 // unit normal of the circle's plane
	Radius float64
}

// Contains reports whether p lies on the circle's circumference.
func (c Circle3) Contains(p math.Vec3) bool {
	d := p.Sub(c.Center)
	if !math.IsZero(d.Dot(c.Normal)) {
		return false
	}
	return gomath.Abs(d.Length()-c.Radius) <= 1e-9
}
