package shape

import (
	"fmt"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Ray3 is a half-line origin + t*direction, t >= 0. The direction is not
// required to be unit length; ray parameters are multiples of it.
type Ray3 struct {
	origin    math.Vec3
	direction math.Vec3
}

// NewRay creates a ray. Origin and direction must be finite and the
// direction non-zero.
func NewRay(origin, direction math.Vec3) (Ray3, error) {
	if err := checkDirection(direction); err != nil {
		return Ray3{}, err
	}
	if !origin.IsFinite() {
		return Ray3{}, fmt.Errorf("%w: origin %v", ErrNotFinite, origin)
	}
	return Ray3{origin: origin, direction: direction}, nil
}

func checkDirection(d math.Vec3) error {
	if d.IsZero() {
		return ErrZeroDirection
	}
	if !d.IsFinite() {
		return fmt.Errorf("%w: direction %v", ErrNotFinite, d)
	}
	return nil
}

// RayThrough creates a ray starting at from whose parameter 1 lands on to.
func RayThrough(from, to math.Vec3) (Ray3, error) {
	return NewRay(from, to.Sub(from))
}

// Kind implements Shape.
func (r Ray3) Kind() Kind { return KindRay }

// Origin returns the start point.
func (r Ray3) Origin() math.Vec3 { return r.origin }

// Direction returns the direction vector.
func (r Ray3) Direction() math.Vec3 { return r.direction }

// PointAt returns origin + t*direction.
func (r Ray3) PointAt(t float64) math.Vec3 {
	return r.origin.Add(r.direction.Scale(t))
}

// ParameterOf returns the parameter of the point on the ray's line closest to p.
func (r Ray3) ParameterOf(p math.Vec3) float64 {
	return p.Sub(r.origin).Dot(r.direction) / r.direction.LengthSquared()
}

// Contains reports whether p lies on the ray.
func (r Ray3) Contains(p math.Vec3) bool {
	t := r.ParameterOf(p)
	if t < -math.Epsilon {
		return false
	}
	return r.PointAt(t).Equals(p)
}

// Normalized returns a copy with a unit-length direction.
func (r Ray3) Normalized() Ray3 {
	return Ray3{origin: r.origin, direction: r.direction.Normalize()}
}

// Translate moves the origin by offset.
func (r *Ray3) Translate(offset math.Vec3) {
	r.origin = r.origin.Add(offset)
}

// ScaleDirection multiplies the direction by s. A zero factor would leave
// the ray without a direction and is rejected.
func (r *Ray3) ScaleDirection(s float64) error {
	d := r.direction.Scale(s)
	if err := checkDirection(d); err != nil {
		return err
	}
	r.direction = d
	return nil
}

// SetDirection replaces the direction.
func (r *Ray3) SetDirection(direction math.Vec3) error {
	if err := checkDirection(direction); err != nil {
		return err
	}
	r.direction = direction
	return nil
}

// Transform applies an affine transform to origin and direction.
func (r *Ray3) Transform(m math.Mat4) error {
	d := m.TransformDirection(r.direction)
	if err := checkDirection(d); err != nil {
		return err
	}
	o := m.TransformPoint(r.origin)
	if !o.IsFinite() {
		return fmt.Errorf("%w: origin %v", ErrNotFinite, o)
	}
	r.origin = o
	r.direction = d
	return nil
}

// Segment3 is the closed line segment between A and B.
type Segment3 struct {
	A, B math.Vec3
}

// Kind implements Shape.
func (s Segment3) Kind() Kind { return KindSegment }

// Length returns |B - A|.
func (s Segment3) Length() float64 { return s.A.Distance(s.B) }

// Midpoint returns the point halfway between the endpoints.
func (s Segment3) Midpoint() math.Vec3 { return s.A.Lerp(s.B, 0.5) }

// Direction returns B - A.
func (s Segment3) Direction() math.Vec3 { return s.B.Sub(s.A) }

// ClosestPoint returns the point on the segment nearest p.
func (s Segment3) ClosestPoint(p math.Vec3) math.Vec3 {
	d := s.Direction()
	l2 := d.LengthSquared()
	if math.IsZero(l2) {
		return s.A
	}
	t := math.Clamp(p.Sub(s.A).Dot(d)/l2, 0, 1)
	return s.A.Add(d.Scale(t))
}

// Contains reports whether p lies on the segment.
func (s Segment3) Contains(p math.Vec3) bool {
	return s.ClosestPoint(p).Equals(p)
}

// Bounds returns the smallest AABB enclosing the segment.
func (s Segment3) Bounds() AABB {
	return AABBFromCorners(s.A, s.B)
}
