package shape

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Plane is an infinite plane given by a point on it and a normal.
// The normal is kept as supplied; it need not be unit length.
type Plane struct {
	point  math.Vec3
	normal math.Vec3
}

// NewPlane creates a plane through point with the given normal.
func NewPlane(point, normal math.Vec3) (Plane, error) {
	if normal.IsZero() {
		return Plane{}, ErrZeroNormal
	}
	if !normal.IsFinite() || !point.IsFinite() {
		return Plane{}, fmt.Errorf("%w: point %v, normal %v", ErrNotFinite, point, normal)
	}
	return Plane{point: point, normal: normal}, nil
}

// PlaneFromPoints creates the plane through a, b and c, with the normal
// following the right-hand rule over a→b→c.
func PlaneFromPoints(a, b, c math.Vec3) (Plane, error) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.IsZero() {
		return Plane{}, fmt.Errorf("%w: points are collinear", ErrZeroNormal)
	}
	return Plane{point: a, normal: n}, nil
}

// PlaneFromHesse creates the plane a*x + b*y + c*z = d.
func PlaneFromHesse(a, b, c, d float64) (Plane, error) {
	n := math.Vec3{X: a, Y: b, Z: c}
	if n.IsZero() {
		return Plane{}, ErrZeroNormal
	}
	if !n.IsFinite() || !math.IsFinite(d) {
		return Plane{}, fmt.Errorf("%w: %v·x = %v", ErrNotFinite, n, d)
	}
	return Plane{point: n.Scale(d / n.LengthSquared()), normal: n}, nil
}

// Kind implements Shape.
func (p Plane) Kind() Kind { return KindPlane }

// Point returns the stored point on the plane.
func (p Plane) Point() math.Vec3 { return p.point }

// Normal returns the normal as supplied.
func (p Plane) Normal() math.Vec3 { return p.normal }

// UnitNormal returns the normalized normal.
func (p Plane) UnitNormal() math.Vec3 { return p.normal.Normalize() }

// Depth returns d in the Hesse form normal·x = d.
func (p Plane) Depth() float64 { return p.normal.Dot(p.point) }

// SignedDistance returns the distance of q from the plane, positive on the
// side the normal points to.
func (p Plane) SignedDistance(q math.Vec3) float64 {
	return p.normal.Dot(q.Sub(p.point)) / p.normal.Length()
}

// Contains reports whether q lies on the plane.
func (p Plane) Contains(q math.Vec3) bool {
	return math.IsZero(p.SignedDistance(q))
}

// Project returns the orthogonal projection of q onto the plane.
func (p Plane) Project(q math.Vec3) math.Vec3 {
	n := p.normal
	return q.Sub(n.Scale(n.Dot(q.Sub(p.point)) / n.LengthSquared()))
}

// Flipped returns the same plane with the normal reversed.
func (p Plane) Flipped() Plane {
	return Plane{point: p.point, normal: p.normal.Negate()}
}

// Translate moves the plane by offset.
func (p *Plane) Translate(offset math.Vec3) {
	p.point = p.point.Add(offset)
}

// Transform applies an affine transform. Normals transform by the inverse
// transpose, so a singular transform is rejected.
func (p *Plane) Transform(m math.Mat4) error {
	inv, err := m.Mat3().Inverse()
	if err != nil {
		return err
	}
	n := inv.Transpose().MulVec3(p.normal)
	if n.IsZero() {
		return ErrZeroNormal
	}
	pt := m.TransformPoint(p.point)
	if !n.IsFinite() || !pt.IsFinite() {
		return fmt.Errorf("%w: point %v, normal %v", ErrNotFinite, pt, n)
	}
	p.point = pt
	p.normal = n
	return nil
}

// AxisPlane is a plane whose normal is a coordinate axis: axis = depth.
type AxisPlane struct {
	axis  math.Axis
	depth float64
}

// NewAxisPlane creates the plane where the given coordinate equals depth.
func NewAxisPlane(axis math.Axis, depth float64) (AxisPlane, error) {
	if !axis.Valid() {
		return AxisPlane{}, fmt.Errorf("%w: %d", ErrInvalidAxis, int(axis))
	}
	if gomath.IsNaN(depth) {
		return AxisPlane{}, fmt.Errorf("axis plane depth is NaN")
	}
	return AxisPlane{axis: axis, depth: depth}, nil
}

// Kind implements Shape.
func (p AxisPlane) Kind() Kind { return KindAxisPlane }

// Axis returns the plane's normal axis.
func (p AxisPlane) Axis() math.Axis { return p.axis }

// Depth returns the coordinate value of the plane along its axis.
func (p AxisPlane) Depth() float64 { return p.depth }

// Normal returns the positive unit vector of the axis.
func (p AxisPlane) Normal() math.Vec3 { return p.axis.Unit() }

// SignedDistance returns q's coordinate along the axis minus the depth.
func (p AxisPlane) SignedDistance(q math.Vec3) float64 {
	return q.Component(p.axis) - p.depth
}

// Contains reports whether q lies on the plane.
func (p AxisPlane) Contains(q math.Vec3) bool {
	return math.Equals(q.Component(p.axis), p.depth)
}

// Plane converts to the general representation.
func (p AxisPlane) Plane() Plane {
	n := p.axis.Unit()
	return Plane{point: n.Scale(p.depth), normal: n}
}

// SetDepth moves the plane along its axis.
func (p *AxisPlane) SetDepth(depth float64) {
	p.depth = depth
}

// Translate moves the plane by the offset's component along the axis.
func (p *AxisPlane) Translate(offset math.Vec3) {
	p.depth += offset.Component(p.axis)
}
