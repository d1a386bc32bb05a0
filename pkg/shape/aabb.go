package shape

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// AABB is an axis-aligned box stored as center and half extents. Min and Max
// are derived on every call so the two views can never disagree.
type AABB struct {
	center math.Vec3
	half   math.Vec3
}

// NewAABB creates a box from its center and non-negative half extents.
func NewAABB(center, halfExtents math.Vec3) (AABB, error) {
	if !validExtents(halfExtents) {
		return AABB{}, fmt.Errorf("%w: %v", ErrNegativeExtent, halfExtents)
	}
	if !center.IsFinite() {
		return AABB{}, fmt.Errorf("%w: center %v", ErrNotFinite, center)
	}
	return AABB{center: center, half: halfExtents}, nil
}

// validExtents rejects negative and NaN half extents.
func validExtents(h math.Vec3) bool {
	return h.X >= 0 && h.Y >= 0 && h.Z >= 0
}

// AABBFromCorners creates the box spanned by two opposite corners, in any order.
func AABBFromCorners(a, b math.Vec3) AABB {
	lo := a.Min(b)
	hi := a.Max(b)
	return AABB{center: lo.Add(hi).Scale(0.5), half: hi.Sub(lo).Scale(0.5)}
}

// AABBEnclosing returns the smallest box containing every point.
func AABBEnclosing(points ...math.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return AABBFromCorners(lo, hi)
}

// Kind implements Shape.
func (b AABB) Kind() Kind { return KindAABB }

// Center returns the box center.
func (b AABB) Center() math.Vec3 { return b.center }

// HalfExtents returns dx, dy, dz.
func (b AABB) HalfExtents() math.Vec3 { return b.half }

// Min returns the minimum corner.
func (b AABB) Min() math.Vec3 { return b.center.Sub(b.half) }

// Max returns the maximum corner.
func (b AABB) Max() math.Vec3 { return b.center.Add(b.half) }

// Size returns the full extents.
func (b AABB) Size() math.Vec3 { return b.half.Scale(2) }

// Volume returns the enclosed volume.
func (b AABB) Volume() float64 {
	return 8 * b.half.X * b.half.Y * b.half.Z
}

// Bounds implements Solid.
func (b AABB) Bounds() AABB { return b }

// Contains reports whether p is inside or on the box.
func (b AABB) Contains(p math.Vec3) bool {
	d := p.Sub(b.center).Abs()
	return d.X <= b.half.X+math.Epsilon &&
		d.Y <= b.half.Y+math.Epsilon &&
		d.Z <= b.half.Z+math.Epsilon
}

// ClosestPoint clamps p into the box.
func (b AABB) ClosestPoint(p math.Vec3) math.Vec3 {
	lo, hi := b.Min(), b.Max()
	return math.Vec3{
		X: math.Clamp(p.X, lo.X, hi.X),
		Y: math.Clamp(p.Y, lo.Y, hi.Y),
		Z: math.Clamp(p.Z, lo.Z, hi.Z),
	}
}

// Corners returns the eight corners.
func (b AABB) Corners() [8]math.Vec3 {
	var out [8]math.Vec3
	for i := 0; i < 8; i++ {
		sx, sy, sz := -1.0, -1.0, -1.0
		if i&1 != 0 {
			sx = 1
		}
		if i&2 != 0 {
			sy = 1
		}
		if i&4 != 0 {
			sz = 1
		}
		out[i] = b.center.Add(math.Vec3{X: sx * b.half.X, Y: sy * b.half.Y, Z: sz * b.half.Z})
	}
	return out
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(other AABB) AABB {
	return AABBFromCorners(b.Min().Min(other.Min()), b.Max().Max(other.Max()))
}

// Equals compares center and extents within Epsilon.
func (b AABB) Equals(other AABB) bool {
	return b.center.Equals(other.center) && b.half.Equals(other.half)
}

// Transformed returns the box enclosing the eight transformed corners.
func (b AABB) Transformed(m math.Mat4) AABB {
	corners := b.Corners()
	for i := range corners {
		corners[i] = m.TransformPoint(corners[i])
	}
	return AABBEnclosing(corners[:]...)
}

// Translate moves the box by offset.
func (b *AABB) Translate(offset math.Vec3) {
	b.center = b.center.Add(offset)
}

// Scale multiplies the extents by factor about the center.
func (b *AABB) Scale(factor float64) error {
	if factor < 0 || gomath.IsNaN(factor) {
		return fmt.Errorf("%w: %v", ErrNegativeScale, factor)
	}
	b.half = b.half.Scale(factor)
	return nil
}

// SetHalfExtents replaces the half extents.
func (b *AABB) SetHalfExtents(half math.Vec3) error {
	if !validExtents(half) {
		return fmt.Errorf("%w: %v", ErrNegativeExtent, half)
	}
	b.half = half
	return nil
}

// Transform replaces the box with the box enclosing its transformed corners.
func (b *AABB) Transform(m math.Mat4) {
	*b = b.Transformed(m)
}
