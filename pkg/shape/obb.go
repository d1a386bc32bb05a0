package shape

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// OBB is an oriented box: a center, half extents along its local axes, and a
// rotation whose columns are those axes in world space. The rotation is
// always orthonormal, so Rᵀ is its inverse.
type OBB struct {
	center   math.Vec3
	half     math.Vec3
	rotation math.Mat3
}

// NewOBB creates an oriented box. The rotation must be orthonormal.
func NewOBB(center, halfExtents math.Vec3, rotation math.Mat3) (OBB, error) {
	if !validExtents(halfExtents) {
		return OBB{}, fmt.Errorf("%w: %v", ErrNegativeExtent, halfExtents)
	}
	if !center.IsFinite() {
		return OBB{}, fmt.Errorf("%w: center %v", ErrNotFinite, center)
	}
	if !rotation.IsOrthonormal() {
		return OBB{}, ErrNotOrthonormal
	}
	return OBB{center: center, half: halfExtents, rotation: rotation}, nil
}

// OBBFromQuat creates an oriented box rotated by q. q is normalized first.
func OBBFromQuat(center, halfExtents math.Vec3, q math.Quat) (OBB, error) {
	if gomath.IsNaN(q.LengthSquared()) || math.IsZero(q.LengthSquared()) {
		return OBB{}, fmt.Errorf("%w: zero quaternion", ErrNotOrthonormal)
	}
	return NewOBB(center, halfExtents, q.Normalize().ToMat3())
}

// OBBFromAABB wraps an axis-aligned box with an identity rotation.
func OBBFromAABB(b AABB) OBB {
	return OBB{center: b.center, half: b.half, rotation: math.Identity3()}
}

// Kind implements Shape.
func (o OBB) Kind() Kind { return KindOBB }

// Center returns the box center.
func (o OBB) Center() math.Vec3 { return o.center }

// HalfExtents returns the half extents along the local axes.
func (o OBB) HalfExtents() math.Vec3 { return o.half }

// Rotation returns the local-to-world rotation.
func (o OBB) Rotation() math.Mat3 { return o.rotation }

// Axis returns local axis i (0..2) in world space.
func (o OBB) Axis(i int) math.Vec3 { return o.rotation.Col(i) }

// ToLocal maps a world point into the box frame, where the box is the AABB
// centered at the origin with the same half extents.
func (o OBB) ToLocal(p math.Vec3) math.Vec3 {
	return o.rotation.Transpose().MulVec3(p.Sub(o.center))
}

// DirectionToLocal maps a world direction into the box frame.
func (o OBB) DirectionToLocal(d math.Vec3) math.Vec3 {
	return o.rotation.Transpose().MulVec3(d)
}

// ToWorld maps a point in the box frame back to world space.
func (o OBB) ToWorld(p math.Vec3) math.Vec3 {
	return o.rotation.MulVec3(p).Add(o.center)
}

// LocalBox returns the box as an AABB in its own frame.
func (o OBB) LocalBox() AABB {
	return AABB{half: o.half}
}

// Contains reports whether p is inside or on the box.
func (o OBB) Contains(p math.Vec3) bool {
	return o.LocalBox().Contains(o.ToLocal(p))
}

// Corners returns the eight corners in world space.
func (o OBB) Corners() [8]math.Vec3 {
	corners := o.LocalBox().Corners()
	for i := range corners {
		corners[i] = o.ToWorld(corners[i])
	}
	return corners
}

// Bounds returns the world AABB enclosing the box.
func (o OBB) Bounds() AABB {
	r := o.rotation
	e := math.Vec3{
		X: gomath.Abs(r[0])*o.half.X + gomath.Abs(r[1])*o.half.Y + gomath.Abs(r[2])*o.half.Z,
		Y: gomath.Abs(r[3])*o.half.X + gomath.Abs(r[4])*o.half.Y + gomath.Abs(r[5])*o.half.Z,
		Z: gomath.Abs(r[6])*o.half.X + gomath.Abs(r[7])*o.half.Y + gomath.Abs(r[8])*o.half.Z,
	}
	return AABB{center: o.center, half: e}
}

// Translate moves the box by offset.
func (o *OBB) Translate(offset math.Vec3) {
	o.center = o.center.Add(offset)
}

// Rotate turns the box about its center by q, which is normalized first.
func (o *OBB) Rotate(q math.Quat) error {
	if math.IsZero(q.LengthSquared()) {
		return fmt.Errorf("%w: zero quaternion", ErrNotOrthonormal)
	}
	o.rotation = q.Normalize().ToMat3().Mul(o.rotation)
	return nil
}

// Scale multiplies the half extents by factor.
func (o *OBB) Scale(factor float64) error {
	if factor < 0 || gomath.IsNaN(factor) {
		return fmt.Errorf("%w: %v", ErrNegativeScale, factor)
	}
	o.half = o.half.Scale(factor)
	return nil
}
