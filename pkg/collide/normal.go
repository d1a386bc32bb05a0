package collide

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
	"github.com/Faultbox/midgard-collide/pkg/shape"
)

// Reflect mirrors incident about the surface with the given normal. The
// normal need not be unit length.
func Reflect(incident, normal math.Vec3) math.Vec3 {
	return incident.Sub(normal.Scale(2 * incident.Dot(normal) / normal.LengthSquared()))
}

// SphereNormal returns the outward unit normal through p.
func SphereNormal(s shape.Sphere, p math.Vec3) math.Vec3 {
	return p.Sub(s.Center()).Normalize()
}

// AABBNormal returns the outward unit normal of the face nearest to p.
func AABBNormal(b shape.AABB, p math.Vec3) math.Vec3 {
	return boxNormal(p.Sub(b.Center()), b.HalfExtents())
}

// OBBNormal is AABBNormal in the box's frame, rotated back to world space.
func OBBNormal(o shape.OBB, p math.Vec3) math.Vec3 {
	return o.Rotation().MulVec3(boxNormal(o.ToLocal(p), o.HalfExtents()))
}

func boxNormal(local, half math.Vec3) math.Vec3 {
	best := math.AxisX
	bestDist := gomath.Inf(-1)
	for _, axis := range [3]math.Axis{math.AxisX, math.AxisY, math.AxisZ} {
		d := gomath.Abs(local.Component(axis)) - half.Component(axis)
		if d > bestDist {
			best, bestDist = axis, d
		}
	}
	n := best.Unit()
	if local.Component(best) < 0 {
		n = n.Negate()
	}
	return n
}

// SurfaceNormal returns the outward unit normal of s at (or nearest to) p.
func SurfaceNormal(s shape.Shape, p math.Vec3) (math.Vec3, error) {
	switch v := deref(s).(type) {
	case shape.Sphere:
		return SphereNormal(v, p), nil
	case shape.AABB:
		return AABBNormal(v, p), nil
	case shape.OBB:
		return OBBNormal(v, p), nil
	case shape.Plane:
		return v.UnitNormal(), nil
	case shape.AxisPlane:
		return v.Normal(), nil
	case shape.Triangle3:
		return v.Normal(), nil
	case shape.Slab3:
		n := v.Normal()
		d := n.Dot(p)
		if gomath.Abs(d-v.Max()) <= gomath.Abs(d-v.Min()) {
			return n.Normalize(), nil
		}
		return n.Normalize().Negate(), nil
	case shape.Tetrahedron:
		faces := v.Faces()
		best := faces[0]
		bestDist := gomath.Inf(-1)
		for _, f := range faces {
			pl, err := f.Plane()
			if err != nil {
				continue
			}
			if d := pl.SignedDistance(p); d > bestDist {
				best, bestDist = f, d
			}
		}
		return best.Normal(), nil
	}
	return math.Vec3{}, fmt.Errorf("surface normal of %v: %w", kindOf(s), ErrUnsupportedShape)
}
