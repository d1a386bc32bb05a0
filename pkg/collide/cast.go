package collide

import (
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
	"github.com/Faultbox/midgard-collide/pkg/shape"
)

// CastSphere returns the smallest non-negative t at which the ray touches the
// sphere. A ray starting inside the sphere reports its exit.
func CastSphere(r shape.Ray3, s shape.Sphere) float64 {
	d := r.Direction()
	m := s.Center().Sub(r.Origin())
	dd := d.LengthSquared()
	md := m.Dot(d)
	rr := s.Radius() * s.Radius()

	// Squared distance from the center to the ray's line.
	distSq := m.LengthSquared() - md*md/dd
	if distSq > rr+math.Epsilon {
		return Miss()
	}
	tc := md / dd
	thc := gomath.Sqrt(gomath.Max(0, (rr-distSq)/dd))

	inside := m.LengthSquared() - rr
	switch {
	case inside > math.Epsilon:
		// Origin outside: the sphere must be ahead.
		if tc < 0 {
			return Miss()
		}
		return tc - thc
	case inside >= -math.Epsilon:
		return 0
	default:
		return tc + thc
	}
}

// CastAABB uses the slab method. A ray starting inside the box reports its exit.
func CastAABB(r shape.Ray3, b shape.AABB) float64 {
	tmin, tmax, ok := slabs(r.Origin(), r.Direction(), b.Min(), b.Max())
	if !ok {
		return Miss()
	}
	return nearest(tmin, tmax)
}

// CastOBB casts the ray in the box's frame, where the box is axis aligned.
func CastOBB(r shape.Ray3, o shape.OBB) float64 {
	box := o.LocalBox()
	tmin, tmax, ok := slabs(o.ToLocal(r.Origin()), o.DirectionToLocal(r.Direction()), box.Min(), box.Max())
	if !ok {
		return Miss()
	}
	return nearest(tmin, tmax)
}

// nearest picks the entry parameter, or the exit one when the origin is
// already inside.
func nearest(tmin, tmax float64) float64 {
	if tmax < 0 {
		return Miss()
	}
	if tmin < 0 {
		return tmax
	}
	return tmin
}

// slabs narrows [tmin, tmax] across the three axes. Axes the direction is
// parallel to contribute (-Inf, +Inf) when the origin is within them and
// reject the ray otherwise.
func slabs(origin, dir, lo, hi math.Vec3) (tmin, tmax float64, ok bool) {
	tmin, tmax = gomath.Inf(-1), gomath.Inf(1)
	for _, axis := range [3]math.Axis{math.AxisX, math.AxisY, math.AxisZ} {
		o := origin.Component(axis)
		d := dir.Component(axis)
		l, h := lo.Component(axis), hi.Component(axis)
		if math.IsZero(d) {
			if o < l-math.Epsilon || o > h+math.Epsilon {
				return 0, 0, false
			}
			continue
		}
		t1 := (l - o) / d
		t2 := (h - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = gomath.Max(tmin, t1)
		tmax = gomath.Min(tmax, t2)
		if tmax < tmin-math.Epsilon {
			return 0, 0, false
		}
	}
	return tmin, tmax, true
}

// CastTriangle is Möller–Trumbore. Rays parallel to the triangle's plane miss,
// and hits at t <= Epsilon are rejected so a ray leaving a surface does not
// hit that surface again.
func CastTriangle(r shape.Ray3, t shape.Triangle3) float64 {
	e1 := t.B().Sub(t.A())
	e2 := t.C().Sub(t.A())
	d := r.Direction()

	p := d.Cross(e2)
	det := e1.Dot(p)
	if math.IsZero(det) {
		return Miss()
	}
	inv := 1 / det

	s := r.Origin().Sub(t.A())
	u := s.Dot(p) * inv
	if u < -math.Epsilon || u > 1+math.Epsilon {
		return Miss()
	}
	q := s.Cross(e1)
	v := d.Dot(q) * inv
	if v < -math.Epsilon || u+v > 1+math.Epsilon {
		return Miss()
	}
	hit := e2.Dot(q) * inv
	if hit <= math.Epsilon {
		return Miss()
	}
	return hit
}

// CastTetrahedron clips the ray against the four outward face half-spaces.
// Degenerate tetrahedra are never hit.
func CastTetrahedron(r shape.Ray3, t shape.Tetrahedron) float64 {
	tmin, tmax, ok := pierceTetrahedron(r, t)
	if !ok {
		return Miss()
	}
	return nearest(tmin, tmax)
}

func pierceTetrahedron(r shape.Ray3, t shape.Tetrahedron) (tmin, tmax float64, ok bool) {
	if math.IsZero(t.Volume()) {
		return 0, 0, false
	}
	tmin, tmax = gomath.Inf(-1), gomath.Inf(1)
	o, d := r.Origin(), r.Direction()
	for _, face := range t.Faces() {
		n := face.Cross()
		dist := n.Dot(face.A().Sub(o)) // > 0 when o is on the inner side
		denom := n.Dot(d)
		if math.IsZero(denom / n.Length()) {
			if dist < -math.Epsilon*n.Length() {
				return 0, 0, false
			}
			continue
		}
		hit := dist / denom
		if denom < 0 {
			tmin = gomath.Max(tmin, hit)
		} else {
			tmax = gomath.Min(tmax, hit)
		}
		if tmax < tmin-math.Epsilon {
			return 0, 0, false
		}
	}
	return tmin, tmax, true
}

// CastPlane returns where the ray crosses the plane. A ray lying in the
// plane touches it at its origin.
func CastPlane(r shape.Ray3, p shape.Plane) float64 {
	n := p.Normal()
	denom := n.Dot(r.Direction())
	if parallel(r.Direction(), n) {
		if p.Contains(r.Origin()) {
			return 0
		}
		return Miss()
	}
	t := n.Dot(p.Point().Sub(r.Origin())) / denom
	return ahead(t)
}

// ahead maps parameters behind the origin to Miss, absorbing rounding noise
// just below zero.
func ahead(t float64) float64 {
	if t < -math.Epsilon {
		return Miss()
	}
	return gomath.Max(t, 0)
}

// CastAxisPlane is CastPlane for an axis plane.
func CastAxisPlane(r shape.Ray3, p shape.AxisPlane) float64 {
	return CastPlane(r, p.Plane())
}

// CastSlab returns where the ray first crosses a slab boundary, or its exit
// when the origin is inside. A ray inside the slab and parallel to it touches
// the slab at its origin.
func CastSlab(r shape.Ray3, s shape.Slab3) float64 {
	t1, t2 := PierceSlab(r, s)
	if gomath.IsInf(t1, 0) && gomath.IsInf(t2, 0) {
		if gomath.Signbit(t1) != gomath.Signbit(t2) {
			return 0
		}
		return Miss()
	}
	return nearest(gomath.Min(t1, t2), gomath.Max(t1, t2))
}
