package collide

import (
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
	"github.com/Faultbox/midgard-collide/pkg/shape"
)

// PierceSlab returns the ray parameters at which the ray's line crosses the
// slab's min plane and max plane, in that order. They are not sorted: a ray
// pointing against the slab normal meets the max plane first.
//
// A ray parallel to the slab gets the pair of infinities an exact division
// by a signed zero would produce: (+Inf, +Inf) when it runs below the slab,
// (-Inf, -Inf) above it, and (-Inf, +Inf) inside it. All signs flip when the
// direction leans against the normal. Mixed signs therefore mean the ray lies
// in the slab; equal signs mean it never reaches it.
func PierceSlab(r shape.Ray3, s shape.Slab3) (float64, float64) {
	n := s.Normal()
	dn := n.Dot(r.Direction())
	on := n.Dot(r.Origin())
	if parallel(r.Direction(), n) {
		inf := gomath.Inf(1)
		if gomath.Signbit(dn) {
			inf = gomath.Inf(-1)
		}
		switch {
		case on < s.Min()-math.Epsilon:
			return inf, inf
		case on > s.Max()+math.Epsilon:
			return -inf, -inf
		default:
			return -inf, inf
		}
	}
	return (s.Min() - on) / dn, (s.Max() - on) / dn
}

// PierceAABB returns the entry and exit parameters of the ray's line through
// the box. Both are Miss when the line misses.
func PierceAABB(r shape.Ray3, b shape.AABB) (entry, exit float64) {
	tmin, tmax, ok := slabs(r.Origin(), r.Direction(), b.Min(), b.Max())
	if !ok {
		return Miss(), Miss()
	}
	return tmin, tmax
}

// PierceOBB is PierceAABB in the box's frame.
func PierceOBB(r shape.Ray3, o shape.OBB) (entry, exit float64) {
	box := o.LocalBox()
	tmin, tmax, ok := slabs(o.ToLocal(r.Origin()), o.DirectionToLocal(r.Direction()), box.Min(), box.Max())
	if !ok {
		return Miss(), Miss()
	}
	return tmin, tmax
}

// PierceSphere returns both roots of the ray's line against the sphere,
// entry first. Both are Miss when the line misses.
func PierceSphere(r shape.Ray3, s shape.Sphere) (entry, exit float64) {
	d := r.Direction()
	m := s.Center().Sub(r.Origin())
	dd := d.LengthSquared()
	md := m.Dot(d)
	rr := s.Radius() * s.Radius()

	distSq := m.LengthSquared() - md*md/dd
	if distSq > rr+math.Epsilon {
		return Miss(), Miss()
	}
	tc := md / dd
	thc := gomath.Sqrt(gomath.Max(0, (rr-distSq)/dd))
	return tc - thc, tc + thc
}

// PierceTetrahedron returns the entry and exit parameters of the ray's line
// through the tetrahedron. Both are Miss when the line misses.
func PierceTetrahedron(r shape.Ray3, t shape.Tetrahedron) (entry, exit float64) {
	tmin, tmax, ok := pierceTetrahedron(r, t)
	if !ok {
		return Miss(), Miss()
	}
	return tmin, tmax
}
