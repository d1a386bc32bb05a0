package collide

import (
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
	"github.com/Faultbox/midgard-collide/pkg/shape"
)

// IntersectPlanes returns the line shared by two planes, directed along
// a.normal × b.normal. Parallel planes, coincident ones included, report false
// with a zero Ray3 that must not be used.
func IntersectPlanes(a, b shape.Plane) (shape.Ray3, bool) {
	n1, n2 := a.Normal(), b.Normal()
	dir := n1.Cross(n2)
	lsq := dir.LengthSquared()
	if math.IsZero(lsq / (n1.LengthSquared() * n2.LengthSquared())) {
		return shape.Ray3{}, false
	}
	d1, d2 := a.Depth(), b.Depth()
	point := n2.Cross(dir).Scale(d1).Add(dir.Cross(n1).Scale(d2)).Scale(1 / lsq)
	r, err := shape.NewRay(point, dir)
	if err != nil {
		return shape.Ray3{}, false
	}
	return r, true
}

// IntersectAxisPlanes returns the line shared by two axis planes. Planes on
// the same axis never produce a line; the returned Ray3 is then zero.
func IntersectAxisPlanes(a, b shape.AxisPlane) (shape.Ray3, bool) {
	if a.Axis() == b.Axis() {
		return shape.Ray3{}, false
	}
	var point math.Vec3
	point.SetComponent(a.Axis(), a.Depth())
	point.SetComponent(b.Axis(), b.Depth())
	r, err := shape.NewRay(point, a.Normal().Cross(b.Normal()))
	if err != nil {
		return shape.Ray3{}, false
	}
	return r, true
}

// IntersectTrianglePlane returns the segment where the triangle crosses the
// plane. A triangle touching the plane with one vertex yields a zero-length
// segment; a triangle lying in the plane yields nothing.
func IntersectTrianglePlane(t shape.Triangle3, p shape.Plane) (shape.Segment3, bool) {
	v := t.Vertices()
	var d [3]float64
	for i := range v {
		d[i] = p.SignedDistance(v[i])
		if math.IsZero(d[i]) {
			d[i] = 0
		}
	}
	if d[0] == 0 && d[1] == 0 && d[2] == 0 {
		return shape.Segment3{}, false
	}

	pts := make([]math.Vec3, 0, 3)
	add := func(q math.Vec3) {
		for _, have := range pts {
			if have.Equals(q) {
				return
			}
		}
		pts = append(pts, q)
	}
	for i := range v {
		j := (i + 1) % 3
		if d[i] == 0 {
			add(v[i])
		}
		if d[i]*d[j] < 0 {
			add(v[i].Lerp(v[j], d[i]/(d[i]-d[j])))
		}
	}

	switch len(pts) {
	case 0:
		return shape.Segment3{}, false
	case 1:
		return shape.Segment3{A: pts[0], B: pts[0]}, true
	default:
		return shape.Segment3{A: pts[0], B: pts[1]}, true
	}
}

// IntersectTriangles returns the segment two non-coplanar triangles share.
// Each triangle is cut by the other's plane; both cuts lie on the planes'
// common line, and the result is the overlap of the two cuts. Coplanar and
// degenerate triangles report false; TriangleVsTriangle handles the former.
func IntersectTriangles(a, b shape.Triangle3) (shape.Segment3, bool) {
	pa, err := a.Plane()
	if err != nil {
		return shape.Segment3{}, false
	}
	pb, err := b.Plane()
	if err != nil {
		return shape.Segment3{}, false
	}
	dir := pa.Normal().Cross(pb.Normal())
	if math.IsZero(dir.LengthSquared() / (pa.Normal().LengthSquared() * pb.Normal().LengthSquared())) {
		return shape.Segment3{}, false
	}

	sa, ok := IntersectTrianglePlane(a, pb)
	if !ok {
		return shape.Segment3{}, false
	}
	sb, ok := IntersectTrianglePlane(b, pa)
	if !ok {
		return shape.Segment3{}, false
	}

	origin := sa.A
	param := func(p math.Vec3) float64 {
		return p.Sub(origin).Dot(dir) / dir.LengthSquared()
	}
	a0, a1 := sorted(param(sa.A), param(sa.B))
	b0, b1 := sorted(param(sb.A), param(sb.B))
	lo := gomath.Max(a0, b0)
	hi := gomath.Min(a1, b1)
	if lo > hi+math.Epsilon {
		return shape.Segment3{}, false
	}
	hi = gomath.Max(lo, hi)
	return shape.Segment3{
		A: origin.Add(dir.Scale(lo)),
		B: origin.Add(dir.Scale(hi)),
	}, true
}

func sorted(x, y float64) (float64, float64) {
	if x > y {
		return y, x
	}
	return x, y
}

// IntersectAABBs returns the overlap box of two boxes. Touching boxes yield a
// flat box.
func IntersectAABBs(a, b shape.AABB) (shape.AABB, bool) {
	if !AABBVsAABB(a, b) {
		return shape.AABB{}, false
	}
	lo := a.Min().Max(b.Min())
	hi := a.Max().Min(b.Max()).Max(lo)
	return shape.AABBFromCorners(lo, hi), true
}

// IntersectSpheres returns the circle where two sphere surfaces meet.
// Concentric spheres report false, as do spheres where one lies strictly
// inside the other.
func IntersectSpheres(a, b shape.Sphere) (shape.Circle3, bool) {
	delta := b.Center().Sub(a.Center())
	d := delta.Length()
	if math.IsZero(d) {
		return shape.Circle3{}, false
	}
	r1, r2 := a.Radius(), b.Radius()
	if d > r1+r2+math.Epsilon || d < gomath.Abs(r1-r2)-math.Epsilon {
		return shape.Circle3{}, false
	}
	n := delta.Scale(1 / d)
	h := (d*d + r1*r1 - r2*r2) / (2 * d)
	return shape.Circle3{
		Center: a.Center().Add(n.Scale(h)),
		Normal: n,
		Radius: gomath.Sqrt(gomath.Max(0, r1*r1-h*h)),
	}, true
}

// IntersectRayPlane returns the point where the ray meets the plane.
func IntersectRayPlane(r shape.Ray3, p shape.Plane) (math.Vec3, bool) {
	t := CastPlane(r, p)
	if !IsHit(t) {
		return math.Vec3{}, false
	}
	return r.PointAt(t), true
}

// IntersectConvexPolygons clips a against b (Sutherland–Hodgman). Both must be
// convex; the result is counter-clockwise. Overlaps with no area report false.
func IntersectConvexPolygons(a, b shape.Polygon2) (shape.Polygon2, bool) {
	out := a.CounterClockwise().Vertices()
	clip := b.CounterClockwise().Vertices()
	for i := range clip {
		if len(out) == 0 {
			break
		}
		e0, e1 := clip[i], clip[(i+1)%len(clip)]
		edge := e1.Sub(e0)
		side := func(p math.Vec2) float64 { return edge.Cross(p.Sub(e0)) }

		in := out
		out = make([]math.Vec2, 0, len(in)+1)
		for j := range in {
			cur, next := in[j], in[(j+1)%len(in)]
			sc, sn := side(cur), side(next)
			if sc >= 0 {
				out = append(out, cur)
			}
			if (sc >= 0) != (sn >= 0) {
				f := sc / (sc - sn)
				out = append(out, cur.Add(next.Sub(cur).Scale(f)))
			}
		}
	}
	out = dedupe(out)
	poly, err := shape.NewPolygon(out...)
	if err != nil || math.IsZero(poly.SignedArea()) {
		return shape.Polygon2{}, false
	}
	return poly, true
}

func dedupe(vs []math.Vec2) []math.Vec2 {
	res := vs[:0]
	for i, v := range vs {
		if i > 0 && v.Equals(res[len(res)-1]) {
			continue
		}
		res = append(res, v)
	}
	if len(res) > 1 && res[0].Equals(res[len(res)-1]) {
		res = res[:len(res)-1]
	}
	return res
}

// SphereDistance returns the gap between two sphere surfaces; it is negative
// when the spheres overlap.
func SphereDistance(a, b shape.Sphere) float64 {
	return a.Center().Distance(b.Center()) - a.Radius() - b.Radius()
}
