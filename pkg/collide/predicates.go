package collide

import (
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
	"github.com/Faultbox/midgard-collide/pkg/shape"
)

// AABBVsAABB reports whether two boxes overlap on all three axes.
// Boxes sharing a face collide.
func AABBVsAABB(a, b shape.AABB) bool {
	amin, amax := a.Min(), a.Max()
	bmin, bmax := b.Min(), b.Max()
	return overlaps(amin.X, amax.X, bmin.X, bmax.X) &&
		overlaps(amin.Y, amax.Y, bmin.Y, bmax.Y) &&
		overlaps(amin.Z, amax.Z, bmin.Z, bmax.Z)
}

func overlaps(amin, amax, bmin, bmax float64) bool {
	return amin <= bmax+math.Epsilon && amax >= bmin-math.Epsilon
}

// AABBVsAxisPlane reports whether the plane passes through the box.
// A plane coincident with a face crosses the box.
func AABBVsAxisPlane(b shape.AABB, p shape.AxisPlane) bool {
	lo := b.Min().Component(p.Axis())
	hi := b.Max().Component(p.Axis())
	return overlaps(lo, hi, p.Depth(), p.Depth())
}

// AABBVsPlane compares the box's projected radius on the plane normal with
// the center's distance from the plane.
func AABBVsPlane(b shape.AABB, p shape.Plane) bool {
	n := p.UnitNormal()
	r := b.HalfExtents().Dot(n.Abs())
	s := n.Dot(b.Center().Sub(p.Point()))
	return gomath.Abs(s) <= r+math.Epsilon
}

// AABBVsSphere clamps the sphere center into the box and checks the clamped
// point against the radius.
func AABBVsSphere(b shape.AABB, s shape.Sphere) bool {
	c := s.Center()
	r := s.Radius()
	return b.ClosestPoint(c).DistanceSquared(c) <= r*r+math.Epsilon
}

// OBBVsOBB tests two oriented boxes. B is re-expressed in A's frame, where A
// is axis aligned; B's local bounds give a cheap rejection before the exact
// separating-axis test.
func OBBVsOBB(a, b shape.OBB) bool {
	// rot[i][j] = Ai · Bj
	rot := a.Rotation().Transpose().Mul(b.Rotation())
	t := a.ToLocal(b.Center())
	ha := a.HalfExtents()
	hb := b.HalfExtents()

	var absRot math.Mat3
	for i := range rot {
		absRot[i] = gomath.Abs(rot[i]) + math.Epsilon
	}
	reach := absRot.MulVec3(hb)
	if !AABBVsAABB(a.LocalBox(), aabbAt(t, reach)) {
		return false
	}
	return !separated(rot, absRot, t, ha, hb)
}

func aabbAt(center, half math.Vec3) shape.AABB {
	return shape.AABBFromCorners(center.Sub(half), center.Add(half))
}

// separated runs the B-axis and edge-cross-product separating-axis tests.
// The A axes are covered by the local bounds check in OBBVsOBB.
func separated(rot, absRot math.Mat3, t, ha, hb math.Vec3) bool {
	ta := [3]float64{t.X, t.Y, t.Z}
	ea := [3]float64{ha.X, ha.Y, ha.Z}
	eb := [3]float64{hb.X, hb.Y, hb.Z}
	r := func(i, j int) float64 { return rot[i*3+j] }
	ar := func(i, j int) float64 { return absRot[i*3+j] }

	for j := 0; j < 3; j++ {
		ra := ea[0]*ar(0, j) + ea[1]*ar(1, j) + ea[2]*ar(2, j)
		d := ta[0]*r(0, j) + ta[1]*r(1, j) + ta[2]*r(2, j)
		if gomath.Abs(d) > ra+eb[j] {
			return true
		}
	}

	for i := 0; i < 3; i++ {
		i1, i2 := (i+1)%3, (i+2)%3
		for j := 0; j < 3; j++ {
			j1, j2 := (j+1)%3, (j+2)%3
			ra := ea[i1]*ar(i2, j) + ea[i2]*ar(i1, j)
			rb := eb[j1]*ar(i, j2) + eb[j2]*ar(i, j1)
			d := ta[i2]*r(i1, j) - ta[i1]*r(i2, j)
			if gomath.Abs(d) > ra+rb {
				return true
			}
		}
	}
	return false
}

// OBBVsAABB treats the AABB as an unrotated OBB.
func OBBVsAABB(o shape.OBB, b shape.AABB) bool {
	return OBBVsOBB(shape.OBBFromAABB(b), o)
}

// OBBVsSphere moves the sphere center into the box's frame.
func OBBVsSphere(o shape.OBB, s shape.Sphere) bool {
	local, _ := shape.NewSphere(o.ToLocal(s.Center()), s.Radius())
	return AABBVsSphere(o.LocalBox(), local)
}

// SphereVsSphere compares squared center distance with the squared sum of radii.
func SphereVsSphere(a, b shape.Sphere) bool {
	r := a.Radius() + b.Radius()
	return a.Center().DistanceSquared(b.Center()) <= r*r+math.Epsilon
}

// SphereVsPlane compares the squared distance from center to plane with the
// squared radius.
func SphereVsPlane(s shape.Sphere, p shape.Plane) bool {
	n := p.Normal()
	d := n.Dot(s.Center().Sub(p.Point()))
	r := s.Radius()
	return d*d <= r*r*n.LengthSquared()+math.Epsilon
}

// SphereVsTriangle checks the closest point of the triangle against the sphere.
func SphereVsTriangle(s shape.Sphere, t shape.Triangle3) bool {
	c := s.Center()
	r := s.Radius()
	return t.ClosestPoint(c).DistanceSquared(c) <= r*r+math.Epsilon
}

// CircleVsCircle is the 2D counterpart of SphereVsSphere.
func CircleVsCircle(a, b shape.Circle) bool {
	r := a.Radius() + b.Radius()
	return a.Center().DistanceSquared(b.Center()) <= r*r+math.Epsilon
}

// CircleVsRectangle clamps the circle center into the rectangle.
func CircleVsRectangle(c shape.Circle, r shape.Rectangle) bool {
	p := c.Center()
	lo, hi := r.Min(), r.Max()
	q := math.Vec2{X: math.Clamp(p.X, lo.X, hi.X), Y: math.Clamp(p.Y, lo.Y, hi.Y)}
	return q.DistanceSquared(p) <= c.Radius()*c.Radius()+math.Epsilon
}

// RectangleVsRectangle reports interval overlap on both axes.
func RectangleVsRectangle(a, b shape.Rectangle) bool {
	amin, amax := a.Min(), a.Max()
	bmin, bmax := b.Min(), b.Max()
	return overlaps(amin.X, amax.X, bmin.X, bmax.X) && overlaps(amin.Y, amax.Y, bmin.Y, bmax.Y)
}

// RayVsPlane reports whether the ray's line meets the plane: any direction
// not orthogonal to the normal does, and an orthogonal one does only when
// the origin lies in the plane.
func RayVsPlane(r shape.Ray3, p shape.Plane) bool {
	if !parallel(r.Direction(), p.Normal()) {
		return true
	}
	return p.Contains(r.Origin())
}

// parallel reports whether d is orthogonal to n, i.e. parallel to the plane with normal n.
func parallel(d, n math.Vec3) bool {
	return math.IsZero(d.Dot(n) / (d.Length() * n.Length()))
}

// RayVsAxisPlane is RayVsPlane for an axis plane.
func RayVsAxisPlane(r shape.Ray3, p shape.AxisPlane) bool {
	if !math.IsZero(r.Direction().Component(p.Axis()) / r.Direction().Length()) {
		return true
	}
	return p.Contains(r.Origin())
}

// RayVsSlab decodes PierceSlab: only a same-signed pair of infinities misses.
func RayVsSlab(r shape.Ray3, s shape.Slab3) bool {
	t1, t2 := PierceSlab(r, s)
	if gomath.IsInf(t1, 0) && gomath.IsInf(t2, 0) {
		return gomath.Signbit(t1) != gomath.Signbit(t2)
	}
	return true
}

// RayVsSphere reports whether CastSphere hits.
func RayVsSphere(r shape.Ray3, s shape.Sphere) bool {
	return IsHit(CastSphere(r, s))
}

// RayVsAABB reports whether CastAABB hits.
func RayVsAABB(r shape.Ray3, b shape.AABB) bool {
	return IsHit(CastAABB(r, b))
}

// RayVsOBB reports whether CastOBB hits.
func RayVsOBB(r shape.Ray3, o shape.OBB) bool {
	return IsHit(CastOBB(r, o))
}

// RayVsTriangle reports whether CastTriangle hits.
func RayVsTriangle(r shape.Ray3, t shape.Triangle3) bool {
	return IsHit(CastTriangle(r, t))
}

// RayVsTetrahedron reports whether CastTetrahedron hits.
func RayVsTetrahedron(r shape.Ray3, t shape.Tetrahedron) bool {
	return IsHit(CastTetrahedron(r, t))
}

// PolygonVsPolygon is a separating-axis test over the edge normals of both
// polygons. Non-convex inputs are tested by their vertex sets' projections,
// which is exact only for convex polygons. Touching edges collide.
func PolygonVsPolygon(a, b shape.Polygon2) bool {
	if !RectangleVsRectangle(a.Bounds(), b.Bounds()) {
		return false
	}
	va, vb := a.Vertices(), b.Vertices()
	return !separatedOnEdges(va, va, vb) && !separatedOnEdges(vb, va, vb)
}

func separatedOnEdges(edges, a, b []math.Vec2) bool {
	for i := range edges {
		e := edges[(i+1)%len(edges)].Sub(edges[i])
		if e.IsZero() {
			continue
		}
		axis := e.Perp()
		amin, amax := project(a, axis)
		bmin, bmax := project(b, axis)
		scale := axis.Length()
		if amax < bmin-math.Epsilon*scale || bmax < amin-math.Epsilon*scale {
			return true
		}
	}
	return false
}

func project(vs []math.Vec2, axis math.Vec2) (lo, hi float64) {
	lo, hi = gomath.Inf(1), gomath.Inf(-1)
	for _, v := range vs {
		d := v.Dot(axis)
		lo = gomath.Min(lo, d)
		hi = gomath.Max(hi, d)
	}
	return lo, hi
}

// TriangleVsTriangle reports whether two triangles share a point. Coplanar
// triangles are projected onto their plane and tested as polygons; the rest
// reduce to IntersectTriangles.
//
// A degenerate (zero-area) triangle never collides, even when its segment
// crosses the other triangle; test such input as a ray or segment instead.
func TriangleVsTriangle(a, b shape.Triangle3) bool {
	if a.IsDegenerate() || b.IsDegenerate() {
		return false
	}
	pa, err := a.Plane()
	if err != nil {
		return false
	}
	if coplanar(b, pa) {
		return PolygonVsPolygon(flatten(a, pa), flatten(b, pa))
	}
	_, ok := IntersectTriangles(a, b)
	return ok
}

func coplanar(t shape.Triangle3, p shape.Plane) bool {
	for _, v := range t.Vertices() {
		if !p.Contains(v) {
			return false
		}
	}
	return true
}

// flatten drops the dominant axis of the plane normal.
func flatten(t shape.Triangle3, p shape.Plane) shape.Polygon2 {
	n := p.Normal().Abs()
	drop := math.AxisZ
	if n.X >= n.Y && n.X >= n.Z {
		drop = math.AxisX
	} else if n.Y >= n.Z {
		drop = math.AxisY
	}
	var pts [3]math.Vec2
	for i, v := range t.Vertices() {
		switch drop {
		case math.AxisX:
			pts[i] = math.Vec2{X: v.Y, Y: v.Z}
		case math.AxisY:
			pts[i] = math.Vec2{X: v.X, Y: v.Z}
		default:
			pts[i] = v.XY()
		}
	}
	poly, _ := shape.NewPolygon(pts[:]...)
	return poly
}

// PlaneVsPlane reports whether two planes meet: non-parallel planes always
// do, parallel ones only when coincident.
func PlaneVsPlane(a, b shape.Plane) bool {
	if !a.UnitNormal().Cross(b.UnitNormal()).IsZero() {
		return true
	}
	return a.Contains(b.Point())
}

// AxisPlaneVsAxisPlane reports whether two axis planes meet.
func AxisPlaneVsAxisPlane(a, b shape.AxisPlane) bool {
	if a.Axis() != b.Axis() {
		return true
	}
	return math.Equals(a.Depth(), b.Depth())
}
