package collide

import (
	"fmt"

	"github.com/Faultbox/midgard-collide/pkg/shape"
)

type pair struct {
	a, b shape.Kind
}

type testFunc func(a, b shape.Shape) bool

type castFunc func(r shape.Ray3, s shape.Shape) float64

var (
	tests = map[pair]testFunc{}
	casts = map[shape.Kind]castFunc{}
)

// registerTest adds fn for (A, B) and its mirror (B, A). Kinds are taken from
// the zero values, which every primitive supports.
func registerTest[A, B shape.Shape](fn func(A, B) bool) {
	var a A
	var b B
	tests[pair{a.Kind(), b.Kind()}] = func(x, y shape.Shape) bool {
		return fn(x.(A), y.(B))
	}
	if a.Kind() != b.Kind() {
		tests[pair{b.Kind(), a.Kind()}] = func(x, y shape.Shape) bool {
			return fn(y.(A), x.(B))
		}
	}
}

func registerCast[S shape.Shape](fn func(shape.Ray3, S) float64) {
	var s S
	casts[s.Kind()] = func(r shape.Ray3, x shape.Shape) float64 {
		return fn(r, x.(S))
	}
}

func init() {
	registerTest(AABBVsAABB)
	registerTest(AABBVsAxisPlane)
	registerTest(AABBVsPlane)
	registerTest(AABBVsSphere)
	registerTest(OBBVsOBB)
	registerTest(OBBVsAABB)
	registerTest(OBBVsSphere)
	registerTest(SphereVsSphere)
	registerTest(SphereVsPlane)
	registerTest(SphereVsTriangle)
	registerTest(CircleVsCircle)
	registerTest(CircleVsRectangle)
	registerTest(RectangleVsRectangle)
	registerTest(RayVsPlane)
	registerTest(RayVsAxisPlane)
	registerTest(RayVsSlab)
	registerTest(RayVsSphere)
	registerTest(RayVsAABB)
	registerTest(RayVsOBB)
	registerTest(RayVsTriangle)
	registerTest(RayVsTetrahedron)
	registerTest(PolygonVsPolygon)
	registerTest(TriangleVsTriangle)
	registerTest(PlaneVsPlane)
	registerTest(AxisPlaneVsAxisPlane)

	// 2D convex shapes share the polygon test.
	registerTest(func(a, b shape.Triangle2) bool { return PolygonVsPolygon(a.Polygon(), b.Polygon()) })
	registerTest(func(a shape.Triangle2, b shape.Polygon2) bool { return PolygonVsPolygon(a.Polygon(), b) })
	registerTest(func(a shape.Rectangle, b shape.Polygon2) bool { return PolygonVsPolygon(a.Polygon(), b) })
	registerTest(func(a shape.Rectangle, b shape.Triangle2) bool { return PolygonVsPolygon(a.Polygon(), b.Polygon()) })

	registerCast(CastSphere)
	registerCast(CastAABB)
	registerCast(CastOBB)
	registerCast(CastTriangle)
	registerCast(CastTetrahedron)
	registerCast(CastPlane)
	registerCast(CastAxisPlane)
	registerCast(CastSlab)
}

// Test reports whether a and b overlap, dispatching on their kinds. Pointers
// to primitives are accepted. Pairs without a predicate return
// ErrUnsupportedPair; zero-value primitives fail shape.Validate.
func Test(a, b shape.Shape) (bool, error) {
	a, b = deref(a), deref(b)
	fn, ok := tests[pair{kindOf(a), kindOf(b)}]
	if !ok {
		return false, fmt.Errorf("test %v/%v: %w", kindOf(a), kindOf(b), ErrUnsupportedPair)
	}
	for _, s := range [2]shape.Shape{a, b} {
		if err := shape.Validate(s); err != nil {
			return false, fmt.Errorf("test %v/%v: %v: %w", kindOf(a), kindOf(b), kindOf(s), err)
		}
	}
	return fn(a, b), nil
}

// Cast returns the ray parameter at which r first touches s, or Miss.
func Cast(r shape.Ray3, s shape.Shape) (float64, error) {
	s = deref(s)
	fn, ok := casts[kindOf(s)]
	if !ok {
		return Miss(), fmt.Errorf("cast ray/%v: %w", kindOf(s), ErrUnsupportedPair)
	}
	if err := shape.Validate(r); err != nil {
		return Miss(), fmt.Errorf("cast ray/%v: ray: %w", kindOf(s), err)
	}
	if err := shape.Validate(s); err != nil {
		return Miss(), fmt.Errorf("cast ray/%v: %w", kindOf(s), err)
	}
	return fn(r, s), nil
}

// Supported reports whether Test handles the pair of kinds.
func Supported(a, b shape.Kind) bool {
	_, ok := tests[pair{a, b}]
	return ok
}

// Castable reports whether Cast handles the kind.
func Castable(k shape.Kind) bool {
	_, ok := casts[k]
	return ok
}

func kindOf(s shape.Shape) shape.Kind {
	if s == nil {
		return shape.KindInvalid
	}
	return s.Kind()
}

// deref turns pointers to primitives into values so the table's type
// assertions hold.
func deref(s shape.Shape) shape.Shape {
	switch v := s.(type) {
	case *shape.Sphere:
		return *v
	case *shape.AABB:
		return *v
	case *shape.OBB:
		return *v
	case *shape.Plane:
		return *v
	case *shape.AxisPlane:
		return *v
	case *shape.Slab3:
		return *v
	case *shape.Ray3:
		return *v
	case *shape.Segment3:
		return *v
	case *shape.Triangle3:
		return *v
	case *shape.Tetrahedron:
		return *v
	case *shape.Circle:
		return *v
	case *shape.Rectangle:
		return *v
	case *shape.Triangle2:
		return *v
	case *shape.Polygon2:
		return *v
	}
	return s
}
