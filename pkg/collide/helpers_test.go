package collide

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-collide/pkg/math"
	"github.com/Faultbox/midgard-collide/pkg/shape"
)

func vec(x, y, z float64) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }
func vec2(x, y float64) math.Vec2   { return math.Vec2{X: x, Y: y} }

func sphere(t *testing.T, c math.Vec3, r float64) shape.Sphere {
	t.Helper()
	s, err := shape.NewSphere(c, r)
	require.NoError(t, err)
	return s
}

func box(lo, hi math.Vec3) shape.AABB {
	return shape.AABBFromCorners(lo, hi)
}

func ray(t *testing.T, o, d math.Vec3) shape.Ray3 {
	t.Helper()
	r, err := shape.NewRay(o, d)
	require.NoError(t, err)
	return r
}

func plane(t *testing.T, p, n math.Vec3) shape.Plane {
	t.Helper()
	pl, err := shape.NewPlane(p, n)
	require.NoError(t, err)
	return pl
}

func obb(t *testing.T, c, half math.Vec3, axis math.Vec3, angle float64) shape.OBB {
	t.Helper()
	o, err := shape.OBBFromQuat(c, half, math.QuatFromAxisAngle(axis, angle))
	require.NoError(t, err)
	return o
}

func polygon(t *testing.T, pts ...math.Vec2) shape.Polygon2 {
	t.Helper()
	p, err := shape.NewPolygon(pts...)
	require.NoError(t, err)
	return p
}

const (
	quarter     = gomath.Pi / 4
	gomathSqrt3 = 1.7320508075688772
)
