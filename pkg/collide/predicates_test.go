package collide

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-collide/pkg/math"
	"github.com/Faultbox/midgard-collide/pkg/shape"
)

func TestAABBVsAABB(t *testing.T) {
	tests := []struct {
		name string
		a, b shape.AABB
		want bool
	}{
		{"overlapping", box(vec(0, 0, 0), vec(2, 2, 2)), box(vec(1, 1, 1), vec(3, 3, 3)), true},
		{"shared face", box(vec(0, 0, 0), vec(1, 1, 1)), box(vec(1, 0, 0), vec(2, 1, 1)), true},
		{"shared corner", box(vec(0, 0, 0), vec(1, 1, 1)), box(vec(1, 1, 1), vec(2, 2, 2)), true},
		{"nested", box(vec(0, 0, 0), vec(4, 4, 4)), box(vec(1, 1, 1), vec(2, 2, 2)), true},
		{"gap on x", box(vec(0, 0, 0), vec(1, 1, 1)), box(vec(1.001, 0, 0), vec(2, 1, 1)), false},
		{"gap on z only", box(vec(0, 0, 0), vec(1, 1, 1)), box(vec(0, 0, 1.5), vec(1, 1, 2)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AABBVsAABB(tt.a, tt.b))
			assert.Equal(t, tt.want, AABBVsAABB(tt.b, tt.a), "symmetry")
		})
	}
}

func TestAABBVsAxisPlane(t *testing.T) {
	b := box(vec(0, 0, 0), vec(2, 2, 2))
	for _, tt := range []struct {
		depth float64
		want  bool
	}{
		{-0.5, false}, {0, true}, {1, true}, {2, true}, {2.5, false},
	} {
		p, err := shape.NewAxisPlane(math.AxisY, tt.depth)
		require.NoError(t, err)
		assert.Equal(t, tt.want, AABBVsAxisPlane(b, p), "depth %v", tt.depth)
	}
}

func TestAABBVsPlane(t *testing.T) {
	b := box(vec(-1, -1, -1), vec(1, 1, 1))
	assert.True(t, AABBVsPlane(b, plane(t, vec(0, 0, 0), vec(1, 2, 3))))
	assert.True(t, AABBVsPlane(b, plane(t, vec(2, 0, 0), vec(1, 1, 0))), "plane touching an edge")
	assert.False(t, AABBVsPlane(b, plane(t, vec(0, 3, 0), vec(1, 1, 0))))
}

func TestAABBVsSphere(t *testing.T) {
	b := box(vec(0, 0, 0), vec(2, 2, 2))
	assert.True(t, AABBVsSphere(b, sphere(t, vec(1, 1, 1), 0.1)), "inside")
	assert.True(t, AABBVsSphere(b, sphere(t, vec(3, 1, 1), 1)), "touching a face")
	assert.False(t, AABBVsSphere(b, sphere(t, vec(3, 1, 1), 0.99)))
	assert.True(t, AABBVsSphere(b, sphere(t, vec(3, 3, 3), gomathSqrt3)), "touching a corner")
	assert.False(t, AABBVsSphere(b, sphere(t, vec(3, 3, 3), 1.7)))
}

func TestOBBVsOBB(t *testing.T) {
	z := vec(0, 0, 1)
	a := obb(t, vec(0, 0, 0), vec(1, 1, 1), z, 0)

	tests := []struct {
		name string
		b    shape.OBB
		want bool
	}{
		{"rotated corner reaches", obb(t, vec(2.4, 0, 0), vec(1, 1, 1), z, quarter), true},
		{"rotated corner short", obb(t, vec(2.5, 0, 0), vec(1, 1, 1), z, quarter), false},
		// Local bounds overlap, but B's own axis separates the boxes.
		{"separated on B axis", obb(t, vec(1.5, 1.5, 0), vec(0.5, 0.5, 0.5), z, quarter), false},
		{"face contact", obb(t, vec(2, 0, 0), vec(1, 1, 1), z, 0), true},
		{"tilted about x", obb(t, vec(0, 0, 2.3), vec(1, 1, 1), vec(1, 0, 0), quarter), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OBBVsOBB(a, tt.b))
			assert.Equal(t, tt.want, OBBVsOBB(tt.b, a), "symmetry")
			assert.Equal(t, tt.want, OBBVsAABB(tt.b, a.LocalBox()), "as AABB")
		})
	}
}

func TestOBBVsSphere(t *testing.T) {
	o := obb(t, vec(0, 0, 0), vec(1, 1, 1), vec(0, 0, 1), quarter)
	assert.True(t, OBBVsSphere(o, sphere(t, vec(1.5, 0, 0), 0.1)))
	assert.False(t, OBBVsSphere(o, sphere(t, vec(1.5, 0, 0), 0.05)))
}

func TestSphereVsSphere(t *testing.T) {
	a := sphere(t, vec(0, 0, 0), 1)
	touching := sphere(t, vec(2, 0, 0), 1)
	far := sphere(t, vec(10, 0, 0), 1)

	assert.True(t, SphereVsSphere(a, touching))
	assert.True(t, SphereVsSphere(touching, a))
	assert.False(t, SphereVsSphere(a, far))
	assert.False(t, SphereVsSphere(far, a))
	assert.InDelta(t, 8.0, SphereDistance(a, far), 1e-12)
	assert.InDelta(t, 0.0, SphereDistance(a, touching), 1e-12)
}

func TestSphereVsPlane(t *testing.T) {
	p := plane(t, vec(0, 0, 0), vec(0, 2, 0))
	assert.True(t, SphereVsPlane(sphere(t, vec(5, 1, 0), 1), p))
	assert.True(t, SphereVsPlane(sphere(t, vec(5, -1, 0), 1), p))
	assert.False(t, SphereVsPlane(sphere(t, vec(5, 1, 0), 0.9), p))
}

func TestSphereVsTriangle(t *testing.T) {
	tri := shape.NewTriangle(vec(-1, -1, 0), vec(1, -1, 0), vec(0, 1, 0))
	assert.True(t, SphereVsTriangle(sphere(t, vec(0, 0, 1), 1), tri))
	assert.False(t, SphereVsTriangle(sphere(t, vec(0, 0, 1), 0.9), tri))
	assert.True(t, SphereVsTriangle(sphere(t, vec(2, -1, 0), 1), tri), "touching vertex")
}

func TestCircleAndRectangle(t *testing.T) {
	c1, _ := shape.NewCircle(vec2(0, 0), 1)
	c2, _ := shape.NewCircle(vec2(2, 0), 1)
	c3, _ := shape.NewCircle(vec2(2.1, 0), 1)
	assert.True(t, CircleVsCircle(c1, c2))
	assert.False(t, CircleVsCircle(c1, c3))

	r, err := shape.NewRectangle(vec2(1, -1), vec2(3, 1))
	require.NoError(t, err)
	assert.True(t, CircleVsRectangle(c1, r), "touching edge")
	corner, _ := shape.NewCircle(vec2(0, 2), 1.4)
	assert.False(t, CircleVsRectangle(corner, r))

	other := shape.RectangleFromCorners(vec2(3, 1), vec2(4, 4))
	assert.True(t, RectangleVsRectangle(r, other), "shared corner")
	assert.False(t, RectangleVsRectangle(r, shape.RectangleFromCorners(vec2(3.5, 0), vec2(4, 4))))
}

func TestRayVsPlanes(t *testing.T) {
	ground := plane(t, vec(0, 0, 0), vec(0, 1, 0))
	assert.True(t, RayVsPlane(ray(t, vec(0, 5, 0), vec(1, -1, 0)), ground))
	assert.True(t, RayVsPlane(ray(t, vec(0, 5, 0), vec(1, 1, 0)), ground), "line semantics")
	assert.True(t, RayVsPlane(ray(t, vec(0, 0, 0), vec(1, 0, 0)), ground), "lying in the plane")
	assert.False(t, RayVsPlane(ray(t, vec(0, 1, 0), vec(1, 0, 0)), ground))

	ap, err := shape.NewAxisPlane(math.AxisZ, 2)
	require.NoError(t, err)
	assert.True(t, RayVsAxisPlane(ray(t, vec(0, 0, 0), vec(0, 0.1, 1)), ap))
	assert.True(t, RayVsAxisPlane(ray(t, vec(0, 0, 2), vec(1, 1, 0)), ap))
	assert.False(t, RayVsAxisPlane(ray(t, vec(0, 0, 1), vec(1, 1, 0)), ap))
}

func TestPlaneVsPlane(t *testing.T) {
	a := plane(t, vec(0, 0, 0), vec(0, 1, 0))
	assert.True(t, PlaneVsPlane(a, plane(t, vec(0, 0, 0), vec(1, 1, 0))))
	assert.True(t, PlaneVsPlane(a, plane(t, vec(4, 0, 4), vec(0, -3, 0))), "coincident")
	assert.False(t, PlaneVsPlane(a, plane(t, vec(0, 1, 0), vec(0, 1, 0))))

	x1, _ := shape.NewAxisPlane(math.AxisX, 1)
	x2, _ := shape.NewAxisPlane(math.AxisX, 2)
	y1, _ := shape.NewAxisPlane(math.AxisY, 1)
	assert.True(t, AxisPlaneVsAxisPlane(x1, y1))
	assert.True(t, AxisPlaneVsAxisPlane(x1, x1))
	assert.False(t, AxisPlaneVsAxisPlane(x1, x2))
}

func TestPolygonVsPolygon(t *testing.T) {
	square := polygon(t, vec2(0, 0), vec2(1, 0), vec2(1, 1), vec2(0, 1))
	tests := []struct {
		name  string
		other shape.Polygon2
		want  bool
	}{
		{"overlapping", polygon(t, vec2(0.5, 0.5), vec2(2, 0.5), vec2(2, 2)), true},
		{"touching edge", polygon(t, vec2(1, 0), vec2(2, 0), vec2(2, 1), vec2(1, 1)), true},
		{"disjoint", polygon(t, vec2(3, 3), vec2(4, 3), vec2(4, 4)), false},
		{"bounds overlap, diagonal gap", polygon(t, vec2(1.6, 0.6), vec2(1.6, 1.6), vec2(0.6, 1.6)), false},
		{"clockwise winding", polygon(t, vec2(0.2, 0.2), vec2(0.2, 0.8), vec2(0.8, 0.8)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PolygonVsPolygon(square, tt.other))
			assert.Equal(t, tt.want, PolygonVsPolygon(tt.other, square), "symmetry")
		})
	}

	tri := polygon(t, vec2(0, 0), vec2(1, 0), vec2(0, 1))
	sq := polygon(t, vec2(0.6, 0.6), vec2(1.6, 0.6), vec2(1.6, 1.6), vec2(0.6, 1.6))
	assert.False(t, PolygonVsPolygon(tri, sq), "separated along the hypotenuse normal")
}

func TestTriangleVsTriangle(t *testing.T) {
	a := shape.NewTriangle(vec(-2, -2, 0), vec(2, -2, 0), vec(0, 2, 0))
	crossing := shape.NewTriangle(vec(0, 0, -1), vec(0, 0, 1), vec(0, 1, 0))
	apart := shape.NewTriangle(vec(5, 0, -1), vec(5, 0, 1), vec(5, 1, 0))
	above := shape.NewTriangle(vec(0, 0, 0.5), vec(0, 0, 1), vec(0, 1, 0.7))
	needle := shape.NewTriangle(vec(0, 0, -1), vec(0, 0, 1), vec(0, 0, 0))
	flatNeedle := shape.NewTriangle(vec(-1, 0, 0), vec(1, 0, 0), vec(0, 0, 0))

	shifted := a
	shifted.Translate(vec(0.5, 0, 0))
	farCoplanar := a
	farCoplanar.Translate(vec(10, 0, 0))

	tests := []struct {
		name string
		b    shape.Triangle3
		want bool
	}{
		{"crossing", crossing, true},
		{"apart", apart, false},
		{"above plane", above, false},
		{"coplanar overlap", shifted, true},
		{"coplanar apart", farCoplanar, false},
		{"degenerate crossing", needle, false},
		{"degenerate coplanar", flatNeedle, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TriangleVsTriangle(a, tt.b))
			assert.Equal(t, tt.want, TriangleVsTriangle(tt.b, a), "symmetry")
		})
	}
}

func TestSymmetryRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	point := func() math.Vec3 {
		return vec(rng.Float64()*6-3, rng.Float64()*6-3, rng.Float64()*6-3)
	}
	for i := 0; i < 500; i++ {
		s1 := sphere(t, point(), rng.Float64()*2)
		s2 := sphere(t, point(), rng.Float64()*2)
		require.Equal(t, SphereVsSphere(s1, s2), SphereVsSphere(s2, s1))

		b1 := box(point(), point())
		b2 := box(point(), point())
		require.Equal(t, AABBVsAABB(b1, b2), AABBVsAABB(b2, b1))

		t1 := shape.NewTriangle(point(), point(), point())
		t2 := shape.NewTriangle(point(), point(), point())
		require.Equal(t, TriangleVsTriangle(t1, t2), TriangleVsTriangle(t2, t1), "iteration %d", i)

		o1, err := shape.OBBFromQuat(point(), point().Abs(), math.Quat{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64(), W: 1})
		require.NoError(t, err)
		o2, err := shape.OBBFromQuat(point(), point().Abs(), math.Quat{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64(), W: 1})
		require.NoError(t, err)
		require.Equal(t, OBBVsOBB(o1, o2), OBBVsOBB(o2, o1), "iteration %d", i)
	}
}
