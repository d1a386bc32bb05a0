package scene

import (
	"context"
	"errors"
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-collide/internal/picking"
	"github.com/Faultbox/midgard-collide/pkg/collide"
	"github.com/Faultbox/midgard-collide/pkg/math"
	"github.com/Faultbox/midgard-collide/pkg/shape"
)

func loadRoom(t *testing.T) *Scene {
	t.Helper()
	s, err := Load("testdata/room.yaml")
	require.NoError(t, err)
	return s
}

func TestLoadRoom(t *testing.T) {
	s := loadRoom(t)

	require.Len(t, s.Objects, 5)
	require.Len(t, s.Rays, 4)
	assert.Equal(t, "floor", s.Objects[0].ID)
	assert.Equal(t, shape.KindOBB, s.Objects[2].Shape.Kind())
	assert.Len(t, s.Rays[3].ID, 36, "unnamed ray gets a uuid")

	require.NotNil(t, s.Viewport)
	assert.Equal(t, picking.Viewport{Width: 800, Height: 600}, *s.Viewport)
	assert.Equal(t, math.Vec3{X: 0, Y: 5, Z: 10}, s.Camera.Eye)
	assert.Equal(t, math.Vec3{X: 0, Y: 1, Z: 0}, s.Camera.Up, "default up")
	assert.InDelta(t, 0.785, s.Camera.FovY, 1e-12)

	floor := s.Objects[0].Shape.(shape.AABB)
	assert.Equal(t, math.Vec3{X: -10, Y: -1, Z: -10}, floor.Min())
	assert.Equal(t, math.Vec3{X: 10, Y: 0, Z: 10}, floor.Max())
}

func TestSummary(t *testing.T) {
	s := loadRoom(t)

	assert.Equal(t, []KindCount{
		{Kind: "aabb", Count: 1},
		{Kind: "axis_plane", Count: 1},
		{Kind: "obb", Count: 1},
		{Kind: "sphere", Count: 1},
		{Kind: "triangle", Count: 1},
	}, s.SortedKinds())

	box, ok := s.Bounds()
	require.True(t, ok)
	assert.InDelta(t, -10, box.Min().X, 1e-9)
	assert.InDelta(t, 10, box.Max().X, 1e-9)
	assert.InDelta(t, 2, box.Max().Y, 1e-9)

	empty := &Scene{}
	_, ok = empty.Bounds()
	assert.False(t, ok)
}

func TestCastAll(t *testing.T) {
	s := loadRoom(t)

	for _, workers := range []int{0, 1, 3} {
		results, err := s.CastAll(context.Background(), workers)
		require.NoError(t, err)
		require.Len(t, results, 4)

		down := results[0]
		assert.Equal(t, "down", down.Ray)
		require.True(t, down.Hit)
		assert.Equal(t, "ball", down.Object)
		assert.InDelta(t, 3, down.T, 1e-9)
		assert.InDelta(t, 3, down.Distance, 1e-9)
		assert.InDelta(t, 2, down.Point.Y, 1e-9)

		side := results[1]
		require.True(t, side.Hit)
		assert.Equal(t, "crate", side.Object)
		assert.InDelta(t, 2*side.T, side.Distance, 1e-9)
		assert.Greater(t, side.Point.X, 5.0)
		assert.Less(t, side.Point.X, 5+gomath.Sqrt2)

		up := results[2]
		assert.False(t, up.Hit)
		assert.Empty(t, up.Object)
		assert.False(t, collide.IsHit(up.T))

		ramp := results[3]
		require.True(t, ramp.Hit)
		assert.Equal(t, "ramp", ramp.Object)
		assert.InDelta(t, 2.5, ramp.T, 1e-9)
	}
}

func TestCastAllCancelled(t *testing.T) {
	s := loadRoom(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.CastAll(ctx, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCastAllNoObjects(t *testing.T) {
	doc, err := Parse([]byte("rays:\n  - origin: [0, 0, 0]\n    direction: [1, 0, 0]\n"))
	require.NoError(t, err)
	s, err := doc.Build()
	require.NoError(t, err)

	_, err = s.CastAll(context.Background(), 1)
	assert.ErrorIs(t, err, collide.ErrNoTargets)
}

func TestOverlaps(t *testing.T) {
	s := loadRoom(t)

	overlaps, skipped, err := s.Overlaps()
	require.NoError(t, err)
	assert.Equal(t, []Overlap{
		{A: "floor", B: "ball"},
		{A: "floor", B: "crate"},
		{A: "floor", B: "ground"},
	}, overlaps)
	// aabb/triangle, obb/triangle and the axis plane against sphere, obb or triangle
	assert.Equal(t, 5, skipped)
}

func TestPick(t *testing.T) {
	s := loadRoom(t)

	res, err := s.Pick(400, 300, picking.Viewport{Width: 1, Height: 1})
	require.NoError(t, err)
	require.True(t, res.Hit)
	assert.Equal(t, "ball", res.Object)
	assert.InDelta(t, res.T, res.Distance, 1e-9)

	// Without a viewport in the document the fallback is used.
	s.Viewport = nil
	res, err = s.Pick(50, 50, picking.Viewport{Width: 100, Height: 100})
	require.NoError(t, err)
	assert.Equal(t, "ball", res.Object)

	_, err = s.Pick(0, 0, picking.Viewport{})
	assert.ErrorIs(t, err, picking.ErrInvalidCamera)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"no shape", "objects:\n  - name: a\n", ErrNoShape},
		{"two shapes", "objects:\n  - sphere: {center: [0,0,0], radius: 1}\n    aabb: {center: [0,0,0], half: [1,1,1]}\n", ErrMultipleShapes},
		{"negative radius", "objects:\n  - sphere: {center: [0,0,0], radius: -1}\n", shape.ErrNegativeRadius},
		{"negative extent", "objects:\n  - aabb: {center: [0,0,0], half: [1,-1,1]}\n", shape.ErrNegativeExtent},
		{"zero normal", "objects:\n  - plane: {point: [0,0,0], normal: [0,0,0]}\n", shape.ErrZeroNormal},
		{"nan center", "objects:\n  - sphere: {center: [.nan, 0, 0], radius: 1}\n", shape.ErrNotFinite},
		{"inverted slab", "objects:\n  - slab: {normal: [0,1,0], min: 2, max: 1}\n", shape.ErrInvertedSlab},
		{"unknown axis", "objects:\n  - axis_plane: {axis: w, depth: 0}\n", ErrUnknownAxis},
		{"zero rotation axis", "objects:\n  - obb: {center: [0,0,0], half: [1,1,1], rotation: {axis: [0,0,0], angle: 1}}\n", ErrInvalidRotation},
		{"both rotations", "objects:\n  - obb: {center: [0,0,0], half: [1,1,1], rotation: {axis: [0,1,0], quaternion: [0,0,0,1]}}\n", ErrInvalidRotation},
		{"duplicate name", "objects:\n  - name: a\n    sphere: {center: [0,0,0], radius: 1}\n  - name: a\n    sphere: {center: [1,0,0], radius: 1}\n", ErrDuplicateName},
		{"zero direction", "rays:\n  - origin: [0,0,0]\n    direction: [0,0,0]\n", shape.ErrZeroDirection},
		{"bad camera", "camera: {eye: [0,0,0], target: [0,0,0]}\n", picking.ErrInvalidCamera},
		{"bad viewport", "viewport: {width: 0, height: 10}\n", picking.ErrInvalidCamera},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			_, err = doc.Build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestBuildErrorNamesObject(t *testing.T) {
	doc, err := Parse([]byte("objects:\n  - name: ok\n    sphere: {center: [0,0,0], radius: 1}\n  - name: broken\n    sphere: {center: [0,0,0], radius: -1}\n"))
	require.NoError(t, err)
	_, err = doc.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "object 1 (broken)")
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("objects:\n  - cube: {size: 1}\n"))
	assert.Error(t, err)
}

func TestAABBCorners(t *testing.T) {
	doc, err := Parse([]byte("objects:\n  - aabb: {min: [2,2,2], max: [0,0,0]}\n  - aabb: {min: [0,0,0]}\n"))
	require.NoError(t, err)

	sh, err := doc.Objects[0].shape()
	require.NoError(t, err)
	box := sh.(shape.AABB)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, box.Center())

	_, err = doc.Objects[1].shape()
	assert.Error(t, err)
}

func TestQuaternionRotation(t *testing.T) {
	// 90 degrees about z
	doc, err := Parse([]byte("objects:\n  - obb: {center: [0,0,0], half: [2,1,1], rotation: {quaternion: [0, 0, 0.7071067811865476, 0.7071067811865476]}}\n"))
	require.NoError(t, err)
	sh, err := doc.Objects[0].shape()
	require.NoError(t, err)

	box := sh.(shape.OBB).Bounds()
	assert.InDelta(t, 1, box.HalfExtents().X, 1e-9)
	assert.InDelta(t, 2, box.HalfExtents().Y, 1e-9)
}
