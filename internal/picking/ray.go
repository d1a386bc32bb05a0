// Package picking turns screen positions into world rays and finds what they hit.
package picking

import (
	"fmt"

	"github.com/Faultbox/midgard-collide/pkg/collide"
	"github.com/Faultbox/midgard-collide/pkg/math"
	"github.com/Faultbox/midgard-collide/pkg/shape"
)

// Viewport is the pixel size of the screen the camera renders to.
type Viewport struct {
	Width  float64
	Height float64
}

// Aspect returns width/height.
func (v Viewport) Aspect() float64 {
	return v.Width / v.Height
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates with the origin at the top left.
// invViewProj is the inverse of the view-projection matrix.
// The ray starts on the near plane and has a unit direction.
func ScreenToRay(screenX, screenY float64, vp Viewport, invViewProj math.Mat4) (shape.Ray3, error) {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/vp.Width - 1.0
	ndcY := 1.0 - 2.0*screenY/vp.Height // Flip Y

	// Unproject near and far points
	nearWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1.0, 1.0})

	r, err := shape.RayThrough(nearWorld, farWorld)
	if err != nil {
		return shape.Ray3{}, fmt.Errorf("screen (%g, %g): %w", screenX, screenY, err)
	}
	return r.Normalized(), nil
}

func unproject(inv math.Mat4, p math.Vec4) math.Vec3 {
	w := inv.MulVec4(p)
	// Perspective divide
	if w[3] != 0 {
		w[0] /= w[3]
		w[1] /= w[3]
		w[2] /= w[3]
	}
	return math.Vec3{X: w[0], Y: w[1], Z: w[2]}
}

// CameraRay builds the view-projection for cam and unprojects the pixel.
func CameraRay(cam Camera, vp Viewport, screenX, screenY float64) (shape.Ray3, error) {
	if err := cam.Validate(); err != nil {
		return shape.Ray3{}, err
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return shape.Ray3{}, fmt.Errorf("%w: viewport %gx%g", ErrInvalidCamera, vp.Width, vp.Height)
	}
	inv, err := cam.ViewProjection(vp.Aspect()).Inverse()
	if err != nil {
		return shape.Ray3{}, fmt.Errorf("view-projection: %w", err)
	}
	return ScreenToRay(screenX, screenY, vp, inv)
}

// GroundPoint intersects the ray with the horizontal plane y = height.
// Returns false when the ray is parallel to the plane or points away from it.
func GroundPoint(r shape.Ray3, height float64) (math.Vec3, bool) {
	ground, err := shape.NewAxisPlane(math.AxisY, height)
	if err != nil {
		return math.Vec3{}, false
	}
	t := collide.CastAxisPlane(r, ground)
	if !collide.IsHit(t) {
		return math.Vec3{}, false
	}
	return r.PointAt(t), true
}

// Pick casts the pixel's ray into targets and returns the nearest hit.
func Pick(cam Camera, vp Viewport, screenX, screenY float64, targets []shape.Shape) (collide.Hit, bool, error) {
	r, err := CameraRay(cam, vp, screenX, screenY)
	if err != nil {
		return collide.Hit{}, false, err
	}
	return collide.RayCast(r, targets)
}
