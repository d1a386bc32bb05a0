package picking

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// ErrInvalidCamera is returned for cameras that cannot build a projection.
var ErrInvalidCamera = errors.New("invalid camera")

// Camera is a perspective camera looking from Eye at Target.
type Camera struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3
	FovY   float64 // radians
	Near   float64
	Far    float64
}

// DefaultCamera looks at the origin from +Z with a 45° field of view.
func DefaultCamera() Camera {
	return Camera{
		Eye:    math.Vec3{X: 0, Y: 0, Z: 10},
		Target: math.Vec3{},
		Up:     math.Vec3{X: 0, Y: 1, Z: 0},
		FovY:   gomath.Pi / 4,
		Near:   0.1,
		Far:    1000,
	}
}

// OrbitCamera places the eye on a sphere around center. Pitch is measured
// up from the XZ plane and yaw around +Y, both in radians.
func OrbitCamera(center math.Vec3, distance, pitch, yaw float64) Camera {
	cam := DefaultCamera()
	cam.Target = center
	cam.Eye = center.Add(math.Vec3{
		X: distance * gomath.Cos(pitch) * gomath.Sin(yaw),
		Y: distance * gomath.Sin(pitch),
		Z: distance * gomath.Cos(pitch) * gomath.Cos(yaw),
	})
	return cam
}

// Validate checks that the camera can produce an invertible view-projection.
func (c Camera) Validate() error {
	switch {
	case c.Eye.Sub(c.Target).IsZero():
		return fmt.Errorf("%w: eye and target coincide", ErrInvalidCamera)
	case c.Up.Cross(c.Target.Sub(c.Eye)).IsZero():
		return fmt.Errorf("%w: up is parallel to the view direction", ErrInvalidCamera)
	case c.FovY <= 0 || c.FovY >= gomath.Pi:
		return fmt.Errorf("%w: fov_y %g outside (0, pi)", ErrInvalidCamera, c.FovY)
	case c.Near <= 0 || c.Far <= c.Near:
		return fmt.Errorf("%w: need 0 < near < far, got %g and %g", ErrInvalidCamera, c.Near, c.Far)
	}
	return nil
}

// View returns the view matrix.
func (c Camera) View() math.Mat4 {
	return math.LookAt(c.Eye, c.Target, c.Up)
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c Camera) Projection(aspect float64) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c Camera) ViewProjection(aspect float64) math.Mat4 {
	return c.Projection(aspect).Mul(c.View())
}
