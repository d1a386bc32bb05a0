// Package scene loads YAML scene documents into collision shapes and runs
// batch queries (ray casts, overlap reports, screen picks) against them.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-collide/pkg/math"
	"github.com/Faultbox/midgard-collide/pkg/shape"
)

// Document errors
var (
	ErrNoShape         = errors.New("object has no shape")
	ErrMultipleShapes  = errors.New("object has more than one shape")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrUnknownAxis     = errors.New("unknown axis")
	ErrInvalidRotation = errors.New("invalid rotation")
)

// Vec is a YAML [x, y, z] triple.
type Vec [3]float64

// V converts to a math.Vec3.
func (v Vec) V() math.Vec3 { return math.Vec3{X: v[0], Y: v[1], Z: v[2]} }

// Document is the YAML form of a scene.
type Document struct {
	Camera   *CameraSpec   `yaml:"camera"`
	Viewport *ViewportSpec `yaml:"viewport"`
	Objects  []ObjectSpec  `yaml:"objects"`
	Rays     []RaySpec     `yaml:"rays"`
}

// CameraSpec describes the pick camera.
type CameraSpec struct {
	Eye    Vec     `yaml:"eye"`
	Target Vec     `yaml:"target"`
	Up     *Vec    `yaml:"up"`
	FovY   float64 `yaml:"fov_y"`
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
}

// ViewportSpec is the screen size in pixels.
type ViewportSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObjectSpec holds exactly one shape.
type ObjectSpec struct {
	Name        string           `yaml:"name"`
	AABB        *AABBSpec        `yaml:"aabb"`
	Sphere      *SphereSpec      `yaml:"sphere"`
	OBB         *OBBSpec         `yaml:"obb"`
	Triangle    *TriangleSpec    `yaml:"triangle"`
	Tetrahedron *TetrahedronSpec `yaml:"tetrahedron"`
	Plane       *PlaneSpec       `yaml:"plane"`
	AxisPlane   *AxisPlaneSpec   `yaml:"axis_plane"`
	Slab        *SlabSpec        `yaml:"slab"`
}

// AABBSpec is either center/half or min/max.
type AABBSpec struct {
	Center *Vec `yaml:"center"`
	Half   *Vec `yaml:"half"`
	Min    *Vec `yaml:"min"`
	Max    *Vec `yaml:"max"`
}

// SphereSpec is a sphere by center and radius.
type SphereSpec struct {
	Center Vec     `yaml:"center"`
	Radius float64 `yaml:"radius"`
}

// OBBSpec is an oriented box; without a rotation it is axis aligned.
type OBBSpec struct {
	Center   Vec           `yaml:"center"`
	Half     Vec           `yaml:"half"`
	Rotation *RotationSpec `yaml:"rotation"`
}

// RotationSpec is an axis/angle pair (radians) or a quaternion [x, y, z, w].
type RotationSpec struct {
	Axis       *Vec        `yaml:"axis"`
	Angle      float64     `yaml:"angle"`
	Quaternion *[4]float64 `yaml:"quaternion"`
}

// TriangleSpec lists the three corners of a triangle.
type TriangleSpec struct {
	A Vec `yaml:"a"`
	B Vec `yaml:"b"`
	C Vec `yaml:"c"`
}

// TetrahedronSpec lists the four corners of a tetrahedron.
type TetrahedronSpec struct {
	A Vec `yaml:"a"`
	B Vec `yaml:"b"`
	C Vec `yaml:"c"`
	D Vec `yaml:"d"`
}

// PlaneSpec is a plane through a point with a normal.
type PlaneSpec struct {
	Point  Vec `yaml:"point"`
	Normal Vec `yaml:"normal"`
}

// AxisPlaneSpec is the plane axis = depth, with axis one of x, y, z.
type AxisPlaneSpec struct {
	Axis  string  `yaml:"axis"`
	Depth float64 `yaml:"depth"`
}

// SlabSpec is the region min <= normal·x <= max.
type SlabSpec struct {
	Normal Vec     `yaml:"normal"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

// RaySpec is a named probe ray.
type RaySpec struct {
	Name      string `yaml:"name"`
	Origin    Vec    `yaml:"origin"`
	Direction Vec    `yaml:"direction"`
}

// Parse decodes a scene document. Unknown keys are errors.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return &doc, nil
}

// shape builds the object's single primitive.
func (o ObjectSpec) shape() (shape.Shape, error) {
	var builders []func() (shape.Shape, error)
	if o.AABB != nil {
		builders = append(builders, o.AABB.build)
	}
	if o.Sphere != nil {
		builders = append(builders, func() (shape.Shape, error) {
			return as(shape.NewSphere(o.Sphere.Center.V(), o.Sphere.Radius))
		})
	}
	if o.OBB != nil {
		builders = append(builders, o.OBB.build)
	}
	if o.Triangle != nil {
		builders = append(builders, func() (shape.Shape, error) {
			t := shape.NewTriangle(o.Triangle.A.V(), o.Triangle.B.V(), o.Triangle.C.V())
			if t.IsDegenerate() {
				return nil, errors.New("degenerate triangle")
			}
			return t, nil
		})
	}
	if o.Tetrahedron != nil {
		builders = append(builders, func() (shape.Shape, error) {
			s := o.Tetrahedron
			return shape.NewTetrahedron(s.A.V(), s.B.V(), s.C.V(), s.D.V()), nil
		})
	}
	if o.Plane != nil {
		builders = append(builders, func() (shape.Shape, error) {
			return as(shape.NewPlane(o.Plane.Point.V(), o.Plane.Normal.V()))
		})
	}
	if o.AxisPlane != nil {
		builders = append(builders, func() (shape.Shape, error) {
			axis, err := parseAxis(o.AxisPlane.Axis)
			if err != nil {
				return nil, err
			}
			return as(shape.NewAxisPlane(axis, o.AxisPlane.Depth))
		})
	}
	if o.Slab != nil {
		builders = append(builders, func() (shape.Shape, error) {
			return as(shape.NewSlab(o.Slab.Normal.V(), o.Slab.Min, o.Slab.Max))
		})
	}

	switch len(builders) {
	case 0:
		return nil, ErrNoShape
	case 1:
		return builders[0]()
	default:
		return nil, ErrMultipleShapes
	}
}

// as widens a constructor result, keeping a nil Shape on error.
func as[S shape.Shape](s S, err error) (shape.Shape, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AABBSpec) build() (shape.Shape, error) {
	switch {
	case s.Min != nil && s.Max != nil && s.Center == nil && s.Half == nil:
		return shape.AABBFromCorners(s.Min.V(), s.Max.V()), nil
	case s.Center != nil && s.Half != nil && s.Min == nil && s.Max == nil:
		return as(shape.NewAABB(s.Center.V(), s.Half.V()))
	}
	return nil, errors.New("aabb needs either center and half or min and max")
}

func (s *OBBSpec) build() (shape.Shape, error) {
	q := math.QuatIdentity()
	if s.Rotation != nil {
		var err error
		if q, err = s.Rotation.quat(); err != nil {
			return nil, err
		}
	}
	return as(shape.OBBFromQuat(s.Center.V(), s.Half.V(), q))
}

func (r *RotationSpec) quat() (math.Quat, error) {
	switch {
	case r.Quaternion != nil && r.Axis == nil:
		q := r.Quaternion
		return math.Quat{X: q[0], Y: q[1], Z: q[2], W: q[3]}, nil
	case r.Axis != nil && r.Quaternion == nil:
		axis := r.Axis.V()
		if axis.IsZero() {
			return math.Quat{}, fmt.Errorf("%w: zero axis", ErrInvalidRotation)
		}
		return math.QuatFromAxisAngle(axis.Normalize(), r.Angle), nil
	}
	return math.Quat{}, fmt.Errorf("%w: give either axis and angle or a quaternion", ErrInvalidRotation)
}

func parseAxis(name string) (math.Axis, error) {
	switch name {
	case "x", "X":
		return math.AxisX, nil
	case "y", "Y":
		return math.AxisY, nil
	case "z", "Z":
		return math.AxisZ, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownAxis, name)
}
