// Package shape defines the geometric primitives the collision kernel works on.
//
// Every primitive is a plain value: copying one yields an independent shape.
// Constructors validate invariants (non-negative radii and extents, non-zero
// normals, ordered slab depths, orthonormal rotations) so an invalid shape
// never exists as a value. Mutators on pointer receivers keep the same
// invariants and report violations as errors.
package shape

import (
	"errors"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Construction errors
var (
	ErrNegativeRadius    = errors.New("radius must not be negative")
	ErrNegativeExtent    = errors.New("half extents must not be negative")
	ErrZeroNormal        = errors.New("normal must not be the zero vector")
	ErrZeroDirection     = errors.New("direction must not be the zero vector")
	ErrInvertedSlab      = errors.New("slab min depth exceeds max depth")
	ErrInvertedRectangle = errors.New("rectangle min corner exceeds max corner")
	ErrNotOrthonormal    = errors.New("rotation basis is not orthonormal")
	ErrInvalidAxis       = errors.New("invalid axis")
	ErrTooFewVertices    = errors.New("polygon needs at least three vertices")
	ErrIndexOutOfRange   = errors.New("vertex index out of range")
	ErrNegativeScale     = errors.New("scale factor must not be negative")
	ErrNotFinite         = errors.New("value must be finite")
	ErrInvalidShape      = errors.New("invalid shape")
)

// Kind tags the concrete type behind a Shape.
type Kind int

// Shape kinds
const (
	KindInvalid Kind = iota
	KindSphere
	KindAABB
	KindOBB
	KindPlane
	KindAxisPlane
	KindSlab
	KindRay
	KindSegment
	KindTriangle
	KindTetrahedron
	KindCircle
	KindRectangle
	KindTriangle2
	KindPolygon
)

var kindNames = [...]string{
	KindInvalid:     "invalid",
	KindSphere:      "sphere",
	KindAABB:        "aabb",
	KindOBB:         "obb",
	KindPlane:       "plane",
	KindAxisPlane:   "axis_plane",
	KindSlab:        "slab",
	KindRay:         "ray",
	KindSegment:     "segment",
	KindTriangle:    "triangle",
	KindTetrahedron: "tetrahedron",
	KindCircle:      "circle",
	KindRectangle:   "rectangle",
	KindTriangle2:   "triangle2",
	KindPolygon:     "polygon",
}

// String returns the snake_case kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindInvalid]
	}
	return kindNames[k]
}

// Shape is implemented by every primitive.
//
// Zero values of Plane, Slab3, Ray3, OBB and Polygon2 are not valid shapes
// (no normal, direction, basis or vertices); build them with their
// constructors. Validate reports such values.
type Shape interface {
	Kind() Kind
}

// Validate reports why s cannot take part in a query: a nil shape, or a
// zero-value primitive that bypassed its constructor.
func Validate(s Shape) error {
	switch v := s.(type) {
	case nil:
		return ErrInvalidShape
	case Plane:
		if v.normal.IsZero() {
			return ErrZeroNormal
		}
	case Slab3:
		if v.normal.IsZero() {
			return ErrZeroNormal
		}
	case Ray3:
		if v.direction.IsZero() {
			return ErrZeroDirection
		}
	case OBB:
		if !v.rotation.IsOrthonormal() {
			return ErrNotOrthonormal
		}
	case Polygon2:
		if len(v.v) < 3 {
			return ErrTooFewVertices
		}
	}
	return nil
}

// Solid is a 3D shape with a point-membership test and world bounds.
type Solid interface {
	Shape
	Contains(p math.Vec3) bool
	Bounds() AABB
}

// Area is a 2D shape with a point-membership test.
type Area interface {
	Shape
	Contains(p math.Vec2) bool
	Bounds() Rectangle
}
