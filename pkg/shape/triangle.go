package shape

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Triangle3 is a triangle in 3D. Normal, area and plane are derived from the
// current vertices on every call.
type Triangle3 struct {
	v [3]math.Vec3
}

// NewTriangle creates a triangle from three vertices.
func NewTriangle(a, b, c math.Vec3) Triangle3 {
	return Triangle3{v: [3]math.Vec3{a, b, c}}
}

// Kind implements Shape.
func (t Triangle3) Kind() Kind { return KindTriangle }

// A returns the first vertex.
func (t Triangle3) A() math.Vec3 { return t.v[0] }

// B returns the second vertex.
func (t Triangle3) B() math.Vec3 { return t.v[1] }

// C returns the third vertex.
func (t Triangle3) C() math.Vec3 { return t.v[2] }

// Vertices returns all three vertices.
func (t Triangle3) Vertices() [3]math.Vec3 { return t.v }

// Vertex returns vertex i (0..2).
func (t Triangle3) Vertex(i int) (math.Vec3, error) {
	if i < 0 || i > 2 {
		return math.Vec3{}, fmt.Errorf("%w: %d of 3", ErrIndexOutOfRange, i)
	}
	return t.v[i], nil
}

// SetVertex replaces vertex i (0..2).
func (t *Triangle3) SetVertex(i int, p math.Vec3) error {
	if i < 0 || i > 2 {
		return fmt.Errorf("%w: %d of 3", ErrIndexOutOfRange, i)
	}
	t.v[i] = p
	return nil
}

// Edge returns the segment from vertex i to vertex i+1 (mod 3).
func (t Triangle3) Edge(i int) (Segment3, error) {
	if i < 0 || i > 2 {
		return Segment3{}, fmt.Errorf("%w: %d of 3", ErrIndexOutOfRange, i)
	}
	return Segment3{A: t.v[i], B: t.v[(i+1)%3]}, nil
}

// Cross returns (B-A)×(C-A): twice the area, along the face normal.
func (t Triangle3) Cross() math.Vec3 {
	return t.v[1].Sub(t.v[0]).Cross(t.v[2].Sub(t.v[0]))
}

// Normal returns the unit face normal. Degenerate triangles yield NaN.
func (t Triangle3) Normal() math.Vec3 {
	return t.Cross().Normalize()
}

// Area returns the triangle's area.
func (t Triangle3) Area() float64 {
	return t.Cross().Length() / 2
}

// IsDegenerate reports whether the vertices are collinear.
func (t Triangle3) IsDegenerate() bool {
	return t.Cross().IsZero()
}

// Centroid returns the mean of the vertices.
func (t Triangle3) Centroid() math.Vec3 {
	return t.v[0].Add(t.v[1]).Add(t.v[2]).Scale(1.0 / 3.0)
}

// Plane returns the supporting plane.
func (t Triangle3) Plane() (Plane, error) {
	return PlaneFromPoints(t.v[0], t.v[1], t.v[2])
}

// Barycentric returns the weights (u, v, w) of A, B and C for the
// projection of p onto the triangle's plane.
func (t Triangle3) Barycentric(p math.Vec3) (u, v, w float64) {
	v0 := t.v[1].Sub(t.v[0])
	v1 := t.v[2].Sub(t.v[0])
	v2 := p.Sub(t.v[0])
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	return 1 - v - w, v, w
}

// Contains reports whether p lies on the triangle, edges included.
func (t Triangle3) Contains(p math.Vec3) bool {
	n := t.Cross()
	l := n.Length()
	if math.IsZero(l) {
		return false
	}
	if !math.IsZero(n.Dot(p.Sub(t.v[0])) / l) {
		return false
	}
	u, v, w := t.Barycentric(p)
	return u >= -math.Epsilon && v >= -math.Epsilon && w >= -math.Epsilon
}

// ClosestPoint returns the point of the triangle nearest p.
func (t Triangle3) ClosestPoint(p math.Vec3) math.Vec3 {
	a, b, c := t.v[0], t.v[1], t.v[2]
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		return a.Add(ab.Scale(d1 / (d1 - d3)))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		return a.Add(ac.Scale(d2 / (d2 - d6)))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		return b.Add(c.Sub(b).Scale((d4 - d3) / ((d4 - d3) + (d5 - d6))))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Scale(v)).Add(ac.Scale(w))
}

// Bounds returns the enclosing AABB.
func (t Triangle3) Bounds() AABB {
	return AABBEnclosing(t.v[0], t.v[1], t.v[2])
}

// Translate moves every vertex by offset.
func (t *Triangle3) Translate(offset math.Vec3) {
	for i := range t.v {
		t.v[i] = t.v[i].Add(offset)
	}
}

// Scale scales the triangle about its centroid. A negative factor is a
// point reflection through the centroid and is allowed.
func (t *Triangle3) Scale(factor float64) error {
	if gomath.IsNaN(factor) {
		return fmt.Errorf("%w: NaN", ErrNegativeScale)
	}
	c := t.Centroid()
	for i := range t.v {
		t.v[i] = c.Add(t.v[i].Sub(c).Scale(factor))
	}
	return nil
}

// Transform applies an affine transform to every vertex.
func (t *Triangle3) Transform(m math.Mat4) {
	for i := range t.v {
		t.v[i] = m.TransformPoint(t.v[i])
	}
}

// Tetrahedron is a solid with four vertices.
type Tetrahedron struct {
	v [4]math.Vec3
}

// NewTetrahedron creates a tetrahedron from four vertices.
func NewTetrahedron(a, b, c, d math.Vec3) Tetrahedron {
	return Tetrahedron{v: [4]math.Vec3{a, b, c, d}}
}

// Kind implements Shape.
func (t Tetrahedron) Kind() Kind { return KindTetrahedron }

// Vertices returns all four vertices.
func (t Tetrahedron) Vertices() [4]math.Vec3 { return t.v }

// Vertex returns vertex i (0..3).
func (t Tetrahedron) Vertex(i int) (math.Vec3, error) {
	if i < 0 || i > 3 {
		return math.Vec3{}, fmt.Errorf("%w: %d of 4", ErrIndexOutOfRange, i)
	}
	return t.v[i], nil
}

// SetVertex replaces vertex i (0..3).
func (t *Tetrahedron) SetVertex(i int, p math.Vec3) error {
	if i < 0 || i > 3 {
		return fmt.Errorf("%w: %d of 4", ErrIndexOutOfRange, i)
	}
	t.v[i] = p
	return nil
}

func orient(a, b, c, d math.Vec3) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Dot(d.Sub(a))
}

// SignedVolume is positive when D lies on the side of ABC its right-hand normal points to.
func (t Tetrahedron) SignedVolume() float64 {
	return orient(t.v[0], t.v[1], t.v[2], t.v[3]) / 6
}

// Volume returns the enclosed volume.
func (t Tetrahedron) Volume() float64 {
	return gomath.Abs(t.SignedVolume())
}

// Centroid returns the mean of the vertices.
func (t Tetrahedron) Centroid() math.Vec3 {
	return t.v[0].Add(t.v[1]).Add(t.v[2]).Add(t.v[3]).Scale(0.25)
}

// Faces returns the four faces wound so their normals point outward.
func (t Tetrahedron) Faces() [4]Triangle3 {
	idx := [4][4]int{{0, 1, 2, 3}, {0, 3, 1, 2}, {0, 2, 3, 1}, {1, 3, 2, 0}}
	var faces [4]Triangle3
	for i, f := range idx {
		a, b, c, opp := t.v[f[0]], t.v[f[1]], t.v[f[2]], t.v[f[3]]
		if orient(a, b, c, opp) > 0 {
			b, c = c, b
		}
		faces[i] = NewTriangle(a, b, c)
	}
	return faces
}

// Contains reports whether p is inside or on the tetrahedron.
// Degenerate (flat) tetrahedra contain nothing.
func (t Tetrahedron) Contains(p math.Vec3) bool {
	vol := orient(t.v[0], t.v[1], t.v[2], t.v[3])
	if math.IsZero(vol) {
		return false
	}
	a, b, c, d := t.v[0], t.v[1], t.v[2], t.v[3]
	weights := [4]float64{
		orient(p, b, c, d) / vol,
		orient(a, p, c, d) / vol,
		orient(a, b, p, d) / vol,
		orient(a, b, c, p) / vol,
	}
	for _, w := range weights {
		if w < -math.Epsilon {
			return false
		}
	}
	return true
}

// Bounds returns the enclosing AABB.
func (t Tetrahedron) Bounds() AABB {
	return AABBEnclosing(t.v[:]...)
}

// Translate moves every vertex by offset.
func (t *Tetrahedron) Translate(offset math.Vec3) {
	for i := range t.v {
		t.v[i] = t.v[i].Add(offset)
	}
}

// Transform applies an affine transform to every vertex.
func (t *Tetrahedron) Transform(m math.Mat4) {
	for i := range t.v {
		t.v[i] = m.TransformPoint(t.v[i])
	}
}
