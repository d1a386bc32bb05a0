package shape

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Circle is a filled 2D disc.
type Circle struct {
	center math.Vec2
	radius float64
}

// NewCircle creates a circle with a non-negative radius.
func NewCircle(center math.Vec2, radius float64) (Circle, error) {
	if radius < 0 || gomath.IsNaN(radius) {
		return Circle{}, fmt.Errorf("%w: %v", ErrNegativeRadius, radius)
	}
	return Circle{center: center, radius: radius}, nil
}

// Kind implements Shape.
func (c Circle) Kind() Kind { return KindCircle }

// Center returns the center.
func (c Circle) Center() math.Vec2 { return c.center }

// Radius returns the radius.
func (c Circle) Radius() float64 { return c.radius }

// Contains reports whether p is inside or on the circle.
func (c Circle) Contains(p math.Vec2) bool {
	return p.DistanceSquared(c.center) <= c.radius*c.radius+math.Epsilon
}

// Bounds returns the enclosing rectangle.
func (c Circle) Bounds() Rectangle {
	r := math.Vec2{X: c.radius, Y: c.radius}
	return Rectangle{min: c.center.Sub(r), max: c.center.Add(r)}
}

// Translate moves the circle by offset.
func (c *Circle) Translate(offset math.Vec2) {
	c.center = c.center.Add(offset)
}

// Rectangle is an axis-aligned 2D rectangle.
type Rectangle struct {
	min, max math.Vec2
}

// NewRectangle creates a rectangle from its min and max corners.
func NewRectangle(min, max math.Vec2) (Rectangle, error) {
	if !(min.X <= max.X && min.Y <= max.Y) {
		return Rectangle{}, fmt.Errorf("%w: %v > %v", ErrInvertedRectangle, min, max)
	}
	return Rectangle{min: min, max: max}, nil
}

// RectangleFromCorners creates the rectangle spanned by two opposite corners.
func RectangleFromCorners(a, b math.Vec2) Rectangle {
	return Rectangle{min: a.Min(b), max: a.Max(b)}
}

// Kind implements Shape.
func (r Rectangle) Kind() Kind { return KindRectangle }

// Min returns the minimum corner.
func (r Rectangle) Min() math.Vec2 { return r.min }

// Max returns the maximum corner.
func (r Rectangle) Max() math.Vec2 { return r.max }

// Width returns max.X - min.X.
func (r Rectangle) Width() float64 { return r.max.X - r.min.X }

// Height returns max.Y - min.Y.
func (r Rectangle) Height() float64 { return r.max.Y - r.min.Y }

// Contains reports whether p is inside or on the rectangle.
func (r Rectangle) Contains(p math.Vec2) bool {
	return p.X >= r.min.X-math.Epsilon && p.X <= r.max.X+math.Epsilon &&
		p.Y >= r.min.Y-math.Epsilon && p.Y <= r.max.Y+math.Epsilon
}

// Bounds implements Area.
func (r Rectangle) Bounds() Rectangle { return r }

// Polygon returns the rectangle as a counter-clockwise polygon.
func (r Rectangle) Polygon() Polygon2 {
	return Polygon2{v: []math.Vec2{
		r.min,
		{X: r.max.X, Y: r.min.Y},
		r.max,
		{X: r.min.X, Y: r.max.Y},
	}}
}

// Translate moves the rectangle by offset.
func (r *Rectangle) Translate(offset math.Vec2) {
	r.min = r.min.Add(offset)
	r.max = r.max.Add(offset)
}

// Triangle2 is a 2D triangle.
type Triangle2 struct {
	v [3]math.Vec2
}

// NewTriangle2 creates a 2D triangle.
func NewTriangle2(a, b, c math.Vec2) Triangle2 {
	return Triangle2{v: [3]math.Vec2{a, b, c}}
}

// Kind implements Shape.
func (t Triangle2) Kind() Kind { return KindTriangle2 }

// Vertices returns the three vertices.
func (t Triangle2) Vertices() [3]math.Vec2 { return t.v }

// Vertex returns vertex i (0..2).
func (t Triangle2) Vertex(i int) (math.Vec2, error) {
	if i < 0 || i > 2 {
		return math.Vec2{}, fmt.Errorf("%w: %d of 3", ErrIndexOutOfRange, i)
	}
	return t.v[i], nil
}

// SignedArea is positive for counter-clockwise winding.
func (t Triangle2) SignedArea() float64 {
	return t.v[1].Sub(t.v[0]).Cross(t.v[2].Sub(t.v[0])) / 2
}

// Contains reports whether p is inside or on the triangle. Each edge's
// orientation test must agree with the winding; boundary points pass.
func (t Triangle2) Contains(p math.Vec2) bool {
	d1 := t.v[1].Sub(t.v[0]).Cross(p.Sub(t.v[0]))
	d2 := t.v[2].Sub(t.v[1]).Cross(p.Sub(t.v[1]))
	d3 := t.v[0].Sub(t.v[2]).Cross(p.Sub(t.v[2]))

	hasNeg := d1 < -math.Epsilon || d2 < -math.Epsilon || d3 < -math.Epsilon
	hasPos := d1 > math.Epsilon || d2 > math.Epsilon || d3 > math.Epsilon
	return !(hasNeg && hasPos)
}

// Bounds returns the enclosing rectangle.
func (t Triangle2) Bounds() Rectangle {
	return Rectangle{
		min: t.v[0].Min(t.v[1]).Min(t.v[2]),
		max: t.v[0].Max(t.v[1]).Max(t.v[2]),
	}
}

// Polygon returns the triangle as a polygon with the same winding.
func (t Triangle2) Polygon() Polygon2 {
	return Polygon2{v: []math.Vec2{t.v[0], t.v[1], t.v[2]}}
}

// Translate moves every vertex by offset.
func (t *Triangle2) Translate(offset math.Vec2) {
	for i := range t.v {
		t.v[i] = t.v[i].Add(offset)
	}
}

// Polygon2 is a simple polygon. Its vertex list is copied on construction and
// never mutated, so copies of a Polygon2 may share it safely.
type Polygon2 struct {
	v []math.Vec2
}

// NewPolygon creates a polygon from at least three vertices.
func NewPolygon(vertices ...math.Vec2) (Polygon2, error) {
	if len(vertices) < 3 {
		return Polygon2{}, fmt.Errorf("%w: got %d", ErrTooFewVertices, len(vertices))
	}
	v := make([]math.Vec2, len(vertices))
	copy(v, vertices)
	return Polygon2{v: v}, nil
}

// Kind implements Shape.
func (p Polygon2) Kind() Kind { return KindPolygon }

// Len returns the vertex count.
func (p Polygon2) Len() int { return len(p.v) }

// Vertex returns vertex i.
func (p Polygon2) Vertex(i int) (math.Vec2, error) {
	if i < 0 || i >= len(p.v) {
		return math.Vec2{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(p.v))
	}
	return p.v[i], nil
}

// Vertices returns a copy of the vertex list.
func (p Polygon2) Vertices() []math.Vec2 {
	out := make([]math.Vec2, len(p.v))
	copy(out, p.v)
	return out
}

// Edge returns the edge vector from vertex i to vertex i+1 (wrapping).
func (p Polygon2) Edge(i int) (math.Vec2, error) {
	if i < 0 || i >= len(p.v) {
		return math.Vec2{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(p.v))
	}
	return p.v[(i+1)%len(p.v)].Sub(p.v[i]), nil
}

// SignedArea is positive for counter-clockwise winding (shoelace formula).
func (p Polygon2) SignedArea() float64 {
	var sum float64
	for i, a := range p.v {
		b := p.v[(i+1)%len(p.v)]
		sum += a.Cross(b)
	}
	return sum / 2
}

// CounterClockwise returns the polygon with counter-clockwise winding.
func (p Polygon2) CounterClockwise() Polygon2 {
	if p.SignedArea() >= 0 {
		return p
	}
	v := make([]math.Vec2, len(p.v))
	for i := range p.v {
		v[i] = p.v[len(p.v)-1-i]
	}
	return Polygon2{v: v}
}

// IsConvex reports whether every turn has the same direction.
func (p Polygon2) IsConvex() bool {
	n := len(p.v)
	sign := 0
	for i := 0; i < n; i++ {
		a, b, c := p.v[i], p.v[(i+1)%n], p.v[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		switch {
		case cross > math.Epsilon:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < -math.Epsilon:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}

// Contains reports whether q is inside or on the polygon, using the
// even-odd crossing rule with an explicit boundary check.
func (p Polygon2) Contains(q math.Vec2) bool {
	n := len(p.v)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.v[j], p.v[i]
		if onSegment2(a, b, q) {
			return true
		}
		if (b.Y > q.Y) != (a.Y > q.Y) {
			x := (a.X-b.X)*(q.Y-b.Y)/(a.Y-b.Y) + b.X
			if q.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment2(a, b, q math.Vec2) bool {
	ab := b.Sub(a)
	aq := q.Sub(a)
	l := ab.Length()
	if math.IsZero(l) {
		return aq.IsZero()
	}
	if !math.IsZero(ab.Cross(aq) / l) {
		return false
	}
	t := aq.Dot(ab) / (l * l)
	return t >= -math.Epsilon && t <= 1+math.Epsilon
}

// Bounds returns the enclosing rectangle.
func (p Polygon2) Bounds() Rectangle {
	if len(p.v) == 0 {
		return Rectangle{}
	}
	lo, hi := p.v[0], p.v[0]
	for _, v := range p.v[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return Rectangle{min: lo, max: hi}
}

// Centroid returns the area centroid. Degenerate polygons fall back to the
// vertex mean.
func (p Polygon2) Centroid() math.Vec2 {
	a := p.SignedArea()
	if math.IsZero(a) {
		var sum math.Vec2
		for _, v := range p.v {
			sum = sum.Add(v)
		}
		return sum.Scale(1 / float64(len(p.v)))
	}
	var cx, cy float64
	for i, v := range p.v {
		w := p.v[(i+1)%len(p.v)]
		f := v.Cross(w)
		cx += (v.X + w.X) * f
		cy += (v.Y + w.Y) * f
	}
	return math.Vec2{X: cx / (6 * a), Y: cy / (6 * a)}
}

// Translated returns a copy moved by offset.
func (p Polygon2) Translated(offset math.Vec2) Polygon2 {
	v := make([]math.Vec2, len(p.v))
	for i, w := range p.v {
		v[i] = w.Add(offset)
	}
	return Polygon2{v: v}
}
