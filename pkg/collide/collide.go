// Package collide is the collision kernel: pairwise overlap predicates, ray
// casts, two-sided pierce queries, exact intersection geometry and surface
// normals for the primitives in package shape.
//
// Every function is pure and never mutates its arguments. Boundary contact
// always counts as a collision. Functions returning a ray parameter report a
// miss with the non-finite sentinel Miss; check IsHit before using the value.
package collide

import (
	"errors"
	gomath "math"
)

var miss = gomath.Inf(1)

// Miss returns the ray parameter reported when a ray does not reach a shape
// (+Inf). Compare results with IsHit rather than against this value.
func Miss() float64 { return miss }

// IsHit reports whether t is a usable ray parameter.
func IsHit(t float64) bool {
	return !gomath.IsNaN(t) && !gomath.IsInf(t, 0)
}

// Dispatch errors
var (
	ErrUnsupportedPair  = errors.New("unsupported shape pair")
	ErrUnsupportedShape = errors.New("unsupported shape")
	ErrNoTargets        = errors.New("no targets")
)
