package collide

import (
	"fmt"

	"github.com/Faultbox/midgard-collide/pkg/math"
	"github.com/Faultbox/midgard-collide/pkg/shape"
)

// Hit is the nearest target reached by RayCast.
type Hit struct {
	Index int       // position in the target slice
	T     float64   // ray parameter
	Point math.Vec3 // origin + T*direction
}

// TestAny returns the index of the first target that overlaps collider, or
// -1 when none does. An empty target slice is ErrNoTargets.
func TestAny(collider shape.Shape, targets []shape.Shape) (int, error) {
	if len(targets) == 0 {
		return -1, ErrNoTargets
	}
	for i, target := range targets {
		hit, err := Test(collider, target)
		if err != nil {
			return -1, fmt.Errorf("target %d: %w", i, err)
		}
		if hit {
			return i, nil
		}
	}
	return -1, nil
}

// RayCast returns the target with the smallest non-negative ray parameter.
// Equal parameters resolve to the lowest index. An empty target slice is
// ErrNoTargets.
func RayCast(r shape.Ray3, targets []shape.Shape) (Hit, bool, error) {
	if len(targets) == 0 {
		return Hit{}, false, ErrNoTargets
	}
	best := Hit{Index: -1, T: Miss()}
	for i, target := range targets {
		t, err := Cast(r, target)
		if err != nil {
			return Hit{}, false, fmt.Errorf("target %d: %w", i, err)
		}
		if IsHit(t) && t >= 0 && t < best.T {
			best = Hit{Index: i, T: t}
		}
	}
	if best.Index < 0 {
		return Hit{}, false, nil
	}
	best.Point = r.PointAt(best.T)
	return best, true, nil
}
