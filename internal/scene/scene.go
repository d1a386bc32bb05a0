package scene

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-collide/internal/logger"
	"github.com/Faultbox/midgard-collide/internal/picking"
	"github.com/Faultbox/midgard-collide/pkg/collide"
	"github.com/Faultbox/midgard-collide/pkg/math"
	"github.com/Faultbox/midgard-collide/pkg/shape"
)

// Object is a named shape in a scene. Unnamed objects get a random ID.
type Object struct {
	ID    string
	Shape shape.Shape
}

// Probe is a named ray from the scene document.
type Probe struct {
	ID  string
	Ray shape.Ray3
}

// Scene is a built, validated document. Shapes are not modified after Build,
// so queries may run concurrently.
type Scene struct {
	Objects  []Object
	Rays     []Probe
	Camera   picking.Camera
	Viewport *picking.Viewport // nil when the document has none

	log *zap.Logger
}

// Load reads, parses and builds a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.log.Debug("scene loaded",
		zap.String("path", path),
		zap.Int("objects", len(s.Objects)),
		zap.Int("rays", len(s.Rays)))
	return s, nil
}

// Build validates every entry and constructs the shapes. Errors name the
// offending object or ray.
func (d *Document) Build() (*Scene, error) {
	s := &Scene{
		Camera: picking.DefaultCamera(),
		log:    logger.Named("scene"),
	}
	seen := make(map[string]bool)
	id := func(name string) (string, error) {
		if name == "" {
			return uuid.NewString(), nil
		}
		if seen[name] {
			return "", fmt.Errorf("%w %q", ErrDuplicateName, name)
		}
		seen[name] = true
		return name, nil
	}

	for i, spec := range d.Objects {
		sh, err := spec.shape()
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, spec.Name, err)
		}
		oid, err := id(spec.Name)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.Objects = append(s.Objects, Object{ID: oid, Shape: sh})
	}

	for i, spec := range d.Rays {
		r, err := shape.NewRay(spec.Origin.V(), spec.Direction.V())
		if err != nil {
			return nil, fmt.Errorf("ray %d (%s): %w", i, spec.Name, err)
		}
		rid, err := id(spec.Name)
		if err != nil {
			return nil, fmt.Errorf("ray %d: %w", i, err)
		}
		s.Rays = append(s.Rays, Probe{ID: rid, Ray: r})
	}

	if c := d.Camera; c != nil {
		cam := picking.DefaultCamera()
		cam.Eye, cam.Target = c.Eye.V(), c.Target.V()
		if c.Up != nil {
			cam.Up = c.Up.V()
		}
		if c.FovY != 0 {
			cam.FovY = c.FovY
		}
		if c.Near != 0 {
			cam.Near = c.Near
		}
		if c.Far != 0 {
			cam.Far = c.Far
		}
		if err := cam.Validate(); err != nil {
			return nil, fmt.Errorf("camera: %w", err)
		}
		s.Camera = cam
	}
	if v := d.Viewport; v != nil {
		if v.Width <= 0 || v.Height <= 0 {
			return nil, fmt.Errorf("%w: viewport %gx%g", picking.ErrInvalidCamera, v.Width, v.Height)
		}
		s.Viewport = &picking.Viewport{Width: v.Width, Height: v.Height}
	}
	return s, nil
}

// Shapes returns the object shapes in document order.
func (s *Scene) Shapes() []shape.Shape {
	out := make([]shape.Shape, len(s.Objects))
	for i, o := range s.Objects {
		out[i] = o.Shape
	}
	return out
}

// Kinds counts objects per shape kind.
func (s *Scene) Kinds() map[string]int {
	out := make(map[string]int)
	for _, o := range s.Objects {
		out[o.Shape.Kind().String()]++
	}
	return out
}

// Bounds returns the box enclosing every bounded object. Unbounded objects
// (planes, slabs) are skipped; ok is false when nothing is bounded.
func (s *Scene) Bounds() (box shape.AABB, ok bool) {
	for _, o := range s.Objects {
		solid, isSolid := o.Shape.(shape.Solid)
		if !isSolid {
			continue
		}
		if !ok {
			box, ok = solid.Bounds(), true
			continue
		}
		box = box.Union(solid.Bounds())
	}
	return box, ok
}

// CastResult is the outcome of one probe ray.
type CastResult struct {
	Ray      string
	Hit      bool
	Object   string    // empty on a miss
	T        float64   // ray parameter
	Distance float64   // T scaled by the direction length
	Point    math.Vec3
}

func (s *Scene) result(rayID string, r shape.Ray3, hit collide.Hit, ok bool) CastResult {
	res := CastResult{Ray: rayID, Hit: ok, T: collide.Miss(), Distance: collide.Miss()}
	if ok {
		res.Object = s.Objects[hit.Index].ID
		res.T = hit.T
		res.Distance = hit.T * r.Direction().Length()
		res.Point = hit.Point
	}
	return res
}

// CastAll casts every probe ray against all objects. Rays run in parallel on
// up to workers goroutines (one per CPU when workers <= 0); results keep the
// document order. Cancelling ctx stops rays that have not started.
func (s *Scene) CastAll(ctx context.Context, workers int) ([]CastResult, error) {
	if len(s.Objects) == 0 {
		return nil, collide.ErrNoTargets
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	targets := s.Shapes()
	results := make([]CastResult, len(s.Rays))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, probe := range s.Rays {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hit, ok, err := collide.RayCast(probe.Ray, targets)
			if err != nil {
				return fmt.Errorf("ray %s: %w", probe.ID, err)
			}
			results[i] = s.result(probe.ID, probe.Ray, hit, ok)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hits := 0
	for _, r := range results {
		if r.Hit {
			hits++
		}
	}
	s.log.Info("rays cast",
		zap.Int("rays", len(results)),
		zap.Int("hits", hits),
		zap.Int("workers", workers))
	return results, nil
}

// Overlap is a pair of colliding objects.
type Overlap struct {
	A, B string
}

// Overlaps tests every object pair the kernel supports and returns the
// colliding ones, ordered by document position. Unsupported pairs are skipped
// and counted.
func (s *Scene) Overlaps() (overlaps []Overlap, skipped int, err error) {
	for i := 0; i < len(s.Objects); i++ {
		for j := i + 1; j < len(s.Objects); j++ {
			a, b := s.Objects[i], s.Objects[j]
			if !collide.Supported(a.Shape.Kind(), b.Shape.Kind()) {
				skipped++
				s.log.Debug("pair skipped",
					zap.String("a", a.ID), zap.Stringer("a_kind", a.Shape.Kind()),
					zap.String("b", b.ID), zap.Stringer("b_kind", b.Shape.Kind()))
				continue
			}
			hit, err := collide.Test(a.Shape, b.Shape)
			if err != nil {
				return nil, skipped, fmt.Errorf("%s/%s: %w", a.ID, b.ID, err)
			}
			if hit {
				overlaps = append(overlaps, Overlap{A: a.ID, B: b.ID})
			}
		}
	}
	s.log.Info("overlap scan",
		zap.Int("objects", len(s.Objects)),
		zap.Int("overlaps", len(overlaps)),
		zap.Int("skipped", skipped))
	return overlaps, skipped, nil
}

// Pick casts the camera ray through pixel (x, y). fallback is used when the
// document has no viewport.
func (s *Scene) Pick(x, y float64, fallback picking.Viewport) (CastResult, error) {
	vp := fallback
	if s.Viewport != nil {
		vp = *s.Viewport
	}
	r, err := picking.CameraRay(s.Camera, vp, x, y)
	if err != nil {
		return CastResult{}, err
	}
	hit, ok, err := collide.RayCast(r, s.Shapes())
	if err != nil {
		return CastResult{}, err
	}
	res := s.result(fmt.Sprintf("pick(%g,%g)", x, y), r, hit, ok)
	s.log.Debug("pick", zap.Float64("x", x), zap.Float64("y", y), zap.Bool("hit", ok), zap.String("object", res.Object))
	return res, nil
}

// SortedKinds returns Kinds as name-sorted pairs for stable output.
func (s *Scene) SortedKinds() []KindCount {
	kinds := s.Kinds()
	out := make([]KindCount, 0, len(kinds))
	for k, n := range kinds {
		out = append(out, KindCount{Kind: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// KindCount is one row of SortedKinds.
type KindCount struct {
	Kind  string
	Count int
}
