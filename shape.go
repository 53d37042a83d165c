package pick

import (
	"context"
	"sort"
)

// HitShape tests a point in shape-local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using a
// cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// Shape is one pickable area registered with a ShapeBackend. The shape is
// tested in local coordinates after subtracting X, Y. Z orders shapes
// within the backend; higher Z is in front.
type Shape struct {
	Entity   Entity
	Shape    HitShape
	X, Y     float64
	Z        float64
	Disabled bool
}

// ShapeBackend hit-tests 2D shapes attached to entities. It reports a
// ranked hit per containing shape, nearest (highest Z) first.
//
// Add and Remove must not race Pipeline.Tick; mutate between frames.
type ShapeBackend struct {
	name   string
	order  float64
	shapes []*Shape

	// ScreenToWorld converts the pointer's screen position into the
	// backend's shape space. Nil means shapes live in screen space.
	ScreenToWorld func(Vec2) Vec2
}

// NewShapeBackend creates a shape backend reporting the given render order.
func NewShapeBackend(name string, order float64) *ShapeBackend {
	return &ShapeBackend{name: name, order: order}
}

// Name implements Backend.
func (b *ShapeBackend) Name() string { return b.name }

// Add registers a shape for an entity and returns it for later mutation.
func (b *ShapeBackend) Add(e Entity, shape HitShape, x, y, z float64) *Shape {
	s := &Shape{Entity: e, Shape: shape, X: x, Y: y, Z: z}
	b.shapes = append(b.shapes, s)
	return s
}

// Remove drops every shape registered for the entity.
func (b *ShapeBackend) Remove(e Entity) {
	kept := b.shapes[:0]
	for _, s := range b.shapes {
		if s.Entity != e {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(b.shapes); i++ {
		b.shapes[i] = nil
	}
	b.shapes = kept
}

// Query implements Backend. Containing shapes are ranked front to back by
// Z (ties by entity), with depth assigned by rank so the merged order stays
// deterministic.
func (b *ShapeBackend) Query(_ context.Context, sample PointerSample) ([]HitData, error) {
	pos := sample.Position
	if b.ScreenToWorld != nil {
		pos = b.ScreenToWorld(pos)
	}

	var matched []*Shape
	for _, s := range b.shapes {
		if s.Disabled {
			continue
		}
		if s.Shape.Contains(pos.X-s.X, pos.Y-s.Y) {
			matched = append(matched, s)
		}
	}
	if len(matched) == 0 {
		return nil, nil
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Z != matched[j].Z {
			return matched[i].Z > matched[j].Z
		}
		return matched[i].Entity < matched[j].Entity
	})

	hits := make([]HitData, len(matched))
	for i, s := range matched {
		hits[i] = HitData{Entity: s.Entity, Depth: float64(i), Order: b.order}
	}
	return hits, nil
}
