package pick

import (
	"context"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is one pickable image registered with a SpriteBackend. The hit
// area is the image's bounds placed at (X, Y) and scaled by ScaleX/ScaleY.
// Z orders sprites within the backend; higher Z is in front.
type Sprite struct {
	Entity         Entity
	Image          *ebiten.Image
	X, Y           float64
	ScaleX, ScaleY float64
	Z              float64
	// AlphaCutoff, when positive, requires the pixel under the pointer to
	// have at least this alpha (in [0, 1]) to count as a hit. Pixel reads
	// sync with the GPU, so reserve this for sparse irregular sprites.
	AlphaCutoff float64
	Disabled    bool
}

// SpriteBackend hit-tests pointer positions against ebiten sprite bounds,
// optionally refined by a per-pixel alpha cutoff. Hits are ranked front to
// back by Z, matching reverse painter order.
//
// Add and Remove must not race Pipeline.Tick; mutate between frames.
type SpriteBackend struct {
	name    string
	order   float64
	sprites []*Sprite

	// ScreenToWorld converts the pointer's screen position into the
	// backend's sprite space. Nil means sprites live in screen space.
	ScreenToWorld func(Vec2) Vec2
}

// NewSpriteBackend creates a sprite backend reporting the given render order.
func NewSpriteBackend(name string, order float64) *SpriteBackend {
	return &SpriteBackend{name: name, order: order}
}

// Name implements Backend.
func (b *SpriteBackend) Name() string { return b.name }

// Add registers a sprite for an entity and returns it for later mutation.
func (b *SpriteBackend) Add(e Entity, img *ebiten.Image, x, y, z float64) *Sprite {
	s := &Sprite{Entity: e, Image: img, X: x, Y: y, ScaleX: 1, ScaleY: 1, Z: z}
	b.sprites = append(b.sprites, s)
	return s
}

// Remove drops every sprite registered for the entity.
func (b *SpriteBackend) Remove(e Entity) {
	kept := b.sprites[:0]
	for _, s := range b.sprites {
		if s.Entity != e {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(b.sprites); i++ {
		b.sprites[i] = nil
	}
	b.sprites = kept
}

// Query implements Backend.
func (b *SpriteBackend) Query(_ context.Context, sample PointerSample) ([]HitData, error) {
	pos := sample.Position
	if b.ScreenToWorld != nil {
		pos = b.ScreenToWorld(pos)
	}

	var matched []*Sprite
	for _, s := range b.sprites {
		if s.Disabled || s.Image == nil {
			continue
		}
		if spriteContains(s, pos.X, pos.Y) {
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

// spriteContains tests (wx, wy) against a sprite's scaled bounds and, when
// configured, the alpha of the pixel under the pointer.
func spriteContains(s *Sprite, wx, wy float64) bool {
	sx, sy := s.ScaleX, s.ScaleY
	if sx == 0 || sy == 0 {
		return false
	}
	bounds := s.Image.Bounds()
	lx := (wx - s.X) / sx
	ly := (wy - s.Y) / sy
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	if lx < 0 || lx > w || ly < 0 || ly > h {
		return false
	}
	if s.AlphaCutoff <= 0 {
		return true
	}

	px := bounds.Min.X + int(lx)
	py := bounds.Min.Y + int(ly)
	if px >= bounds.Max.X {
		px = bounds.Max.X - 1
	}
	if py >= bounds.Max.Y {
		py = bounds.Max.Y - 1
	}
	_, _, _, a := s.Image.At(px, py).RGBA()
	return float64(a)/0xffff >= s.AlphaCutoff
}
