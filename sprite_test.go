package pick

import (
	"context"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestSpriteBackend_Query(t *testing.T) {
	b := NewSpriteBackend("sprites", 2)
	b.Add(1, ebiten.NewImage(32, 32), 100, 100, 0)
	b.Add(2, ebiten.NewImage(16, 16), 200, 200, 0)

	tests := []struct {
		name string
		pos  Vec2
		want []Entity
	}{
		{"inside first", Vec2{X: 110, Y: 110}, []Entity{1}},
		{"inside second", Vec2{X: 208, Y: 208}, []Entity{2}},
		{"on the far edge", Vec2{X: 132, Y: 132}, []Entity{1}},
		{"just outside", Vec2{X: 133, Y: 110}, nil},
		{"empty space", Vec2{X: 0, Y: 0}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := b.Query(context.Background(), PointerSample{Position: tt.pos})
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(hits) != len(tt.want) {
				t.Fatalf("got %d hits, want %d: %+v", len(hits), len(tt.want), hits)
			}
			for i, e := range tt.want {
				if hits[i].Entity != e {
					t.Errorf("hits[%d].Entity = %d, want %d", i, hits[i].Entity, e)
				}
				if hits[i].Order != 2 {
					t.Errorf("hits[%d].Order = %v, want backend order 2", i, hits[i].Order)
				}
			}
		})
	}
}

func TestSpriteBackend_ZOrdering(t *testing.T) {
	b := NewSpriteBackend("sprites", 0)
	b.Add(1, ebiten.NewImage(50, 50), 0, 0, 1)
	b.Add(2, ebiten.NewImage(50, 50), 0, 0, 5) // drawn on top
	b.Add(3, ebiten.NewImage(50, 50), 0, 0, 3)

	hits, err := b.Query(context.Background(), PointerSample{Position: Vec2{X: 25, Y: 25}})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("got %d hits, want 3", len(hits))
	}
	// Front to back by Z, depth increasing with rank.
	wantOrder := []Entity{2, 3, 1}
	for i, e := range wantOrder {
		if hits[i].Entity != e {
			t.Errorf("hits[%d].Entity = %d, want %d", i, hits[i].Entity, e)
		}
		if hits[i].Depth != float64(i) {
			t.Errorf("hits[%d].Depth = %v, want %d", i, hits[i].Depth, i)
		}
	}
}

func TestSpriteBackend_Scale(t *testing.T) {
	b := NewSpriteBackend("sprites", 0)
	s := b.Add(1, ebiten.NewImage(10, 10), 0, 0, 0)
	s.ScaleX, s.ScaleY = 3, 2

	inside := Vec2{X: 29, Y: 19}
	outside := Vec2{X: 29, Y: 21}

	hits, _ := b.Query(context.Background(), PointerSample{Position: inside})
	if len(hits) != 1 {
		t.Errorf("scaled bounds missed %v", inside)
	}
	hits, _ = b.Query(context.Background(), PointerSample{Position: outside})
	if len(hits) != 0 {
		t.Errorf("scaled bounds hit %v", outside)
	}

	// Zero scale collapses the sprite; nothing can hit it.
	s.ScaleX = 0
	hits, _ = b.Query(context.Background(), PointerSample{Position: Vec2{}})
	if len(hits) != 0 {
		t.Errorf("zero-scale sprite was hit")
	}
}

func TestSpriteBackend_ScreenToWorld(t *testing.T) {
	b := NewSpriteBackend("sprites", 0)
	b.Add(1, ebiten.NewImage(10, 10), 100, 100, 0)
	b.ScreenToWorld = func(p Vec2) Vec2 {
		return Vec2{X: p.X + 100, Y: p.Y + 100} // camera offset
	}

	hits, _ := b.Query(context.Background(), PointerSample{Position: Vec2{X: 5, Y: 5}})
	if len(hits) != 1 || hits[0].Entity != 1 {
		t.Errorf("camera transform not applied: %+v", hits)
	}
}

func TestSpriteBackend_DisabledAndRemove(t *testing.T) {
	b := NewSpriteBackend("sprites", 0)
	s := b.Add(1, ebiten.NewImage(10, 10), 0, 0, 0)
	b.Add(2, ebiten.NewImage(10, 10), 0, 0, 1)
	b.Add(1, ebiten.NewImage(10, 10), 20, 0, 0) // second sprite, same entity

	sample := PointerSample{Position: Vec2{X: 5, Y: 5}}

	s.Disabled = true
	hits, _ := b.Query(context.Background(), sample)
	if len(hits) != 1 || hits[0].Entity != 2 {
		t.Fatalf("disabled sprite still hit: %+v", hits)
	}

	// Remove drops every sprite for the entity, including the offset one.
	b.Remove(1)
	hits, _ = b.Query(context.Background(), PointerSample{Position: Vec2{X: 25, Y: 5}})
	if len(hits) != 0 {
		t.Fatalf("removed sprite still hit: %+v", hits)
	}

	// Nil images never match.
	b.Add(3, nil, 0, 0, 0)
	hits, _ = b.Query(context.Background(), sample)
	if len(hits) != 1 || hits[0].Entity != 2 {
		t.Fatalf("nil-image sprite was hit: %+v", hits)
	}
}
