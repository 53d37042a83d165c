package pick

import (
	"testing"
)

func TestPointerID_Kinds(t *testing.T) {
	if MousePointer().Kind() != KindMouse {
		t.Error("MousePointer kind")
	}
	if TouchPointer(3).Kind() != KindTouch {
		t.Error("TouchPointer kind")
	}
	if CustomPointer().Kind() != KindCustom {
		t.Error("CustomPointer kind")
	}

	if MousePointer() != MousePointer() {
		t.Error("mouse pointer must be a single identity")
	}
	if TouchPointer(1) == TouchPointer(2) {
		t.Error("distinct touch contacts must have distinct ids")
	}
	if CustomPointer() == CustomPointer() {
		t.Error("custom pointers must never collide")
	}
}

func TestRegistry_UpdateAndRemove(t *testing.T) {
	r := NewRegistry(0)
	id := TouchPointer(1)

	if !r.Update(id, PointerSample{Position: Vec2{X: 5, Y: 6}}) {
		t.Fatal("Update rejected with no limit")
	}
	s, ok := r.Get(id)
	if !ok || s.Position.X != 5 {
		t.Fatalf("Get = %v, %v", s, ok)
	}

	// Overwrite replaces the previous sample.
	r.Update(id, PointerSample{Position: Vec2{X: 9}})
	s, _ = r.Get(id)
	if s.Position.X != 9 {
		t.Errorf("sample not replaced: %v", s)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}

	r.Remove(id)
	if _, ok := r.Get(id); ok {
		t.Error("pointer still live after Remove")
	}
	if len(r.Live()) != 0 {
		t.Errorf("Live = %v, want empty", r.Live())
	}
	r.Remove(id) // second remove is a no-op
}

func TestRegistry_Limit(t *testing.T) {
	r := NewRegistry(2)
	if !r.Update(TouchPointer(1), PointerSample{}) {
		t.Fatal("first pointer rejected")
	}
	if !r.Update(TouchPointer(2), PointerSample{}) {
		t.Fatal("second pointer rejected")
	}
	if r.Update(TouchPointer(3), PointerSample{}) {
		t.Fatal("third pointer accepted past limit")
	}
	// Updating an existing pointer is always allowed.
	if !r.Update(TouchPointer(1), PointerSample{Position: Vec2{X: 1}}) {
		t.Fatal("update of live pointer rejected at limit")
	}
	// Removing frees a slot.
	r.Remove(TouchPointer(1))
	if !r.Update(TouchPointer(3), PointerSample{}) {
		t.Fatal("pointer rejected after slot freed")
	}
}

func TestRegistry_LiveOrderDeterministic(t *testing.T) {
	r := NewRegistry(0)
	r.Update(TouchPointer(9), PointerSample{})
	r.Update(MousePointer(), PointerSample{})
	r.Update(TouchPointer(2), PointerSample{})

	live := r.Live()
	if len(live) != 3 {
		t.Fatalf("Live len = %d, want 3", len(live))
	}
	// Mouse sorts before touch; touches sort by contact id.
	if live[0] != MousePointer() || live[1] != TouchPointer(2) || live[2] != TouchPointer(9) {
		t.Errorf("Live order = %v", live)
	}

	// The returned slice is the caller's to mangle.
	live[0] = TouchPointer(99)
	if again := r.Live(); again[0] != MousePointer() {
		t.Errorf("mutating Live's result corrupted the registry: %v", again)
	}
}

func TestButtonSet(t *testing.T) {
	var s ButtonSet
	s = s.With(ButtonPrimary).With(ButtonMiddle)
	if !s.Has(ButtonPrimary) || !s.Has(ButtonMiddle) || s.Has(ButtonSecondary) {
		t.Errorf("set contents wrong: %b", s)
	}
	s = s.Without(ButtonPrimary)
	if s.Has(ButtonPrimary) || !s.Has(ButtonMiddle) {
		t.Errorf("Without failed: %b", s)
	}
}
