package pick

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// PointerKind distinguishes the device classes a PointerID can represent.
type PointerKind uint8

const (
	KindMouse  PointerKind = iota // the single mouse cursor
	KindTouch                     // one touch contact
	KindCustom                    // synthetic pointer created by the host
)

// PointerID is an opaque identifier for one pointing input. IDs are unique
// for the pointer's lifetime; the registry rejects reuse while a pointer is
// still live. PointerID is comparable and usable as a map key.
type PointerID struct {
	kind   PointerKind
	touch  int64
	custom uuid.UUID
}

// MousePointer returns the ID of the mouse cursor. There is exactly one.
func MousePointer() PointerID {
	return PointerID{kind: KindMouse}
}

// TouchPointer returns the ID for the touch contact with the given
// host-assigned contact id.
func TouchPointer(contact int64) PointerID {
	return PointerID{kind: KindTouch, touch: contact}
}

// CustomPointer returns a fresh synthetic pointer ID. Each call produces a
// distinct ID, so synthetic pointers never collide with live ones.
func CustomPointer() PointerID {
	return PointerID{kind: KindCustom, custom: uuid.New()}
}

// Kind returns the pointer's device class.
func (p PointerID) Kind() PointerKind { return p.kind }

// String returns a short human-readable form, for logs and test failures.
func (p PointerID) String() string {
	switch p.kind {
	case KindMouse:
		return "mouse"
	case KindTouch:
		return fmt.Sprintf("touch(%d)", p.touch)
	default:
		return fmt.Sprintf("custom(%s)", p.custom)
	}
}

// less orders pointer IDs. The pipeline processes pointers in this order so
// a frame's event stream is deterministic regardless of map iteration.
func (p PointerID) less(o PointerID) bool {
	if p.kind != o.kind {
		return p.kind < o.kind
	}
	if p.touch != o.touch {
		return p.touch < o.touch
	}
	return bytes.Compare(p.custom[:], o.custom[:]) < 0
}

// PointerSample is one frame's snapshot of a pointer: where it is, which
// render target it belongs to, and which buttons are held. The registry owns
// the sample and overwrites it every frame.
type PointerSample struct {
	Position Vec2
	Target   TargetID
	Buttons  ButtonSet
}

// Registry tracks live pointers and their current samples. It has no side
// effects beyond state replacement and is not persisted. Removal of a
// pointer with active interaction state must go through Pipeline.RemovePointer,
// which synthesizes terminal events before calling Remove here.
type Registry struct {
	samples map[PointerID]PointerSample
	order   []PointerID // sorted; kept in sync with samples
	limit   int         // max concurrent pointers, 0 = unlimited
}

// NewRegistry creates a registry with the given pointer limit (0 = unlimited).
func NewRegistry(limit int) *Registry {
	return &Registry{
		samples: make(map[PointerID]PointerSample),
		limit:   limit,
	}
}

// Update replaces the sample for id, creating the pointer if it is new.
// Returns false if the pointer is new and the registry is at its limit.
func (r *Registry) Update(id PointerID, sample PointerSample) bool {
	if _, live := r.samples[id]; !live {
		if r.limit > 0 && len(r.samples) >= r.limit {
			return false
		}
		r.insertOrdered(id)
	}
	r.samples[id] = sample
	return true
}

// Remove deletes the pointer. No-op if the pointer is not live.
func (r *Registry) Remove(id PointerID) {
	if _, live := r.samples[id]; !live {
		return
	}
	delete(r.samples, id)
	for i, p := range r.order {
		if p == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// Get returns the current sample for id.
func (r *Registry) Get(id PointerID) (PointerSample, bool) {
	s, ok := r.samples[id]
	return s, ok
}

// Live returns a copy of the live pointer IDs in deterministic order.
func (r *Registry) Live() []PointerID {
	out := make([]PointerID, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of live pointers.
func (r *Registry) Len() int { return len(r.samples) }

func (r *Registry) insertOrdered(id PointerID) {
	i := len(r.order)
	for j, p := range r.order {
		if id.less(p) {
			i = j
			break
		}
	}
	r.order = append(r.order, PointerID{})
	copy(r.order[i+1:], r.order[i:])
	r.order[i] = id
}
