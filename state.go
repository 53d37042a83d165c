package pick

import (
	"math"
	"sort"
)

// InteractionState is the interaction phase of one (pointer, entity) pair.
type InteractionState uint8

const (
	StateNone     InteractionState = iota // no interaction
	StateHovered                          // entity is in the pointer's hovered window
	StatePressed                          // a button press began on the entity
	StateDragging                         // pressed and displacement exceeded the threshold
)

// String returns the state name.
func (s InteractionState) String() string {
	switch s {
	case StateHovered:
		return "Hovered"
	case StatePressed:
		return "Pressed"
	case StateDragging:
		return "Dragging"
	default:
		return "None"
	}
}

// stateKey is the composite key of the interaction table. State is keyed by
// (pointer, entity), never globally, so two pointers hovering the same
// entity keep independent bookkeeping.
type stateKey struct {
	pointer PointerID
	entity  Entity
}

// stateEntry is one row of the interaction table. Entries are created
// lazily the first frame an entity appears in a pointer's hit window and
// pruned once they have been None for one full frame.
type stateEntry struct {
	state     InteractionState
	noneSince uint64 // frame the entry became None; valid when state == StateNone
}

// pressRecord tracks one button press from Down until release.
type pressRecord struct {
	target   Entity
	start    Vec2 // pointer position at press; drag threshold is measured from here
	dragging bool
	dragOver []Entity // sorted; non-dragged entities currently under the pointer
}

// pointerBook is the per-pointer bookkeeping the machine carries between
// frames: previous sample, previous hovered window, and active presses.
// Books are independent across pointers; there is no cross-pointer state.
type pointerBook struct {
	pos     Vec2
	hasPos  bool
	buttons ButtonSet
	hover   RankedHitList // previous frame's hovered window (owned copy)
	presses map[PointerButton]*pressRecord
}

// machine advances the per-pointer interaction state once per frame and
// synthesizes the frame's events in dispatch order: Out/Leave, then
// Over/Enter, then Move, then press/release/click/drag events.
type machine struct {
	dragThreshold float64
	depth         int // pass-through depth: hovered window is 1+depth hits

	books  map[PointerID]*pointerBook
	states map[stateKey]*stateEntry
	frame  uint64
}

func newMachine(dragThreshold float64, depth int) *machine {
	return &machine{
		dragThreshold: dragThreshold,
		depth:         depth,
		books:         make(map[PointerID]*pointerBook),
		states:        make(map[stateKey]*stateEntry),
	}
}

// advance runs one frame of the state machine for a single pointer, given
// its current sample and merged hit list, appending synthesized events to
// out. Pointers are advanced independently; the caller fixes their order.
func (m *machine) advance(id PointerID, sample PointerSample, hits RankedHitList, out []Event) []Event {
	book := m.books[id]
	if book == nil {
		book = &pointerBook{presses: make(map[PointerButton]*pressRecord)}
		m.books[id] = book
	}

	window := hits.window(m.depth)

	prevTop, hasPrevTop := book.hover.Topmost()
	curTop, hasCurTop := window.Topmost()

	moved := book.hasPos && sample.Position != book.pos
	var delta Vec2
	if book.hasPos {
		delta = sample.Position.Sub(book.pos)
	}

	// Out/Leave before Over/Enter: a listener reacting to "entered" must
	// never see a stale "still hovering the old entity" later in the frame.
	if hasPrevTop && (!hasCurTop || curTop.Entity != prevTop.Entity) {
		out = append(out, Event{Type: Out, Pointer: id, Entity: prevTop.Entity, Position: sample.Position})
	}
	for _, h := range book.hover {
		if !window.contains(h.Entity) {
			out = append(out, Event{Type: Leave, Pointer: id, Entity: h.Entity, Position: sample.Position})
		}
	}

	if hasCurTop && (!hasPrevTop || curTop.Entity != prevTop.Entity) {
		out = append(out, Event{Type: Over, Pointer: id, Entity: curTop.Entity, Position: sample.Position, Hit: curTop})
	}
	for _, h := range window {
		if !book.hover.contains(h.Entity) {
			out = append(out, Event{Type: Enter, Pointer: id, Entity: h.Entity, Position: sample.Position, Hit: h})
		}
	}

	if moved {
		for _, h := range window {
			out = append(out, Event{Type: Move, Pointer: id, Entity: h.Entity, Position: sample.Position, Delta: delta, Hit: h})
		}
	}

	out = m.advanceButtons(id, book, sample, window, moved, delta, out)

	// Commit this frame's bookkeeping.
	book.hover = append(book.hover[:0], window...)
	book.pos = sample.Position
	book.hasPos = true
	book.buttons = sample.Buttons

	m.commitStates(id, book, window)
	return out
}

// advanceButtons handles press, drag, and release transitions for every
// button independently. At most one entity is Pressed per button at a time:
// the entity that was topmost when the press began.
func (m *machine) advanceButtons(id PointerID, book *pointerBook, sample PointerSample, window RankedHitList, moved bool, delta Vec2, out []Event) []Event {
	curTop, hasCurTop := window.Topmost()

	for b := ButtonPrimary; b < numButtons; b++ {
		now := sample.Buttons.Has(b)
		before := book.buttons.Has(b)

		switch {
		case now && !before:
			// Press begins only when something is under the pointer.
			if hasCurTop {
				book.presses[b] = &pressRecord{target: curTop.Entity, start: sample.Position}
				out = append(out, Event{Type: Down, Pointer: id, Entity: curTop.Entity, Button: b, Position: sample.Position, Hit: curTop})
			}

		case now && before:
			pr := book.presses[b]
			if pr == nil {
				continue
			}
			if !pr.dragging {
				dx := sample.Position.X - pr.start.X
				dy := sample.Position.Y - pr.start.Y
				if math.Hypot(dx, dy) > m.dragThreshold {
					pr.dragging = true
					hit, _ := window.find(pr.target)
					out = append(out, Event{
						Type: DragStart, Pointer: id, Entity: pr.target, Button: b,
						Position: sample.Position, Delta: sample.Position.Sub(pr.start), Hit: hit,
					})
				}
			}
			if pr.dragging {
				if moved {
					hit, _ := window.find(pr.target)
					out = append(out, Event{
						Type: Drag, Pointer: id, Entity: pr.target, Button: b,
						Position: sample.Position, Delta: delta, Hit: hit,
					})
				}
				out = m.advanceDragOver(id, pr, b, sample, window, moved, out)
			}

		case !now && before:
			pr := book.presses[b]
			if pr == nil {
				continue
			}
			delete(book.presses, b)

			if pr.dragging {
				for _, e := range pr.dragOver {
					out = append(out, Event{Type: DragLeave, Pointer: id, Entity: e, Button: b, Position: sample.Position})
				}
				out = append(out, Event{Type: DragEnd, Pointer: id, Entity: pr.target, Button: b, Position: sample.Position})
				if hasCurTop && curTop.Entity != pr.target {
					out = append(out, Event{Type: Drop, Pointer: id, Entity: curTop.Entity, Button: b, Position: sample.Position, Hit: curTop})
				}
				out = append(out, m.upEvent(id, pr, b, sample, window))
			} else {
				out = append(out, m.upEvent(id, pr, b, sample, window))
				// Click requires press and release targets to match, and no drag.
				if hasCurTop && curTop.Entity == pr.target {
					out = append(out, Event{Type: Click, Pointer: id, Entity: curTop.Entity, Button: b, Position: sample.Position, Hit: curTop})
				}
			}
		}
	}
	return out
}

// upEvent builds the terminal Up for a press. Up targets the entity under
// the pointer at release; when nothing is hovered it falls back to the
// press target, so every press observes a terminal Up.
func (m *machine) upEvent(id PointerID, pr *pressRecord, b PointerButton, sample PointerSample, window RankedHitList) Event {
	if top, ok := window.Topmost(); ok {
		return Event{Type: Up, Pointer: id, Entity: top.Entity, Button: b, Position: sample.Position, Hit: top}
	}
	return Event{Type: Up, Pointer: id, Entity: pr.target, Button: b, Position: sample.Position}
}

// advanceDragOver maintains the set of non-dragged entities under a
// dragging pointer, emitting DragEnter when one gains presence, DragOver
// while the pointer moves over it, and DragLeave when it loses presence.
func (m *machine) advanceDragOver(id PointerID, pr *pressRecord, b PointerButton, sample PointerSample, window RankedHitList, moved bool, out []Event) []Event {
	cur := pr.dragOver[:0:0]
	for _, h := range window {
		if h.Entity != pr.target {
			cur = append(cur, h.Entity)
		}
	}
	sort.Slice(cur, func(i, j int) bool { return cur[i] < cur[j] })

	for _, e := range pr.dragOver {
		if !containsEntity(cur, e) {
			out = append(out, Event{Type: DragLeave, Pointer: id, Entity: e, Button: b, Position: sample.Position})
		}
	}
	for _, e := range cur {
		entered := !containsEntity(pr.dragOver, e)
		if entered {
			hit, _ := window.find(e)
			out = append(out, Event{Type: DragEnter, Pointer: id, Entity: e, Button: b, Position: sample.Position, Hit: hit})
		}
		if entered || moved {
			hit, _ := window.find(e)
			out = append(out, Event{Type: DragOver, Pointer: id, Entity: e, Button: b, Position: sample.Position, Hit: hit})
		}
	}
	pr.dragOver = cur
	return out
}

func containsEntity(s []Entity, e Entity) bool {
	for _, x := range s {
		if x == e {
			return true
		}
	}
	return false
}

// terminate force-ends all interaction for a pointer that is being removed,
// synthesizing terminal events (Up if pressed, DragEnd if dragging, then
// Out/Leave) so no consumer is left believing an interaction is still
// active. The pointer's books and table rows are discarded afterward.
func (m *machine) terminate(id PointerID, out []Event) []Event {
	book := m.books[id]
	if book == nil {
		return out
	}

	for b := ButtonPrimary; b < numButtons; b++ {
		pr := book.presses[b]
		if pr == nil {
			continue
		}
		if pr.dragging {
			for _, e := range pr.dragOver {
				out = append(out, Event{Type: DragLeave, Pointer: id, Entity: e, Button: b, Position: book.pos})
			}
			out = append(out, Event{Type: DragEnd, Pointer: id, Entity: pr.target, Button: b, Position: book.pos})
		}
		out = append(out, Event{Type: Up, Pointer: id, Entity: pr.target, Button: b, Position: book.pos})
	}

	if top, ok := book.hover.Topmost(); ok {
		out = append(out, Event{Type: Out, Pointer: id, Entity: top.Entity, Position: book.pos})
	}
	for _, h := range book.hover {
		out = append(out, Event{Type: Leave, Pointer: id, Entity: h.Entity, Position: book.pos})
	}

	delete(m.books, id)
	for k := range m.states {
		if k.pointer == id {
			delete(m.states, k)
		}
	}
	return out
}

// commitStates writes this frame's interaction table rows for one pointer:
// hovered entities, press targets, and None transitions for rows whose
// entity dropped out of both.
func (m *machine) commitStates(id PointerID, book *pointerBook, window RankedHitList) {
	for _, h := range window {
		m.setState(id, h.Entity, StateHovered)
	}
	for _, pr := range book.presses {
		if pr.dragging {
			m.setState(id, pr.target, StateDragging)
		} else {
			m.setState(id, pr.target, StatePressed)
		}
	}
	for k, entry := range m.states {
		if k.pointer != id || entry.state == StateNone {
			continue
		}
		if window.contains(k.entity) {
			continue
		}
		if pressTarget(book, k.entity) {
			continue
		}
		entry.state = StateNone
		entry.noneSince = m.frame
	}
}

func pressTarget(book *pointerBook, e Entity) bool {
	for _, pr := range book.presses {
		if pr.target == e {
			return true
		}
	}
	return false
}

func (m *machine) setState(id PointerID, e Entity, s InteractionState) {
	k := stateKey{pointer: id, entity: e}
	entry := m.states[k]
	if entry == nil {
		entry = &stateEntry{}
		m.states[k] = entry
	}
	entry.state = s
}

// stateOf returns the interaction state for (pointer, entity); StateNone if
// no table row exists.
func (m *machine) stateOf(id PointerID, e Entity) InteractionState {
	if entry := m.states[stateKey{pointer: id, entity: e}]; entry != nil {
		return entry.state
	}
	return StateNone
}

// endFrame advances the frame counter and prunes table rows that have been
// None for one full frame, keeping the table bounded.
func (m *machine) endFrame() {
	for k, entry := range m.states {
		if entry.state == StateNone && entry.noneSince < m.frame {
			delete(m.states, k)
		}
	}
	m.frame++
}
