package pick

import (
	"go.uber.org/zap"
)

// Event is one discrete interaction event. Events are synthesized by the
// state machine, delivered synchronously during dispatch, and not stored.
type Event struct {
	Type    EventType
	Pointer PointerID
	Entity  Entity
	// Button is valid for Down, Up, Click, and all drag events.
	Button PointerButton
	// Position is the pointer's screen position when the event fired.
	Position Vec2
	// Delta is the displacement since the last sample. Valid for Move and
	// Drag; for DragStart it is the total displacement from press start.
	Delta Vec2
	// Hit is the merged hit record for the event's entity this frame, when
	// the entity was in the pointer's hit list (zero value otherwise, e.g.
	// for a forced Up after pointer removal).
	Hit HitData
}

// Listener receives dispatched events.
type Listener func(Event)

type listenerEntry struct {
	id     uint32
	mask   EventMask
	entity Entity
	scoped bool // entity filter active
	fn     Listener
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id uint32
	d  *Dispatcher
}

// Remove unregisters this listener so it no longer fires. Safe to call from
// inside a listener; an in-flight Dispatch keeps delivering the current event
// to its snapshot, and the removal takes effect from the next event on.
func (h ListenerHandle) Remove() {
	if h.d == nil {
		return
	}
	// Rebuild rather than shift in place: Dispatch may hold the old slice.
	for i := range h.d.listeners {
		if h.d.listeners[i].id == h.id {
			ls := make([]listenerEntry, 0, len(h.d.listeners)-1)
			ls = append(ls, h.d.listeners[:i]...)
			ls = append(ls, h.d.listeners[i+1:]...)
			h.d.listeners = ls
			return
		}
	}
}

// Dispatcher owns the listener registry and delivers events synchronously
// within the frame. Delivery is best-effort: a panicking listener is logged
// and does not block delivery to siblings, and state-machine bookkeeping is
// already committed before dispatch runs.
type Dispatcher struct {
	listeners []listenerEntry
	nextID    uint32
	log       *zap.Logger
}

// NewDispatcher creates a dispatcher. Pass nil to disable logging.
func NewDispatcher(log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{log: log}
}

// On registers a listener for every event whose type is in mask.
func (d *Dispatcher) On(mask EventMask, fn Listener) ListenerHandle {
	d.nextID++
	d.listeners = append(d.listeners, listenerEntry{id: d.nextID, mask: mask, fn: fn})
	return ListenerHandle{id: d.nextID, d: d}
}

// OnEntity registers a listener scoped to events targeting entity.
func (d *Dispatcher) OnEntity(entity Entity, mask EventMask, fn Listener) ListenerHandle {
	d.nextID++
	d.listeners = append(d.listeners, listenerEntry{
		id: d.nextID, mask: mask, entity: entity, scoped: true, fn: fn,
	})
	return ListenerHandle{id: d.nextID, d: d}
}

// Dispatch delivers the frame's events in order. Listeners are invoked in
// registration order per event. Listeners may register or remove listeners
// (including themselves) during delivery; such changes apply from the next
// event onward.
func (d *Dispatcher) Dispatch(events []Event) {
	for _, ev := range events {
		listeners := d.listeners
		for i := range listeners {
			l := &listeners[i]
			if !l.mask.Has(ev.Type) {
				continue
			}
			if l.scoped && l.entity != ev.Entity {
				continue
			}
			d.deliver(l.fn, ev)
		}
	}
}

// deliver calls one listener, isolating panics so one consumer's failure
// cannot prevent delivery to siblings.
func (d *Dispatcher) deliver(fn Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("pick: listener panicked",
				zap.Stringer("event", ev.Type),
				zap.String("pointer", ev.Pointer.String()),
				zap.Uint64("entity", uint64(ev.Entity)),
				zap.Any("panic", r),
			)
		}
	}()
	fn(ev)
}

// setLogger swaps the dispatch log target. Used by Pipeline.SetLogger.
func (d *Dispatcher) setLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	d.log = log
}
