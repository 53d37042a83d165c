package pick

// Vec2 is a 2D vector used for screen positions, displacements, and sizes
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Vec3 is a world-space point or direction, used by backends that hit-test
// in three dimensions.
type Vec3 struct {
	X, Y, Z float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Entity identifies a pickable object. Values are assigned by the host
// application (or its ECS) and are opaque to the pipeline; zero is a valid
// entity only in the sense that the pipeline never interprets it.
type Entity uint64

// TargetID identifies a render target (window, viewport, offscreen surface).
// Backends declare which targets they service at registration time; pointer
// samples carry the target the pointer currently belongs to.
type TargetID uint32

// PrimaryTarget is the default render target for single-window hosts.
const PrimaryTarget TargetID = 0

// PointerButton identifies a pointer button.
type PointerButton uint8

const (
	ButtonPrimary   PointerButton = iota // left mouse button / touch contact
	ButtonSecondary                      // right mouse button
	ButtonMiddle                         // middle mouse button
	numButtons
)

// ButtonSet is a bitmask of currently pressed pointer buttons.
type ButtonSet uint8

// With returns the set with b added.
func (s ButtonSet) With(b PointerButton) ButtonSet { return s | 1<<b }

// Without returns the set with b removed.
func (s ButtonSet) Without(b PointerButton) ButtonSet { return s &^ (1 << b) }

// Has reports whether b is pressed.
func (s ButtonSet) Has(b PointerButton) bool { return s&(1<<b) != 0 }

// EventType identifies a kind of pick event.
type EventType uint8

const (
	Over      EventType = iota // pointer's topmost entity became this entity
	Out                        // entity stopped being the pointer's topmost entity
	Enter                      // entity entered the pointer's hovered hit list
	Leave                      // entity left the pointer's hovered hit list
	Move                       // pointer moved while the entity is hovered
	Down                       // button pressed while the entity is topmost
	Up                         // button released, ending a press
	Click                      // press and release on the same entity, no drag
	DragStart                  // press displacement exceeded the drag threshold
	Drag                       // pointer moved while dragging
	DragEnd                    // button released after dragging
	DragEnter                  // dragging pointer moved onto another entity
	DragOver                   // dragging pointer moved while over another entity
	DragLeave                  // dragging pointer moved off another entity
	Drop                       // drag released over an entity other than the dragged one
	numEventTypes
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case Over:
		return "Over"
	case Out:
		return "Out"
	case Enter:
		return "Enter"
	case Leave:
		return "Leave"
	case Move:
		return "Move"
	case Down:
		return "Down"
	case Up:
		return "Up"
	case Click:
		return "Click"
	case DragStart:
		return "DragStart"
	case Drag:
		return "Drag"
	case DragEnd:
		return "DragEnd"
	case DragEnter:
		return "DragEnter"
	case DragOver:
		return "DragOver"
	case DragLeave:
		return "DragLeave"
	case Drop:
		return "Drop"
	default:
		return "Unknown"
	}
}

// EventMask selects a set of event types for listener registration.
type EventMask uint16

// MaskOf builds a mask from the given event types.
func MaskOf(types ...EventType) EventMask {
	var m EventMask
	for _, t := range types {
		m |= 1 << t
	}
	return m
}

// AllEvents matches every event type.
const AllEvents EventMask = 1<<numEventTypes - 1

// Has reports whether the mask includes t.
func (m EventMask) Has(t EventType) bool { return m&(1<<t) != 0 }
