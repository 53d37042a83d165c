package ecs

import (
	"testing"

	"github.com/phanxgames/pick"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func newPipeline(t *testing.T) *pick.Pipeline {
	t.Helper()
	p, err := pick.New(pick.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestAttach_PublishesEvents(t *testing.T) {
	world := donburi.NewWorld()
	p := newPipeline(t)
	Attach(p, world)

	shapes := pick.NewShapeBackend("shapes", 0)
	shapes.Add(7, pick.HitRect{Width: 50, Height: 50}, 0, 0, 0)
	p.RegisterBackend(shapes, 0)

	var received []pick.Event
	PickEventType.Subscribe(world, func(w donburi.World, e pick.Event) {
		received = append(received, e)
	})

	ptr := pick.CustomPointer()
	p.UpdatePointer(ptr, pick.PointerSample{Position: pick.Vec2{X: 25, Y: 25}})
	p.Tick()

	// Events are queued — process them.
	PickEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events (Over, Enter), got %d: %v", len(received), received)
	}
	if received[0].Type != pick.Over || received[0].Entity != 7 {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Type != pick.Enter || received[1].Entity != 7 {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestAttach_RemoveStopsBridge(t *testing.T) {
	world := donburi.NewWorld()
	p := newPipeline(t)
	handle := Attach(p, world)

	shapes := pick.NewShapeBackend("shapes", 0)
	shapes.Add(7, pick.HitRect{Width: 50, Height: 50}, 0, 0, 0)
	p.RegisterBackend(shapes, 0)

	var count int
	PickEventType.Subscribe(world, func(w donburi.World, e pick.Event) {
		count++
	})

	handle.Remove()

	ptr := pick.CustomPointer()
	p.UpdatePointer(ptr, pick.PointerSample{Position: pick.Vec2{X: 25, Y: 25}})
	p.Tick()
	events.ProcessAllEvents(world)

	if count != 0 {
		t.Errorf("expected no events after Remove, got %d", count)
	}
}
