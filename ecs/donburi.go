package ecs

import (
	"github.com/phanxgames/pick"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PickEventType is the Donburi event type for pick events. Subscribe to
// this in your ECS systems to receive hover, press, click, and drag events.
var PickEventType = events.NewEventType[pick.Event]()

// Attach registers a pipeline listener that publishes every pick event to
// the Donburi world. Events are queued by Donburi; call
// PickEventType.ProcessEvents (or events.ProcessAllEvents) once per frame
// after Pipeline.Tick to deliver them.
//
// The returned handle removes the bridge when no longer needed.
func Attach(p *pick.Pipeline, world donburi.World) pick.ListenerHandle {
	return p.On(pick.AllEvents, func(ev pick.Event) {
		PickEventType.Publish(world, ev)
	})
}
