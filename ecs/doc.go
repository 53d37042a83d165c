// Package ecs provides ECS adapters for pick's interaction event system.
//
// The primary adapter is [Attach], which bridges pick events (hover, press,
// click, drag) into a [Donburi] world as typed events. Subscribe to
// [PickEventType] in your ECS systems to receive them.
//
// Usage:
//
//	handle := ecs.Attach(pipeline, world)
//	// each frame, after pipeline.Tick():
//	ecs.PickEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
