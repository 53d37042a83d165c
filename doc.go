// Package pick is a backend-agnostic picking pipeline for [Ebitengine]
// games and other frame-driven Go applications.
//
// Every frame, pick determines which entities each pointer (mouse, touch
// contact, or synthetic pointer) is over and turns that into a stream of
// interaction events — hover, press, click, drag — without the consumers
// knowing how hit-testing was performed.
//
// # Quick start
//
// Build a [Pipeline], register one or more hit-testing backends, feed it
// pointer samples, and tick it once per frame:
//
//	pipeline, _ := pick.New(pick.DefaultConfig())
//
//	shapes := pick.NewShapeBackend("shapes", 0)
//	shapes.Add(button, pick.HitRect{Width: 80, Height: 40}, 100, 100, 0)
//	pipeline.RegisterBackend(shapes, 0)
//
//	pipeline.On(pick.MaskOf(pick.Click), func(ev pick.Event) {
//		fmt.Println("clicked", ev.Entity)
//	})
//
//	feed := pick.NewInputFeed(pick.PrimaryTarget)
//
//	func (g *Game) Update() error {
//		feed.Feed(pipeline)
//		pipeline.Tick()
//		return nil
//	}
//
// # Pipeline stages
//
// Data flows one direction per frame: the pointer [Registry] snapshot fans
// out to every registered [Backend] (one query per backend per pointer,
// run in parallel), the per-backend hits fan in to a merged [RankedHitList]
// per pointer, the interaction state machine advances per (pointer, entity)
// state and synthesizes [Event] records, and the [Dispatcher] delivers them
// synchronously to registered listeners.
//
// # Backends
//
// A [Backend] is any hit-testing strategy answering "which entities are
// under this point": 2D shapes ([ShapeBackend]), sprite bounds
// ([SpriteBackend]), 3D ray casts ([VolumeBackend]), or your own physics or
// UI-layout queries. Hits from all backends merge under one deterministic
// ordering contract: render order, then depth, then registration priority.
//
// # Events
//
// Event ordering within a frame is Out/Leave, then Over/Enter, then Move,
// then button and drag events, independently per pointer. Click fires only
// when press and release land on the same entity with no drag in between.
// Listener failures are isolated; backend failures degrade to "no hits".
//
// ECS integration (via [Donburi] adapter in pick/ecs) publishes the same
// events to a Donburi world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package pick
