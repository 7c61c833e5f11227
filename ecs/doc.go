// Package ecs provides ECS adapters for stylefx.
//
// [NewDonburiStore] bridges stylefx interaction events (pointer, click,
// enter, leave, scroll) into a [Donburi] world as typed events. Subscribe to
// [InteractionEventType] in your ECS systems to receive them.
//
// Effect managers can also live on entities instead of scene bindings.
// [AddEffects] attaches a manager to a new entity, [ForwardTriggers] routes
// interaction events to every such manager by node name, and [UpdateEffects]
// advances them once per tick:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//	ecs.ForwardTriggers(world)
//	ecs.AddEffects(world, stylefx.NewManager(cfg))
//
//	// in the ECS update
//	events.ProcessAllEvents(world)
//	ecs.UpdateEffects(world, dt)
//
// Nodes only emit events when their EntityID is non-zero.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
