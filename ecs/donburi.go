package ecs

import (
	"github.com/phanxgames/stylefx"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for stylefx interaction events.
var InteractionEventType = events.NewEventType[stylefx.InteractionEvent]()

// Effects holds an effect manager owned by an entity.
type Effects struct {
	Manager *stylefx.Manager
}

// EffectsComponent marks entities whose managers are driven by UpdateEffects.
var EffectsComponent = donburi.NewComponentType[Effects]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) stylefx.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event stylefx.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// AddEffects creates an entity carrying m. The manager's cleanup removes the
// entity when m is disposed.
func AddEffects(world donburi.World, m *stylefx.Manager) donburi.Entity {
	entity := world.Create(EffectsComponent)
	EffectsComponent.SetValue(world.Entry(entity), Effects{Manager: m})
	m.AddCleanup(func() {
		if world.Valid(entity) {
			world.Remove(entity)
		}
	})
	return entity
}

// UpdateEffects advances every entity-owned manager by dt seconds.
func UpdateEffects(world donburi.World, dt float32) {
	EffectsComponent.Each(world, func(entry *donburi.Entry) {
		EffectsComponent.Get(entry).Manager.Update(dt)
	})
}

// ForwardTriggers subscribes to InteractionEventType and routes clicks,
// hover and scroll to every entity-owned manager. The node name is the
// trigger id; managers ignore names they do not listen on.
func ForwardTriggers(world donburi.World) {
	InteractionEventType.Subscribe(world, func(w donburi.World, ev stylefx.InteractionEvent) {
		EffectsComponent.Each(w, func(entry *donburi.Entry) {
			m := EffectsComponent.Get(entry).Manager
			switch ev.Type {
			case stylefx.EventClick:
				m.Click(ev.NodeName)
			case stylefx.EventPointerEnter:
				m.HoverEnter(ev.NodeName)
			case stylefx.EventPointerLeave:
				m.HoverLeave(ev.NodeName)
			case stylefx.EventScroll:
				m.Scroll(ev.ScrollY)
			}
		})
	})
}
