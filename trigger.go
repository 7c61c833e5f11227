package stylefx

import (
	"sort"
)

// Action is a custom trigger action for Manager.Run.
type Action string

const (
	ActionStart   Action = "start"
	ActionReverse Action = "reverse"
	ActionStop    Action = "stop"
)

// Click starts every click effect and physics body bound to id. Unknown
// ids are ignored.
func (m *Manager) Click(id string) {
	if m.disposed {
		return
	}
	for _, e := range m.clicks[id] {
		m.request(e)
	}
	for _, e := range m.bodies[id] {
		e.motion.start(e)
		m.logTransition(e, "start")
	}
}

// HoverEnter runs the hover effects bound to id forward. Entering again
// while a reverse is in flight resumes forward from the current progress.
func (m *Manager) HoverEnter(id string) {
	if m.disposed {
		return
	}
	for _, e := range m.hovers[id] {
		m.request(e)
	}
}

// HoverLeave reverses the live hover effect bound to id. Queued or idle
// hovers are left alone.
func (m *Manager) HoverLeave(id string) {
	if m.disposed {
		return
	}
	for _, e := range m.hovers[id] {
		if e == m.live && e.state != StateReversing {
			e.motion.reverse(e)
			m.logTransition(e, "reverse")
		}
	}
}

// SetLoadProgress reports load progress as a percentage. The load effect
// fires once, the first time pct reaches 100.
func (m *Manager) SetLoadProgress(pct float64) {
	if m.disposed {
		return
	}
	m.loadPct = pct
	if m.load == nil || m.loadFired || pct < 100 {
		return
	}
	m.loadFired = true
	m.request(m.load)
}

// CheckDistance reports the top edge of element id in px from the viewport
// top. Every distance effect bound to id whose Distance is at or below top
// is requested at the click tier. A StopOnEnd effect fires once; the others
// fire again on any later in-range check once they are no longer live.
func (m *Manager) CheckDistance(id string, top float64) {
	if m.disposed {
		return
	}
	for _, e := range m.near[id] {
		if e.fired && e.StopOnEnd {
			continue
		}
		if top <= e.Distance {
			e.fired = true
			m.request(e)
		}
	}
}

// Scroll moves every scroll effect to position y. An effect captures its
// start values when its progress leaves zero and drops them when it
// returns to zero.
func (m *Manager) Scroll(y float64) {
	if m.disposed {
		return
	}
	m.scrollY = y
	for _, e := range m.scrolls {
		m.seek(e)
	}
}

func (m *Manager) seek(e *Effect) {
	was := e.progress
	if !e.motion.(*scrollMotion).seek(e, m.scrollY) {
		return
	}
	switch {
	case was == 0 && e.progress > 0:
		e.captureStarts(m.base)
	case e.progress == 0:
		e.clearStarts()
	}
}

// Run applies a custom action to the effect with the given id. Unknown ids
// and actions are ignored. Discrete effects go through the priority
// policy; reverse only applies to a live clock-driven effect.
func (m *Manager) Run(effectID string, action Action) {
	if m.disposed {
		return
	}
	e := m.byID[effectID]
	if e == nil {
		m.log.Debug().Str("effect", effectID).Msg("run: unknown effect")
		return
	}
	switch action {
	case ActionStart:
		switch e.Kind {
		case KindScroll:
			e.motion.start(e)
			m.seek(e)
		case KindPhysics:
			e.motion.start(e)
			m.logTransition(e, "start")
		default:
			m.request(e)
		}
	case ActionReverse:
		if e == m.live && e.state != StateReversing {
			e.motion.reverse(e)
			m.logTransition(e, "reverse")
		}
	case ActionStop:
		m.stopEffect(e)
	default:
		m.log.Debug().Str("effect", effectID).Str("action", string(action)).Msg("run: unknown action")
	}
}

// TriggerIDs returns the distinct element ids that click, hover, distance
// and physics effects listen on, sorted. Host bindings use it to attach listeners.
func (m *Manager) TriggerIDs() []string {
	seen := make(map[string]struct{})
	for _, set := range []map[string][]*Effect{m.clicks, m.hovers, m.bodies, m.near} {
		for id := range set {
			if id != "" {
				seen[id] = struct{}{}
			}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
