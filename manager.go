package stylefx

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// IDGenerator produces a Manager instance id.
type IDGenerator func() string

// Option configures a Manager.
type Option func(*Manager)

// WithLogger routes transitions (Debug) and value diagnostics (Warn) to l.
// The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithIDGenerator replaces the random instance id.
func WithIDGenerator(gen IDGenerator) Option {
	return func(m *Manager) { m.newID = gen }
}

// tier is a discrete effect's priority. Higher wins.
type tier uint8

const (
	tierClick tier = iota
	tierLoad
	tierHover
	numTiers
)

func tierOf(k Kind) tier {
	switch k {
	case KindHover:
		return tierHover
	case KindLoad:
		return tierLoad
	default:
		return tierClick
	}
}

// Manager owns a subject's effects and its committed base style. It
// resolves triggers to effects, arbitrates the discrete tiers
// (hover > load > click) and produces the per-frame style map.
//
// At most one discrete effect is live (running, reversing, or a hover held
// at its end) at a time. A request from a lower tier than the live effect
// is queued in its tier slot and starts, fresh, once every higher tier has
// resolved. A request from the same or a higher tier interrupts the live
// effect: its current output is captured into the base style first so the
// incoming effect starts from exactly what was on screen.
//
// Scroll and physics effects are continuous layers applied under the
// discrete effect. They never commit to the base style.
//
// A Manager is not safe for concurrent use. Hosts drive it from one
// goroutine: triggers as they arrive, Update once per frame, then Styles.
type Manager struct {
	id     string
	newID  IDGenerator
	log    zerolog.Logger
	interp *Interpolator

	base    *BaseStyle
	effects []*Effect
	byID    map[string]*Effect

	clicks  map[string][]*Effect
	hovers  map[string][]*Effect
	bodies  map[string][]*Effect
	near    map[string][]*Effect
	load    *Effect
	scrolls []*Effect
	physics []*Effect

	live  *Effect
	slots [numTiers]*Effect

	hoverRest  StyleMap
	hoverOwner *Effect

	loadFired bool
	loadPct   float64
	scrollY   float64

	cleanups []func()
	disposed bool
}

// NewManager builds the effects described by cfg. Missing durations default
// to one second, missing easings to linear. Physics effects marked
// AutoStart start immediately.
func NewManager(cfg Config, opts ...Option) *Manager {
	m := &Manager{
		log:    zerolog.Nop(),
		base:   NewBaseStyle(cfg.InitialStyles),
		byID:   make(map[string]*Effect),
		clicks: make(map[string][]*Effect),
		hovers: make(map[string][]*Effect),
		bodies: make(map[string][]*Effect),
		near:   make(map[string][]*Effect),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.newID != nil {
		m.id = m.newID()
	} else {
		m.id = "stylefx-" + uuid.NewString()
	}
	m.log = m.log.With().Str("manager", m.id).Logger()
	m.interp = NewInterpolator(m.log)

	for i, ec := range cfg.ClickEffects {
		e := m.timed(ec, KindClick, fmt.Sprintf("click-%d", i))
		m.clicks[e.TriggerID] = append(m.clicks[e.TriggerID], e)
	}
	for i, ec := range cfg.HoverEffects {
		e := m.timed(ec, KindHover, fmt.Sprintf("hover-%d", i))
		m.hovers[e.TriggerID] = append(m.hovers[e.TriggerID], e)
	}
	for i, dc := range cfg.DistanceEffects {
		e := m.timed(dc.EffectConfig, KindDistance, fmt.Sprintf("distance-%d", i))
		e.Distance, e.StopOnEnd = dc.Distance, dc.StopOnEnd
		m.near[e.TriggerID] = append(m.near[e.TriggerID], e)
	}
	if cfg.LoadEffect != nil {
		m.load = m.timed(*cfg.LoadEffect, KindLoad, "load")
	}
	for i, sc := range cfg.ScrollEffects {
		e := newEffect(idOr(sc.ID, fmt.Sprintf("scroll-%d", i)), KindScroll, sc.Styles)
		e.ScrollStart, e.ScrollEnd = sc.ScrollStart, sc.ScrollEnd
		if sc.EasingFunction != "" {
			e.EasingName = sc.EasingFunction
		}
		e.resolveEasing()
		m.register(e)
		m.scrolls = append(m.scrolls, e)
		e.motion.start(e)
	}
	for i, pc := range cfg.PhysicsEffects {
		e := newEffect(idOr(pc.ID, fmt.Sprintf("physics-%d", i)), KindPhysics, nil)
		e.TriggerID = pc.TriggerID
		e.Physics = pc.Params
		m.register(e)
		m.physics = append(m.physics, e)
		if e.TriggerID != "" {
			m.bodies[e.TriggerID] = append(m.bodies[e.TriggerID], e)
		}
		if pc.AutoStart {
			e.motion.start(e)
		}
	}

	m.log.Debug().
		Int("effects", len(m.effects)).
		Int("initialStyles", m.base.Len()).
		Msg("manager created")
	return m
}

func (m *Manager) timed(ec EffectConfig, kind Kind, fallbackID string) *Effect {
	e := newEffect(idOr(ec.ID, fallbackID), kind, ec.Styles)
	e.TriggerID = ec.TriggerID
	e.Duration = millis(ec.Duration, DefaultDuration)
	e.Delay = millis(ec.Delay, 0)
	if ec.EasingFunction != "" {
		e.EasingName = ec.EasingFunction
	}
	e.resolveEasing()
	m.register(e)
	return e
}

func (m *Manager) register(e *Effect) {
	m.effects = append(m.effects, e)
	if _, dup := m.byID[e.ID]; dup {
		m.log.Warn().Str("effect", e.ID).Msg("duplicate effect id, first one wins")
		return
	}
	m.byID[e.ID] = e
}

func idOr(id, fallback string) string {
	if id != "" {
		return id
	}
	return fallback
}

// ID returns the instance id.
func (m *Manager) ID() string { return m.id }

// Effect returns the effect with the given id, or nil.
func (m *Manager) Effect(id string) *Effect { return m.byID[id] }

// Effects returns every effect in config order.
func (m *Manager) Effects() []*Effect { return slices.Clone(m.effects) }

// Active returns the live discrete effect, or nil when none is running,
// reversing or held.
func (m *Manager) Active() *Effect { return m.live }

// Base returns a copy of the committed base style. Transform-family
// values are returned per property, uncomposed.
func (m *Manager) Base() StyleMap { return m.base.Snapshot() }

// LoadProgress returns the last reported load percentage.
func (m *Manager) LoadProgress() float64 { return m.loadPct }

// ScrollY returns the last reported scroll position.
func (m *Manager) ScrollY() float64 { return m.scrollY }

// Disposed reports whether Dispose has been called.
func (m *Manager) Disposed() bool { return m.disposed }

// Update advances the live discrete effect and every running physics body
// by dt seconds. Queued effects stay frozen. A discrete effect that
// finishes is committed and the next queued effect, if any, is promoted.
func (m *Manager) Update(dt float32) {
	if m.disposed {
		return
	}
	if e := m.live; e != nil {
		if e.motion.tick(e, dt) {
			m.finish(e)
		}
	}
	for _, e := range m.physics {
		e.motion.tick(e, dt)
	}
}

// Styles returns the style map for this frame: the base style, then the
// scroll and physics layers, then the live discrete effect. Transform-family
// properties are composed into a single "transform" entry, which is absent
// when no such property is present.
func (m *Manager) Styles() StyleMap {
	raw := m.base.Snapshot()
	for _, e := range m.scrolls {
		if e.progress > 0 {
			e.sample(m.interp, raw)
		}
	}
	for _, e := range m.physics {
		if e.state == StateRunning {
			for k, v := range e.motion.(*physicsMotion).styles() {
				raw[k] = v
			}
		}
	}
	if m.live != nil {
		m.live.sample(m.interp, raw)
	}
	return composeStyles(raw)
}

// request starts a discrete effect under the priority policy.
func (m *Manager) request(e *Effect) {
	if m.disposed {
		return
	}
	t := tierOf(e.Kind)
	cur := m.live

	if cur == e {
		if e.state == StateReversing {
			e.motion.start(e)
			m.logTransition(e, "resume")
		}
		return
	}

	if cur != nil && tierOf(cur.Kind) > t {
		m.slots[t] = e
		m.logTransition(e, "queued")
		return
	}

	if cur != nil {
		if cur.progress > 0 {
			m.capture(cur)
		}
		cur.motion.stop(cur)
		m.logTransition(cur, "interrupted")
		if tierOf(cur.Kind) == t {
			m.slots[t] = nil
		}
		m.live = nil
		if cur == m.hoverOwner && e.Kind == KindHover {
			m.hoverOwner = e
		}
	}
	m.activate(e)
}

func (m *Manager) activate(e *Effect) {
	if e.Kind == KindHover && m.hoverOwner == nil {
		m.hoverRest = m.base.Snapshot()
		m.hoverOwner = e
	}
	e.captureStarts(m.base)
	e.motion.start(e)
	m.live = e
	m.slots[tierOf(e.Kind)] = e
	m.logTransition(e, "start")
}

// capture writes the outgoing effect's current output into the base style.
// Callers skip it at progress 0, where the output is only start defaults.
// The frame is composed and the transform string parsed back so the base
// holds exactly what was rendered.
func (m *Manager) capture(e *Effect) {
	frame := m.base.Snapshot()
	e.sample(m.interp, frame)
	m.base.Merge(composeStyles(frame))
}

// finish handles the end of a run. A forward run commits its authored end
// values; a hover then holds until the pointer leaves. A reverse that
// reaches zero restores the hover rest snapshot.
func (m *Manager) finish(e *Effect) {
	switch e.state {
	case StateCompleted:
		m.base.Merge(e.endValues())
		if e.Kind == KindHover {
			m.logTransition(e, "held")
			return
		}
		e.clearStarts()
		m.logTransition(e, "completed")
	default:
		if e == m.hoverOwner {
			m.base.restore(m.hoverRest)
			m.hoverOwner, m.hoverRest = nil, nil
		}
		e.clearStarts()
		m.logTransition(e, "reversed")
	}
	m.release(e)
}

// release clears e from the live position and promotes the highest queued
// request, which restarts from zero with freshly captured start values.
func (m *Manager) release(e *Effect) {
	if m.slots[tierOf(e.Kind)] == e {
		m.slots[tierOf(e.Kind)] = nil
	}
	if m.live == e {
		m.live = nil
	}
	if m.live != nil {
		return
	}
	for t := int(numTiers) - 1; t >= 0; t-- {
		if next := m.slots[t]; next != nil {
			m.activate(next)
			return
		}
	}
}

// stopEffect is the explicit stop action. A live effect that has moved is
// captured first so its current output stays on screen.
func (m *Manager) stopEffect(e *Effect) {
	switch {
	case e == m.live:
		if e.progress > 0 {
			m.capture(e)
		}
		e.motion.stop(e)
		if e == m.hoverOwner {
			m.hoverOwner, m.hoverRest = nil, nil
		}
		m.logTransition(e, "stopped")
		m.release(e)
	case e.Kind.discrete():
		if m.slots[tierOf(e.Kind)] == e {
			m.slots[tierOf(e.Kind)] = nil
			m.logTransition(e, "dequeued")
		}
	default:
		e.motion.stop(e)
		m.logTransition(e, "stopped")
	}
}

// Dispose stops every effect without committing, runs the cleanup
// functions registered by host bindings and turns every later call into a
// no-op. Dispose is idempotent.
func (m *Manager) Dispose() {
	if m.disposed {
		return
	}
	for _, e := range m.effects {
		e.motion.stop(e)
	}
	m.live = nil
	m.slots = [numTiers]*Effect{}
	m.hoverOwner, m.hoverRest = nil, nil
	for i := len(m.cleanups) - 1; i >= 0; i-- {
		m.cleanups[i]()
	}
	m.cleanups = nil
	m.disposed = true
	m.log.Debug().Msg("manager disposed")
}

// AddCleanup registers fn to run on Dispose, in reverse order of
// registration. After Dispose, fn runs immediately.
func (m *Manager) AddCleanup(fn func()) {
	if fn == nil {
		return
	}
	if m.disposed {
		fn()
		return
	}
	m.cleanups = append(m.cleanups, fn)
}

func (m *Manager) logTransition(e *Effect, what string) {
	m.log.Debug().
		Str("effect", e.ID).
		Str("kind", e.Kind.String()).
		Str("state", e.state.String()).
		Float64("progress", e.progress).
		Msg(what)
}
