package stylefx

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies the trigger family an Effect belongs to.
type Kind uint8

const (
	// KindClick effects start when their trigger element is clicked.
	KindClick Kind = iota
	// KindHover effects run forward on pointer enter and reverse on leave.
	KindHover
	// KindLoad fires once when load progress reaches 100.
	KindLoad
	// KindScroll maps a scroll position range directly onto progress.
	KindScroll
	// KindPhysics runs a gravity body until stopped.
	KindPhysics
	// KindDistance starts when its trigger element's top edge comes within
	// Distance px of the viewport top.
	KindDistance
)

var kindNames = [...]string{"click", "hover", "load", "scroll", "physics", "distance"}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// discrete reports whether the kind takes part in the priority table.
func (k Kind) discrete() bool {
	return k == KindClick || k == KindHover || k == KindLoad || k == KindDistance
}

// State is the lifecycle state of an Effect.
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StateReversing
	StateCompleted
	StateInterrupted
)

var stateNames = [...]string{"idle", "running", "reversing", "completed", "interrupted"}

// String returns the lowercase state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// Default timing applied when a config leaves the field at zero.
const (
	DefaultDuration = 1000 * time.Millisecond
	DefaultEasing   = "linear"
)

// StyleDelta is one animated property. StartValue is the configured start;
// when empty the start is captured from the base style every time the
// effect activates.
type StyleDelta struct {
	Property   string
	StartValue string
	EndValue   string

	captured    string
	hasCaptured bool
}

// Effect is a single configured animation. Its runtime state (progress,
// captured start values) is reset on every activation. Effects never write
// the base style; the Manager commits on their behalf.
type Effect struct {
	ID        string
	Kind      Kind
	TriggerID string

	// ScrollStart and ScrollEnd bound a scroll effect's position range.
	ScrollStart float64
	ScrollEnd   float64

	Duration   time.Duration
	Delay      time.Duration
	EasingName string
	Styles     []StyleDelta

	// Physics holds the body parameters of a physics effect.
	Physics PhysicsParams

	// Distance is the viewport-top offset in px at or above which a distance
	// effect fires. With StopOnEnd it fires only once.
	Distance  float64
	StopOnEnd bool
	fired     bool

	easing   EasingFunc
	state    State
	progress float64
	motion   motion
}

// motion drives an Effect's progress. One implementation exists per kind
// family; the Manager only ever talks to this interface.
type motion interface {
	start(e *Effect)
	reverse(e *Effect)
	stop(e *Effect)
	// tick advances by dt seconds and reports whether the current run
	// finished on this tick.
	tick(e *Effect, dt float32) bool
}

// newEffect applies defaults and attaches the motion for the kind.
func newEffect(id string, kind Kind, decls []StyleDecl) *Effect {
	e := &Effect{
		ID:         id,
		Kind:       kind,
		Duration:   DefaultDuration,
		EasingName: DefaultEasing,
	}
	for _, d := range decls {
		p := strings.TrimSpace(d.Property)
		if p == "" {
			continue
		}
		e.Styles = append(e.Styles, StyleDelta{
			Property:   p,
			StartValue: strings.TrimSpace(d.StartValue),
			EndValue:   strings.TrimSpace(d.EndValue),
		})
	}
	switch kind {
	case KindScroll:
		e.motion = &scrollMotion{}
	case KindPhysics:
		e.motion = &physicsMotion{}
	default:
		e.motion = &clockMotion{}
	}
	return e
}

func (e *Effect) resolveEasing() {
	if e.EasingName == "" {
		e.EasingName = DefaultEasing
	}
	e.easing = Easing(e.EasingName)
}

// State returns the lifecycle state.
func (e *Effect) State() State { return e.state }

// Progress returns the linear (pre-easing) progress in [0, 1].
func (e *Effect) Progress() float64 { return e.progress }

// Active reports whether the effect is running forward or in reverse.
func (e *Effect) Active() bool {
	return e.state == StateRunning || e.state == StateReversing
}

// Held reports whether a hover effect finished its forward run and is
// holding its end state until the pointer leaves.
func (e *Effect) Held() bool {
	return e.Kind == KindHover && e.state == StateCompleted && e.progress >= 1
}

// captureStarts records the start value of every delta from base. A
// configured StartValue wins. Transform-family properties absent from the
// base start at their identity value; other absent properties are left
// uncaptured and skipped while interpolating.
func (e *Effect) captureStarts(base *BaseStyle) {
	for i := range e.Styles {
		d := &e.Styles[i]
		switch {
		case d.StartValue != "":
			d.captured, d.hasCaptured = d.StartValue, true
		default:
			if v, ok := base.Get(d.Property); ok {
				d.captured, d.hasCaptured = v, true
			} else if IsTransformProperty(d.Property) {
				d.captured, d.hasCaptured = transformIdentity(d.Property), true
			} else {
				d.captured, d.hasCaptured = "", false
			}
		}
	}
}

func (e *Effect) clearStarts() {
	for i := range e.Styles {
		e.Styles[i].captured = ""
		e.Styles[i].hasCaptured = false
	}
}

func (e *Effect) hasStarts() bool {
	for i := range e.Styles {
		if e.Styles[i].hasCaptured {
			return true
		}
	}
	return false
}

// sample interpolates every captured delta at the current progress and
// writes the results into out. Properties whose values do not parse are
// skipped for this frame.
func (e *Effect) sample(ip *Interpolator, out StyleMap) {
	if e.easing == nil {
		e.resolveEasing()
	}
	for i := range e.Styles {
		d := &e.Styles[i]
		if !d.hasCaptured {
			continue
		}
		if v, ok := ip.Interpolate(d.captured, d.EndValue, e.progress, e.easing, d.Property); ok {
			out[d.Property] = v
		}
	}
}

// endValues returns the authored end value of every delta.
func (e *Effect) endValues() StyleMap {
	out := make(StyleMap, len(e.Styles))
	for _, d := range e.Styles {
		if d.EndValue != "" {
			out[d.Property] = d.EndValue
		}
	}
	return out
}

func transformIdentity(property string) string {
	switch {
	case strings.HasPrefix(property, "scale"):
		return "1"
	case strings.HasPrefix(property, "translate"):
		return "0px"
	default:
		return "0deg"
	}
}
