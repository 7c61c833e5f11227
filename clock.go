package stylefx

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// clockMotion is the timed motion shared by click, hover and load effects.
// Progress is driven by a linear gween tween from the progress at which the
// run started toward 1 (forward) or 0 (reverse). Easing is applied later,
// when values are sampled, so progress stays linear in time.
//
// A run of length (1-from)·Duration forward or from·Duration in reverse
// keeps the rate at 1/Duration per second in both directions: reversing
// from 0.5 takes half the configured duration.
type clockMotion struct {
	tween  *gween.Tween
	target float64
	wait   float32 // remaining delay, seconds
}

// start runs the effect forward. It is a no-op while already running
// forward. A reversing effect resumes forward from its current progress;
// anything else starts from 0.
func (c *clockMotion) start(e *Effect) {
	switch e.state {
	case StateRunning:
		return
	case StateReversing:
		c.run(e, e.progress, 1, StateRunning)
	default:
		c.run(e, 0, 1, StateRunning)
	}
}

// reverse runs the effect back toward 0 from its current progress.
func (c *clockMotion) reverse(e *Effect) {
	if e.state == StateReversing {
		return
	}
	c.run(e, e.progress, 0, StateReversing)
}

func (c *clockMotion) stop(e *Effect) {
	c.tween = nil
	c.wait = 0
	if e.Active() {
		e.state = StateInterrupted
	} else {
		e.state = StateIdle
	}
	e.progress = 0
	e.clearStarts()
}

func (c *clockMotion) run(e *Effect, from, to float64, state State) {
	span := (to - from) * e.Duration.Seconds()
	if span < 0 {
		span = -span
	}
	c.tween = gween.New(float32(from), float32(to), float32(span), ease.Linear)
	c.target = to
	c.wait = float32(e.Delay.Seconds())
	e.progress = from
	e.state = state
}

// tick advances the clock. The delay phase holds progress in place; any
// time left over once the delay expires is applied to the tween.
func (c *clockMotion) tick(e *Effect, dt float32) bool {
	if c.tween == nil || !e.Active() {
		return false
	}
	if c.wait > 0 {
		c.wait -= dt
		if c.wait > 0 {
			return false
		}
		dt = -c.wait
		c.wait = 0
	}

	val, finished := c.tween.Update(dt)
	if !finished {
		e.progress = clamp01(float64(val))
		return false
	}

	e.progress = c.target
	c.tween = nil
	if c.target >= 1 {
		e.state = StateCompleted
	} else {
		e.state = StateIdle
	}
	return true
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
