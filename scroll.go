package stylefx

// scrollMotion maps a scroll position onto progress. It has no clock: the
// effect is enabled by start and then follows every seek until stopped.
type scrollMotion struct {
	enabled bool
	pos     float64
}

func (s *scrollMotion) start(e *Effect) {
	s.enabled = true
}

// reverse has no meaning for a position-driven effect.
func (s *scrollMotion) reverse(e *Effect) {}

func (s *scrollMotion) stop(e *Effect) {
	s.enabled = false
	e.progress = 0
	e.state = StateIdle
	e.clearStarts()
}

func (s *scrollMotion) tick(e *Effect, dt float32) bool { return false }

// seek moves the effect to scroll position y and reports whether progress
// changed.
func (s *scrollMotion) seek(e *Effect, y float64) bool {
	s.pos = y
	if !s.enabled {
		return false
	}
	p := scrollProgress(y, e.ScrollStart, e.ScrollEnd)
	if p == e.progress {
		return false
	}
	e.progress = p
	if p > 0 {
		e.state = StateRunning
	} else {
		e.state = StateIdle
	}
	return true
}

// scrollProgress returns clamp((y-start)/(end-start), 0, 1). A range with
// end <= start is a step at start.
func scrollProgress(y, start, end float64) float64 {
	if end <= start {
		if y >= start {
			return 1
		}
		return 0
	}
	return clamp01((y - start) / (end - start))
}
