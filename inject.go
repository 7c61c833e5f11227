package stylefx

type injectKind uint8

const (
	injectPointer injectKind = iota
	injectScroll
)

// syntheticEvent is a queued pointer or wheel event. Pointer coordinates are
// in screen space, which equals world space for the root.
type syntheticEvent struct {
	kind    injectKind
	x, y    float64
	pressed bool
	button  MouseButton
	deltaY  float64
}

// InjectMove queues a pointer move with no button held. Moving onto or off a
// node fires enter and leave.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: injectPointer, x: x, y: y})
}

// InjectPress queues a left button press at the given coordinates.
// The event is consumed on the next frame's input pass.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: injectPointer, x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectRelease queues a left button release at the given coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: injectPointer, x: x, y: y,
		button: MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectScroll queues a scroll of dy pixels; positive scrolls down.
func (s *Scene) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: injectScroll, deltaY: dy})
}

// PendingInput returns the number of queued synthetic events.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event and feeds it through the same path as
// real input. Returns true if an event was consumed.
func (s *Scene) processInjectedInput(mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case injectScroll:
		s.scrollBy(evt.deltaY)
	default:
		s.processPointer(evt.x, evt.y, evt.pressed, evt.button, mods)
	}
	return true
}
