package stylefx

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// wheelStep is the scroll distance in pixels for one wheel notch.
const wheelStep = 40.0

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node
	button    MouseButton
}

// --- Handler registry ---

type handler[T any] struct {
	id uint32
	fn func(T)
}

type handlerRegistry struct {
	pointerDown  []handler[PointerContext]
	pointerUp    []handler[PointerContext]
	pointerMove  []handler[PointerContext]
	pointerEnter []handler[PointerContext]
	pointerLeave []handler[PointerContext]
	click        []handler[PointerContext]
	scroll       []handler[ScrollContext]
	nextID       uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	r := h.reg
	switch h.event {
	case EventPointerDown:
		r.pointerDown = removeHandler(r.pointerDown, h.id)
	case EventPointerUp:
		r.pointerUp = removeHandler(r.pointerUp, h.id)
	case EventPointerMove:
		r.pointerMove = removeHandler(r.pointerMove, h.id)
	case EventPointerEnter:
		r.pointerEnter = removeHandler(r.pointerEnter, h.id)
	case EventPointerLeave:
		r.pointerLeave = removeHandler(r.pointerLeave, h.id)
	case EventClick:
		r.click = removeHandler(r.click, h.id)
	case EventScroll:
		r.scroll = removeHandler(r.scroll, h.id)
	}
}

func removeHandler[T any](s []handler[T], id uint32) []handler[T] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[T]{}
			return s[:len(s)-1]
		}
	}
	return s
}

func addHandler[T any](r *handlerRegistry, list *[]handler[T], event EventType, fn func(T)) CallbackHandle {
	r.nextID++
	*list = append(*list, handler[T]{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerDown, EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerUp, EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerMove, EventPointerMove, fn)
}

// OnPointerEnter registers a scene-level callback fired when the pointer
// moves onto a node.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerEnter, EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback fired when the pointer
// leaves a node, either to another node or to empty space.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerLeave, EventPointerLeave, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.click, EventClick, fn)
}

// OnScroll registers a scene-level callback for scroll offset changes.
func (s *Scene) OnScroll(fn func(ScrollContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.scroll, EventScroll, fn)
}

// --- Hit testing ---

// nodeContainsLocal tests (lx, ly) against HitShape, or the node's
// Width x Height box when no shape is set.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order, skipping hidden or
// non-interactable subtrees.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range n.sorted() {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (x, y), or nil.
func (s *Scene) hitTest(x, y float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput consumes one injected event if any are queued, otherwise
// reads the real mouse and wheel.
func (s *Scene) processInput() {
	mods := readModifiers()
	if s.processInjectedInput(mods) {
		return
	}
	// a scripted scene owns the pointer
	if s.testRunner != nil {
		return
	}

	mx, my := ebiten.CursorPosition()
	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}
	s.processPointer(float64(mx), float64(my), pressed, button, mods)

	// wheel up is positive; scrolling the page down grows the offset
	if _, wy := ebiten.Wheel(); wy != 0 {
		s.scrollBy(-wy * wheelStep)
	}
}

// processPointer runs the mouse pointer state machine for one frame.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointer
	target := s.hitTest(x, y)

	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.dispatch(EventPointerLeave, ps.hoverNode, x, y, button, mods)
		}
		if target != nil {
			s.dispatch(EventPointerEnter, target, x, y, button, mods)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.dispatch(EventPointerDown, target, x, y, button, mods)
	case !pressed && ps.down:
		if ps.hitNode != nil && ps.hitNode == target {
			s.dispatch(EventClick, target, x, y, ps.button, mods)
		}
		s.dispatch(EventPointerUp, target, x, y, ps.button, mods)
		ps.down = false
		ps.hitNode = nil
	case x != ps.lastX || y != ps.lastY:
		s.dispatch(EventPointerMove, target, x, y, ps.button, mods)
	}
	ps.lastX, ps.lastY = x, y
}

// scrollBy moves the scroll offset, clamped to [0, ScrollMax] when ScrollMax
// is positive, and forwards the new position to every bound manager.
func (s *Scene) scrollBy(dy float64) {
	y := s.scrollY + dy
	if y < 0 {
		y = 0
	}
	if s.ScrollMax > 0 && y > s.ScrollMax {
		y = s.ScrollMax
	}
	if y == s.scrollY {
		return
	}
	s.scrollY = y
	for _, b := range s.bindings {
		b.mgr.Scroll(y)
		b.checkDistance()
	}
	ctx := ScrollContext{DeltaY: dy, OffsetY: y}
	for _, h := range s.handlers.scroll {
		h.fn(ctx)
	}
	if s.store != nil {
		s.store.EmitEvent(InteractionEvent{Type: EventScroll, DeltaY: dy, ScrollY: y})
	}
}

// --- Event dispatch ---

// dispatch fires scene-level handlers first, then the node's own callback,
// then forwards to the entity store.
func (s *Scene) dispatch(ev EventType, node *Node, x, y float64, button MouseButton, mods KeyModifiers) {
	ctx := PointerContext{GlobalX: x, GlobalY: y, Button: button, Modifiers: mods}
	if node != nil {
		ctx.Node = node
		ctx.EntityID = node.EntityID
		ctx.UserData = node.UserData
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(x, y)
	}

	var list []handler[PointerContext]
	var own func(PointerContext)
	switch ev {
	case EventPointerDown:
		list = s.handlers.pointerDown
		if node != nil {
			own = node.OnPointerDown
		}
	case EventPointerUp:
		list = s.handlers.pointerUp
		if node != nil {
			own = node.OnPointerUp
		}
	case EventPointerMove:
		list = s.handlers.pointerMove
		if node != nil {
			own = node.OnPointerMove
		}
	case EventPointerEnter:
		list = s.handlers.pointerEnter
		if node != nil {
			own = node.OnPointerEnter
		}
	case EventPointerLeave:
		list = s.handlers.pointerLeave
		if node != nil {
			own = node.OnPointerLeave
		}
	case EventClick:
		list = s.handlers.click
		if node != nil {
			own = node.OnClick
		}
	}

	for _, h := range list {
		h.fn(ctx)
	}
	if own != nil {
		own(ctx)
	}
	s.emitInteractionEvent(ev, ctx)
}

func (s *Scene) emitInteractionEvent(ev EventType, ctx PointerContext) {
	if s.store == nil || ctx.Node == nil || ctx.Node.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:      ev,
		EntityID:  ctx.Node.EntityID,
		NodeName:  ctx.Node.Name,
		GlobalX:   ctx.GlobalX,
		GlobalY:   ctx.GlobalY,
		LocalX:    ctx.LocalX,
		LocalY:    ctx.LocalY,
		Button:    ctx.Button,
		Modifiers: ctx.Modifiers,
		ScrollY:   s.scrollY,
	})
}
