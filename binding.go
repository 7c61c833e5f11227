package stylefx

import "math"

// layout is the node geometry captured at bind time. Styles that a manager
// does not emit fall back to these values.
type layout struct {
	left, top     float64
	width, height float64
	alpha         float64
	color         Color
}

// Binding connects a Manager to a Node: it forwards pointer events on trigger
// nodes to the manager and writes the manager's styles into the node.
type Binding struct {
	scene *Scene
	node  *Node
	mgr   *Manager

	base     layout
	triggers map[*Node]string
	handles  []CallbackHandle
	last     StyleMap
	stale    bool
	unbound  bool
}

// Bind attaches m to node. The node's current X, Y, Width and Height become
// its layout box, with X, Y as the top-left corner. Each trigger id of m is
// resolved to the node with that name: node itself or a descendant of the
// scene root. Ids with no matching node can be attached later with Trigger.
// Distance effects are checked once here and again on every scroll.
//
// Disposing m unbinds it.
func (s *Scene) Bind(node *Node, m *Manager) *Binding {
	b := &Binding{
		scene: s,
		node:  node,
		mgr:   m,
		base: layout{
			left: node.X, top: node.Y,
			width: node.Width, height: node.Height,
			alpha: node.Alpha,
			color: node.Color,
		},
		triggers: make(map[*Node]string),
		stale:    true,
	}

	for _, id := range m.TriggerIDs() {
		target := node
		if node.Name != id {
			target = s.root.FindChild(id)
		}
		if target == nil {
			s.log.Debug().Str("manager", m.ID()).Str("trigger", id).Msg("trigger has no node yet")
			continue
		}
		b.triggers[target] = id
	}

	b.handles = append(b.handles,
		s.OnPointerEnter(func(ctx PointerContext) {
			if id, ok := b.triggers[ctx.Node]; ok {
				m.HoverEnter(id)
			}
		}),
		s.OnPointerLeave(func(ctx PointerContext) {
			if id, ok := b.triggers[ctx.Node]; ok {
				m.HoverLeave(id)
			}
		}),
		s.OnClick(func(ctx PointerContext) {
			if id, ok := b.triggers[ctx.Node]; ok {
				m.Click(id)
			}
		}),
	)
	m.AddCleanup(b.Unbind)

	if s.scrollY > 0 {
		m.Scroll(s.scrollY)
	}
	if s.loadPct > 0 {
		m.SetLoadProgress(s.loadPct)
	}
	s.bindings = append(s.bindings, b)
	b.apply(m.Styles())
	refreshWorld(s.root, identityAffine, 1.0, false)
	b.checkDistance()
	return b
}

// Trigger routes pointer events on n to the manager under trigger id.
func (b *Binding) Trigger(id string, n *Node) {
	for k, v := range b.triggers {
		if v == id {
			delete(b.triggers, k)
		}
	}
	b.triggers[n] = id
}

// Node returns the bound node.
func (b *Binding) Node() *Node { return b.node }

// Manager returns the bound manager.
func (b *Binding) Manager() *Manager { return b.mgr }

// Unbind removes the event handlers and stops applying styles. The node keeps
// the last applied values. Safe to call more than once.
func (b *Binding) Unbind() {
	if b.unbound {
		return
	}
	b.unbound = true
	for _, h := range b.handles {
		h.Remove()
	}
	b.handles = nil
	for i, other := range b.scene.bindings {
		if other == b {
			b.scene.bindings = append(b.scene.bindings[:i], b.scene.bindings[i+1:]...)
			break
		}
	}
}

func (b *Binding) invalidate() { b.stale = true }

// checkDistance reports each trigger node's top edge, relative to the
// scrolled viewport, to the manager's distance effects. World transforms
// must be current.
func (b *Binding) checkDistance() {
	for n, id := range b.triggers {
		b.mgr.CheckDistance(id, n.WorldBounds().Y-b.scene.scrollY)
	}
}

func (b *Binding) update(dt float32) {
	if b.unbound || b.mgr.Disposed() {
		return
	}
	b.mgr.Update(dt)
	styles := b.mgr.Styles()
	if !b.stale && styles.Equal(b.last) {
		return
	}
	b.apply(styles)
}

// apply writes styles into the node. Transforms pivot around the box center
// like a default CSS transform-origin.
func (b *Binding) apply(styles StyleMap) {
	n := b.node
	u := units{viewW: b.scene.viewW, viewH: b.scene.viewH}
	refW, refH := b.scene.viewW, b.scene.viewH
	if p := n.Parent; p != nil && p.Type == NodeTypeRect {
		refW, refH = p.Width, p.Height
	}

	lay := b.base
	if v, ok := u.length(styles["width"], "width", refW); ok {
		lay.width = v
	}
	if v, ok := u.length(styles["height"], "height", refH); ok {
		lay.height = v
	}
	if v, ok := u.length(styles["left"], "left", refW); ok {
		lay.left = v
	}
	if v, ok := u.length(styles["top"], "top", refH); ok {
		lay.top = v
	}
	if v, ok := number(styles["opacity"], "opacity"); ok {
		lay.alpha = clamp01(v)
	}
	if c, ok := ParseColor(styles["backgroundColor"]); ok {
		lay.color = c
	}

	var tx, ty, rot, kx, ky float64
	sx, sy := 1.0, 1.0
	for prop, raw := range ParseTransform(styles[TransformKey]) {
		switch prop {
		case "translateX":
			if v, ok := u.length(raw, prop, lay.width); ok {
				tx = v
			}
		case "translateY":
			if v, ok := u.length(raw, prop, lay.height); ok {
				ty = v
			}
		case "scale", "scaleX", "scaleY":
			v, ok := number(raw, prop)
			if !ok {
				continue
			}
			if prop != "scaleY" {
				sx *= v
			}
			if prop != "scaleX" {
				sy *= v
			}
		case "rotate", "rotateZ":
			if v, ok := angle(raw, prop); ok {
				rot += v
			}
		case "rotateX":
			// flat projection of a tilt about the horizontal axis
			if v, ok := angle(raw, prop); ok {
				sy *= math.Cos(v)
			}
		case "rotateY":
			if v, ok := angle(raw, prop); ok {
				sx *= math.Cos(v)
			}
		case "skewX":
			if v, ok := angle(raw, prop); ok {
				kx = v
			}
		case "skewY":
			if v, ok := angle(raw, prop); ok {
				ky = v
			}
		}
	}

	n.SetSize(lay.width, lay.height)
	n.SetPivot(lay.width/2, lay.height/2)
	n.SetPosition(lay.left+lay.width/2+tx, lay.top+lay.height/2+ty)
	n.SetScale(sx, sy)
	n.SetRotation(rot)
	n.SetSkew(kx, ky)
	n.SetAlpha(lay.alpha)
	n.Color = lay.color

	b.last = styles
	b.stale = false
}
