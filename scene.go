package stylefx

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	NodeName  string
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
	// Scroll fields (ScrollY is also set on pointer events)
	DeltaY  float64
	ScrollY float64
}

const (
	defaultViewportW = 800
	defaultViewportH = 600
)

// Scene owns the node tree, input state and the effect bindings that drive
// node styles.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool
	log   zerolog.Logger

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color
	// ScrollMax caps the scroll offset when positive.
	ScrollMax float64

	viewW, viewH float64
	frame        uint64

	bindings []*Binding
	scrollY  float64
	loadPct  float64

	handlers    handlerRegistry
	pointer     pointerState
	hitBuf      []*Node
	injectQueue []syntheticEvent
	testRunner  *TestRunner
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:  root,
		log:   zerolog.Nop(),
		viewW: defaultViewportW,
		viewH: defaultViewportH,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetLogger sets the logger used for binding and debug output.
func (s *Scene) SetLogger(l zerolog.Logger) {
	s.log = l.With().Str("component", "scene").Logger()
	if s.debug {
		debugLogger = s.log
	}
}

// SetViewport sets the size used for vw/vh units.
func (s *Scene) SetViewport(w, h float64) {
	if w == s.viewW && h == s.viewH {
		return
	}
	s.viewW, s.viewH = w, h
	for _, b := range s.bindings {
		b.invalidate()
	}
}

// Viewport returns the size used for vw/vh units.
func (s *Scene) Viewport() (w, h float64) {
	return s.viewW, s.viewH
}

// ScrollY returns the current scroll offset.
func (s *Scene) ScrollY() float64 {
	return s.scrollY
}

// Frame returns the number of completed Update calls.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// SetLoadProgress forwards page-load progress (0..100) to every bound manager.
func (s *Scene) SetLoadProgress(pct float64) {
	s.loadPct = pct
	for _, b := range s.bindings {
		b.mgr.SetLoadProgress(pct)
	}
}

// Bindings returns the active bindings. The returned slice MUST NOT be mutated.
func (s *Scene) Bindings() []*Binding {
	return s.bindings
}

// Update processes input and advances every bound manager by one tick.
func (s *Scene) Update() {
	s.step(float32(1.0 / float64(ebiten.TPS())))
}

func (s *Scene) step(dt float32) {
	// Hit testing needs current world transforms.
	refreshWorld(s.root, identityAffine, 1.0, false)
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()

	for _, b := range s.bindings {
		b.update(dt)
	}
	refreshWorld(s.root, identityAffine, 1.0, false)
	s.frame++

	if s.debug {
		s.debugLog()
	}
}

// Draw paints visible rect nodes in tree order onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	refreshWorld(s.root, identityAffine, 1.0, false)
	s.drawNode(screen, s.root)
}

func (s *Scene) drawNode(dst *ebiten.Image, n *Node) {
	if !n.Visible {
		return
	}
	if n.Type == NodeTypeRect && n.worldAlpha > 0 && n.Width > 0 && n.Height > 0 {
		c := n.Color
		c.A *= n.worldAlpha
		m := n.worldTransform
		if axisAligned(m) {
			vector.DrawFilledRect(dst,
				float32(m[4]), float32(m[5]),
				float32(n.Width*m[0]), float32(n.Height*m[3]),
				c.toRGBA(), true)
		} else {
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(n.Width, n.Height)
			op.GeoM.Concat(affineGeoM(m))
			op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
			dst.DrawImage(WhitePixel, &op)
		}
		if s.debug {
			strokeBounds(dst, n)
		}
	}
	for _, child := range n.sorted() {
		s.drawNode(dst, child)
	}
}

func affineGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, node outlines are stroked and per-frame manager state is
// logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		debugLogger = s.log
	}
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations, which lack a Scene pointer, can check it cheaply.
var globalDebug bool
