package stylefx

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
)

// debugLogger receives tree warnings while debug mode is on.
var debugLogger = zerolog.Nop()

var debugOutline = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// debugLog writes one line per bound manager with its live effect.
func (s *Scene) debugLog() {
	for _, b := range s.bindings {
		ev := s.log.Debug().
			Uint64("frame", s.frame).
			Str("node", b.node.Name).
			Str("manager", b.mgr.ID()).
			Float64("scrollY", b.mgr.ScrollY()).
			Float64("load", b.mgr.LoadProgress())
		if e := b.mgr.Active(); e != nil {
			ev = ev.Str("effect", e.ID).
				Stringer("kind", e.Kind).
				Stringer("state", e.State()).
				Float64("progress", e.Progress())
		}
		ev.Msg("frame")
	}
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("stylefx debug: %s on disposed node %q", op, n.Name))
	}
}

const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn().
			Int("depth", depth).
			Int("max", debugMaxTreeDepth).
			Str("node", n.Name).
			Msg("tree depth exceeds threshold")
	}
}

// strokeBounds outlines the node's transformed box.
func strokeBounds(dst *ebiten.Image, n *Node) {
	var pts [4][2]float32
	for i, p := range [4][2]float64{{0, 0}, {n.Width, 0}, {n.Width, n.Height}, {0, n.Height}} {
		x, y := n.LocalToWorld(p[0], p[1])
		pts[i] = [2]float32{float32(x), float32(y)}
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%4]
		vector.StrokeLine(dst, a[0], a[1], b[0], b[1], 1, debugOutline, false)
	}
}
