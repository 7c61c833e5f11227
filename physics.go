package stylefx

import (
	"github.com/charmbracelet/harmonica"
)

// PhysicsParams configures a gravity body. Positions and sizes are in
// pixels, velocities in pixels per second, rotation in degrees.
type PhysicsParams struct {
	Gravity        float64 `yaml:"gravity" json:"gravity"`
	Mass           float64 `yaml:"mass" json:"mass"`
	Bounce         float64 `yaml:"bounce" json:"bounce"`
	Friction       float64 `yaml:"friction" json:"friction"`
	AirDrag        float64 `yaml:"airDrag" json:"airDrag"`
	AngularDrag    float64 `yaml:"angularDrag" json:"angularDrag"`
	TorqueOnBounce float64 `yaml:"torqueOnBounce" json:"torqueOnBounce"`

	// Container and element bound the walls. A zero container leaves the
	// body unbounded on that axis.
	ContainerWidth  float64 `yaml:"containerWidth" json:"containerWidth"`
	ContainerHeight float64 `yaml:"containerHeight" json:"containerHeight"`
	ElementWidth    float64 `yaml:"elementWidth" json:"elementWidth"`
	ElementHeight   float64 `yaml:"elementHeight" json:"elementHeight"`

	StartX        float64 `yaml:"startX" json:"startX"`
	StartY        float64 `yaml:"startY" json:"startY"`
	StartVX       float64 `yaml:"startVX" json:"startVX"`
	StartVY       float64 `yaml:"startVY" json:"startVY"`
	StartRotation float64 `yaml:"startRotation" json:"startRotation"`
	StartSpin     float64 `yaml:"startAngularVelocity" json:"startAngularVelocity"`
}

// DefaultPhysicsParams returns the stock body: strong gravity, lively
// bounce and light drag.
func DefaultPhysicsParams() PhysicsParams {
	return PhysicsParams{
		Gravity:        1200,
		Mass:           1,
		Bounce:         0.6,
		Friction:       0.98,
		AirDrag:        0.999,
		AngularDrag:    0.98,
		TorqueOnBounce: 0.15,
	}
}

// withDefaults guards the one coefficient that cannot be zero. The rest are
// taken literally; configs start from DefaultPhysicsParams.
func (p PhysicsParams) withDefaults() PhysicsParams {
	if p.Mass <= 0 {
		p.Mass = 1
	}
	return p
}

// physicsStep is the fixed integration step in seconds.
const physicsStep = 1.0 / 60

// physicsMotion integrates a gravity body at a fixed step. Linear motion is
// a harmonica projectile rebuilt every step so drag and bounces can rewrite
// its velocity. Rotation is spun up by bounces and pulled back upright by a
// critically damped harmonica spring.
type physicsMotion struct {
	params PhysicsParams

	x, y   float64
	vx, vy float64
	rot    float64
	spin   float64

	acc    float64 // unconsumed time, seconds
	spring harmonica.Spring
}

func (m *physicsMotion) start(e *Effect) {
	if e.state == StateRunning {
		return
	}
	p := e.Physics.withDefaults()
	m.params = p
	m.x, m.y = p.StartX, p.StartY
	m.vx, m.vy = p.StartVX, p.StartVY
	m.rot, m.spin = p.StartRotation, p.StartSpin
	m.acc = 0
	m.spring = harmonica.NewSpring(harmonica.FPS(60), 4.0, 1.0)
	e.progress = 0
	e.state = StateRunning
}

func (m *physicsMotion) reverse(e *Effect) {}

func (m *physicsMotion) stop(e *Effect) {
	if e.Active() {
		e.state = StateInterrupted
	} else {
		e.state = StateIdle
	}
	e.progress = 0
	m.acc = 0
}

// tick consumes dt in fixed steps. A physics run never finishes on its own.
func (m *physicsMotion) tick(e *Effect, dt float32) bool {
	if e.state != StateRunning {
		return false
	}
	m.acc += float64(dt)
	for m.acc >= physicsStep {
		m.step()
		m.acc -= physicsStep
	}
	return false
}

func (m *physicsMotion) step() {
	p := m.params

	body := harmonica.NewProjectile(
		physicsStep,
		harmonica.Point{X: m.x, Y: m.y},
		harmonica.Vector{X: m.vx * p.AirDrag, Y: m.vy * p.AirDrag},
		harmonica.Vector{Y: p.Gravity / p.Mass},
	)
	pos := body.Update()
	vel := body.Velocity()
	m.x, m.y = pos.X, pos.Y
	m.vx, m.vy = vel.X, vel.Y

	// walls clamp always and bounce only a body moving into them
	if p.ContainerHeight > 0 {
		floor := p.ContainerHeight - p.ElementHeight
		if m.y >= floor {
			m.y = floor
			if m.vy > 0 {
				m.vy *= -p.Bounce
				m.vx *= p.Friction
				m.spin += m.vx * p.TorqueOnBounce
			}
		}
		if m.y <= 0 {
			m.y = 0
			if m.vy < 0 {
				m.vy *= -p.Bounce
				m.vx *= p.Friction
				m.spin -= m.vx * p.TorqueOnBounce
			}
		}
	}
	if p.ContainerWidth > 0 {
		right := p.ContainerWidth - p.ElementWidth
		if m.x >= right {
			m.x = right
			if m.vx > 0 {
				m.vx *= -p.Bounce
				m.spin -= m.vy * p.TorqueOnBounce
			}
		}
		if m.x <= 0 {
			m.x = 0
			if m.vx < 0 {
				m.vx *= -p.Bounce
				m.spin += m.vy * p.TorqueOnBounce
			}
		}
	}

	m.rot, m.spin = m.spring.Update(m.rot, m.spin, 0)
	m.spin *= p.AngularDrag
}

// styles returns the body's current transform contribution.
func (m *physicsMotion) styles() StyleMap {
	return StyleMap{
		"translateX": formatNumber(m.x) + "px",
		"translateY": formatNumber(m.y) + "px",
		"rotate":     formatNumber(m.rot) + "deg",
	}
}

// Body reports the position (px) and rotation (deg) of a physics effect.
// ok is false for other kinds.
func (e *Effect) Body() (x, y, rotation float64, ok bool) {
	m, isPhysics := e.motion.(*physicsMotion)
	if !isPhysics {
		return 0, 0, 0, false
	}
	return m.x, m.y, m.rot, true
}
