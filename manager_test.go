package stylefx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func nopLogger() zerolog.Logger { return zerolog.Nop() }

func fixedID(id string) Option {
	return WithIDGenerator(func() string { return id })
}

// step advances m by n frames of dt seconds.
func step(m *Manager, n int, dt float32) {
	for i := 0; i < n; i++ {
		m.Update(dt)
	}
}

func assertStyle(t *testing.T, styles StyleMap, key, want string) {
	t.Helper()
	got, ok := styles[key]
	if !ok {
		t.Errorf("%s missing from %v", key, styles)
		return
	}
	if got != want {
		t.Errorf("%s = %q, want %q", key, got, want)
	}
}

func loadScenario() Config {
	return Config{
		InitialStyles: []StyleDecl{{Property: "top", StartValue: "0px"}},
		LoadEffect: &EffectConfig{
			Duration: 1000,
			Styles:   []StyleDecl{{Property: "top", EndValue: "100px"}},
		},
	}
}

func TestManagerIDs(t *testing.T) {
	m := NewManager(Config{})
	if !strings.HasPrefix(m.ID(), "stylefx-") || len(m.ID()) != len("stylefx-")+36 {
		t.Errorf("ID = %q", m.ID())
	}
	if other := NewManager(Config{}); other.ID() == m.ID() {
		t.Error("two managers share an id")
	}
	if got := NewManager(Config{}, fixedID("card")).ID(); got != "card" {
		t.Errorf("injected ID = %q", got)
	}
}

func TestManagerEffectIDs(t *testing.T) {
	m := NewManager(Config{
		ClickEffects:   []EffectConfig{{TriggerID: "a"}, {ID: "named", TriggerID: "b"}},
		HoverEffects:   []EffectConfig{{TriggerID: "a"}},
		LoadEffect:     &EffectConfig{},
		ScrollEffects:  []ScrollEffectConfig{{ScrollEnd: 10}},
		PhysicsEffects: []PhysicsEffectConfig{{TriggerID: "drop"}},
	})
	for _, id := range []string{"click-0", "named", "hover-0", "load", "scroll-0", "physics-0"} {
		if m.Effect(id) == nil {
			t.Errorf("Effect(%q) = nil", id)
		}
	}
	if m.Effect("click-1") != nil {
		t.Error("configured id did not replace the default")
	}
	if got := strings.Join(m.TriggerIDs(), ","); got != "a,b,drop" {
		t.Errorf("TriggerIDs = %s", got)
	}
	if len(m.Effects()) != 6 {
		t.Errorf("len(Effects) = %d", len(m.Effects()))
	}
}

func TestManagerLoadScenario(t *testing.T) {
	m := NewManager(loadScenario())
	assertStyle(t, m.Styles(), "top", "0px")

	m.SetLoadProgress(40)
	if m.Active() != nil {
		t.Fatal("load fired below 100")
	}
	m.SetLoadProgress(100)
	load := m.Effect("load")
	if m.Active() != load {
		t.Fatal("load did not fire at 100")
	}

	step(m, 2, 0.25)
	assertStyle(t, m.Styles(), "top", "50px")
	if base := m.Base(); base["top"] != "0px" {
		t.Errorf("base changed mid-flight: %q", base["top"])
	}

	step(m, 2, 0.25)
	if m.Base()["top"] != "100px" {
		t.Errorf("base top = %q after completion", m.Base()["top"])
	}
	if load.Active() || m.Active() != nil {
		t.Errorf("load still active: %s", load.State())
	}
	assertStyle(t, m.Styles(), "top", "100px")
}

func TestManagerLoadFiresOnce(t *testing.T) {
	m := NewManager(loadScenario())
	m.SetLoadProgress(100)
	step(m, 4, 0.25)
	m.SetLoadProgress(100)
	m.SetLoadProgress(120)
	if m.Active() != nil {
		t.Error("load fired a second time")
	}
	if m.LoadProgress() != 120 {
		t.Errorf("LoadProgress = %v", m.LoadProgress())
	}
}

func TestManagerLoadNeverReaching100(t *testing.T) {
	m := NewManager(loadScenario())
	m.SetLoadProgress(99.9)
	step(m, 10, 0.25)
	if m.Active() != nil || m.Base()["top"] != "0px" {
		t.Error("load effect fired without reaching 100")
	}
}

func TestManagerCommitIsExact(t *testing.T) {
	m := NewManager(Config{
		InitialStyles: []StyleDecl{{Property: "width", StartValue: "0px"}},
		ClickEffects: []EffectConfig{{
			TriggerID:      "btn",
			Duration:       300,
			EasingFunction: "easeOutElastic",
			Styles: []StyleDecl{
				{Property: "width", EndValue: "33.3333px"},
				{Property: "rotateX", EndValue: "17deg"},
			},
		}},
	})
	m.Click("btn")
	step(m, 40, 1.0/64)

	base := m.Base()
	if base["width"] != "33.3333px" || base["rotateX"] != "17deg" {
		t.Errorf("base = %v, want authored end values", base)
	}
	click := m.Effect("click-0")
	if click.Active() || click.hasStarts() {
		t.Errorf("click after commit: state=%s starts=%v", click.State(), click.hasStarts())
	}
}

func TestManagerInterruptionCapture(t *testing.T) {
	m := NewManager(Config{
		InitialStyles: []StyleDecl{{Property: "left", StartValue: "0px"}},
		ClickEffects: []EffectConfig{
			{TriggerID: "a", Duration: 1000, EasingFunction: "easeInQuad",
				Styles: []StyleDecl{{Property: "left", EndValue: "200px"}}},
			{TriggerID: "b", Duration: 1000,
				Styles: []StyleDecl{{Property: "left", EndValue: "-100px"}}},
		},
	})
	m.Click("a")
	step(m, 2, 0.25)

	want, _ := Interpolate("0px", "200px", 0.5, Easing("easeInQuad"), "left")
	assertStyle(t, m.Styles(), "left", want)

	m.Click("b")
	if got := m.Base()["left"]; got != want {
		t.Errorf("base left = %q after interruption, want %q", got, want)
	}
	b := m.Effect("click-1")
	if m.Active() != b {
		t.Fatal("b not active after interruption")
	}
	if d := b.Styles[0]; d.captured != want {
		t.Errorf("b captured start = %q, want %q", d.captured, want)
	}
	a := m.Effect("click-0")
	if a.Active() || a.hasStarts() || a.State() != StateInterrupted {
		t.Errorf("a after interruption: state=%s starts=%v", a.State(), a.hasStarts())
	}
	// same tier: the replaced click is dropped, not queued
	step(m, 4, 0.25)
	if m.Active() != nil {
		t.Errorf("active after b completes = %v", m.Active().ID)
	}
	if m.Base()["left"] != "-100px" {
		t.Errorf("base left = %q", m.Base()["left"])
	}
}

func TestManagerInterruptionCaptureTransforms(t *testing.T) {
	m := NewManager(Config{
		InitialStyles: []StyleDecl{{Property: "transform", StartValue: "scale(1) rotate(0deg)"}},
		ClickEffects: []EffectConfig{
			{TriggerID: "a", Duration: 1000, Styles: []StyleDecl{
				{Property: "scale", EndValue: "2"},
				{Property: "rotate", EndValue: "90deg"},
			}},
			{TriggerID: "b", Duration: 1000, Styles: []StyleDecl{
				{Property: "translateX", EndValue: "10px"},
			}},
		},
	})
	m.Click("a")
	step(m, 1, 0.5)
	assertStyle(t, m.Styles(), TransformKey, "scale(1.5) rotate(45deg)")

	m.Click("b")
	base := m.Base()
	if base["scale"] != "1.5" || base["rotate"] != "45deg" {
		t.Errorf("base after capture = %v", base)
	}
	if _, ok := base[TransformKey]; ok {
		t.Errorf("base holds a composed transform: %v", base)
	}
	step(m, 1, 0.5)
	assertStyle(t, m.Styles(), TransformKey, "scale(1.5) rotate(45deg) translateX(5px)")
}

func TestManagerDoubleStartIsNoop(t *testing.T) {
	m := NewManager(Config{
		InitialStyles: []StyleDecl{{Property: "top", StartValue: "0px"}},
		ClickEffects: []EffectConfig{{TriggerID: "btn", Duration: 1000,
			Styles: []StyleDecl{{Property: "top", EndValue: "100px"}}}},
	})
	m.Click("btn")
	step(m, 1, 0.5)
	m.Click("btn")
	if base := m.Base()["top"]; base != "0px" {
		t.Errorf("double start captured into base: %q", base)
	}
	assertNear(t, "progress", m.Effect("click-0").Progress(), 0.5)
}

func TestManagerUnknownTriggersIgnored(t *testing.T) {
	m := NewManager(loadScenario())
	m.Click("nope")
	m.HoverEnter("nope")
	m.HoverLeave("nope")
	m.Run("nope", ActionStart)
	m.Run("load", Action("explode"))
	if m.Active() != nil {
		t.Error("unknown trigger activated an effect")
	}
}

func hoverClickConfig() Config {
	return Config{
		InitialStyles: []StyleDecl{
			{Property: "opacity", StartValue: "1"},
			{Property: "top", StartValue: "0px"},
		},
		ClickEffects: []EffectConfig{{
			TriggerID: "card", Duration: 1000,
			Styles: []StyleDecl{{Property: "top", EndValue: "100px"}},
		}},
		HoverEffects: []EffectConfig{{
			TriggerID: "card", Duration: 1000,
			Styles: []StyleDecl{
				{Property: "opacity", EndValue: "0.5"},
				{Property: "scale", EndValue: "1.5"},
			},
		}},
	}
}

func TestManagerHoverPreemptsClick(t *testing.T) {
	m := NewManager(hoverClickConfig())
	click, hover := m.Effect("click-0"), m.Effect("hover-0")

	m.Click("card")
	step(m, 1, 0.5)
	assertStyle(t, m.Styles(), "top", "50px")

	m.HoverEnter("card")
	if m.Active() != hover {
		t.Fatal("hover did not preempt click")
	}
	if m.Base()["top"] != "50px" {
		t.Errorf("click not captured: top = %q", m.Base()["top"])
	}
	if click.Active() {
		t.Error("click still running under hover")
	}

	// output reflects only the hover while it runs and holds
	step(m, 4, 0.25)
	s := m.Styles()
	assertStyle(t, s, "top", "50px")
	assertStyle(t, s, "opacity", "0.5")
	assertStyle(t, s, TransformKey, "scale(1.5)")
	if !hover.Held() || m.Active() != hover {
		t.Fatalf("hover not held: %s", hover.State())
	}
	if click.Active() {
		t.Error("queued click started while hover held")
	}

	// leave: reverse to zero restores the rest snapshot, then the click
	// restarts fresh from it
	m.HoverLeave("card")
	step(m, 4, 0.25)
	if m.Active() != click {
		t.Fatalf("click not promoted after hover resolved, active = %v", m.Active())
	}
	base := m.Base()
	if base["opacity"] != "1" || base["top"] != "50px" {
		t.Errorf("rest not restored: %v", base)
	}
	if _, ok := base["scale"]; ok {
		t.Errorf("hover value leaked into base: %v", base)
	}
	assertNear(t, "click restarted", click.Progress(), 0)
	if click.Styles[0].captured != "50px" {
		t.Errorf("click recaptured start = %q, want 50px", click.Styles[0].captured)
	}
	step(m, 4, 0.25)
	if m.Base()["top"] != "100px" {
		t.Errorf("click did not complete: top = %q", m.Base()["top"])
	}
}

func TestManagerLowerTierQueuedAndFrozen(t *testing.T) {
	cfg := hoverClickConfig()
	cfg.LoadEffect = &EffectConfig{Duration: 1000,
		Styles: []StyleDecl{{Property: "top", EndValue: "-20px"}}}
	m := NewManager(cfg)
	load, click := m.Effect("load"), m.Effect("click-0")

	m.HoverEnter("card")
	step(m, 1, 0.25)
	m.SetLoadProgress(100)
	m.Click("card")
	if m.Active() != m.Effect("hover-0") {
		t.Fatal("lower tier displaced hover")
	}
	step(m, 8, 0.25)
	if load.Active() || click.Active() || load.Progress() != 0 || click.Progress() != 0 {
		t.Error("masked effect clock advanced")
	}
	if _, ok := m.Styles()["top"]; !ok || m.Styles()["top"] != "0px" {
		t.Errorf("masked effect rendered: top = %q", m.Styles()["top"])
	}

	// hover resolves: load outranks click, click waits behind load
	m.HoverLeave("card")
	step(m, 4, 0.25)
	if m.Active() != load {
		t.Fatalf("active = %v, want load", m.Active())
	}
	step(m, 4, 0.25)
	if m.Active() != click {
		t.Fatalf("active = %v, want click after load", m.Active())
	}
	if m.Base()["top"] != "-20px" {
		t.Errorf("load not committed: %q", m.Base()["top"])
	}
}

func TestManagerHoverReverseTiming(t *testing.T) {
	m := NewManager(hoverClickConfig())
	hover := m.Effect("hover-0")
	m.HoverEnter("card")
	step(m, 2, 0.25)
	m.HoverLeave("card")

	frames := 0
	for hover.Active() && frames < 100 {
		m.Update(1.0 / 64)
		frames++
	}
	// 0.5 forward progress over a 1s duration returns in 0.5s = 32 frames
	if frames != 32 {
		t.Errorf("reverse took %d frames, want 32", frames)
	}
}

func TestManagerHoverReenterResumes(t *testing.T) {
	m := NewManager(hoverClickConfig())
	hover := m.Effect("hover-0")
	m.HoverEnter("card")
	step(m, 3, 0.25)
	m.HoverLeave("card")
	step(m, 1, 0.25)
	assertNear(t, "reversing", hover.Progress(), 0.5)

	m.HoverEnter("card")
	if hover.State() != StateRunning {
		t.Fatalf("state = %s after re-enter", hover.State())
	}
	assertNear(t, "resumed", hover.Progress(), 0.5)
	if m.Base()["opacity"] != "1" {
		t.Errorf("re-enter captured into base: %v", m.Base())
	}
	step(m, 2, 0.25)
	if !hover.Held() {
		t.Errorf("hover not held after resuming: %s %v", hover.State(), hover.Progress())
	}

	// the rest point is still the snapshot taken at first entry
	m.HoverLeave("card")
	step(m, 4, 0.25)
	base := m.Base()
	if base["opacity"] != "1" {
		t.Errorf("rest opacity = %q", base["opacity"])
	}
	if _, ok := base["scale"]; ok {
		t.Errorf("scale left in base: %v", base)
	}
	if _, ok := m.Styles()[TransformKey]; ok {
		t.Errorf("transform present at rest: %v", m.Styles())
	}
}

func TestManagerHoverSnapshotPassesToNextHover(t *testing.T) {
	m := NewManager(Config{
		InitialStyles: []StyleDecl{{Property: "opacity", StartValue: "1"}},
		HoverEffects: []EffectConfig{
			{TriggerID: "a", Duration: 1000, Styles: []StyleDecl{{Property: "opacity", EndValue: "0"}}},
			{TriggerID: "b", Duration: 1000, Styles: []StyleDecl{{Property: "scale", EndValue: "2"}}},
		},
	})
	m.HoverEnter("a")
	step(m, 2, 0.25)
	m.HoverEnter("b")
	if m.Base()["opacity"] != "0.5" {
		t.Errorf("a not captured: %v", m.Base())
	}
	step(m, 4, 0.25)
	m.HoverLeave("a") // a is no longer live
	if m.Effect("hover-1").State() != StateCompleted {
		t.Error("leaving a disturbed b")
	}
	m.HoverLeave("b")
	step(m, 4, 0.25)
	base := m.Base()
	if base["opacity"] != "1" {
		t.Errorf("opacity = %q, want original rest", base["opacity"])
	}
	if m.Active() != nil {
		t.Errorf("active = %v", m.Active().ID)
	}
}

func TestManagerTransformComposition(t *testing.T) {
	m := NewManager(Config{
		ClickEffects: []EffectConfig{{TriggerID: "x", Duration: 1000, Styles: []StyleDecl{
			{Property: "rotateX", EndValue: "90"},
			{Property: "scale", EndValue: "3"},
		}}},
	})
	if _, ok := m.Styles()[TransformKey]; ok {
		t.Error("transform key present with no transform values")
	}
	m.Click("x")
	step(m, 1, 0.5)
	assertStyle(t, m.Styles(), TransformKey, "scale(2) rotateX(45deg)")
}

func TestManagerScrollLayer(t *testing.T) {
	m := NewManager(Config{
		InitialStyles: []StyleDecl{{Property: "opacity", StartValue: "1"}},
		ScrollEffects: []ScrollEffectConfig{{
			ScrollStart: 100, ScrollEnd: 300,
			Styles: []StyleDecl{
				{Property: "opacity", EndValue: "0"},
				{Property: "translateY", EndValue: "-50px"},
			},
		}},
	})
	scroll := m.Effect("scroll-0")

	m.Scroll(50)
	assertStyle(t, m.Styles(), "opacity", "1")
	if scroll.hasStarts() {
		t.Error("starts captured at progress 0")
	}

	m.Scroll(200)
	s := m.Styles()
	assertStyle(t, s, "opacity", "0.5")
	assertStyle(t, s, TransformKey, "translateY(-25px)")
	if m.ScrollY() != 200 {
		t.Errorf("ScrollY = %v", m.ScrollY())
	}

	m.Scroll(1000)
	assertStyle(t, m.Styles(), "opacity", "0")
	if m.Base()["opacity"] != "1" {
		t.Error("scroll committed into base")
	}

	m.Scroll(0)
	if scroll.hasStarts() {
		t.Error("starts kept after returning to zero")
	}

	m.Run("scroll-0", ActionStop)
	m.Scroll(200)
	assertStyle(t, m.Styles(), "opacity", "1")
	m.Run("scroll-0", ActionStart)
	assertStyle(t, m.Styles(), "opacity", "0.5")
}

func TestManagerScrollUnderDiscrete(t *testing.T) {
	m := NewManager(Config{
		InitialStyles: []StyleDecl{{Property: "opacity", StartValue: "1"}},
		ScrollEffects: []ScrollEffectConfig{{ScrollStart: 0, ScrollEnd: 100,
			Styles: []StyleDecl{{Property: "opacity", EndValue: "0"}}}},
		ClickEffects: []EffectConfig{{TriggerID: "x", Duration: 1000,
			Styles: []StyleDecl{{Property: "opacity", StartValue: "1", EndValue: "0.2"}}}},
	})
	m.Scroll(50)
	m.Click("x")
	step(m, 2, 0.25)
	assertStyle(t, m.Styles(), "opacity", "0.6")
}

func TestManagerPhysicsLayer(t *testing.T) {
	m := NewManager(Config{
		PhysicsEffects: []PhysicsEffectConfig{{
			TriggerID: "drop",
			Params: PhysicsParams{
				Gravity: 1000, Mass: 1, Bounce: 0.5, Friction: 1, AirDrag: 1, AngularDrag: 1,
				ContainerHeight: 300, ElementHeight: 100,
			},
		}},
	})
	body := m.Effect("physics-0")
	if _, ok := m.Styles()[TransformKey]; ok {
		t.Fatal("idle body rendered")
	}

	m.Click("drop")
	if body.State() != StateRunning {
		t.Fatalf("state = %s", body.State())
	}
	step(m, 16, 1.0/64)
	_, y, _, ok := body.Body()
	if !ok || y <= 0 {
		t.Fatalf("body did not fall: y=%v", y)
	}
	if !strings.Contains(m.Styles()[TransformKey], "translateY(") {
		t.Errorf("transform = %q", m.Styles()[TransformKey])
	}

	step(m, 640, 1.0/64)
	_, y, _, _ = body.Body()
	if y < 0 || y > 200 {
		t.Errorf("body left the container: y=%v", y)
	}

	m.Run("physics-0", ActionStop)
	if body.Active() {
		t.Error("body still running after stop")
	}
	if _, ok := m.Styles()[TransformKey]; ok {
		t.Error("stopped body still rendered")
	}
}

func TestManagerPhysicsAutoStart(t *testing.T) {
	m := NewManager(Config{
		PhysicsEffects: []PhysicsEffectConfig{{AutoStart: true, Params: PhysicsParams{StartVX: 60, AirDrag: 1}}},
	})
	step(m, 64, 1.0/64)
	x, y, _, _ := m.Effect("physics-0").Body()
	if x < 58 || x > 62 {
		t.Errorf("x = %v, want about 60 after 1s at 60px/s", x)
	}
	if y != 0 {
		t.Errorf("y = %v with zero gravity", y)
	}
}

func TestManagerRunActions(t *testing.T) {
	m := NewManager(hoverClickConfig())
	click := m.Effect("click-0")

	m.Run("click-0", ActionStart)
	step(m, 2, 0.25)
	m.Run("click-0", ActionReverse)
	if click.State() != StateReversing {
		t.Fatalf("state = %s", click.State())
	}
	step(m, 2, 0.25)
	if m.Active() != nil || m.Base()["top"] != "0px" {
		t.Errorf("after reverse: active=%v top=%q", m.Active(), m.Base()["top"])
	}

	m.Run("click-0", ActionStart)
	step(m, 1, 0.25)
	m.Run("click-0", ActionStop)
	if m.Active() != nil || click.State() != StateInterrupted {
		t.Errorf("after stop: state=%s", click.State())
	}
	if m.Base()["top"] != "25px" {
		t.Errorf("stop did not capture: top = %q", m.Base()["top"])
	}
}

func TestManagerStopQueued(t *testing.T) {
	m := NewManager(hoverClickConfig())
	m.HoverEnter("card")
	m.Click("card")
	m.Run("click-0", ActionStop)
	m.HoverLeave("card")
	step(m, 8, 0.25)
	if m.Active() != nil {
		t.Errorf("dequeued click was promoted: %v", m.Active().ID)
	}
}

func TestManagerDispose(t *testing.T) {
	m := NewManager(hoverClickConfig())
	var order []int
	m.AddCleanup(func() { order = append(order, 1) })
	m.AddCleanup(func() { order = append(order, 2) })
	m.AddCleanup(nil)

	m.HoverEnter("card")
	step(m, 1, 0.25)
	m.Dispose()
	m.Dispose()

	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("cleanup order = %v", order)
	}
	if !m.Disposed() || m.Active() != nil {
		t.Error("manager not disposed")
	}
	for _, e := range m.Effects() {
		if e.Active() {
			t.Errorf("%s still active", e.ID)
		}
	}

	m.Click("card")
	m.HoverEnter("card")
	m.SetLoadProgress(100)
	m.Run("click-0", ActionStart)
	m.Update(1)
	if m.Active() != nil {
		t.Error("disposed manager accepted a trigger")
	}

	ran := false
	m.AddCleanup(func() { ran = true })
	if !ran {
		t.Error("cleanup added after dispose did not run immediately")
	}
}

func TestManagerLogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	m := NewManager(loadScenario(), WithLogger(zerolog.New(&buf)), fixedID("m1"))
	m.SetLoadProgress(100)
	step(m, 4, 0.25)

	out := buf.String()
	for _, want := range []string{`"manager":"m1"`, `"effect":"load"`, `"message":"start"`, `"message":"completed"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s:\n%s", want, out)
		}
	}
}

func delayedScaleConfig() Config {
	return Config{
		InitialStyles: []StyleDecl{{Property: "top", StartValue: "0px"}},
		ClickEffects: []EffectConfig{
			{TriggerID: "a", Delay: 500, Styles: []StyleDecl{{Property: "scale", EndValue: "2"}}},
			{TriggerID: "b", Duration: 1000, Styles: []StyleDecl{{Property: "top", EndValue: "100px"}}},
		},
	}
}

func TestManagerInterruptDuringDelay(t *testing.T) {
	m := NewManager(delayedScaleConfig())

	m.Click("a")
	step(m, 1, 0.125)
	if p := m.Effect("click-0").Progress(); p != 0 {
		t.Fatalf("delayed effect progress = %v, want 0", p)
	}
	m.Click("b")
	step(m, 8, 0.125)

	if m.Active() != nil {
		t.Fatalf("active = %v after b finished", m.Active())
	}
	if _, ok := m.Base()["scale"]; ok {
		t.Errorf("unmoved effect leaked into base: %v", m.Base())
	}
	styles := m.Styles()
	if _, ok := styles[TransformKey]; ok {
		t.Errorf("transform present without any applied transform delta: %v", styles)
	}
	assertStyle(t, styles, "top", "100px")
}

func TestManagerStopDuringDelay(t *testing.T) {
	m := NewManager(delayedScaleConfig())

	m.Click("a")
	step(m, 1, 0.125)
	m.Run("click-0", ActionStop)

	if m.Active() != nil {
		t.Fatal("stopped effect still live")
	}
	if _, ok := m.Base()["scale"]; ok {
		t.Errorf("stop at progress 0 committed start defaults: %v", m.Base())
	}
	if _, ok := m.Styles()[TransformKey]; ok {
		t.Errorf("transform present after stopping an unmoved effect: %v", m.Styles())
	}
}

func distanceConfig(stopOnEnd bool) Config {
	return Config{
		InitialStyles: []StyleDecl{{Property: "opacity", StartValue: "0"}},
		HoverEffects: []EffectConfig{{
			TriggerID: "hero", Duration: 1000,
			Styles: []StyleDecl{{Property: "scale", EndValue: "1.5"}},
		}},
		DistanceEffects: []DistanceEffectConfig{{
			EffectConfig: EffectConfig{
				TriggerID: "hero", Duration: 1000,
				Styles: []StyleDecl{{Property: "opacity", EndValue: "1"}},
			},
			Distance:  100,
			StopOnEnd: stopOnEnd,
		}},
	}
}

func TestManagerDistanceThreshold(t *testing.T) {
	m := NewManager(distanceConfig(false))
	near := m.Effect("distance-0")
	if near == nil || near.Kind != KindDistance {
		t.Fatalf("distance-0 = %+v", near)
	}

	m.CheckDistance("hero", 300)
	m.CheckDistance("other", 0)
	if m.Active() != nil {
		t.Fatalf("fired out of range: active = %v", m.Active())
	}

	m.CheckDistance("hero", 100)
	if m.Active() != near {
		t.Fatalf("active = %v at the threshold, want distance-0", m.Active())
	}
	step(m, 2, 0.25)
	m.CheckDistance("hero", 40) // already live: no restart
	assertStyle(t, m.Styles(), "opacity", "0.5")

	step(m, 2, 0.25)
	if m.Active() != nil || m.Base()["opacity"] != "1" {
		t.Fatalf("after run: active=%v base=%v", m.Active(), m.Base())
	}

	m.CheckDistance("hero", 40)
	if m.Active() != near {
		t.Error("distance effect without stopOnEnd did not fire again")
	}
}

func TestManagerDistanceStopOnEnd(t *testing.T) {
	m := NewManager(distanceConfig(true))
	m.CheckDistance("hero", 50)
	step(m, 4, 0.25)
	if m.Active() != nil {
		t.Fatal("distance effect still live after its duration")
	}
	m.CheckDistance("hero", 50)
	if m.Active() != nil {
		t.Error("stopOnEnd distance effect fired twice")
	}
}

func TestManagerDistanceUnderHover(t *testing.T) {
	m := NewManager(distanceConfig(false))
	m.HoverEnter("hero")
	step(m, 2, 0.25)
	m.CheckDistance("hero", 0)
	if m.Active() != m.Effect("hover-0") {
		t.Fatalf("active = %v, want hover-0", m.Active())
	}

	m.HoverLeave("hero")
	step(m, 2, 0.25) // reverse finishes; queued distance effect is promoted
	if m.Active() != m.Effect("distance-0") {
		t.Errorf("active = %v, want queued distance-0", m.Active())
	}
}
