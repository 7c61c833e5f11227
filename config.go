package stylefx

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the declarative description of a Manager's effects. It mirrors
// the YAML document read by LoadConfig. Durations are integer milliseconds.
type Config struct {
	InitialStyles   []StyleDecl            `yaml:"initialStyles" json:"initialStyles"`
	ClickEffects    []EffectConfig         `yaml:"clickEffects" json:"clickEffects"`
	HoverEffects    []EffectConfig         `yaml:"hoverEffects" json:"hoverEffects"`
	LoadEffect      *EffectConfig          `yaml:"loadEffect" json:"loadEffect"`
	ScrollEffects   []ScrollEffectConfig   `yaml:"scrollEffects" json:"scrollEffects"`
	PhysicsEffects  []PhysicsEffectConfig  `yaml:"physicsEffects" json:"physicsEffects"`
	DistanceEffects []DistanceEffectConfig `yaml:"distanceEffects" json:"distanceEffects"`
}

// EffectConfig describes a timed effect (click, hover or load). TriggerID is
// ignored for the load effect.
type EffectConfig struct {
	ID             string      `yaml:"id,omitempty" json:"id,omitempty"`
	TriggerID      string      `yaml:"triggerId" json:"triggerId"`
	Duration       int         `yaml:"duration" json:"duration"`
	Delay          int         `yaml:"delay" json:"delay"`
	EasingFunction string      `yaml:"easingFunction" json:"easingFunction"`
	Styles         []StyleDecl `yaml:"styles" json:"styles"`
}

// ScrollEffectConfig describes a scroll-position-driven effect.
type ScrollEffectConfig struct {
	ID             string      `yaml:"id,omitempty" json:"id,omitempty"`
	ScrollStart    float64     `yaml:"scrollStart" json:"scrollStart"`
	ScrollEnd      float64     `yaml:"scrollEnd" json:"scrollEnd"`
	EasingFunction string      `yaml:"easingFunction" json:"easingFunction"`
	Styles         []StyleDecl `yaml:"styles" json:"styles"`
}

// PhysicsEffectConfig describes a gravity body. With AutoStart the body
// starts as soon as the Manager is built; otherwise a click on TriggerID
// starts it.
type PhysicsEffectConfig struct {
	ID        string        `yaml:"id,omitempty" json:"id,omitempty"`
	TriggerID string        `yaml:"triggerId" json:"triggerId"`
	AutoStart bool          `yaml:"autoStart" json:"autoStart"`
	Params    PhysicsParams `yaml:",inline" json:"params"`
}

// UnmarshalYAML decodes on top of DefaultPhysicsParams so omitted
// coefficients keep their stock values.
func (p *PhysicsEffectConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain PhysicsEffectConfig
	raw := plain{Params: DefaultPhysicsParams()}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*p = PhysicsEffectConfig(raw)
	return nil
}

// DefaultDistance is the trigger distance used when a YAML distance effect
// omits it.
const DefaultDistance = 100.0

// DistanceEffectConfig describes a timed effect that starts when the
// trigger element's top edge is within Distance px of the viewport top.
type DistanceEffectConfig struct {
	EffectConfig `yaml:",inline"`
	Distance     float64 `yaml:"distance" json:"distance"`
	StopOnEnd    bool    `yaml:"stopOnEnd" json:"stopOnEnd"`
}

// UnmarshalYAML decodes on top of DefaultDistance.
func (d *DistanceEffectConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain DistanceEffectConfig
	raw := plain{Distance: DefaultDistance}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*d = DistanceEffectConfig(raw)
	return nil
}

func millis(ms int, fallback time.Duration) time.Duration {
	if ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// Validation errors reported by Config.Validate. The Manager tolerates all
// of them at runtime; Validate exists so tooling can surface typos.
var (
	ErrNegativeTiming  = errors.New("negative duration or delay")
	ErrMissingProperty = errors.New("style declaration without property")
	ErrMissingTrigger  = errors.New("effect without trigger id")
	ErrUnknownEasing   = errors.New("unknown easing function")
)

// ParseConfig decodes a YAML document.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and decodes the YAML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every problem in the config joined into one error, or
// nil. Each entry wraps one of the Err* sentinels.
func (c Config) Validate() error {
	var errs []error
	check := func(where string, err error) {
		errs = append(errs, fmt.Errorf("%s: %w", where, err))
	}

	checkStyles := func(where string, decls []StyleDecl) {
		for i, d := range decls {
			if strings.TrimSpace(d.Property) == "" {
				check(fmt.Sprintf("%s.styles[%d]", where, i), ErrMissingProperty)
			}
		}
	}
	checkEasing := func(where, name string) {
		if name != "" && !HasEasing(name) {
			check(where, fmt.Errorf("%w %q", ErrUnknownEasing, name))
		}
	}
	checkTimed := func(where string, ec EffectConfig, needTrigger bool) {
		if ec.Duration < 0 || ec.Delay < 0 {
			check(where, ErrNegativeTiming)
		}
		if needTrigger && strings.TrimSpace(ec.TriggerID) == "" {
			check(where, ErrMissingTrigger)
		}
		checkEasing(where, ec.EasingFunction)
		checkStyles(where, ec.Styles)
	}

	checkStyles("initialStyles", c.InitialStyles)
	for i, ec := range c.ClickEffects {
		checkTimed(fmt.Sprintf("clickEffects[%d]", i), ec, true)
	}
	for i, ec := range c.HoverEffects {
		checkTimed(fmt.Sprintf("hoverEffects[%d]", i), ec, true)
	}
	if c.LoadEffect != nil {
		checkTimed("loadEffect", *c.LoadEffect, false)
	}
	for i, sc := range c.ScrollEffects {
		where := fmt.Sprintf("scrollEffects[%d]", i)
		checkEasing(where, sc.EasingFunction)
		checkStyles(where, sc.Styles)
	}
	for i, dc := range c.DistanceEffects {
		checkTimed(fmt.Sprintf("distanceEffects[%d]", i), dc.EffectConfig, true)
	}
	for i, pc := range c.PhysicsEffects {
		if !pc.AutoStart && strings.TrimSpace(pc.TriggerID) == "" {
			check(fmt.Sprintf("physicsEffects[%d]", i), ErrMissingTrigger)
		}
	}
	return errors.Join(errs...)
}
