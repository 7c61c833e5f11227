package stylefx

import (
	"maps"
	"regexp"
	"strings"
)

// StyleMap maps a style property name to its CSS text value.
type StyleMap map[string]string

// Clone returns a shallow copy of m. A nil map clones to an empty map.
func (m StyleMap) Clone() StyleMap {
	out := make(StyleMap, len(m))
	maps.Copy(out, m)
	return out
}

// Equal reports whether m and other hold the same entries.
func (m StyleMap) Equal(other StyleMap) bool {
	return maps.Equal(m, other)
}

// StyleDecl is a configured property: StartValue seeds the base style (for
// initial styles) or overrides the captured start (for effects).
type StyleDecl struct {
	Property   string `yaml:"property" json:"property"`
	StartValue string `yaml:"startValue,omitempty" json:"startValue,omitempty"`
	EndValue   string `yaml:"endValue,omitempty" json:"endValue,omitempty"`
}

// TransformKey is the composed output key for transform-family properties.
const TransformKey = "transform"

// transformOrder is the canonical composition order.
var transformOrder = []string{
	"scale", "scaleX", "scaleY", "scaleZ",
	"rotate", "rotateX", "rotateY", "rotateZ",
	"translateX", "translateY", "translateZ",
	"skewX", "skewY",
}

var transformIndex = func() map[string]int {
	idx := make(map[string]int, len(transformOrder))
	for i, name := range transformOrder {
		idx[name] = i
	}
	return idx
}()

// TransformProperties returns the transform-family property names in
// composition order.
func TransformProperties() []string {
	return append([]string(nil), transformOrder...)
}

// IsTransformProperty reports whether name must be composed into the
// transform string rather than written as its own key.
func IsTransformProperty(name string) bool {
	_, ok := transformIndex[name]
	return ok
}

// ComposeTransform joins transform-family entries of values into a single
// transform string in canonical order. Non-transform keys are ignored.
// Returns "" when there is nothing to compose.
func ComposeTransform(values map[string]string) string {
	var b strings.Builder
	for _, name := range transformOrder {
		v, ok := values[name]
		if !ok || v == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteByte('(')
		b.WriteString(v)
		b.WriteByte(')')
	}
	return b.String()
}

// transformFuncRe matches name(value), allowing one nested calc(...).
var transformFuncRe = regexp.MustCompile(`(\w+)\(((?:[^()]|\([^()]*\))+)\)`)

// ParseTransform splits a transform string back into its per-property
// values. Functions outside the transform family are dropped.
func ParseTransform(s string) StyleMap {
	out := StyleMap{}
	for _, m := range transformFuncRe.FindAllStringSubmatch(s, -1) {
		if IsTransformProperty(m[1]) {
			out[m[1]] = strings.TrimSpace(m[2])
		}
	}
	return out
}

// BaseStyle is the committed resting style of an animated subject.
// Transform-family values are stored per property and only composed on
// output. It is written by the Manager's commit protocols only.
type BaseStyle struct {
	values StyleMap
}

// NewBaseStyle seeds a base style from initial declarations. Property
// names are trimmed; a "transform" declaration is decomposed.
func NewBaseStyle(initial []StyleDecl) *BaseStyle {
	b := &BaseStyle{values: StyleMap{}}
	for _, d := range initial {
		b.Set(d.Property, d.StartValue)
	}
	return b
}

// Get returns the committed value of property.
func (b *BaseStyle) Get(property string) (string, bool) {
	v, ok := b.values[strings.TrimSpace(property)]
	return v, ok
}

// Set commits a value. A composed "transform" value is split into its
// members so the base never holds a transform string.
func (b *BaseStyle) Set(property, value string) {
	property = strings.TrimSpace(property)
	if property == "" {
		return
	}
	if property == TransformKey {
		for k, v := range ParseTransform(value) {
			b.values[k] = v
		}
		return
	}
	b.values[property] = value
}

// Merge commits every entry of m.
func (b *BaseStyle) Merge(m StyleMap) {
	for k, v := range m {
		b.Set(k, v)
	}
}

// Snapshot returns a copy of the raw (uncomposed) committed values.
func (b *BaseStyle) Snapshot() StyleMap {
	return b.values.Clone()
}

// Len returns the number of committed properties.
func (b *BaseStyle) Len() int {
	return len(b.values)
}

// composeStyles turns a raw property map into output form: transform-family
// entries are joined into a single "transform" key, absent when empty.
func composeStyles(raw StyleMap) StyleMap {
	out := make(StyleMap, len(raw)+1)
	for k, v := range raw {
		if IsTransformProperty(k) || k == TransformKey {
			continue
		}
		out[k] = v
	}
	if t := ComposeTransform(raw); t != "" {
		out[TransformKey] = t
	}
	return out
}

// restore replaces every committed value with snap.
func (b *BaseStyle) restore(snap StyleMap) {
	b.values = snap.Clone()
}
