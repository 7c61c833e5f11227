package stylefx

import (
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// EasingFunc maps normalized time in [0, 1] to normalized progress. Overshoot
// curves (back, elastic) may return values outside [0, 1].
type EasingFunc func(t float64) float64

// Linear is the identity easing and the fallback for unknown names.
func Linear(t float64) float64 { return t }

// easings is keyed by normalized name (see normalizeEasingName).
var easings = map[string]ease.TweenFunc{
	"linear": ease.Linear,

	"inquad": ease.InQuad, "outquad": ease.OutQuad, "inoutquad": ease.InOutQuad, "outinquad": ease.OutInQuad,
	"incubic": ease.InCubic, "outcubic": ease.OutCubic, "inoutcubic": ease.InOutCubic, "outincubic": ease.OutInCubic,
	"inquart": ease.InQuart, "outquart": ease.OutQuart, "inoutquart": ease.InOutQuart, "outinquart": ease.OutInQuart,
	"inquint": ease.InQuint, "outquint": ease.OutQuint, "inoutquint": ease.InOutQuint, "outinquint": ease.OutInQuint,
	"insine": ease.InSine, "outsine": ease.OutSine, "inoutsine": ease.InOutSine, "outinsine": ease.OutInSine,
	"inexpo": ease.InExpo, "outexpo": ease.OutExpo, "inoutexpo": ease.InOutExpo, "outinexpo": ease.OutInExpo,
	"incirc": ease.InCirc, "outcirc": ease.OutCirc, "inoutcirc": ease.InOutCirc, "outincirc": ease.OutInCirc,
	"inback": ease.InBack, "outback": ease.OutBack, "inoutback": ease.InOutBack, "outinback": ease.OutInBack,
	"inelastic": ease.InElastic, "outelastic": ease.OutElastic, "inoutelastic": ease.InOutElastic, "outinelastic": ease.OutInElastic,
	"inbounce": ease.InBounce, "outbounce": ease.OutBounce, "inoutbounce": ease.InOutBounce, "outinbounce": ease.OutInBounce,
}

// aliases for the long-form names used by CSS-minded configs.
var easingAliases = map[string]string{
	"inquadratic":      "inquad",
	"outquadratic":     "outquad",
	"inoutquadratic":   "inoutquad",
	"inquartic":        "inquart",
	"outquartic":       "outquart",
	"inoutquartic":     "inoutquart",
	"inquintic":        "inquint",
	"outquintic":       "outquint",
	"inoutquintic":     "inoutquint",
	"inexponential":    "inexpo",
	"outexponential":   "outexpo",
	"inoutexponential": "inoutexpo",
	"incircular":       "incirc",
	"outcircular":      "outcirc",
	"inoutcircular":    "inoutcirc",
}

// Easing resolves an easing name to a curve. Names are matched
// case-insensitively with separators and a leading "ease" ignored, so
// "easeInOutCubic", "ease-in-out-cubic" and "inOutCubic" are equivalent.
// Unknown names silently resolve to Linear.
func Easing(name string) EasingFunc {
	fn, ok := lookupEasing(name)
	if !ok {
		return Linear
	}
	return fn
}

// HasEasing reports whether name resolves to a curve other than the
// fallback. Config validation uses it to flag typos without failing.
func HasEasing(name string) bool {
	_, ok := lookupEasing(name)
	return ok
}

func lookupEasing(name string) (EasingFunc, bool) {
	key := normalizeEasingName(name)
	if alias, ok := easingAliases[key]; ok {
		key = alias
	}
	tf, ok := easings[key]
	if !ok {
		return nil, false
	}
	if key == "linear" {
		return Linear, true
	}
	return func(t float64) float64 {
		return float64(tf(float32(t), 0, 1, 1))
	}, true
}

func normalizeEasingName(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	if key != "ease" {
		key = strings.TrimPrefix(key, "ease")
	}
	return key
}

// EasingNames returns the canonical easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for k := range easings {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
