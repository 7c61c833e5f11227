package stylefx

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/constraints"
)

// Quantity is a number with an optional CSS unit ("" for unitless).
type Quantity struct {
	Number float64
	Unit   string
}

// String formats the quantity with its unit suffix.
func (q Quantity) String() string {
	return formatNumber(q.Number) + q.Unit
}

// CalcExpr is a parsed calc() body: len(Operators) == len(Operands)-1.
// Operators are kept verbatim and never evaluated.
type CalcExpr struct {
	Operands  []Quantity
	Operators []string
}

// Value is a parsed style value: a plain Quantity, or a calc() expression
// when Calc is non-nil.
type Value struct {
	Quantity
	Calc *CalcExpr
}

// IsCalc reports whether the value is a calc() expression.
func (v Value) IsCalc() bool { return v.Calc != nil }

// String formats the value back into CSS text.
func (v Value) String() string {
	if v.Calc == nil {
		return v.Quantity.String()
	}
	var b strings.Builder
	b.WriteString("calc(")
	for i, op := range v.Calc.Operands {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteString(v.Calc.Operators[i-1])
			b.WriteByte(' ')
		}
		b.WriteString(op.String())
	}
	b.WriteByte(')')
	return b.String()
}

// terms returns the operands and operators, treating a plain value as a
// one-term expression.
// shape lists the units of the value's terms, for example "px" or
// "calc(%,px)".
func (v Value) shape() string {
	if v.Calc == nil {
		return v.Unit
	}
	units := make([]string, len(v.Calc.Operands))
	for i, q := range v.Calc.Operands {
		units[i] = q.Unit
	}
	return "calc(" + strings.Join(units, ",") + ")"
}

func (v Value) terms() ([]Quantity, []string) {
	if v.Calc == nil {
		return []Quantity{v.Quantity}, nil
	}
	return v.Calc.Operands, v.Calc.Operators
}

var (
	bareNumberRe = regexp.MustCompile(`^-?(?:\d+\.?\d*|\.\d+)$`)
	quantityRe   = regexp.MustCompile(`^(-?(?:\d+\.?\d*|\.\d+))(px|vw|vh|%|em|rem|deg|turn|rad)?$`)
	calcTokenRe  = regexp.MustCompile(`^\s*(?:(-?(?:\d+\.?\d*|\.\d+))(px|vw|vh|%|em|rem|deg|turn|rad)?|([+*/-]))`)
)

// angularProperties default bare numbers to degrees.
var angularProperties = map[string]bool{
	"rotate": true, "rotateX": true, "rotateY": true, "rotateZ": true,
	"skewX": true, "skewY": true,
}

// ParseValue parses a raw style value. Bare numbers are unitless except for
// the rotate/skew family, which default to "deg". ok is false for anything
// that is not a number, a number with a known unit, or a flat calc().
func ParseValue(raw, property string) (Value, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{}, false
	}

	if bareNumberRe.MatchString(s) {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, false
		}
		unit := ""
		if angularProperties[strings.TrimSpace(property)] {
			unit = "deg"
		}
		return Value{Quantity: Quantity{Number: n, Unit: unit}}, true
	}

	if body, ok := calcBody(s); ok {
		expr, ok := parseCalc(body)
		if !ok {
			return Value{}, false
		}
		return Value{Calc: expr}, true
	}

	q, ok := parseQuantity(s)
	if !ok {
		return Value{}, false
	}
	return Value{Quantity: q}, true
}

func parseQuantity(s string) (Quantity, bool) {
	m := quantityRe.FindStringSubmatch(s)
	if m == nil {
		return Quantity{}, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Quantity{}, false
	}
	return Quantity{Number: n, Unit: m[2]}, true
}

func calcBody(s string) (string, bool) {
	if !strings.HasPrefix(s, "calc(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	return s[len("calc(") : len(s)-1], true
}

// parseCalc tokenizes a calc() body into alternating operands and
// operators. "10px-5px" splits into 10px, "-", 5px.
func parseCalc(body string) (*CalcExpr, bool) {
	expr := &CalcExpr{}
	wantOperand := true
	rest := body
	for strings.TrimSpace(rest) != "" {
		m := calcTokenRe.FindStringSubmatchIndex(rest)
		if m == nil {
			return nil, false
		}
		tok := rest[:m[1]]
		rest = rest[m[1]:]

		if m[6] >= 0 {
			// operator
			if wantOperand {
				return nil, false
			}
			expr.Operators = append(expr.Operators, tok[m[6]:m[7]])
			wantOperand = true
			continue
		}

		num := tok[m[2]:m[3]]
		unit := ""
		if m[4] >= 0 {
			unit = tok[m[4]:m[5]]
		}
		if !wantOperand {
			if !strings.HasPrefix(num, "-") {
				return nil, false
			}
			expr.Operators = append(expr.Operators, "-")
			num = num[1:]
		}
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return nil, false
		}
		expr.Operands = append(expr.Operands, Quantity{Number: n, Unit: unit})
		wantOperand = false
	}
	if wantOperand || len(expr.Operands) == 0 {
		return nil, false
	}
	return expr, true
}

// lerp returns a + (b-a)*t.
func lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// formatNumber rounds to 4 decimals and trims trailing zeros.
func formatNumber(n float64) string {
	r := math.Round(n*1e4) / 1e4
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Interpolator computes in-between style values and reports diagnostics
// (unit mismatch, calc shape mismatch) through its logger. Each distinct
// diagnostic is logged once per Interpolator.
type Interpolator struct {
	log zerolog.Logger

	mu     sync.Mutex
	warned map[string]struct{}
}

// NewInterpolator creates an Interpolator that logs through logger.
func NewInterpolator(logger zerolog.Logger) *Interpolator {
	return &Interpolator{log: logger, warned: make(map[string]struct{})}
}

// Interpolate returns the value at progress between start and end using the
// package-level zerolog logger for diagnostics. See Interpolator.Interpolate.
func Interpolate(start, end string, progress float64, easing EasingFunc, property string) (string, bool) {
	ip := Interpolator{log: log.Logger}
	return ip.Interpolate(start, end, progress, easing, property)
}

// Interpolate returns the value at progress between start and end. Easing
// is applied to progress (nil means linear). ok is false when either end
// fails to parse; the caller should skip the property for this frame. When
// the two calc() expressions have a different number of terms the literal
// start value is returned unchanged.
func (ip *Interpolator) Interpolate(start, end string, progress float64, easing EasingFunc, property string) (string, bool) {
	s, ok := ParseValue(start, property)
	if !ok {
		return "", false
	}
	e, ok := ParseValue(end, property)
	if !ok {
		return "", false
	}

	eased := progress
	if easing != nil {
		eased = easing(progress)
	}

	if !s.IsCalc() && !e.IsCalc() {
		if s.Unit != e.Unit {
			ip.warn("unit mismatch, using start unit", property, s.Unit, e.Unit, start, end)
		}
		return Quantity{Number: lerp(s.Number, e.Number, eased), Unit: s.Unit}.String(), true
	}

	sTerms, sOps := s.terms()
	eTerms, _ := e.terms()
	if len(sTerms) != len(eTerms) {
		ip.warn("calc term count mismatch, keeping start value", property, s.shape(), e.shape(), start, end)
		return strings.TrimSpace(start), true
	}

	out := &CalcExpr{Operators: sOps, Operands: make([]Quantity, len(sTerms))}
	for i := range sTerms {
		if sTerms[i].Unit != eTerms[i].Unit {
			ip.warn("unit mismatch in calc term, using start unit", property, sTerms[i].Unit, eTerms[i].Unit, start, end)
		}
		out.Operands[i] = Quantity{Number: lerp(sTerms[i].Number, eTerms[i].Number, eased), Unit: sTerms[i].Unit}
	}
	if !s.IsCalc() {
		// plain start against a one-term calc() end
		return out.Operands[0].String(), true
	}
	return Value{Calc: out}.String(), true
}

// warn logs msg once per property and unit pair. The raw values are logged
// but not part of the key, since captured starts differ on every interrupt.
func (ip *Interpolator) warn(msg, property, startUnit, endUnit, start, end string) {
	if ip.warned != nil {
		key := msg + "\x00" + property + "\x00" + startUnit + "\x00" + endUnit
		ip.mu.Lock()
		_, seen := ip.warned[key]
		ip.warned[key] = struct{}{}
		ip.mu.Unlock()
		if seen {
			return
		}
	}
	ip.log.Warn().
		Str("property", property).
		Str("start", start).
		Str("end", end).
		Msg(msg)
}
