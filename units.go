package stylefx

import "math"

// rootFontSize is the pixel size of 1em and 1rem.
const rootFontSize = 16.0

// units resolves CSS quantities to host numbers. ref is the length that
// percentages are taken against.
type units struct {
	viewW, viewH float64
}

func (u units) px(q Quantity, ref float64) float64 {
	switch q.Unit {
	case "%":
		return q.Number / 100 * ref
	case "vw":
		return q.Number / 100 * u.viewW
	case "vh":
		return q.Number / 100 * u.viewH
	case "em", "rem":
		return q.Number * rootFontSize
	default:
		return q.Number
	}
}

func radians(q Quantity) float64 {
	switch q.Unit {
	case "rad":
		return q.Number
	case "turn":
		return q.Number * 2 * math.Pi
	default:
		return q.Number * math.Pi / 180
	}
}

// length parses raw as a length for property, resolving calc() with the
// usual operator precedence.
func (u units) length(raw, property string, ref float64) (float64, bool) {
	v, ok := ParseValue(raw, property)
	if !ok {
		return 0, false
	}
	return evalValue(v, func(q Quantity) float64 { return u.px(q, ref) }), true
}

// angle parses raw as an angle in radians.
func angle(raw, property string) (float64, bool) {
	v, ok := ParseValue(raw, property)
	if !ok {
		return 0, false
	}
	return evalValue(v, radians), true
}

// number parses a unitless value such as opacity or scale.
func number(raw, property string) (float64, bool) {
	v, ok := ParseValue(raw, property)
	if !ok {
		return 0, false
	}
	return evalValue(v, func(q Quantity) float64 { return q.Number }), true
}

// evalValue converts each term with conv and folds * and / before + and -.
// Division by zero yields the left operand unchanged.
func evalValue(v Value, conv func(Quantity) float64) float64 {
	operands, operators := v.terms()
	sums := []float64{conv(operands[0])}
	var signs []string
	for i, op := range operators {
		n := conv(operands[i+1])
		last := len(sums) - 1
		switch op {
		case "*":
			sums[last] *= n
		case "/":
			if n != 0 {
				sums[last] /= n
			}
		default:
			sums = append(sums, n)
			signs = append(signs, op)
		}
	}
	total := sums[0]
	for i, op := range signs {
		if op == "-" {
			total -= sums[i+1]
		} else {
			total += sums[i+1]
		}
	}
	return total
}
