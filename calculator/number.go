package calculator

import (
	"math"
	"strconv"
	"strings"
)

// ErrorMarker is stored in place of a number when an operation is undefined
const ErrorMarker = "Error"

// significantDigits is the precision every numeric result is rounded to
const significantDigits = 12

// Result is the outcome of an arithmetic step: either a number or the error marker
type Result struct {
	Value float64
	Err   bool
}

// Number wraps a float64 as a Result
func Number(v float64) Result {
	return Result{Value: v}
}

// Failure returns the error marker Result
func Failure() Result {
	return Result{Err: true}
}

// Evaluate applies op to a and b.
// A NaN operand yields 0, division by zero yields the error marker and an
// unknown operator returns b unchanged.
func Evaluate(op Operator, a, b float64) Result {
	if math.IsNaN(a) || math.IsNaN(b) {
		return Number(0)
	}
	switch op {
	case Add:
		return Number(Round(a + b))
	case Subtract:
		return Number(Round(a - b))
	case Multiply:
		return Number(Round(a * b))
	case Divide:
		if b == 0 {
			return Failure()
		}
		return Number(Round(a / b))
	default:
		return Number(b)
	}
}

// Round rounds v to 12 significant digits. NaN and infinities pass through.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', significantDigits, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Format renders r for the display after rounding it.
// Non-finite values have no display form and become the error marker.
func Format(r Result) string {
	if r.Err {
		return ErrorMarker
	}
	return formatFloat(Round(r.Value))
}

// formatFloat writes the shortest decimal form of v, switching to an
// exponent only for very large or very small magnitudes.
func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrorMarker
	}
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		// strconv pads the exponent to two digits ("1e-07")
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + exp
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber reads the longest decimal prefix of s.
// It returns NaN when s does not start with a number, so the error marker
// and an empty operand both parse as NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}
	// out of range input still yields ±Inf alongside the error
	v, _ := strconv.ParseFloat(s[:end], 64)
	return v
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
