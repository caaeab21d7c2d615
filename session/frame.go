package session

import (
	"strings"

	"github.com/bond-kaneko/go-keycalc/calculator"
)

// Frame is what the display shows after an input
type Frame struct {
	// Pending is the pending operand followed by the operator symbol
	Pending string
	// Current is the operand being typed or the last result
	Current string
	// Flash is set while a chained commit is being highlighted
	Flash bool
}

// Render builds the display frame for a state
func Render(s calculator.State) Frame {
	f := Frame{Current: s.Current}
	if s.Pending != "" {
		f.Pending = strings.TrimSpace(s.Pending + " " + s.Operator.Symbol())
	}
	return f
}

// Line formats the frame as one transcript line labelled with the input
func (f Frame) Line(label string) string {
	line := label + "\t" + f.Pending + "\t" + f.Current
	if f.Flash {
		line += "\t*"
	}
	return line
}

// Screen formats the frame as the two display lines
func (f Frame) Screen() string {
	current := f.Current
	if f.Flash {
		current = "» " + current
	}
	return f.Pending + "\n" + current + "\n"
}
