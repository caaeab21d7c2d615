// Package keypad maps the calculator's input surfaces (on-screen buttons,
// physical keys and replayable key scripts) onto engine operations.
package keypad

import (
	"github.com/bond-kaneko/go-keycalc/calculator"
)

// Action is one discrete calculator input
type Action uint8

const (
	Digit0 Action = iota
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Point
	Add
	Subtract
	Multiply
	Divide
	Equals
	Clear
	Backspace
	Percent
	Negate
	SquareRoot
	Square
	numActions
)

var actionNames = [numActions]string{
	Digit0:     "0",
	Digit1:     "1",
	Digit2:     "2",
	Digit3:     "3",
	Digit4:     "4",
	Digit5:     "5",
	Digit6:     "6",
	Digit7:     "7",
	Digit8:     "8",
	Digit9:     "9",
	Point:      ".",
	Add:        "add",
	Subtract:   "subtract",
	Multiply:   "multiply",
	Divide:     "divide",
	Equals:     "equals",
	Clear:      "clear",
	Backspace:  "back",
	Percent:    "percent",
	Negate:     "negate",
	SquareRoot: "sqrt",
	Square:     "pow",
}

// String returns the control name of the action
func (a Action) String() string {
	if a < numActions {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction looks up an action by its control name
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), true
		}
	}
	return 0, false
}

// DigitAction returns the action for the digit character c
func DigitAction(c byte) (Action, bool) {
	if c < '0' || c > '9' {
		return 0, false
	}
	return Digit0 + Action(c-'0'), true
}

// Operator returns the binary operator an action selects, if any
func (a Action) Operator() calculator.Operator {
	switch a {
	case Add:
		return calculator.Add
	case Subtract:
		return calculator.Subtract
	case Multiply:
		return calculator.Multiply
	case Divide:
		return calculator.Divide
	default:
		return calculator.None
	}
}

// Apply performs the action on the engine
func Apply(e *calculator.Engine, a Action) {
	switch {
	case a <= Digit9:
		e.Digit('0' + byte(a))
		return
	case a.Operator() != calculator.None:
		e.ApplyOperator(a.Operator())
		return
	}

	switch a {
	case Point:
		e.DecimalPoint()
	case Equals:
		e.Equals()
	case Clear:
		e.Clear()
	case Backspace:
		e.Backspace()
	case Percent:
		e.Percent()
	case Negate:
		e.Negate()
	case SquareRoot:
		e.SquareRoot()
	case Square:
		e.Square()
	}
}
