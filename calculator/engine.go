// Package calculator implements the evaluator state machine behind a basic
// four-function calculator. Every input folds into a single State; binary
// operations chain, so pressing an operator after an operand commits the
// pending operation and carries its result forward as the new left operand.
package calculator

import (
	"math"
	"strings"
)

// State is the whole evaluator state
type State struct {
	// Current is the operand being typed or the last result, or ErrorMarker
	Current string
	// Pending is the committed left operand, empty when nothing is in progress
	Pending string
	// Operator is the operation waiting for its right operand
	Operator Operator
	// AwaitingNewOperand makes the next digit start a fresh operand
	AwaitingNewOperand bool
}

// Listener is notified when an operator press commits a chained operation
type Listener func()

// Option configures an Engine
type Option func(*Engine)

// OnFlash registers a listener for chained commits
func OnFlash(l Listener) Option {
	return func(e *Engine) {
		e.flash = l
	}
}

// Engine holds the evaluator state and mutates it one input at a time.
// It is not safe for concurrent use.
type Engine struct {
	state State
	flash Listener
}

// New creates an engine in the cleared state
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	e.Clear()
	return e
}

// State returns a copy of the current state
func (e *Engine) State() State {
	return e.state
}

// Digit enters a digit ('0'-'9') or a decimal point.
// Other bytes are ignored.
func (e *Engine) Digit(d byte) {
	if d == '.' {
		e.DecimalPoint()
		return
	}
	if !isDigit(d) {
		return
	}

	s := &e.state
	if s.AwaitingNewOperand {
		s.Current = string(d)
		s.AwaitingNewOperand = false
		return
	}
	if s.Current == "0" || s.Current == ErrorMarker {
		s.Current = string(d)
		return
	}
	s.Current += string(d)
}

// DecimalPoint appends a decimal point unless the operand already has one
func (e *Engine) DecimalPoint() {
	s := &e.state
	if s.AwaitingNewOperand || s.Current == ErrorMarker {
		s.Current = "0."
		s.AwaitingNewOperand = false
		return
	}
	if strings.Contains(s.Current, ".") {
		return
	}
	s.Current += "."
}

// ApplyOperator selects the next binary operation.
// Pressed right after another operator it only swaps the stored operator.
// Otherwise it either stores the current operand as the left operand or,
// when an operation is already pending, commits it and chains the result.
func (e *Engine) ApplyOperator(op Operator) {
	if !op.Valid() {
		return
	}

	s := &e.state
	x := ParseNumber(s.Current)

	if s.Operator != None && s.AwaitingNewOperand {
		s.Operator = op
		return
	}

	if s.Pending == "" {
		s.Pending = formatFloat(x)
	} else if s.Operator != None {
		result := Evaluate(s.Operator, ParseNumber(s.Pending), x)
		s.Pending = Format(result)
		if e.flash != nil {
			e.flash()
		}
	}

	s.Operator = op
	s.AwaitingNewOperand = true
}

// Equals completes the pending operation.
// Without a pending operator it does nothing, so a repeated press is a no-op.
func (e *Engine) Equals() {
	s := &e.state
	if s.Operator == None {
		return
	}

	result := Evaluate(s.Operator, ParseNumber(s.Pending), ParseNumber(s.Current))
	s.Current = Format(result)
	s.Pending = ""
	s.Operator = None
	s.AwaitingNewOperand = true
}

// Clear resets the engine
func (e *Engine) Clear() {
	e.state = State{Current: "0"}
}

// Backspace drops the last typed character
func (e *Engine) Backspace() {
	s := &e.state
	if s.AwaitingNewOperand {
		return
	}
	n := len(s.Current)
	if n == 1 || (n == 2 && s.Current[0] == '-') || s.Current == ErrorMarker {
		s.Current = "0"
		return
	}
	s.Current = s.Current[:n-1]
}

// Percent divides the current operand by 100
func (e *Engine) Percent() {
	e.unary(func(x float64) Result {
		return Number(x / 100)
	})
}

// Negate toggles the sign of the current operand
func (e *Engine) Negate() {
	s := &e.state
	if s.Current == "0" || s.Current == ErrorMarker {
		return
	}
	if strings.HasPrefix(s.Current, "-") {
		s.Current = s.Current[1:]
	} else {
		s.Current = "-" + s.Current
	}
}

// SquareRoot replaces the current operand with its square root.
// A negative operand produces the error marker.
func (e *Engine) SquareRoot() {
	e.unary(func(x float64) Result {
		if x < 0 {
			return Failure()
		}
		return Number(math.Sqrt(x))
	})
}

// Square replaces the current operand with its square
func (e *Engine) Square() {
	e.unary(func(x float64) Result {
		return Number(x * x)
	})
}

func (e *Engine) unary(f func(float64) Result) {
	e.state.Current = Format(f(ParseNumber(e.state.Current)))
}
