package calculator

// Operator is a binary operation waiting for its right-hand operand
type Operator uint8

const (
	None Operator = iota
	Add
	Subtract
	Multiply
	Divide
)

var operatorNames = [...]string{
	None:     "none",
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
}

var operatorSymbols = [...]string{
	None:     "",
	Add:      "+",
	Subtract: "−",
	Multiply: "×",
	Divide:   "÷",
}

// String returns the operator name
func (op Operator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return "unknown"
}

// Symbol returns the glyph shown next to the pending operand
func (op Operator) Symbol() string {
	if int(op) < len(operatorSymbols) {
		return operatorSymbols[op]
	}
	return "?"
}

// Valid reports whether op is one of the four binary operators
func (op Operator) Valid() bool {
	return op >= Add && op <= Divide
}
