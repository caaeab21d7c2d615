package calculator

import (
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		op       Operator
		a, b     float64
		expected Result
	}{
		{Add, 0.1, 0.2, Number(0.3)},
		{Subtract, 0.3, 0.1, Number(0.2)},
		{Multiply, 1.1, 1.1, Number(1.21)},
		{Divide, 1, 4, Number(0.25)},
		{Divide, 1, 0, Failure()},
		{Divide, 0, 0, Failure()},
		{Add, nan, 1, Number(0)},
		{Divide, 1, nan, Number(0)},
		{None, 1, 2, Number(2)},
		{Operator(42), 1, 2, Number(2)},
	}

	for _, test := range tests {
		result := Evaluate(test.op, test.a, test.b)
		if result != test.expected {
			t.Errorf("Evaluate(%v, %v, %v) = %+v, want %+v", test.op, test.a, test.b, result, test.expected)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.1 + 0.2, 0.3},
		{1.0 / 3.0, 0.333333333333},
		{123456789012345, 123456789012000},
		{-2.0000000000001, -2},
		{42, 42},
	}

	for _, test := range tests {
		if result := Round(test.input); result != test.expected {
			t.Errorf("Round(%v) = %v, want %v", test.input, result, test.expected)
		}
	}

	if !math.IsNaN(Round(math.NaN())) {
		t.Errorf("Round(NaN) should stay NaN")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input    Result
		expected string
	}{
		{Number(0.1 + 0.2), "0.3"},
		{Number(10), "10"},
		{Number(-2), "-2"},
		{Number(math.Copysign(0, -1)), "0"},
		{Number(1e21), "1e+21"},
		{Number(1.5e-7), "1.5e-7"},
		{Number(0.000001), "0.000001"},
		{Number(1e20), "100000000000000000000"},
		{Number(math.Inf(1)), ErrorMarker},
		{Number(math.NaN()), ErrorMarker},
		{Failure(), ErrorMarker},
	}

	for _, test := range tests {
		if result := Format(test.input); result != test.expected {
			t.Errorf("Format(%+v) = %q, want %q", test.input, result, test.expected)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"0", 0},
		{"12", 12},
		{"5.", 5},
		{".5", 0.5},
		{"-0.25", -0.25},
		{"1e3", 1000},
		{"1e", 1},
		{"1e+21", 1e21},
		{"12abc", 12},
	}

	for _, test := range tests {
		if result := ParseNumber(test.input); result != test.expected {
			t.Errorf("ParseNumber(%q) = %v, want %v", test.input, result, test.expected)
		}
	}

	for _, input := range []string{"", "-", ".", ErrorMarker, "NaN"} {
		if result := ParseNumber(input); !math.IsNaN(result) {
			t.Errorf("ParseNumber(%q) = %v, want NaN", input, result)
		}
	}
}

func TestOperatorSymbols(t *testing.T) {
	tests := []struct {
		op     Operator
		name   string
		symbol string
	}{
		{None, "none", ""},
		{Add, "add", "+"},
		{Subtract, "subtract", "−"},
		{Multiply, "multiply", "×"},
		{Divide, "divide", "÷"},
	}

	for _, test := range tests {
		if test.op.String() != test.name || test.op.Symbol() != test.symbol {
			t.Errorf("%d: got (%q, %q), want (%q, %q)", test.op, test.op.String(), test.op.Symbol(), test.name, test.symbol)
		}
	}
}
