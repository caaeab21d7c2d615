package keypad

import (
	"errors"
	"image"
	"testing"

	"github.com/bond-kaneko/go-keycalc/calculator"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		key      string
		expected Action
	}{
		{"0", Digit0},
		{"7", Digit7},
		{".", Point},
		{"Enter", Equals},
		{"=", Equals},
		{"Backspace", Backspace},
		{"Escape", Clear},
		{"+", Add},
		{"-", Subtract},
		{"*", Multiply},
		{"x", Multiply},
		{"/", Divide},
		{"%", Percent},
	}

	for _, test := range tests {
		result, ok := MapKey(test.key)
		if !ok || result != test.expected {
			t.Errorf("MapKey(%q) = %v, %v, want %v", test.key, result, ok, test.expected)
		}
	}

	for _, key := range []string{"", "a", "X", "Tab", "^", "12"} {
		if result, ok := MapKey(key); ok {
			t.Errorf("MapKey(%q) = %v, want unmapped", key, result)
		}
	}
}

func TestActionNames(t *testing.T) {
	for a := Digit0; a < numActions; a++ {
		parsed, ok := ParseAction(a.String())
		if !ok || parsed != a {
			t.Errorf("ParseAction(%q) = %v, %v, want %v", a.String(), parsed, ok, a)
		}
	}
	if _, ok := ParseAction("modulo"); ok {
		t.Errorf("ParseAction(modulo) should fail")
	}
}

func TestParseScript(t *testing.T) {
	tests := []struct {
		src      string
		expected []Action
	}{
		{"", nil},
		{"12+3=", []Action{Digit1, Digit2, Add, Digit3, Equals}},
		{"4 sqrt", []Action{Digit4, SquareRoot}},
		{"9 neg Enter", []Action{Digit9, Negate, Equals}},
		{"5 x 2 # times two\n=", []Action{Digit5, Multiply, Digit2, Equals}},
		{"# only a comment\n\n1 Backspace Escape", []Action{Digit1, Backspace, Clear}},
		{"3 pow 3 sq", []Action{Digit3, Square, Digit3, Square}},
	}

	for _, test := range tests {
		result, err := ParseScript(test.src)
		if err != nil {
			t.Errorf("ParseScript(%q) error: %v", test.src, err)
			continue
		}
		if len(result) != len(test.expected) {
			t.Errorf("ParseScript(%q) = %v, want %v", test.src, result, test.expected)
			continue
		}
		for i := range result {
			if result[i] != test.expected[i] {
				t.Errorf("ParseScript(%q)[%d] = %v, want %v", test.src, i, result[i], test.expected[i])
			}
		}
	}
}

func TestParseScriptUnknownKey(t *testing.T) {
	_, err := ParseScript("1+2=\n3^2")
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("ParseScript error = %v, want ErrUnknownKey", err)
	}
	if got := err.Error(); got != `line 2: "^" in "3^2": unknown key` {
		t.Errorf("error message = %q", got)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{"12+3=", "15"},
		{"5 + x 3 =", "15"},
		{"9 sqrt", "3"},
		{"7 negate", "-7"},
		{"50%", "0.5"},
		{"12 back", "1"},
		{"4 square", "16"},
		{"8 / 0 =", calculator.ErrorMarker},
		{"1.5 . 5 clear 2", "2"},
	}

	for _, test := range tests {
		actions, err := ParseScript(test.src)
		if err != nil {
			t.Fatalf("ParseScript(%q) error: %v", test.src, err)
		}
		e := calculator.New()
		for _, a := range actions {
			Apply(e, a)
		}
		if result := e.State().Current; result != test.expected {
			t.Errorf("script %q = %q, want %q", test.src, result, test.expected)
		}
	}
}

func TestLayout(t *testing.T) {
	buttons := DefaultLayout(image.Rect(0, 0, 400, 600))
	if len(buttons) != 22 {
		t.Fatalf("len(buttons) = %d, want 22", len(buttons))
	}

	seen := make(map[Action]bool)
	for _, b := range buttons {
		seen[b.Action] = true
	}
	for a := Digit0; a < numActions; a++ {
		if !seen[a] {
			t.Errorf("no button for %v", a)
		}
	}

	tests := []struct {
		point    image.Point
		expected Action
		hit      bool
	}{
		{image.Pt(50, 50), Clear, true},
		{image.Pt(99, 50), 0, false},
		{image.Pt(350, 450), Equals, true},
		{image.Pt(300, 550), Square, true},
		{image.Pt(10, 510), SquareRoot, true},
		{image.Pt(500, 10), 0, false},
	}

	for _, test := range tests {
		b, ok := HitTest(buttons, test.point)
		if ok != test.hit || (ok && b.Action != test.expected) {
			t.Errorf("HitTest(%v) = %v, %v, want %v, %v", test.point, b.Action, ok, test.expected, test.hit)
		}
	}
}
