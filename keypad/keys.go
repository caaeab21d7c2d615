package keypad

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned for script tokens that map to no action
var ErrUnknownKey = errors.New("unknown key")

// MapKey maps a physical key name to an action.
// Digits, ".", "+", "-", "*", "x", "/" and "%" map to themselves; "Enter"
// and "=" evaluate, "Backspace" deletes and "Escape" clears.
func MapKey(key string) (Action, bool) {
	if len(key) == 1 {
		if a, ok := DigitAction(key[0]); ok {
			return a, true
		}
	}

	switch key {
	case ".":
		return Point, true
	case "Enter", "=":
		return Equals, true
	case "Backspace":
		return Backspace, true
	case "Escape":
		return Clear, true
	case "+":
		return Add, true
	case "-":
		return Subtract, true
	case "*", "x":
		return Multiply, true
	case "/":
		return Divide, true
	case "%":
		return Percent, true
	}
	return 0, false
}

// scriptAliases are short names accepted in key scripts only
var scriptAliases = map[string]Action{
	"neg":    Negate,
	"square": Square,
	"sq":     Square,
	"root":   SquareRoot,
}

// ParseScript turns a key script into actions.
//
// Tokens are separated by whitespace and "#" starts a comment that runs to
// the end of the line. A token is a control name ("sqrt", "negate"), a key
// name ("Enter", "Escape") or a run of single-character keys ("12+3=").
func ParseScript(src string) ([]Action, error) {
	var actions []Action

	scanner := bufio.NewScanner(strings.NewReader(src))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parsed, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		actions = append(actions, parsed...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return actions, nil
}

// ParseLine parses a single line of a key script
func ParseLine(line string) ([]Action, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}

	var actions []Action
	for _, token := range strings.Fields(line) {
		parsed, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		actions = append(actions, parsed...)
	}
	return actions, nil
}

func parseToken(token string) ([]Action, error) {
	if a, ok := ParseAction(token); ok {
		return []Action{a}, nil
	}
	if a, ok := scriptAliases[token]; ok {
		return []Action{a}, nil
	}
	if a, ok := MapKey(token); ok {
		return []Action{a}, nil
	}

	actions := make([]Action, 0, len(token))
	for i := 0; i < len(token); i++ {
		a, ok := MapKey(token[i : i+1])
		if !ok {
			return nil, fmt.Errorf("%q in %q: %w", token[i:i+1], token, ErrUnknownKey)
		}
		actions = append(actions, a)
	}
	return actions, nil
}
