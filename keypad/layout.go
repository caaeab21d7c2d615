package keypad

import "image"

// Button is one on-screen control
type Button struct {
	Label  string
	Action Action
	Rect   image.Rectangle
}

// Gap is the spacing between buttons in pixels
const Gap = 4

type cell struct {
	label  string
	action Action
}

var grid = [][]cell{
	{{"C", Clear}, {"⌫", Backspace}, {"%", Percent}, {"÷", Divide}},
	{{"7", Digit7}, {"8", Digit8}, {"9", Digit9}, {"×", Multiply}},
	{{"4", Digit4}, {"5", Digit5}, {"6", Digit6}, {"−", Subtract}},
	{{"1", Digit1}, {"2", Digit2}, {"3", Digit3}, {"+", Add}},
	{{"±", Negate}, {"0", Digit0}, {".", Point}, {"=", Equals}},
	{{"√", SquareRoot}, {"x²", Square}},
}

// DefaultLayout lays the keypad out inside area.
// Rows share the height evenly; a row with fewer buttons stretches them.
func DefaultLayout(area image.Rectangle) []Button {
	var buttons []Button

	rowHeight := (area.Dy() - Gap*(len(grid)-1)) / len(grid)
	for r, row := range grid {
		y := area.Min.Y + r*(rowHeight+Gap)
		width := (area.Dx() - Gap*(len(row)-1)) / len(row)
		for c, cl := range row {
			x := area.Min.X + c*(width+Gap)
			buttons = append(buttons, Button{
				Label:  cl.label,
				Action: cl.action,
				Rect:   image.Rect(x, y, x+width, y+rowHeight),
			})
		}
	}

	return buttons
}

// HitTest returns the button under p
func HitTest(buttons []Button, p image.Point) (Button, bool) {
	for _, b := range buttons {
		if p.In(b.Rect) {
			return b, true
		}
	}
	return Button{}, false
}
