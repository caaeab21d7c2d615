// Package gui runs the calculator in a desktop window with an on-screen
// keypad. Mouse clicks, touches and typed keys all go through the keypad
// package, so the window accepts the same inputs as the terminal.
package gui

import (
	"image"
	"image/color"
	"log/slog"
	"strings"

	"github.com/bond-kaneko/go-keycalc/calculator"
	"github.com/bond-kaneko/go-keycalc/keypad"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	screenWidth  = 240
	screenHeight = 360
	displayH     = 72
	margin       = 8

	tps = 60
	// flashTicks matches the terminal flash of 400ms
	flashTicks = tps * 2 / 5

	// the debug font is 6x16
	glyphW = 6
	glyphH = 16
)

var (
	background   = color.RGBA{0x1e, 0x1e, 0x24, 0xff}
	displayColor = color.RGBA{0x2c, 0x33, 0x3a, 0xff}
	flashColor   = color.RGBA{0x3f, 0x6e, 0x4f, 0xff}
	buttonColor  = color.RGBA{0x3a, 0x3a, 0x44, 0xff}
	pressedColor = color.RGBA{0x5a, 0x5a, 0x6a, 0xff}
	operatorKey  = color.RGBA{0xc8, 0x7a, 0x1e, 0xff}
)

// the debug font only covers ASCII
var asciiLabels = strings.NewReplacer(
	"÷", "/",
	"×", "*",
	"−", "-",
	"⌫", "<-",
	"±", "+/-",
	"√", "sqrt",
	"x²", "x^2",
	"»", ">",
)

// Game implements ebiten.Game for the calculator
type Game struct {
	engine  *calculator.Engine
	buttons []keypad.Button
	logger  *slog.Logger

	flash   int
	pressed keypad.Action
	hold    int
}

// NewGame creates a window game with a cleared engine
func NewGame(logger *slog.Logger) *Game {
	g := &Game{logger: logger}
	g.engine = calculator.New(calculator.OnFlash(func() {
		g.flash = flashTicks
	}))
	area := image.Rect(margin, displayH+2*margin, screenWidth-margin, screenHeight-margin)
	g.buttons = keypad.DefaultLayout(area)
	return g
}

// Run opens the window and blocks until it is closed
func Run(logger *slog.Logger) error {
	ebiten.SetWindowTitle("keycalc")
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetTPS(tps)
	return ebiten.RunGame(NewGame(logger))
}

func (g *Game) press(a keypad.Action) {
	keypad.Apply(g.engine, a)
	g.pressed = a
	g.hold = tps / 10
	g.logger.Debug("key", "action", a.String(), "current", g.engine.State().Current)
}

// Update polls pointer and keyboard input
func (g *Game) Update() error {
	if g.flash > 0 {
		g.flash--
	}
	if g.hold > 0 {
		g.hold--
	}

	for _, p := range g.pointerPresses() {
		if b, ok := keypad.HitTest(g.buttons, p); ok {
			g.press(b.Action)
		}
	}

	// shortcuts with modifiers belong to the window system
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta) {
		return nil
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if a, ok := keypad.MapKey(string(r)); ok {
			g.press(a)
		}
	}
	named := []struct {
		key  ebiten.Key
		name string
	}{
		{ebiten.KeyEnter, "Enter"},
		{ebiten.KeyNumpadEnter, "Enter"},
		{ebiten.KeyBackspace, "Backspace"},
		{ebiten.KeyEscape, "Escape"},
	}
	for _, k := range named {
		if !inpututil.IsKeyJustPressed(k.key) {
			continue
		}
		if a, ok := keypad.MapKey(k.name); ok {
			g.press(a)
		}
	}
	return nil
}

func (g *Game) pointerPresses() []image.Point {
	var points []image.Point
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		points = append(points, image.Pt(ebiten.CursorPosition()))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		points = append(points, image.Pt(ebiten.TouchPosition(id)))
	}
	return points
}

// Draw renders the display and the keypad
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	display := displayColor
	if g.flash > 0 {
		display = flashColor
	}
	vector.DrawFilledRect(screen, margin, margin, screenWidth-2*margin, displayH, display, false)

	state := g.engine.State()
	pending := ""
	if state.Pending != "" {
		pending = asciiLabels.Replace(state.Pending + " " + state.Operator.Symbol())
	}
	right := screenWidth - 2*margin
	ebitenutil.DebugPrintAt(screen, pending, right-len(pending)*glyphW, margin+4)
	ebitenutil.DebugPrintAt(screen, state.Current, right-len(state.Current)*glyphW, margin+displayH-glyphH-8)

	for _, b := range g.buttons {
		fill := buttonColor
		if b.Action.Operator() != calculator.None || b.Action == keypad.Equals {
			fill = operatorKey
		}
		if g.hold > 0 && b.Action == g.pressed {
			fill = pressedColor
		}
		r := b.Rect
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fill, false)

		label := asciiLabels.Replace(b.Label)
		x := r.Min.X + (r.Dx()-len(label)*glyphW)/2
		y := r.Min.Y + (r.Dy()-glyphH)/2
		ebitenutil.DebugPrintAt(screen, label, x, y)
	}
}

// Layout keeps a fixed logical screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
