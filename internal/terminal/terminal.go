package terminal

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"room-planner/internal/console"
)

const (
	BarHeight = 40
	// Lift the bar when windowed so the window frame does not clip it.
	WindowedBarOffset = 56
	fontSize          = 20
	padding           = 8
	maxLinesOnScreen  = 14
	lineHeight        = fontSize + 4
	maxLineChars      = 200
)

var (
	termBarColor    = rl.NewColor(40, 40, 40, 255)
	termLineColor   = rl.NewColor(80, 80, 80, 255)
	termChatBgColor = rl.NewColor(24, 24, 24, 240)
)

// Terminal is the command bar at the bottom of the window, toggled with ESC.
// While open it owns the keyboard, so furniture keys are not routed to the session.
type Terminal struct {
	con  *console.Console
	open bool
	font rl.Font
}

// New returns a closed Terminal editing lines for con.
func New(con *console.Console) *Terminal {
	return &Terminal{con: con}
}

// IsOpen reports whether the terminal is capturing keyboard input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// SetFont sets the font used by Draw. A zero texture ID keeps raylib's default font.
func (t *Terminal) SetFont(font rl.Font) {
	t.font = font
}

// Update handles ESC and, while open, typing, paste, backspace and enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
	}
	if !t.open {
		return
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		t.con.Type(rl.GetClipboardText())
	} else {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			t.con.Type(string(rune(c)))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		t.con.Backspace()
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		t.con.Submit()
	}
}

// Draw draws the input bar and the most recent log lines above it while open.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int(rl.GetScreenWidth())
	screenH := int(rl.GetScreenHeight())
	barY := screenH - BarHeight
	if !rl.IsWindowFullscreen() {
		barY -= WindowedBarOffset
	}

	chatHeight := maxLinesOnScreen * lineHeight
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, int32(chatY), int32(screenW), int32(chatHeight), termChatBgColor)
	}
	for i, line := range console.Tail(t.con.Lines(), maxLinesOnScreen) {
		y := chatY + i*lineHeight + padding
		t.drawText(console.Clip(line, maxLineChars), padding, y, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), int32(BarHeight), termBarColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, termLineColor)
	t.drawText(console.Prompt+t.con.Input()+"|", padding, barY+padding, rl.White)
}

func (t *Terminal) drawText(s string, x, y int, c rl.Color) {
	if t.font.Texture.ID != 0 {
		rl.DrawTextEx(t.font, s, rl.NewVector2(float32(x), float32(y)), fontSize, 1, c)
		return
	}
	rl.DrawText(s, int32(x), int32(y), fontSize, c)
}
