package hud

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"room-planner/internal/config"
	"room-planner/internal/keymap"
	"room-planner/internal/session"
)

const (
	fontSize   = 18
	padding    = 12
	lineHeight = fontSize + 6
	panelWidth = 320
	// fpsInterval refreshes the FPS text every N frames to limit allocations.
	fpsInterval = 30
)

var (
	panelColor = rl.NewColor(20, 20, 24, 200)
	titleColor = rl.NewColor(240, 240, 240, 255)
	textColor  = rl.LightGray
)

// HUD is the left-hand settings panel (room size, wall color, selected item) and
// the FPS counter in the top-right corner.
type HUD struct {
	ShowFPS  bool
	ShowHelp bool
	font     rl.Font
	frame    uint32
	fpsText  string
}

// New returns a HUD with the configured toggles.
func New(prefs config.HUD) *HUD {
	return &HUD{ShowFPS: prefs.ShowFPS, ShowHelp: prefs.ShowHelp}
}

// SetShowFPS toggles the FPS counter.
func (h *HUD) SetShowFPS(show bool) {
	h.ShowFPS = show
}

// SetShowHelp toggles the controls help under the selected item.
func (h *HUD) SetShowHelp(show bool) {
	h.ShowHelp = show
}

// SetFont sets the draw font. A zero texture ID keeps raylib's default font.
func (h *HUD) SetFont(font rl.Font) {
	h.font = font
}

// Draw renders the overlay for the current session state. Call after the 3D scene.
func (h *HUD) Draw(sess *session.Session) {
	lines := h.panelLines(sess)
	height := int32(len(lines)*lineHeight + 2*padding)
	rl.DrawRectangle(padding, padding, panelWidth, height, panelColor)
	for i, ln := range lines {
		c := textColor
		if ln.title {
			c = titleColor
		}
		h.drawText(ln.text, 2*padding, int32(2*padding+i*lineHeight), c)
	}
	h.drawFPS()
}

type line struct {
	text  string
	title bool
}

func (h *HUD) panelLines(sess *session.Session) []line {
	r := sess.Room()
	lines := []line{
		{text: "Room Settings", title: true},
		{text: fmt.Sprintf("Width:  %.1f m", r.Width)},
		{text: fmt.Sprintf("Length: %.1f m", r.Length)},
		{text: fmt.Sprintf("Height: %.1f m", r.Height)},
		{text: "Wall color: " + string(r.WallColor)},
	}
	lines = append(lines, line{text: fmt.Sprintf("Furniture: %d", len(sess.Furniture()))})

	inst, ok := sess.SelectedInstance()
	if !ok {
		return append(lines, line{text: "Click furniture to select it"})
	}
	custom := "off"
	if inst.UseCustomColor {
		custom = string(inst.Color)
	}
	lines = append(lines,
		line{text: "Selected Item", title: true},
		line{text: inst.Catalog.Name},
		line{text: "$" + inst.Catalog.Price.StringFixed(2)},
		line{text: fmt.Sprintf("Position: %.2f, %.2f, %.2f", inst.Position[0], inst.Position[1], inst.Position[2])},
		line{text: "Custom color: " + custom},
		line{text: "Click a green spot to place it"},
	)
	if h.ShowHelp {
		for _, s := range keymap.Help() {
			lines = append(lines, line{text: s})
		}
	}
	return lines
}

func (h *HUD) drawFPS() {
	h.frame++
	if !h.ShowFPS {
		return
	}
	if h.fpsText == "" || h.frame%fpsInterval == 0 {
		h.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
	}
	screenW := int32(rl.GetScreenWidth())
	var w int32
	if h.font.Texture.ID != 0 {
		w = int32(rl.MeasureTextEx(h.font, h.fpsText, fontSize, 1).X)
	} else {
		w = rl.MeasureText(h.fpsText, fontSize)
	}
	h.drawText(h.fpsText, screenW-w-padding, padding, rl.Green)
}

func (h *HUD) drawText(s string, x, y int32, c rl.Color) {
	if h.font.Texture.ID != 0 {
		rl.DrawTextEx(h.font, s, rl.NewVector2(float32(x), float32(y)), fontSize, 1, c)
		return
	}
	rl.DrawText(s, x, y, fontSize, c)
}
