package graphics

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"room-planner/internal/config"
)

// App is driven by Run. Close runs while the GL context still exists.
type App interface {
	Update()
	Draw()
	Close()
}

// Run opens the window described by w and runs the frame loop until it is closed.
// Each frame it calls Update (input and state changes), clears to background and
// calls Draw. ESC belongs to the terminal, so the window closes only via its button.
func Run(w config.Window, background color.RGBA, app App) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if w.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	defer rl.CloseWindow()
	defer app.Close()

	rl.SetExitKey(rl.KeyNull)
	if w.TargetFPS > 0 {
		rl.SetTargetFPS(int32(w.TargetFPS))
	}

	for !rl.WindowShouldClose() {
		app.Update()

		rl.BeginDrawing()
		rl.ClearBackground(background)
		app.Draw()
		rl.EndDrawing()
	}
}
