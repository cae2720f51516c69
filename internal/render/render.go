// Package render draws the planner scene with raylib and turns pointer and keyboard
// input into session commands.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"

	"room-planner/internal/config"
	"room-planner/internal/furniture"
	"room-planner/internal/keymap"
	"room-planner/internal/orbit"
	"room-planner/internal/placement"
	"room-planner/internal/room"
	"room-planner/internal/session"
)

const (
	wallThickness = 0.05
	spotSize      = 0.6
	markerRadius  = 0.1
	markerHeight  = 1
	// clickSlop is how far in pixels the pointer may travel between press and
	// release for the gesture to count as a click rather than a drag.
	clickSlop = 4
)

var (
	floorColor     = rl.NewColor(200, 190, 170, 255)
	spotColor      = rl.NewColor(80, 200, 120, 140)
	markerColor    = rl.Yellow
	selectionColor = rl.NewColor(255, 220, 0, 255)
	backgroundSky  = rl.NewColor(30, 32, 38, 255)
)

// keyNames binds raylib key codes to keymap names.
var keyNames = []struct {
	key  int32
	name string
}{
	{rl.KeyW, "w"}, {rl.KeyUp, "arrowup"},
	{rl.KeyS, "s"}, {rl.KeyDown, "arrowdown"},
	{rl.KeyA, "a"}, {rl.KeyLeft, "arrowleft"},
	{rl.KeyD, "d"}, {rl.KeyRight, "arrowright"},
	{rl.KeyQ, "q"}, {rl.KeyE, "e"},
	{rl.KeyR, "r"}, {rl.KeyF, "f"},
	{rl.KeyOne, "1"}, {rl.KeyTwo, "2"},
	{rl.KeyThree, "3"}, {rl.KeyFour, "4"},
	{rl.KeyFive, "5"}, {rl.KeySix, "6"},
}

// InputGate reports whether another widget (the terminal) owns the keyboard.
type InputGate interface {
	IsOpen() bool
}

// Renderer owns the camera and the model cache for one session.
type Renderer struct {
	sess   *session.Session
	gate   InputGate
	log    logrus.FieldLogger
	orbit  *orbit.Camera
	camera rl.Camera3D
	models *Models

	pressAt  rl.Vector2
	pressed  bool
	dragging bool
}

// New returns a renderer for sess. gate and paths may be nil.
func New(sess *session.Session, gate InputGate, paths Resolver, cam config.Camera, log logrus.FieldLogger) *Renderer {
	r := &Renderer{
		sess:   sess,
		gate:   gate,
		log:    log,
		orbit:  orbit.New(cam.Distance),
		models: NewModels(paths, log),
	}
	r.camera.Up = rl.NewVector3(0, 1, 0)
	r.camera.Fovy = cam.Fovy
	r.camera.Projection = rl.CameraPerspective
	r.syncCamera()
	sess.OnOrbitChange(func(enabled bool) {
		// A drag in progress when orbiting turns off must not keep rotating.
		if !enabled {
			r.dragging = false
		}
		r.log.WithField("enabled", enabled).Debug("orbit changed")
	})
	return r
}

// Background is the clear color behind the room.
func (r *Renderer) Background() rl.Color {
	return backgroundSky
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	r.models.Unload()
}

// Update handles camera and furniture input. Call once per frame before Draw.
func (r *Renderer) Update() {
	defer r.syncCamera()
	r.orbit.Update(rl.GetFrameTime())
	if r.gate != nil && r.gate.IsOpen() {
		r.pressed, r.dragging = false, false
		return
	}
	r.updateKeys()
	r.updatePointer()
}

func (r *Renderer) updateKeys() {
	for _, k := range keyNames {
		if !rl.IsKeyPressed(k.key) {
			continue
		}
		if cmd, ok := keymap.Lookup(k.name); ok {
			r.sess.HandleDirectionalCommand(cmd)
		}
		if step, ok := keymap.LookupResize(k.name); ok {
			r.sess.ResizeRoom(step.Axis, step.Delta)
		}
	}
	if rl.IsKeyPressed(rl.KeyDelete) {
		r.sess.DeleteSelected()
	}
	if rl.IsKeyPressed(rl.KeyHome) && r.sess.OrbitEnabled() {
		r.orbit.Reset()
	}
}

func (r *Renderer) updatePointer() {
	if r.sess.OrbitEnabled() {
		r.orbit.Zoom(rl.GetMouseWheelMove())
	}
	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		r.pressAt, r.pressed, r.dragging = mouse, true, false
	}
	if r.pressed && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		if !r.dragging && rl.Vector2Distance(mouse, r.pressAt) > clickSlop {
			r.dragging = r.sess.OrbitEnabled()
		}
		if r.dragging {
			d := rl.GetMouseDelta()
			r.orbit.Drag(d.X, d.Y)
		}
	}
	if r.pressed && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		if rl.Vector2Distance(mouse, r.pressAt) <= clickSlop {
			r.click(mouse)
		}
		r.pressed, r.dragging = false, false
	}
}

// click selects the nearest furniture or places the selection on the nearest spot.
// A click that hits neither deselects.
func (r *Renderer) click(mouse rl.Vector2) {
	ray := rl.GetScreenToWorldRay(mouse, r.camera)
	snap := r.sess.Snapshot()

	best := hit{index: -1}
	for i, inst := range snap.Furniture {
		box := r.models.Bounds(inst.Catalog.MeshRef, inst.Position, inst.Scale)
		if c := rl.GetRayCollisionBox(ray, box); c.Hit {
			best = best.closer(hit{furniture: true, index: i, dist: c.Distance})
		}
	}
	for i, spot := range snap.Spots {
		p1, p2, p3, p4 := spotQuad(spot)
		if c := rl.GetRayCollisionQuad(ray, p1, p2, p3, p4); c.Hit {
			best = best.closer(hit{index: i, dist: c.Distance})
		}
	}

	switch {
	case best.index < 0:
		r.sess.Deselect()
	case best.furniture:
		if err := r.sess.SelectFurniture(best.index); err != nil {
			r.log.WithError(err).Warn("pick failed")
		}
	default:
		r.sess.HandlePlacementClick(snap.Spots[best.index])
	}
}

type hit struct {
	furniture bool
	index     int
	dist      float32
}

func (h hit) closer(o hit) hit {
	if h.index < 0 || o.dist < h.dist {
		return o
	}
	return h
}

func spotQuad(s placement.Spot) (p1, p2, p3, p4 rl.Vector3) {
	x, y, z := s.Position[0], s.Position[1], s.Position[2]
	const h = spotSize / 2
	return rl.NewVector3(x-h, y, z-h), rl.NewVector3(x-h, y, z+h),
		rl.NewVector3(x+h, y, z+h), rl.NewVector3(x+h, y, z-h)
}

func (r *Renderer) syncCamera() {
	p := r.orbit.Position()
	t := r.orbit.Target
	r.camera.Position = rl.NewVector3(p[0], p[1], p[2])
	r.camera.Target = rl.NewVector3(t[0], t[1], t[2])
	r.models.SetView(p)
}

// Draw renders the room, furniture, selection marker and, while a piece is selected,
// the placement spots. Call between BeginDrawing and EndDrawing, before 2D overlays.
func (r *Renderer) Draw() {
	snap := r.sess.Snapshot()
	rl.BeginMode3D(r.camera)
	drawRoom(snap.Room)
	for i, inst := range snap.Furniture {
		r.models.Draw(inst.Catalog.MeshRef, inst.Position, inst.Rotation[1], inst.Scale, tint(inst))
		if i == snap.Selected {
			box := r.models.Bounds(inst.Catalog.MeshRef, inst.Position, inst.Scale)
			rl.DrawBoundingBox(box, selectionColor)
			rl.DrawSphere(rl.NewVector3(inst.Position[0], inst.Position[1]+markerHeight, inst.Position[2]), markerRadius, markerColor)
		}
	}
	for _, s := range snap.Spots {
		rl.DrawPlane(rl.NewVector3(s.Position[0], s.Position[1], s.Position[2]), rl.NewVector2(spotSize, spotSize), spotColor)
	}
	rl.EndMode3D()
}

// drawRoom draws the floor and the back, left and right walls. The front stays open
// so the camera can look in.
func drawRoom(rm room.Room) {
	w, l, h := rm.Width, rm.Length, rm.Height
	rl.DrawPlane(rl.NewVector3(0, 0, 0), rl.NewVector2(w, l), floorColor)

	cr, cg, cb, ca := rm.WallColor.RGBA()
	wall := rl.NewColor(cr, cg, cb, ca)
	rl.DrawCube(rl.NewVector3(0, h/2, -l/2), w, h, wallThickness, wall)
	rl.DrawCube(rl.NewVector3(-w/2, h/2, 0), wallThickness, h, l, wall)
	rl.DrawCube(rl.NewVector3(w/2, h/2, 0), wallThickness, h, l, wall)
}

// tint is the instance color when a custom color is on, otherwise white so the
// model's own materials show.
func tint(inst furniture.Instance) rl.Color {
	if !inst.UseCustomColor {
		return rl.White
	}
	cr, cg, cb, ca := inst.Color.RGBA()
	return rl.NewColor(cr, cg, cb, ca)
}
