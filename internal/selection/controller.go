// Package selection tracks which furniture instance is being edited and applies
// manipulation commands to it.
//
// The controller has two states. Idle: nothing selected, camera orbit enabled.
// Editing: one instance selected, orbit disabled so pointer drags do not fight
// with furniture placement. Commands that only make sense while editing are
// silently ignored while idle.
package selection

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/sirupsen/logrus"

	"room-planner/internal/furniture"
	"room-planner/internal/geom"
	"room-planner/internal/placement"
)

const (
	// MoveStep is the distance in meters of one directional command.
	MoveStep = 0.1
	// RotateStep is the yaw in radians of one rotation command (45°).
	RotateStep = math32.Pi / 4
)

// Store is the part of the furniture registry the controller mutates.
type Store interface {
	Get(id furniture.ID) (furniture.Instance, bool)
	UpdateTransform(id furniture.ID, p furniture.TransformPatch) error
	Move(id furniture.ID, delta geom.Vec3) error
	Remove(id furniture.ID) error
}

// Controller owns the selection and the camera orbit flag. OrbitEnabled is true
// exactly when nothing is selected.
type Controller struct {
	store    Store
	log      logrus.FieldLogger
	selected furniture.ID
	orbit    bool

	// OnOrbitChange, if set, is called whenever the orbit flag flips.
	OnOrbitChange func(enabled bool)
}

// NewController returns an idle controller over store.
func NewController(store Store, log logrus.FieldLogger) *Controller {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Controller{store: store, log: log, orbit: true}
}

// Selected returns the selected id and whether anything is selected.
func (c *Controller) Selected() (furniture.ID, bool) {
	return c.selected, c.selected != ""
}

// Editing reports whether an instance is selected.
func (c *Controller) Editing() bool {
	return c.selected != ""
}

// OrbitEnabled reports whether free camera orbiting is allowed.
func (c *Controller) OrbitEnabled() bool {
	return c.orbit
}

// Select makes id the edited instance. Selecting while editing another instance
// simply retargets.
func (c *Controller) Select(id furniture.ID) {
	if _, ok := c.store.Get(id); !ok {
		panic(fmt.Errorf("selection: select %s: %w", id, furniture.ErrUnknownInstance))
	}
	c.selected = id
	c.setOrbit(false)
	c.log.WithField("id", id).Debug("furniture selected")
}

// Deselect returns to idle. It is a no-op while idle.
func (c *Controller) Deselect() {
	if c.selected == "" {
		return
	}
	c.log.WithField("id", c.selected).Debug("furniture deselected")
	c.selected = ""
	c.setOrbit(true)
}

// PlaceAt moves the selected instance onto spot and returns to idle.
// It reports false and does nothing while idle.
func (c *Controller) PlaceAt(spot placement.Spot) bool {
	if c.selected == "" {
		return false
	}
	pos := spot.Position
	c.must(c.store.UpdateTransform(c.selected, furniture.TransformPatch{Position: &pos}))
	c.log.WithFields(logrus.Fields{"id": c.selected, "position": pos}).Debug("furniture placed")
	c.Deselect()
	return true
}

// Apply routes cmd to Move or Rotate. It reports false while idle.
func (c *Controller) Apply(cmd Command) bool {
	if cmd.IsRotation() {
		return c.Rotate(cmd)
	}
	return c.Move(cmd)
}

// Move shifts the selected instance by MoveStep along the command's axis.
// Movement is not clamped to the room; furniture may leave the floor.
func (c *Controller) Move(cmd Command) bool {
	if c.selected == "" {
		return false
	}
	delta, ok := moveDelta(cmd)
	if !ok {
		return false
	}
	c.must(c.store.Move(c.selected, delta))
	c.log.WithFields(logrus.Fields{"id": c.selected, "cmd": cmd.String(), "position": c.current().Position}).Debug("furniture moved")
	return true
}

// Rotate turns the selected instance by RotateStep around the vertical axis.
func (c *Controller) Rotate(cmd Command) bool {
	if c.selected == "" {
		return false
	}
	var yaw float32
	switch cmd {
	case RotatePositive:
		yaw = RotateStep
	case RotateNegative:
		yaw = -RotateStep
	default:
		return false
	}
	inst := c.current()
	rot := inst.Rotation
	rot[1] += yaw
	c.must(c.store.UpdateTransform(c.selected, furniture.TransformPatch{Rotation: &rot}))
	c.log.WithFields(logrus.Fields{"id": c.selected, "cmd": cmd.String(), "rotation_y": rot[1]}).Debug("furniture rotated")
	return true
}

// Delete removes the selected instance and returns to idle in one step.
// It reports false while idle.
func (c *Controller) Delete() bool {
	if c.selected == "" {
		return false
	}
	id := c.selected
	c.must(c.store.Remove(id))
	c.selected = ""
	c.setOrbit(true)
	c.log.WithField("id", id).Debug("furniture deleted")
	return true
}

func (c *Controller) current() furniture.Instance {
	inst, ok := c.store.Get(c.selected)
	if !ok {
		panic(fmt.Errorf("selection: %s: %w", c.selected, furniture.ErrUnknownInstance))
	}
	return inst
}

// must panics on registry errors: the controller only issues ids it knows are live,
// so a failure means the selection and registry disagree.
func (c *Controller) must(err error) {
	if err != nil {
		panic(fmt.Errorf("selection: %w", err))
	}
}

func (c *Controller) setOrbit(enabled bool) {
	if c.orbit == enabled {
		return
	}
	c.orbit = enabled
	if c.OnOrbitChange != nil {
		c.OnOrbitChange(enabled)
	}
}

func moveDelta(cmd Command) (geom.Vec3, bool) {
	switch cmd {
	case Forward:
		return geom.Vec3{0, 0, -MoveStep}, true
	case Backward:
		return geom.Vec3{0, 0, MoveStep}, true
	case Left:
		return geom.Vec3{-MoveStep, 0, 0}, true
	case Right:
		return geom.Vec3{MoveStep, 0, 0}, true
	case Up:
		return geom.Vec3{0, MoveStep, 0}, true
	case Down:
		return geom.Vec3{0, -MoveStep, 0}, true
	}
	return geom.Vec3{}, false
}
