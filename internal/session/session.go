// Package session composes the room, the furniture registry, the placement grid and
// the selection controller into the scene state the planner UI and renderer use.
//
// A Session is not safe for concurrent use. All commands are expected to run on the
// frame loop, one at a time, each fully applied before the next.
package session

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"room-planner/internal/furniture"
	"room-planner/internal/placement"
	"room-planner/internal/room"
	"room-planner/internal/selection"
)

var (
	// ErrIndexOutOfRange is returned when a caller selects a position that holds no furniture.
	ErrIndexOutOfRange = furniture.ErrIndexOutOfRange
	// ErrUnknownInstance is returned when a caller selects an id that is not placed.
	ErrUnknownInstance = furniture.ErrUnknownInstance
	// ErrAlreadyBootstrapped is returned by a second call to Bootstrap.
	ErrAlreadyBootstrapped = errors.New("session: handoff already consumed")
)

// Customizations are the options a shopper picked on the product page.
type Customizations struct {
	Color *room.Color
	Scale *float32
}

// Handoff is the "try this product in my room" payload passed in when the planner opens.
type Handoff struct {
	Product        furniture.CatalogRef
	Customizations Customizations
}

// Session is the scene: one room, its furniture and the current selection.
type Session struct {
	log          logrus.FieldLogger
	room         room.Room
	registry     *furniture.Registry
	ctrl         *selection.Controller
	bootstrapped bool
}

// New returns a session with a default room, no furniture and nothing selected.
func New(log logrus.FieldLogger) *Session {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	reg := furniture.NewRegistry()
	return &Session{
		log:      log,
		room:     room.New(),
		registry: reg,
		ctrl:     selection.NewController(reg, log),
	}
}

// OnOrbitChange registers fn to be called whenever camera orbiting is enabled or disabled.
func (s *Session) OnOrbitChange(fn func(enabled bool)) {
	s.ctrl.OnOrbitChange = fn
}

// Bootstrap places the handed-off product with its customizations. It may be called
// once per session; later calls return ErrAlreadyBootstrapped.
func (s *Session) Bootstrap(h Handoff) (furniture.ID, error) {
	if s.bootstrapped {
		return "", ErrAlreadyBootstrapped
	}
	s.bootstrapped = true
	id := s.registry.Add(h.Product, &furniture.Customization{
		Color: h.Customizations.Color,
		Scale: h.Customizations.Scale,
	})
	s.log.WithFields(logrus.Fields{"id": id, "product": h.Product.ID}).Info("handoff placed")
	return id, nil
}

// AddFurniture places a new instance of ref at the origin. The new instance is last
// in the furniture list. Selection is unchanged.
func (s *Session) AddFurniture(ref furniture.CatalogRef) furniture.ID {
	id := s.registry.Add(ref, nil)
	s.log.WithFields(logrus.Fields{"id": id, "product": ref.ID}).Info("furniture added")
	return id
}

// DeleteSelected removes the selected instance and returns to idle. No-op while idle.
func (s *Session) DeleteSelected() {
	s.ctrl.Delete()
}

// SelectFurniture selects the instance at position i of the furniture list.
// An invalid index returns ErrIndexOutOfRange and leaves the selection unchanged.
func (s *Session) SelectFurniture(i int) error {
	id, err := s.registry.IDAt(i)
	if err != nil {
		return fmt.Errorf("select furniture: %w", err)
	}
	s.ctrl.Select(id)
	return nil
}

// SelectByID selects the instance with the given id.
func (s *Session) SelectByID(id furniture.ID) error {
	if _, ok := s.registry.Get(id); !ok {
		return fmt.Errorf("select %s: %w", id, ErrUnknownInstance)
	}
	s.ctrl.Select(id)
	return nil
}

// Deselect returns to idle, e.g. after a click on empty canvas.
func (s *Session) Deselect() {
	s.ctrl.Deselect()
}

// HandleDirectionalCommand moves or rotates the selected instance. Ignored while idle.
func (s *Session) HandleDirectionalCommand(cmd selection.Command) {
	s.ctrl.Apply(cmd)
}

// HandlePlacementClick drops the selected instance onto spot and returns to idle.
// Ignored while idle.
func (s *Session) HandlePlacementClick(spot placement.Spot) {
	s.ctrl.PlaceAt(spot)
}

// ResizeRoom changes one room dimension by delta, clamped to its bounds.
func (s *Session) ResizeRoom(axis room.Axis, delta float32) {
	s.room.Resize(axis, delta)
	s.log.WithFields(logrus.Fields{"axis": axis.String(), "value": s.room.Dimension(axis)}).Debug("room resized")
}

// SetWallColor replaces the wall color.
func (s *Session) SetWallColor(c room.Color) {
	s.room.SetWallColor(c)
	s.log.WithField("color", c).Debug("wall color set")
}

// SetSelectedColor paints the selected instance and switches its custom color on.
// Ignored while idle.
func (s *Session) SetSelectedColor(c room.Color) {
	id, ok := s.ctrl.Selected()
	if !ok {
		return
	}
	s.mustAppearance(id, furniture.AppearancePatch{Color: &c})
}

// SetSelectedCustomColor toggles the selected instance's custom color. Switching it
// off resets the color to the default. Ignored while idle.
func (s *Session) SetSelectedCustomColor(on bool) {
	id, ok := s.ctrl.Selected()
	if !ok {
		return
	}
	s.mustAppearance(id, furniture.AppearancePatch{UseCustomColor: &on})
}

func (s *Session) mustAppearance(id furniture.ID, p furniture.AppearancePatch) {
	if err := s.registry.UpdateAppearance(id, p); err != nil {
		panic(fmt.Errorf("session: %w", err))
	}
	s.log.WithField("id", id).Debug("appearance updated")
}
