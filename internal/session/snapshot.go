package session

import (
	"room-planner/internal/furniture"
	"room-planner/internal/placement"
	"room-planner/internal/room"
)

// Snapshot is a copy of everything the renderer draws in one frame.
type Snapshot struct {
	Room         room.Room
	Furniture    []furniture.Instance
	Selected     int // -1 when nothing is selected
	Spots        []placement.Spot
	OrbitEnabled bool
}

// Room returns a copy of the room.
func (s *Session) Room() room.Room {
	return s.room
}

// Furniture returns a copy of the placed furniture in order.
func (s *Session) Furniture() []furniture.Instance {
	return s.registry.List()
}

// Selection returns the list position of the selected instance.
func (s *Session) Selection() (int, bool) {
	id, ok := s.ctrl.Selected()
	if !ok {
		return -1, false
	}
	return s.registry.IndexOf(id), true
}

// SelectedID returns the id of the selected instance.
func (s *Session) SelectedID() (furniture.ID, bool) {
	return s.ctrl.Selected()
}

// SelectedInstance returns a copy of the selected instance.
func (s *Session) SelectedInstance() (furniture.Instance, bool) {
	id, ok := s.ctrl.Selected()
	if !ok {
		return furniture.Instance{}, false
	}
	return s.registry.Get(id)
}

// PlacementGrid returns the spots for the current room size, or nil while idle.
// It is recomputed on every call.
func (s *Session) PlacementGrid() []placement.Spot {
	if !s.ctrl.Editing() {
		return nil
	}
	return placement.Default(s.room.Width, s.room.Length)
}

// OrbitEnabled reports whether the camera may orbit freely.
func (s *Session) OrbitEnabled() bool {
	return s.ctrl.OrbitEnabled()
}

// Snapshot bundles the read accessors.
func (s *Session) Snapshot() Snapshot {
	sel, _ := s.Selection()
	return Snapshot{
		Room:         s.Room(),
		Furniture:    s.Furniture(),
		Selected:     sel,
		Spots:        s.PlacementGrid(),
		OrbitEnabled: s.OrbitEnabled(),
	}
}
