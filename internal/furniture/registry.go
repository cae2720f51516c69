package furniture

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"room-planner/internal/geom"
)

var (
	// ErrUnknownInstance is returned for an id that does not name a live instance.
	ErrUnknownInstance = errors.New("furniture: unknown instance")
	// ErrIndexOutOfRange is returned by IDAt for an index past the end of the list.
	ErrIndexOutOfRange = errors.New("furniture: index out of range")
)

// Registry owns the placed furniture in insertion order. Removing an instance shifts
// every later instance down by one position.
type Registry struct {
	items []Instance
	newID func() ID
}

// NewRegistry returns an empty registry that assigns random UUIDs.
func NewRegistry() *Registry {
	return &Registry{newID: func() ID { return ID(uuid.NewString()) }}
}

// Add appends a new instance at the origin with zero rotation, scale 1 and the default
// color. c may pre-seed scale and color; a seeded color turns custom color on.
// The new instance is always last.
func (r *Registry) Add(ref CatalogRef, c *Customization) ID {
	inst := Instance{
		ID:      r.newID(),
		Catalog: ref,
		Scale:   1,
		Color:   DefaultColor,
	}
	if c != nil {
		if c.Scale != nil && *c.Scale > 0 {
			inst.Scale = *c.Scale
		}
		if c.Color != nil && *c.Color != "" {
			inst.Color = *c.Color
			inst.UseCustomColor = true
		}
	}
	r.items = append(r.items, inst)
	return inst.ID
}

// Remove deletes the instance with the given id.
func (r *Registry) Remove(id ID) error {
	i := r.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrUnknownInstance)
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

// UpdateTransform merges p into the instance's position, rotation and scale.
// A non-positive scale is ignored.
func (r *Registry) UpdateTransform(id ID, p TransformPatch) error {
	inst, err := r.lookup(id)
	if err != nil {
		return fmt.Errorf("update transform: %w", err)
	}
	if p.Position != nil {
		inst.Position = *p.Position
	}
	if p.Rotation != nil {
		inst.Rotation = *p.Rotation
	}
	if p.Scale != nil && *p.Scale > 0 {
		inst.Scale = *p.Scale
	}
	return nil
}

// UpdateAppearance merges p into the instance's color state. Switching custom color
// off resets the color to DefaultColor, so switching it back on starts from white.
// Setting a color without touching the toggle switches custom color on.
func (r *Registry) UpdateAppearance(id ID, p AppearancePatch) error {
	inst, err := r.lookup(id)
	if err != nil {
		return fmt.Errorf("update appearance: %w", err)
	}
	if p.Color != nil {
		inst.Color = *p.Color
		if p.UseCustomColor == nil {
			inst.UseCustomColor = true
		}
	}
	if p.UseCustomColor != nil {
		inst.UseCustomColor = *p.UseCustomColor
		if !inst.UseCustomColor {
			inst.Color = DefaultColor
		}
	}
	return nil
}

// Move adds delta to the instance's position.
func (r *Registry) Move(id ID, delta geom.Vec3) error {
	inst, err := r.lookup(id)
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	inst.Position = inst.Position.Add(delta)
	return nil
}

// Get returns a copy of the instance with the given id.
func (r *Registry) Get(id ID) (Instance, bool) {
	i := r.IndexOf(id)
	if i < 0 {
		return Instance{}, false
	}
	return r.items[i], true
}

// IndexOf returns the current position of id, or -1.
func (r *Registry) IndexOf(id ID) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

// IDAt returns the id of the instance at position i.
func (r *Registry) IDAt(i int) (ID, error) {
	if i < 0 || i >= len(r.items) {
		return "", fmt.Errorf("index %d of %d: %w", i, len(r.items), ErrIndexOutOfRange)
	}
	return r.items[i].ID, nil
}

// Len returns the number of placed instances.
func (r *Registry) Len() int {
	return len(r.items)
}

// List returns a copy of all instances in order.
func (r *Registry) List() []Instance {
	out := make([]Instance, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Registry) lookup(id ID) (*Instance, error) {
	i := r.IndexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%s: %w", id, ErrUnknownInstance)
	}
	return &r.items[i], nil
}
