package selection

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-planner/internal/furniture"
	"room-planner/internal/geom"
	"room-planner/internal/placement"
)

func newController(t *testing.T) (*Controller, *furniture.Registry) {
	t.Helper()
	log, _ := test.NewNullLogger()
	reg := furniture.NewRegistry()
	return NewController(reg, log), reg
}

func requireConsistent(t *testing.T, c *Controller) {
	t.Helper()
	_, editing := c.Selected()
	require.Equal(t, !editing, c.OrbitEnabled(), "orbit must be enabled exactly when idle")
}

func position(t *testing.T, reg *furniture.Registry, id furniture.ID) geom.Vec3 {
	t.Helper()
	inst, ok := reg.Get(id)
	require.True(t, ok)
	return inst.Position
}

func TestStartsIdle(t *testing.T) {
	c, _ := newController(t)
	assert.False(t, c.Editing())
	assert.True(t, c.OrbitEnabled())
}

func TestSelectAndRetarget(t *testing.T) {
	c, reg := newController(t)
	a := reg.Add(furniture.CatalogRef{Name: "a"}, nil)
	b := reg.Add(furniture.CatalogRef{Name: "b"}, nil)

	c.Select(a)
	requireConsistent(t, c)
	got, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, a, got)

	c.Select(b)
	requireConsistent(t, c)
	got, _ = c.Selected()
	assert.Equal(t, b, got)

	c.Deselect()
	requireConsistent(t, c)
	assert.False(t, c.Editing())
}

func TestSelectUnknownPanics(t *testing.T) {
	c, _ := newController(t)
	assert.Panics(t, func() { c.Select("ghost") })
}

func TestMoveTable(t *testing.T) {
	tests := []struct {
		cmd  Command
		want geom.Vec3
	}{
		{Forward, geom.Vec3{0, 0, -0.1}},
		{Backward, geom.Vec3{0, 0, 0.1}},
		{Left, geom.Vec3{-0.1, 0, 0}},
		{Right, geom.Vec3{0.1, 0, 0}},
		{Up, geom.Vec3{0, 0.1, 0}},
		{Down, geom.Vec3{0, -0.1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.String(), func(t *testing.T) {
			c, reg := newController(t)
			id := reg.Add(furniture.CatalogRef{}, nil)
			c.Select(id)
			require.True(t, c.Apply(tt.cmd))
			assert.Equal(t, tt.want, position(t, reg, id))
			requireConsistent(t, c)
		})
	}
}

func TestMoveForwardRepeated(t *testing.T) {
	c, reg := newController(t)
	id := reg.Add(furniture.CatalogRef{}, nil)
	c.Select(id)

	c.Move(Forward)
	assert.Equal(t, geom.Vec3{0, 0, -0.1}, position(t, reg, id))
	for i := 0; i < 3; i++ {
		c.Move(Forward)
	}
	pos := position(t, reg, id)
	assert.Equal(t, float32(0), pos.X())
	assert.Equal(t, float32(0), pos.Y())
	assert.InDelta(t, -0.4, pos.Z(), 1e-6)
}

func TestMoveIsNotClamped(t *testing.T) {
	c, reg := newController(t)
	id := reg.Add(furniture.CatalogRef{}, nil)
	c.Select(id)
	for i := 0; i < 100; i++ {
		c.Move(Right)
	}
	assert.InDelta(t, 10, position(t, reg, id).X(), 1e-4)
}

func TestRotateFullTurn(t *testing.T) {
	c, reg := newController(t)
	id := reg.Add(furniture.CatalogRef{}, nil)
	c.Select(id)

	for i := 0; i < 4; i++ {
		require.True(t, c.Apply(RotatePositive))
	}
	inst, _ := reg.Get(id)
	assert.InDelta(t, math32.Pi, inst.Rotation.Y(), 1e-5)

	for i := 0; i < 4; i++ {
		c.Apply(RotatePositive)
	}
	inst, _ = reg.Get(id)
	assert.InDelta(t, 0, wrapAngle(inst.Rotation.Y()), 1e-5)
	assert.Equal(t, float32(0), inst.Rotation.X())
	assert.Equal(t, float32(0), inst.Rotation.Z())

	c.Apply(RotateNegative)
	inst, _ = reg.Get(id)
	assert.InDelta(t, 2*math32.Pi-math32.Pi/4, inst.Rotation.Y(), 1e-5)
	assert.Equal(t, geom.Vec3{}, inst.Position, "rotation leaves position alone")
}

func TestIdleCommandsAreNoops(t *testing.T) {
	c, reg := newController(t)
	id := reg.Add(furniture.CatalogRef{}, nil)

	for _, cmd := range Commands() {
		assert.False(t, c.Apply(cmd), cmd.String())
	}
	assert.False(t, c.PlaceAt(placement.At(1, 1)))
	assert.False(t, c.Delete())
	c.Deselect()

	inst, _ := reg.Get(id)
	assert.Equal(t, geom.Vec3{}, inst.Position)
	assert.Equal(t, geom.Vec3{}, inst.Rotation)
	assert.Equal(t, 1, reg.Len())
	requireConsistent(t, c)
}

func TestPlaceAt(t *testing.T) {
	c, reg := newController(t)
	id := reg.Add(furniture.CatalogRef{}, nil)
	c.Select(id)

	require.True(t, c.PlaceAt(placement.Spot{Position: geom.Vec3{1, 0.01, 1}}))
	assert.False(t, c.Editing())
	assert.Equal(t, geom.Vec3{1, 0.01, 1}, position(t, reg, id))
	requireConsistent(t, c)
}

func TestDelete(t *testing.T) {
	c, reg := newController(t)
	a := reg.Add(furniture.CatalogRef{}, nil)
	b := reg.Add(furniture.CatalogRef{}, nil)

	c.Select(a)
	require.True(t, c.Delete())
	assert.False(t, c.Editing())
	requireConsistent(t, c)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 0, reg.IndexOf(b))
}

// countingStore records Move calls and can be told to fail them.
type countingStore struct {
	*furniture.Registry
	moves []geom.Vec3
	fail  bool
}

func (s *countingStore) Move(id furniture.ID, delta geom.Vec3) error {
	if s.fail {
		return furniture.ErrUnknownInstance
	}
	s.moves = append(s.moves, delta)
	return s.Registry.Move(id, delta)
}

func TestMoveGoesThroughStore(t *testing.T) {
	log, _ := test.NewNullLogger()
	store := &countingStore{Registry: furniture.NewRegistry()}
	c := NewController(store, log)
	id := store.Add(furniture.CatalogRef{}, nil)
	c.Select(id)

	require.True(t, c.Move(Left))
	require.True(t, c.Move(Up))
	assert.Equal(t, []geom.Vec3{{-MoveStep, 0, 0}, {0, MoveStep, 0}}, store.moves)
	assert.Equal(t, geom.Vec3{-MoveStep, MoveStep, 0}, position(t, store.Registry, id))

	store.fail = true
	assert.Panics(t, func() { c.Move(Right) })
}

func TestOrbitHook(t *testing.T) {
	c, reg := newController(t)
	var changes []bool
	c.OnOrbitChange = func(enabled bool) { changes = append(changes, enabled) }

	a := reg.Add(furniture.CatalogRef{}, nil)
	b := reg.Add(furniture.CatalogRef{}, nil)
	c.Select(a)
	c.Select(b)
	c.Move(Up)
	c.PlaceAt(placement.At(0, 0))
	c.Deselect()

	assert.Equal(t, []bool{false, true}, changes)
}

func TestParseCommand(t *testing.T) {
	for _, cmd := range Commands() {
		got, err := ParseCommand(cmd.String())
		require.NoError(t, err)
		assert.Equal(t, cmd, got)
	}
	_, err := ParseCommand("jump")
	assert.Error(t, err)
	assert.True(t, RotateNegative.IsRotation())
	assert.False(t, Up.IsRotation())
}

// wrapAngle maps a to (-π, π] so angles a full turn apart compare equal.
func wrapAngle(a float32) float32 {
	a = math32.Mod(a, 2*math32.Pi)
	if a > math32.Pi {
		a -= 2 * math32.Pi
	} else if a <= -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}
