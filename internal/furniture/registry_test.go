package furniture

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-planner/internal/geom"
	"room-planner/internal/room"
)

var sofa = CatalogRef{
	ID:      "sofa-01",
	Name:    "Nordic Sofa",
	Price:   decimal.RequireFromString("899.00"),
	MeshRef: "assets/models/sofa.glb",
}

// sequentialRegistry assigns ids f1, f2, ... so tests can name them.
func sequentialRegistry() *Registry {
	r := NewRegistry()
	n := 0
	r.newID = func() ID {
		n++
		return ID(fmt.Sprintf("f%d", n))
	}
	return r
}

func TestAddDefaults(t *testing.T) {
	r := sequentialRegistry()
	id := r.Add(sofa, nil)

	inst, ok := r.Get(id)
	require.True(t, ok)
	assert.Equal(t, geom.Vec3{}, inst.Position)
	assert.Equal(t, geom.Vec3{}, inst.Rotation)
	assert.Equal(t, float32(1), inst.Scale)
	assert.Equal(t, DefaultColor, inst.Color)
	assert.False(t, inst.UseCustomColor)
	assert.Equal(t, "Nordic Sofa", inst.Catalog.Name)
	assert.True(t, inst.Catalog.Price.Equal(decimal.NewFromInt(899)))
}

func TestAddAppendsLast(t *testing.T) {
	r := sequentialRegistry()
	a := r.Add(sofa, nil)
	b := r.Add(sofa, nil)
	assert.Equal(t, 0, r.IndexOf(a))
	assert.Equal(t, 1, r.IndexOf(b))
	assert.Equal(t, 2, r.Len())
}

func TestAddUUIDsAreUnique(t *testing.T) {
	r := NewRegistry()
	seen := map[ID]bool{}
	for i := 0; i < 100; i++ {
		id := r.Add(sofa, nil)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestAddWithCustomization(t *testing.T) {
	r := sequentialRegistry()
	color := room.Color("#AA0000")
	scale := float32(1.5)
	id := r.Add(sofa, &Customization{Color: &color, Scale: &scale})

	inst, _ := r.Get(id)
	assert.Equal(t, float32(1.5), inst.Scale)
	assert.Equal(t, color, inst.Color)
	assert.True(t, inst.UseCustomColor)

	scaleOnly := r.Add(sofa, &Customization{Scale: &scale})
	inst, _ = r.Get(scaleOnly)
	assert.False(t, inst.UseCustomColor)
	assert.Equal(t, DefaultColor, inst.Color)
}

func TestRemoveShiftsLaterInstances(t *testing.T) {
	r := sequentialRegistry()
	a := r.Add(sofa, nil)
	b := r.Add(sofa, nil)
	c := r.Add(sofa, nil)

	require.NoError(t, r.Remove(b))
	assert.Equal(t, 0, r.IndexOf(a))
	assert.Equal(t, -1, r.IndexOf(b))
	assert.Equal(t, 1, r.IndexOf(c))

	err := r.Remove(b)
	assert.ErrorIs(t, err, ErrUnknownInstance)
}

func TestUpdateTransformMerges(t *testing.T) {
	r := sequentialRegistry()
	id := r.Add(sofa, nil)

	pos := geom.Vec3{1, 0.01, 1}
	require.NoError(t, r.UpdateTransform(id, TransformPatch{Position: &pos}))
	rot := geom.Vec3{0, 1, 0}
	require.NoError(t, r.UpdateTransform(id, TransformPatch{Rotation: &rot}))
	bad := float32(-2)
	require.NoError(t, r.UpdateTransform(id, TransformPatch{Scale: &bad}))

	inst, _ := r.Get(id)
	assert.Equal(t, pos, inst.Position)
	assert.Equal(t, rot, inst.Rotation)
	assert.Equal(t, float32(1), inst.Scale)

	err := r.UpdateTransform("missing", TransformPatch{Position: &pos})
	assert.ErrorIs(t, err, ErrUnknownInstance)
}

func TestUpdateAppearance(t *testing.T) {
	on, off := true, false
	red := room.Color("#FF0000")

	tests := []struct {
		name      string
		patches   []AppearancePatch
		wantColor room.Color
		wantOn    bool
	}{
		{"color turns custom on", []AppearancePatch{{Color: &red}}, red, true},
		{"enable keeps color", []AppearancePatch{{UseCustomColor: &on}}, DefaultColor, true},
		{"disable resets color", []AppearancePatch{{Color: &red}, {UseCustomColor: &off}}, DefaultColor, false},
		{"re-enable starts from default", []AppearancePatch{{Color: &red}, {UseCustomColor: &off}, {UseCustomColor: &on}}, DefaultColor, true},
		{"color with toggle off resets", []AppearancePatch{{Color: &red, UseCustomColor: &off}}, DefaultColor, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sequentialRegistry()
			id := r.Add(sofa, nil)
			for _, p := range tt.patches {
				require.NoError(t, r.UpdateAppearance(id, p))
			}
			inst, _ := r.Get(id)
			assert.Equal(t, tt.wantColor, inst.Color)
			assert.Equal(t, tt.wantOn, inst.UseCustomColor)
		})
	}
}

func TestMove(t *testing.T) {
	r := sequentialRegistry()
	id := r.Add(sofa, nil)
	require.NoError(t, r.Move(id, geom.Vec3{1, 2, 3}))
	require.NoError(t, r.Move(id, geom.Vec3{1, 0, -1}))
	inst, _ := r.Get(id)
	assert.Equal(t, geom.Vec3{2, 2, 2}, inst.Position)
	assert.ErrorIs(t, r.Move("nope", geom.Vec3{}), ErrUnknownInstance)
}

func TestIDAt(t *testing.T) {
	r := sequentialRegistry()
	a := r.Add(sofa, nil)
	got, err := r.IDAt(0)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = r.IDAt(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = r.IDAt(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestListIsACopy(t *testing.T) {
	r := sequentialRegistry()
	id := r.Add(sofa, nil)
	list := r.List()
	list[0].Scale = 9
	inst, _ := r.Get(id)
	assert.Equal(t, float32(1), inst.Scale)
}
