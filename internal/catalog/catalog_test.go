package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
products:
  - id: desk-1
    name: Writing Desk
    category: office
    price: "249.90"
    model: models/desk.glb
    description: Compact desk.
  - id: chair-1
    name: Task Chair
    category: office
    price: "99"
    model: models/chair.glb
  - id: rug-1
    name: Wool Rug
    category: living room
    price: "180.00"
    model: models/rug.obj
`

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	defer c.Close()
	require.Greater(t, c.Len(), 0)
	for _, p := range c.All() {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Model)
		assert.True(t, p.Price.IsPositive(), p.ID)
	}
}

func TestParseAndLookup(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)
	defer c.Close()

	require.Equal(t, 3, c.Len())
	p, ok := c.Lookup("desk-1")
	require.True(t, ok)
	assert.Equal(t, "Writing Desk", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("249.90")))

	_, ok = c.Lookup("missing")
	assert.False(t, ok)

	ids := []string{}
	for _, p := range c.All() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"desk-1", "chair-1", "rug-1"}, ids, "file order")
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"missing id", "products:\n  - name: X\n", ErrInvalidProduct},
		{"missing name", "products:\n  - id: x\n", ErrInvalidProduct},
		{"duplicate", "products:\n  - id: x\n    name: A\n  - id: x\n    name: B\n", ErrDuplicateProduct},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse([]byte("products: [oops"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))
	c, err := Load(path)
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, 3, c.Len())

	_, err = Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSearch(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)
	defer c.Close()

	names := func(ps []Product) []string {
		out := []string{}
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}
	assert.Equal(t, []string{"Task Chair", "Writing Desk"}, names(c.Search("OFFICE")))
	assert.Equal(t, []string{"Wool Rug"}, names(c.Search("rug")))
	assert.Equal(t, []string{"Task Chair", "Wool Rug", "Writing Desk"}, names(c.Search("")))
	assert.Empty(t, c.Search("sofa"))

	// Repeated queries return the same answer whether or not the cache has it yet.
	for i := 0; i < 3; i++ {
		assert.Equal(t, []string{"Wool Rug"}, names(c.Search(" Rug ")))
	}
}

func TestProductRef(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)
	defer c.Close()

	p, _ := c.Lookup("desk-1")
	ref := p.Ref()
	assert.Equal(t, "desk-1", ref.ID)
	assert.Equal(t, "Writing Desk", ref.Name)
	assert.Equal(t, "models/desk.glb", ref.MeshRef)
	assert.Equal(t, "Compact desk.", ref.Description)
	assert.True(t, ref.Price.Equal(p.Price))
}
