// Package catalog loads the product definitions furniture is placed from.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"room-planner/internal/furniture"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

var (
	// ErrInvalidProduct is returned for a product without an id or name.
	ErrInvalidProduct = errors.New("catalog: invalid product")
	// ErrDuplicateProduct is returned when two products share an id.
	ErrDuplicateProduct = errors.New("catalog: duplicate product id")
)

// Product is one catalog entry as written in the catalog YAML file.
type Product struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Category    string          `yaml:"category,omitempty"`
	Price       decimal.Decimal `yaml:"price"`
	Model       string          `yaml:"model"`
	Description string          `yaml:"description,omitempty"`
}

// Ref copies the fields an instance keeps into a furniture.CatalogRef.
func (p Product) Ref() furniture.CatalogRef {
	var ref furniture.CatalogRef
	// Same-named fields (ID, Name, Price, Description) copy directly; Model maps to MeshRef.
	if err := copier.Copy(&ref, &p); err != nil {
		ref = furniture.CatalogRef{ID: p.ID, Name: p.Name, Price: p.Price, Description: p.Description}
	}
	ref.MeshRef = p.Model
	return ref
}

type file struct {
	Products []Product `yaml:"products"`
}

const (
	searchCacheCounters = 1000
	searchCacheMaxCost  = 1 << 16
)

// Catalog is an immutable set of products in file order.
type Catalog struct {
	products []Product
	byID     map[string]int
	search   *ristretto.Cache[string, []Product]
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog YAML. Every product needs a unique id and a name.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	c := &Catalog{
		products: make([]Product, 0, len(f.Products)),
		byID:     make(map[string]int, len(f.Products)),
	}
	for i, p := range f.Products {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" || strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("product %d: %w", i+1, ErrInvalidProduct)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("product %q: %w", p.ID, ErrDuplicateProduct)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, []Product]{
		NumCounters: searchCacheCounters,
		MaxCost:     searchCacheMaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: search cache: %w", err)
	}
	c.search = cache
	return c, nil
}

// Close releases the search cache.
func (c *Catalog) Close() {
	if c.search != nil {
		c.search.Close()
	}
}

// Lookup returns the product with the given id.
func (c *Catalog) Lookup(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// All returns every product in file order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Search returns products whose name, id or category contains query, ignoring case,
// sorted by name. An empty query matches everything.
func (c *Catalog) Search(query string) []Product {
	key := strings.ToLower(strings.TrimSpace(query))
	if hit, ok := c.search.Get(key); ok {
		return append([]Product(nil), hit...)
	}
	var out []Product
	for _, p := range c.products {
		if key == "" ||
			strings.Contains(strings.ToLower(p.Name), key) ||
			strings.Contains(strings.ToLower(p.ID), key) ||
			strings.Contains(strings.ToLower(p.Category), key) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	c.search.Set(key, out, int64(len(out)+1))
	return append([]Product(nil), out...)
}
