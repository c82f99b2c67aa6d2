// Package catalog serves the static product catalog. Products are loaded
// once from embedded seed data; the catalog is immutable at runtime.
package catalog

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/XVaheBabayanX/OnlineStore/db"
	"github.com/XVaheBabayanX/OnlineStore/internal/domain/product"
)

// seedProduct mirrors one entry of the embedded products.json file.
type seedProduct struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

var _ product.Repository = (*Catalog)(nil)

// Catalog implements product.Repository over an in-memory product set.
type Catalog struct {
	byID  map[string]product.Product
	order []string
}

// Load builds a Catalog from the embedded seed data.
func Load() (*Catalog, error) {
	return Parse(db.ProductSeed)
}

// Parse builds a Catalog from raw seed JSON. Entries with duplicate or
// empty IDs, empty names, or negative prices are rejected.
func Parse(data []byte) (*Catalog, error) {
	var seed []seedProduct
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, errors.Wrap(err, "parse product seed")
	}

	c := &Catalog{byID: make(map[string]product.Product, len(seed))}
	for _, s := range seed {
		if s.ID == "" {
			return nil, errors.Errorf("product %q has no id", s.Name)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, errors.Errorf("duplicate product id %q", s.ID)
		}
		if s.Name == "" {
			return nil, errors.Wrapf(product.ErrEmptyName, "product %q", s.ID)
		}
		if s.Price.IsNegative() {
			return nil, errors.Wrapf(product.ErrNegativePrice, "product %q", s.ID)
		}

		c.byID[s.ID] = product.Restore(s.ID, s.Name, s.Category, s.Price)
		c.order = append(c.order, s.ID)
	}

	sort.Strings(c.order)
	return c, nil
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int { return len(c.byID) }

// List returns all products ordered by ID.
func (c *Catalog) List(_ context.Context) ([]product.Product, error) {
	out := make([]product.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out, nil
}

// GetByID returns a single product, or product.ErrNotFound.
func (c *Catalog) GetByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

// GetByIDs returns the products matching any of the given IDs. Unknown IDs
// are skipped; callers detect them by comparing the result set.
func (c *Catalog) GetByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	out := make([]product.Product, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := c.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
