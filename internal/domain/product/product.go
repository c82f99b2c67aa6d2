package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for catalog lookups and product construction.
var (
	// ErrNotFound is returned when a requested product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrEmptyName is returned when a product is constructed without a name.
	ErrEmptyName = errors.New("product name required")
	// ErrNegativePrice is returned when a product is constructed with a
	// negative price.
	ErrNegativePrice = errors.New("product price must not be negative")
)

// Product is an immutable catalog item. Once constructed it never changes;
// orders hold products by value.
type Product struct {
	id       string
	name     string
	price    decimal.Decimal
	category string
}

// New creates a Product with the given name and price. It rejects empty
// names and negative prices; zero-priced products are allowed.
func New(name string, price decimal.Decimal) (Product, error) {
	if name == "" {
		return Product{}, ErrEmptyName
	}
	if price.IsNegative() {
		return Product{}, ErrNegativePrice
	}
	return Product{name: name, price: price}, nil
}

// Restore rebuilds a Product from trusted catalog data. Repositories use it
// to materialize rows without re-running construction validation.
func Restore(id, name, category string, price decimal.Decimal) Product {
	return Product{id: id, name: name, price: price, category: category}
}

// ID returns the catalog identifier, empty for ad-hoc products.
func (p Product) ID() string { return p.id }

// Name returns the product name.
func (p Product) Name() string { return p.name }

// Price returns the unit price.
func (p Product) Price() decimal.Decimal { return p.price }

// Category returns the catalog category, empty for ad-hoc products.
func (p Product) Category() string { return p.category }

// Repository defines read operations for the product catalog. The catalog is
// never written at runtime.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
}
