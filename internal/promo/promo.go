// Package promo resolves promotional codes into discount strategies.
package promo

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/XVaheBabayanX/OnlineStore/internal/domain/discount"
)

// Type enumerates the supported promo rule kinds.
type Type string

const (
	// TypePercentage maps to a percentage discount on the order total.
	TypePercentage Type = "percentage"
	// TypeFixed maps to a fixed amount off, capped at the order total.
	TypeFixed Type = "fixed"
)

// ErrCodeNotFound is returned when a promo code does not exist or is
// inactive.
var ErrCodeNotFound = errors.New("promo code not found")

// Rule defines the discount behaviour attached to a promo code.
type Rule struct {
	Code        string
	Type        Type
	Value       decimal.Decimal
	Description string
	Active      bool
}

// Strategy maps the rule onto a discount strategy. Rule values are validated
// here, so a corrupt rule (negative value, percent above 100) surfaces as an
// error instead of a bogus discount.
func (r Rule) Strategy() (discount.Strategy, error) {
	switch r.Type {
	case TypePercentage:
		d, err := discount.NewPercentage(r.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %s", r.Code)
		}
		return d, nil
	case TypeFixed:
		d, err := discount.NewAmount(r.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %s", r.Code)
		}
		return d, nil
	default:
		return nil, errors.Errorf("unsupported promo rule type: %q", r.Type)
	}
}

// Repository provides lookup of promo rules.
type Repository interface {
	// FindByCode returns the active rule for code, or ErrCodeNotFound.
	FindByCode(ctx context.Context, code string) (*Rule, error)
	// ListCodes returns all active codes, used to seed lookup filters.
	ListCodes(ctx context.Context) ([]string, error)
}

// MemoryRepository is a map-backed Repository used in tests and as the seed
// rule set for the ingest tool.
type MemoryRepository struct {
	rules map[string]Rule
}

// NewMemoryRepository creates a MemoryRepository holding the given rules.
func NewMemoryRepository(rules ...Rule) *MemoryRepository {
	m := make(map[string]Rule, len(rules))
	for _, r := range rules {
		m[r.Code] = r
	}
	return &MemoryRepository{rules: m}
}

// FindByCode returns the rule for code when it exists and is active.
func (r *MemoryRepository) FindByCode(_ context.Context, code string) (*Rule, error) {
	rule, ok := r.rules[code]
	if !ok || !rule.Active {
		return nil, ErrCodeNotFound
	}
	return &rule, nil
}

// ListCodes returns every active code.
func (r *MemoryRepository) ListCodes(_ context.Context) ([]string, error) {
	codes := make([]string, 0, len(r.rules))
	for code, rule := range r.rules {
		if rule.Active {
			codes = append(codes, code)
		}
	}
	return codes, nil
}
