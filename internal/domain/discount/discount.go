// Package discount defines the substitutable pricing policies applied to an
// order total before payment.
package discount

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ErrPercentOutOfRange is returned when a percentage discount is constructed
// outside the [0, 100] range. Out-of-range values fail construction instead
// of being clamped.
var ErrPercentOutOfRange = errors.New("discount percent must be between 0 and 100")

// Strategy transforms a pre-discount total into a post-discount total.
// Implementations are immutable after construction and safe to share between
// callers and orders.
type Strategy interface {
	Apply(total decimal.Decimal) decimal.Decimal
}

// NoDiscount leaves the total unchanged.
type NoDiscount struct{}

// Apply returns the total as-is.
func (NoDiscount) Apply(total decimal.Decimal) decimal.Decimal { return total }

// Percentage reduces the total by a fixed percentage.
type Percentage struct {
	percent decimal.Decimal
}

// NewPercentage creates a Percentage discount. The percent must be within
// [0, 100].
func NewPercentage(percent decimal.Decimal) (Percentage, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return Percentage{}, ErrPercentOutOfRange
	}
	return Percentage{percent: percent}, nil
}

// Percent returns the configured percentage.
func (d Percentage) Percent() decimal.Decimal { return d.percent }

// Apply returns total - total*percent/100.
func (d Percentage) Apply(total decimal.Decimal) decimal.Decimal {
	return total.Sub(total.Mul(d.percent).Div(hundred))
}

// Amount reduces the total by a fixed monetary amount, capped at the total
// so the result never goes negative.
type Amount struct {
	value decimal.Decimal
}

// NewAmount creates an Amount discount. Negative values fail construction.
func NewAmount(value decimal.Decimal) (Amount, error) {
	if value.IsNegative() {
		return Amount{}, errors.New("discount amount must not be negative")
	}
	return Amount{value: value}, nil
}

// Value returns the configured amount.
func (d Amount) Value() decimal.Decimal { return d.value }

// Apply subtracts the amount, flooring the result at zero.
func (d Amount) Apply(total decimal.Decimal) decimal.Decimal {
	result := total.Sub(decimal.Min(d.value, total))
	if result.IsNegative() {
		return decimal.Zero
	}
	return result
}
