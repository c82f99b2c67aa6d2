// Package order holds the order aggregate and the checkout service built on
// top of it.
package order

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/XVaheBabayanX/OnlineStore/internal/domain/discount"
	"github.com/XVaheBabayanX/OnlineStore/internal/domain/payment"
	"github.com/XVaheBabayanX/OnlineStore/internal/domain/product"
)

// Order accumulates products and an optional discount strategy, and
// delegates payment of the discounted total to a caller-supplied processor.
//
// An Order is a plain mutable accumulator: it has no lifecycle states and
// Process can be called any number of times. Processing never mutates the
// order, but every call charges the processor again.
type Order struct {
	products []product.Product
	strategy discount.Strategy
}

// New creates an empty Order with no discount strategy.
func New() *Order {
	return &Order{}
}

// AddProduct appends a product to the order. Duplicates are allowed and each
// occurrence counts towards the total.
func (o *Order) AddProduct(p product.Product) {
	o.products = append(o.products, p)
}

// SetDiscountStrategy replaces the current discount strategy. Passing nil
// clears it; an order without a strategy is processed at the full subtotal.
func (o *Order) SetDiscountStrategy(s discount.Strategy) {
	o.strategy = s
}

// Products returns a copy of the ordered product sequence.
func (o *Order) Products() []product.Product {
	out := make([]product.Product, len(o.products))
	copy(out, o.products)
	return out
}

// Subtotal returns the exact sum of all contained product prices in
// insertion order.
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.products {
		total = total.Add(p.Price())
	}
	return total
}

// Total returns the subtotal with the discount strategy applied, or the
// subtotal itself when no strategy is set.
func (o *Order) Total() decimal.Decimal {
	total := o.Subtotal()
	if o.strategy != nil {
		total = o.strategy.Apply(total)
	}
	return total
}

// Process computes the discounted total and forwards it to the payment
// processor. It returns the charged amount. The order itself is left
// untouched, so processing twice performs two payments of the same amount.
func (o *Order) Process(ctx context.Context, processor payment.Processor) (decimal.Decimal, error) {
	total := o.Total()
	if err := processor.ProcessPayment(ctx, total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
