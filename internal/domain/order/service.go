package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/XVaheBabayanX/OnlineStore/internal/domain/payment"
	"github.com/XVaheBabayanX/OnlineStore/internal/domain/product"
	"github.com/XVaheBabayanX/OnlineStore/internal/promo"
)

// Sentinel errors for checkout validation.
var ErrEmptyItems = fmt.Errorf("items required")

// ProductNotFoundError indicates a requested product does not exist in the
// catalog.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	ProductID string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %s", e.ProductID)
}

// LineItem is a requested product with a quantity.
type LineItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest holds the input for a checkout.
type CheckoutRequest struct {
	Items     []LineItem
	PromoCode string
	Method    payment.Method
}

// Receipt describes a completed checkout. Receipts are returned to the
// caller and never persisted.
type Receipt struct {
	ID        string
	Items     []LineItem
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	PromoCode string
	Method    payment.Method
	CreatedAt time.Time
}

// Service orchestrates a checkout: it resolves catalog products, builds an
// Order, applies the promo discount, and charges the selected payment
// processor.
type Service struct {
	products product.Repository
	promos   promo.Resolver
	payments *payment.Registry
	now      func() time.Time
}

// NewService creates a checkout Service with the required dependencies.
func NewService(
	products product.Repository,
	promos promo.Resolver,
	payments *payment.Registry,
) *Service {
	return &Service{
		products: products,
		promos:   promos,
		payments: payments,
		now:      time.Now,
	}
}

// Checkout validates the request, fetches products in a single batch,
// expands quantities into the order's product sequence, applies the promo
// discount, and charges the payment processor. It returns a receipt with
// the exact amounts involved.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*Receipt, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	ids := make([]string, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{ProductID: item.ProductID}
		}
		ids[i] = item.ProductID
	}

	// Resolve the processor before touching the catalog so a bad method
	// fails fast.
	method := req.Method
	if method == "" {
		method = payment.MethodCreditCard
	}
	processor, err := s.payments.Get(method)
	if err != nil {
		return nil, err
	}

	fetched, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get products")
	}

	byID := make(map[string]product.Product, len(fetched))
	for _, p := range fetched {
		byID[p.ID()] = p
	}

	// Quantity N means the product appears N times in the order sequence;
	// the subtotal invariant counts every occurrence.
	o := New()
	for _, item := range req.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
		for range item.Quantity {
			o.AddProduct(p)
		}
	}

	strategy, err := s.promos.Resolve(ctx, req.PromoCode)
	if err != nil {
		return nil, errors.Wrap(err, "resolve promo code")
	}
	o.SetDiscountStrategy(strategy)

	charged, err := o.Process(ctx, processor)
	if err != nil {
		return nil, errors.Wrap(err, "process payment")
	}

	subtotal := o.Subtotal()
	return &Receipt{
		ID:        uuid.New().String(),
		Items:     req.Items,
		Subtotal:  subtotal,
		Discount:  subtotal.Sub(charged).Round(2),
		Total:     charged.Round(2),
		PromoCode: req.PromoCode,
		Method:    method,
		CreatedAt: s.now(),
	}, nil
}
