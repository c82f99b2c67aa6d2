package order

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XVaheBabayanX/OnlineStore/internal/domain/discount"
	"github.com/XVaheBabayanX/OnlineStore/internal/domain/payment"
	"github.com/XVaheBabayanX/OnlineStore/internal/domain/product"
	"github.com/XVaheBabayanX/OnlineStore/internal/promo"
)

type stubProducts struct {
	byID map[string]product.Product
}

func newStubProducts(products ...product.Product) *stubProducts {
	m := make(map[string]product.Product, len(products))
	for _, p := range products {
		m[p.ID()] = p
	}
	return &stubProducts{byID: m}
}

func (s *stubProducts) List(context.Context) ([]product.Product, error) {
	out := make([]product.Product, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubProducts) GetByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

func (s *stubProducts) GetByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	out := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubResolver struct {
	strategies map[string]discount.Strategy
	err        error
}

func (s *stubResolver) Resolve(_ context.Context, code string) (discount.Strategy, error) {
	if s.err != nil {
		return nil, s.err
	}
	if code == "" {
		return discount.NoDiscount{}, nil
	}
	strategy, ok := s.strategies[code]
	if !ok {
		return nil, promo.ErrCodeNotFound
	}
	return strategy, nil
}

type serviceFixture struct {
	svc *Service
	out *bytes.Buffer
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	products := newStubProducts(
		product.Restore("laptop", "Laptop", "electronics", d("1000")),
		product.Restore("phone", "Phone", "electronics", d("500")),
		product.Restore("cable", "Cable", "accessories", d("9.99")),
	)

	resolver := &stubResolver{strategies: map[string]discount.Strategy{
		"TENOFF": tenPercent(t),
	}}

	var out bytes.Buffer
	svc := NewService(products, resolver, payment.NewRegistry(&out))
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	}

	return &serviceFixture{svc: svc, out: &out}
}

func TestService_Checkout(t *testing.T) {
	f := newFixture(t)

	receipt, err := f.svc.Checkout(context.Background(), CheckoutRequest{
		Items: []LineItem{
			{ProductID: "laptop", Quantity: 1},
			{ProductID: "phone", Quantity: 1},
		},
		PromoCode: "TENOFF",
		Method:    payment.MethodCreditCard,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ID)
	assert.True(t, d("1500").Equal(receipt.Subtotal), "subtotal %s", receipt.Subtotal)
	assert.True(t, d("150").Equal(receipt.Discount), "discount %s", receipt.Discount)
	assert.True(t, d("1350").Equal(receipt.Total), "total %s", receipt.Total)
	assert.Equal(t, "TENOFF", receipt.PromoCode)
	assert.Equal(t, payment.MethodCreditCard, receipt.Method)
	assert.Equal(t, time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC), receipt.CreatedAt)
	assert.Equal(t, "Processing credit card payment of $1350\n", f.out.String())
}

func TestService_CheckoutWithoutPromo(t *testing.T) {
	f := newFixture(t)

	receipt, err := f.svc.Checkout(context.Background(), CheckoutRequest{
		Items: []LineItem{{ProductID: "cable", Quantity: 2}},
	})

	require.NoError(t, err)
	assert.True(t, d("19.98").Equal(receipt.Subtotal))
	assert.True(t, receipt.Discount.IsZero())
	assert.True(t, d("19.98").Equal(receipt.Total))
	// Method defaults to credit card when the request leaves it empty.
	assert.Equal(t, payment.MethodCreditCard, receipt.Method)
	assert.Equal(t, "Processing credit card payment of $19.98\n", f.out.String())
}

func TestService_CheckoutPayPal(t *testing.T) {
	f := newFixture(t)

	receipt, err := f.svc.Checkout(context.Background(), CheckoutRequest{
		Items:  []LineItem{{ProductID: "phone", Quantity: 1}},
		Method: payment.MethodPayPal,
	})

	require.NoError(t, err)
	assert.Equal(t, payment.MethodPayPal, receipt.Method)
	assert.Equal(t, "Processing PayPal payment of $500\n", f.out.String())
}

func TestService_CheckoutQuantityExpansion(t *testing.T) {
	f := newFixture(t)

	receipt, err := f.svc.Checkout(context.Background(), CheckoutRequest{
		Items: []LineItem{{ProductID: "laptop", Quantity: 3}},
	})

	require.NoError(t, err)
	assert.True(t, d("3000").Equal(receipt.Subtotal))
}

func TestService_CheckoutEmptyItems(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Checkout(context.Background(), CheckoutRequest{})

	require.ErrorIs(t, err, ErrEmptyItems)
	assert.Empty(t, f.out.String())
}

func TestService_CheckoutInvalidQuantity(t *testing.T) {
	f := newFixture(t)

	for _, qty := range []int{0, -1} {
		_, err := f.svc.Checkout(context.Background(), CheckoutRequest{
			Items: []LineItem{{ProductID: "laptop", Quantity: qty}},
		})

		var invalidQty *InvalidQuantityError
		require.ErrorAs(t, err, &invalidQty, "quantity %d", qty)
		assert.Equal(t, "laptop", invalidQty.ProductID)
	}
	assert.Empty(t, f.out.String())
}

func TestService_CheckoutUnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Checkout(context.Background(), CheckoutRequest{
		Items: []LineItem{
			{ProductID: "laptop", Quantity: 1},
			{ProductID: "toaster", Quantity: 1},
		},
	})

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "toaster", notFound.ProductID)
	assert.Empty(t, f.out.String())
}

func TestService_CheckoutUnknownMethod(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Checkout(context.Background(), CheckoutRequest{
		Items:  []LineItem{{ProductID: "laptop", Quantity: 1}},
		Method: payment.Method("bitcoin"),
	})

	require.ErrorIs(t, err, payment.ErrUnknownMethod)
	assert.Empty(t, f.out.String())
}

func TestService_CheckoutUnknownPromoCode(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Checkout(context.Background(), CheckoutRequest{
		Items:     []LineItem{{ProductID: "laptop", Quantity: 1}},
		PromoCode: "BOGUS123",
	})

	require.ErrorIs(t, err, promo.ErrCodeNotFound)
	// The promo is resolved before the charge, so nothing is paid.
	assert.Empty(t, f.out.String())
}
