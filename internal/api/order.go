package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/XVaheBabayanX/OnlineStore/internal/domain/order"
	"github.com/XVaheBabayanX/OnlineStore/internal/domain/payment"
	"github.com/XVaheBabayanX/OnlineStore/internal/promo"
)

type orderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type orderRequest struct {
	Items         []orderItemRequest `json:"items"`
	PromoCode     string             `json:"promoCode,omitempty"`
	PaymentMethod string             `json:"paymentMethod,omitempty"`
}

type orderResponse struct {
	ID            string             `json:"id"`
	Items         []orderItemRequest `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	PromoCode     string             `json:"promoCode,omitempty"`
	PaymentMethod string             `json:"paymentMethod"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// placeOrder decodes the checkout request, delegates to the checkout
// service, and maps the receipt (or error) onto the JSON response.
func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]order.LineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = order.LineItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	ctx := r.Context()
	receipt, err := h.checkout.Checkout(ctx, order.CheckoutRequest{
		Items:     items,
		PromoCode: req.PromoCode,
		Method:    payment.Method(req.PaymentMethod),
	})
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("order.id", receipt.ID),
		attribute.String("order.total", receipt.Total.String()),
	)
	h.ordersPlaced.Add(ctx, 1, metric.WithAttributes(
		attribute.String("payment.method", string(receipt.Method)),
	))

	respItems := make([]orderItemRequest, len(receipt.Items))
	for i, item := range receipt.Items {
		respItems[i] = orderItemRequest{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	writeJSON(w, http.StatusOK, orderResponse{
		ID:            receipt.ID,
		Items:         respItems,
		Subtotal:      receipt.Subtotal,
		Discount:      receipt.Discount,
		Total:         receipt.Total,
		PromoCode:     receipt.PromoCode,
		PaymentMethod: string(receipt.Method),
		CreatedAt:     receipt.CreatedAt,
	})
}

// writeOrderError converts checkout errors into JSON responses.
func (h *Handler) writeOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		iqErr  *order.InvalidQuantityError
		pnfErr *order.ProductNotFoundError
	)

	switch {
	case errors.Is(err, order.ErrEmptyItems):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &iqErr):
		writeError(w, http.StatusUnprocessableEntity, iqErr.Error())
	case errors.As(err, &pnfErr):
		writeError(w, http.StatusUnprocessableEntity, pnfErr.Error())
	case errors.Is(err, promo.ErrCodeNotFound):
		writeError(w, http.StatusUnprocessableEntity, "invalid promo code")
	case errors.Is(err, payment.ErrUnknownMethod):
		writeError(w, http.StatusUnprocessableEntity, "unknown payment method")
	default:
		zctx.From(r.Context()).Error("place order", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
