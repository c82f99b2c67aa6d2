// Package api exposes the store's HTTP endpoints as plain net/http JSON
// handlers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"

	"github.com/XVaheBabayanX/OnlineStore/internal/domain/order"
	"github.com/XVaheBabayanX/OnlineStore/internal/domain/product"
)

// Handler serves the product catalog and checkout endpoints, delegating
// business logic to the injected repository and service.
type Handler struct {
	products product.Repository
	checkout *order.Service

	ordersPlaced metric.Int64Counter
}

// NewHandler constructs a Handler with the required dependencies. The meter
// provider feeds the orders-placed counter.
func NewHandler(
	products product.Repository,
	checkout *order.Service,
	mp metric.MeterProvider,
) (*Handler, error) {
	meter := mp.Meter("onlinestore.api")
	ordersPlaced, err := meter.Int64Counter("store.orders.placed",
		metric.WithDescription("Number of successfully placed orders."),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create orders counter")
	}

	return &Handler{
		products:     products,
		checkout:     checkout,
		ordersPlaced: ordersPlaced,
	}, nil
}

// Register attaches all API routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/product", h.listProducts)
	mux.HandleFunc("GET /api/product/{id}", h.getProduct)
	mux.HandleFunc("POST /api/order", h.placeOrder)
}

// errorResponse is the JSON error payload shared by all endpoints.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Code: status, Message: message})
}
