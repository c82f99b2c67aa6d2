package api

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/XVaheBabayanX/OnlineStore/internal/domain/product"
)

// productResponse is the JSON shape of a catalog product. Prices are
// rendered as decimal strings to avoid float drift.
type productResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category,omitempty"`
}

func toProductResponse(p product.Product) productResponse {
	return productResponse{
		ID:       p.ID(),
		Name:     p.Name(),
		Price:    p.Price(),
		Category: p.Category(),
	}
}

// listProducts returns every product in the catalog.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("list products", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}

// getProduct returns a single product by ID.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		zctx.From(r.Context()).Error("get product", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(*p))
}
