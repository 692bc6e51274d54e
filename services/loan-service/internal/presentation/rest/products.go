package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/loanflow/loanflow/services/loan-service/internal/application/dto"
	"github.com/loanflow/loanflow/services/loan-service/internal/application/usecase"
)

// ProductHandler serves the partner-bank loan catalog.
type ProductHandler struct {
	list   *usecase.ListLoanProductsUseCase
	logger *slog.Logger
}

// NewProductHandler creates the catalog handler.
func NewProductHandler(list *usecase.ListLoanProductsUseCase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{list: list, logger: logger}
}

// RegisterRoutes attaches GET /api/loans/products, filterable by the
// category and bank query parameters.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/loans/products", h.listProducts)
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.list.Execute(r.Context(), dto.ProductFilter{
		Category: q.Get("category"),
		Bank:     q.Get("bank"),
	})
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
