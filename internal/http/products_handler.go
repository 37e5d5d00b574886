package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/revollution/storefront/internal/domain"
	"github.com/revollution/storefront/internal/repository"
)

type ProductCatalog interface {
	Product(ctx context.Context, id string) (*domain.Product, error)
	Products(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error)
}

type ProductsHandler struct {
	catalog ProductCatalog
	timeout time.Duration
}

func NewProductsHandler(catalog ProductCatalog, timeout time.Duration) *ProductsHandler {
	return &ProductsHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

// GET /products?category=&featured=
func (h *ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var filter repository.ProductFilter
	q := r.URL.Query()
	if c := q.Get("category"); c != "" {
		filter.Category = domain.Category(c)
	}
	if f := q.Get("featured"); f != "" {
		featured, err := strconv.ParseBool(f)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid featured flag", err.Error())
			return
		}
		filter.Featured = &featured
	}

	products, err := h.catalog.Products(ctx, filter)
	if err != nil {
		handleError(w, r, err, "Failed to fetch products")
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}

	respondJSON(w, http.StatusOK, Envelope{Success: true, Data: products})
}

// GET /products/{id}
func (h *ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Product id is required", "")
		return
	}

	product, err := h.catalog.Product(ctx, id)
	if err != nil {
		handleError(w, r, err, "Failed to fetch product")
		return
	}

	respondJSON(w, http.StatusOK, Envelope{Success: true, Data: product})
}
