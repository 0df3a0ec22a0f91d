package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/lucashsu95/microshop/internal/httpapi"
	"github.com/lucashsu95/microshop/internal/product/domain/catalog"
)

type productRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	CategoryID    *int64          `json:"category_id"`
	IsActive      *bool           `json:"is_active"`
}

func (req productRequest) toInput() catalog.ProductInput {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return catalog.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		IsActive:      active,
	}
}

type productPayload struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         string    `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	CategoryID    *int64    `json:"category_id"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// stockPayload is the cross-service contract consumed by the order service.
type stockPayload struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
	Available     bool   `json:"available"`
}

func toProductPayload(p catalog.Product) productPayload {
	return productPayload{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.StringFixed(2),
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ListProducts returns all active products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}

	payload := make([]productPayload, len(products))
	for i, p := range products {
		payload[i] = toProductPayload(p)
	}
	httpapi.OK(w, "products listed", payload)
}

// CreateProduct validates and inserts a new product.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	input := req.toInput()
	if err := input.Validate(); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	p, err := h.products.Create(r.Context(), input)
	if err != nil {
		serverError(w, r, err)
		return
	}
	httpapi.Created(w, "product created", toProductPayload(*p))
}

// GetProduct returns one product by id.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			httpapi.NotFound(w, "PRODUCT_NOT_FOUND", "product does not exist")
			return
		}
		serverError(w, r, err)
		return
	}
	httpapi.OK(w, "product found", toProductPayload(*p))
}

// UpdateProduct overwrites all mutable fields of a product.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	input := req.toInput()
	if err := input.Validate(); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	p, err := h.products.Update(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			httpapi.NotFound(w, "PRODUCT_NOT_FOUND", "product does not exist")
			return
		}
		serverError(w, r, err)
		return
	}
	httpapi.OK(w, "product updated", toProductPayload(*p))
}

// DeleteProduct removes a product permanently.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			httpapi.NotFound(w, "PRODUCT_NOT_FOUND", "product does not exist")
			return
		}
		serverError(w, r, err)
		return
	}
	httpapi.OK(w, "product deleted", nil)
}

// ProductStock serves the stock snapshot other services validate orders
// against. Missing and inactive products are indistinguishable on purpose.
func (h *Handler) ProductStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	info, err := h.products.Stock(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			httpapi.NotFound(w, "PRODUCT_NOT_FOUND", "product does not exist")
			return
		}
		serverError(w, r, err)
		return
	}

	httpapi.OK(w, "stock found", stockPayload{
		ID:            info.ProductID,
		Name:          info.Name,
		Price:         info.Price.StringFixed(2),
		StockQuantity: info.StockQuantity,
		Available:     info.Available,
	})
}

// pathID parses the {id} URL parameter; a non-numeric id renders the same
// not-found envelope a missing row would.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpapi.NotFound(w, "PRODUCT_NOT_FOUND", "product does not exist")
		return 0, false
	}
	return id, true
}
