// Package handler exposes the product service HTTP API.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/lucashsu95/microshop/internal/httpapi"
	"github.com/lucashsu95/microshop/internal/product/domain/catalog"
)

// Handler serves the product and category endpoints.
type Handler struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
}

// NewHandler constructs a Handler with the required repositories.
func NewHandler(products catalog.ProductRepository, categories catalog.CategoryRepository) *Handler {
	return &Handler{
		products:   products,
		categories: categories,
	}
}

// Routes returns the product API router. Paths keep their trailing slashes;
// the stock endpoint is the one other services depend on.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/products/", h.ListProducts)
		r.Post("/products/", h.CreateProduct)
		r.Get("/products/{id}/", h.GetProduct)
		r.Put("/products/{id}/", h.UpdateProduct)
		r.Delete("/products/{id}/", h.DeleteProduct)
		r.Get("/products/{id}/stock/", h.ProductStock)
		r.Get("/categories/", h.ListCategories)
		r.Post("/categories/", h.CreateCategory)
	})
	return r
}

// serverError logs the cause and renders a generic failure envelope so that
// storage internals never leak to clients.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("request failed", zap.Error(err))
	httpapi.Fail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
