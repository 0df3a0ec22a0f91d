// Package handler exposes the order service HTTP API.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/lucashsu95/microshop/internal/httpapi"
	"github.com/lucashsu95/microshop/internal/order/domain/order"
)

// Handler serves the order endpoints, delegating creation to the workflow
// service and reads/status updates to the repository.
type Handler struct {
	service *order.Service
	orders  order.Repository
}

// NewHandler constructs a Handler with the required dependencies.
func NewHandler(service *order.Service, orders order.Repository) *Handler {
	return &Handler{
		service: service,
		orders:  orders,
	}
}

// Routes returns the order API router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/orders/", h.ListOrders)
		r.Post("/orders/", h.CreateOrder)
		r.Get("/orders/{id}/", h.GetOrder)
		r.Patch("/orders/{id}/status/", h.UpdateOrderStatus)
	})
	return r
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("request failed", zap.Error(err))
	httpapi.Fail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
