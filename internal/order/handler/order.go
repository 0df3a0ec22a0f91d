package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/lucashsu95/microshop/internal/httpapi"
	"github.com/lucashsu95/microshop/internal/order/domain/order"
)

// CreateOrder runs the order-creation workflow and maps every outcome to the
// uniform envelope. No per-error branching leaks beyond this mapping.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	o, err := h.service.CreateOrder(r.Context(), req.toDomain())
	if err != nil {
		h.mapCreateError(w, r, err)
		return
	}

	httpapi.Created(w, "order created", toOrderPayload(*o))
}

func (h *Handler) mapCreateError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		iiErr  *order.InvalidInputError
		pnfErr *order.ProductNotFoundError
		isErr  *order.InsufficientStockError
	)
	switch {
	case errors.Is(err, order.ErrEmptyItems), errors.As(err, &iiErr):
		httpapi.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.As(err, &pnfErr):
		httpapi.Fail(w, http.StatusBadRequest, "PRODUCT_NOT_FOUND", err.Error())
	case errors.As(err, &isErr):
		httpapi.Fail(w, http.StatusBadRequest, "INSUFFICIENT_STOCK", err.Error())
	default:
		// Persistence and other unexpected failures: log the cause, keep
		// the response generic.
		zctx.From(r.Context()).Error("order creation failed", zap.Error(err))
		httpapi.Fail(w, http.StatusInternalServerError, "ORDER_CREATION_FAILED", "order could not be created")
	}
}

// ListOrders returns all orders, most recent first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}

	payload := make([]orderPayload, len(orders))
	for i, o := range orders {
		payload[i] = toOrderPayload(o)
	}
	httpapi.OK(w, "orders listed", payload)
}

// GetOrder returns one order aggregate by id.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			httpapi.NotFound(w, "ORDER_NOT_FOUND", "order does not exist")
			return
		}
		serverError(w, r, err)
		return
	}
	httpapi.OK(w, "order found", toOrderPayload(*o))
}

// UpdateOrderStatus overwrites the status of an order. Any member of the
// status enum is accepted from any current value; anything else is rejected.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "INVALID_STATUS", err.Error())
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			httpapi.NotFound(w, "ORDER_NOT_FOUND", "order does not exist")
			return
		}
		serverError(w, r, err)
		return
	}
	httpapi.OK(w, "order status updated", toOrderPayload(*o))
}

func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpapi.NotFound(w, "ORDER_NOT_FOUND", "order does not exist")
		return 0, false
	}
	return id, true
}
