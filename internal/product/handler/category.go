package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/lucashsu95/microshop/internal/httpapi"
	"github.com/lucashsu95/microshop/internal/product/domain/catalog"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type categoryPayload struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCategoryPayload(c catalog.Category) categoryPayload {
	return categoryPayload{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ListCategories returns all categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}

	payload := make([]categoryPayload, len(categories))
	for i, c := range categories {
		payload[i] = toCategoryPayload(c)
	}
	httpapi.OK(w, "categories listed", payload)
}

// CreateCategory inserts a new category.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		httpapi.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}

	c, err := h.categories.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryExists) {
			httpapi.Fail(w, http.StatusBadRequest, "CATEGORY_EXISTS", "category already exists")
			return
		}
		serverError(w, r, err)
		return
	}
	httpapi.Created(w, "category created", toCategoryPayload(*c))
}
