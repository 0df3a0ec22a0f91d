package order

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Sentinel errors shared across the order domain.
var (
	ErrEmptyItems = errors.New("at least one item is required")
	ErrNotFound   = errors.New("order not found")

	// ErrCatalogNotFound and ErrCatalogUnavailable are the two outcomes a
	// Catalog implementation may report besides success. The validator
	// collapses both into ProductNotFoundError: the order cannot proceed
	// either way.
	ErrCatalogNotFound    = errors.New("product not found in catalog")
	ErrCatalogUnavailable = errors.New("catalog service unavailable")

	// ErrOrderNumberConflict signals a unique-constraint hit on the order
	// number during creation.
	ErrOrderNumberConflict = errors.New("order number already exists")
)

// InvalidInputError indicates a malformed request field. Index is the 1-based
// line item position, or 0 when the error is not item-scoped.
type InvalidInputError struct {
	Index  int
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("item %d: %s %s", e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ProductNotFoundError indicates a requested product does not exist in the
// catalog, or the catalog could not be reached.
type ProductNotFoundError struct {
	Index     int
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("item %d: product %d not found", e.Index, e.ProductID)
}

// InsufficientStockError indicates the requested quantity exceeds the stock
// available at validation time.
type InsufficientStockError struct {
	ProductID int64
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (%s): requested %d, available %d",
		e.ProductID, e.Name, e.Requested, e.Available)
}

// InvalidStatusError indicates a status value outside the defined enum.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid order status %q", e.Status)
}
