package order

import (
	"context"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one requested (product, quantity) pair as received from
// the API layer. Both fields arrive as raw strings since clients send them
// interchangeably as JSON strings or numbers.
type LineItemRequest struct {
	ProductID string
	Quantity  string
}

// Validator resolves requested line items against the catalog, enforces
// existence and stock rules, and prices them from the catalog snapshot.
type Validator struct {
	catalog Catalog
}

// NewValidator creates a Validator backed by the given catalog.
func NewValidator(catalog Catalog) *Validator {
	return &Validator{catalog: catalog}
}

// Validate processes items in input order and is fail-fast: the first invalid
// item aborts the whole batch with an error naming its 1-based index. One
// snapshot fetch per item serves both the stock check and the pricing.
// Validate mutates nothing; stock is not reserved.
func (v *Validator) Validate(ctx context.Context, items []LineItemRequest) ([]Item, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	priced := make([]Item, 0, len(items))
	for i, req := range items {
		idx := i + 1

		productID, err := strconv.ParseInt(req.ProductID, 10, 64)
		if err != nil || productID <= 0 {
			return nil, &InvalidInputError{Index: idx, Field: "product_id", Reason: "must be a positive integer"}
		}
		quantity, err := strconv.Atoi(req.Quantity)
		if err != nil {
			return nil, &InvalidInputError{Index: idx, Field: "quantity", Reason: "must be an integer"}
		}
		if quantity <= 0 {
			return nil, &InvalidInputError{Index: idx, Field: "quantity", Reason: "must be greater than 0"}
		}

		snap, err := v.catalog.Fetch(ctx, productID)
		if err != nil {
			if errors.Is(err, ErrCatalogNotFound) || errors.Is(err, ErrCatalogUnavailable) {
				return nil, &ProductNotFoundError{Index: idx, ProductID: productID}
			}
			return nil, errors.Wrapf(err, "fetch product %d", productID)
		}
		if quantity > snap.StockQuantity {
			return nil, &InsufficientStockError{
				ProductID: productID,
				Name:      snap.Name,
				Requested: quantity,
				Available: snap.StockQuantity,
			}
		}

		unitPrice := snap.Price.Round(2)
		priced = append(priced, Item{
			ProductID:   productID,
			ProductName: snap.Name,
			UnitPrice:   unitPrice,
			Quantity:    quantity,
			Subtotal:    unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
		})
	}

	return priced, nil
}
