// Package order holds the order aggregate and the order-creation workflow:
// line items are validated against the remote catalog, priced from a
// point-in-time snapshot, and persisted together with the order in one
// transaction.
package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a raw status value against the known set. There is no
// transition graph: any valid status may replace any other.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", &InvalidStatusError{Status: s}
}

// Order represents a customer order together with its owned line items.
// TotalAmount is fixed at creation time as the sum of item subtotals and is
// never recomputed afterwards.
type Order struct {
	ID              int64
	OrderNumber     string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	Status          Status
	TotalAmount     decimal.Decimal
	Notes           string
	Items           []Item
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Item is a single line item. ProductName and UnitPrice are denormalized
// snapshots of catalog data at order time, so the order stays readable even
// if the catalog changes or becomes unreachable later.
type Item struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
}

// Snapshot is a point-in-time copy of catalog data for one product.
type Snapshot struct {
	ProductID     int64
	Name          string
	Price         decimal.Decimal
	StockQuantity int
	Available     bool
}

// Catalog fetches product snapshots from the catalog service. Implementations
// must be read-only and safe for concurrent use; fetching never reserves stock.
type Catalog interface {
	Fetch(ctx context.Context, productID int64) (*Snapshot, error)
}

// Repository defines persistence operations for order aggregates.
type Repository interface {
	// Create persists the order row and all item rows as a single atomic
	// unit and fills in generated IDs and timestamps. It returns
	// ErrOrderNumberConflict when the order number collides.
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id int64) (*Order, error)
	// List returns all orders, most recently created first.
	List(ctx context.Context) ([]Order, error)
	// UpdateStatus unconditionally overwrites the status of an existing
	// order and refreshes its UpdatedAt timestamp.
	UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error)
}
