package order

import (
	"context"
	"net/mail"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest holds the input for creating an order.
type CreateOrderRequest struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	Notes           string
	Items           []LineItemRequest
}

// Service orchestrates order creation: validate, price, build, persist.
// Validation errors pass through untouched; persistence failures are wrapped
// with their cause. No partial order survives any failure path.
type Service struct {
	validator *Validator
	orders    Repository
}

// NewService creates the order workflow with the required dependencies.
func NewService(catalog Catalog, orders Repository) *Service {
	return &Service{
		validator: NewValidator(catalog),
		orders:    orders,
	}
}

// CreateOrder runs the full order-creation workflow. There are no retries
// except a single fresh-number attempt on an order number collision;
// resubmission by the caller is not idempotent and yields a new order number.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if err := validateCustomer(req); err != nil {
		return nil, err
	}

	items, err := s.validator.Validate(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	o := buildAggregate(req, items)

	if err := s.orders.Create(ctx, o); err != nil {
		if errors.Is(err, ErrOrderNumberConflict) {
			o.OrderNumber = NewOrderNumber()
			err = s.orders.Create(ctx, o)
		}
		if err != nil {
			return nil, errors.Wrap(err, "create order")
		}
	}

	return o, nil
}

// buildAggregate computes the order total from priced items and assembles the
// persistable aggregate. Pure apart from order number generation.
func buildAggregate(req CreateOrderRequest, items []Item) *Order {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}

	return &Order{
		OrderNumber:     NewOrderNumber(),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		Status:          StatusPending,
		TotalAmount:     total.Round(2),
		Notes:           req.Notes,
		Items:           items,
	}
}

func validateCustomer(req CreateOrderRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return &InvalidInputError{Field: "customer_name", Reason: "is required"}
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return &InvalidInputError{Field: "customer_email", Reason: "must be a valid email address"}
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return &InvalidInputError{Field: "customer_phone", Reason: "is required"}
	}
	if strings.TrimSpace(req.ShippingAddress) == "" {
		return &InvalidInputError{Field: "shipping_address", Reason: "is required"}
	}
	return nil
}
