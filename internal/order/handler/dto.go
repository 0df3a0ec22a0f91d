package handler

import (
	"encoding/json"
	"time"

	"github.com/lucashsu95/microshop/internal/order/domain/order"
)

// flexString accepts JSON strings and numbers alike, preserving the raw
// digits for the domain validator to parse. Clients of the original API send
// product_id and quantity in either form.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}

type createOrderRequest struct {
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email"`
	CustomerPhone   string        `json:"customer_phone"`
	ShippingAddress string        `json:"shipping_address"`
	Notes           string        `json:"notes"`
	Items           []itemRequest `json:"items"`
}

type itemRequest struct {
	ProductID flexString `json:"product_id"`
	Quantity  flexString `json:"quantity"`
}

func (req createOrderRequest) toDomain() order.CreateOrderRequest {
	items := make([]order.LineItemRequest, len(req.Items))
	for i, it := range req.Items {
		items[i] = order.LineItemRequest{
			ProductID: string(it.ProductID),
			Quantity:  string(it.Quantity),
		}
	}
	return order.CreateOrderRequest{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		Items:           items,
	}
}

type orderPayload struct {
	ID              int64              `json:"id"`
	OrderNumber     string             `json:"order_number"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	CustomerPhone   string             `json:"customer_phone"`
	ShippingAddress string             `json:"shipping_address"`
	Status          string             `json:"status"`
	TotalAmount     string             `json:"total_amount"`
	Notes           string             `json:"notes"`
	Items           []orderItemPayload `json:"items"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type orderItemPayload struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

func toOrderPayload(o order.Order) orderPayload {
	items := make([]orderItemPayload, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemPayload{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal.StringFixed(2),
		}
	}
	return orderPayload{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		ShippingAddress: o.ShippingAddress,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount.StringFixed(2),
		Notes:           o.Notes,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
