//go:build integration

package integration

import (
	"net/http"
	"regexp"
	"strings"
	"testing"
)

var orderNumberRe = regexp.MustCompile(`^ORD-[0-9A-F]{8}$`)

func orderRequest(items ...map[string]any) map[string]any {
	return map[string]any{
		"customer_name":    "John Smith",
		"customer_email":   "john.smith@email.com",
		"customer_phone":   "+1-555-0101",
		"shipping_address": "123 Main St, New York, NY 10001",
		"notes":            "Please handle with care",
		"items":            items,
	}
}

func TestCreateOrder_AcrossServices(t *testing.T) {
	p := createProduct(t, "Noise Cancelling Headphones", "199.99", 10)

	resp, env := doPost(t, orderURL, "/api/orders/", orderRequest(
		map[string]any{"product_id": p.ID, "quantity": 2},
	))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create order: status %d errorCode %q message %q", resp.StatusCode, env.ErrorCode, env.Message)
	}

	o := dataAs[orderData](t, env)
	if !orderNumberRe.MatchString(o.OrderNumber) {
		t.Errorf("order number %q does not match ORD-XXXXXXXX", o.OrderNumber)
	}
	if o.Status != "pending" {
		t.Errorf("status = %q, want pending", o.Status)
	}
	if o.TotalAmount != "399.98" {
		t.Errorf("total = %q, want 399.98", o.TotalAmount)
	}
	if len(o.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(o.Items))
	}
	item := o.Items[0]
	if item.ProductName != "Noise Cancelling Headphones" || item.UnitPrice != "199.99" || item.Subtotal != "399.98" {
		t.Errorf("item snapshot = %+v", item)
	}
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	p := createProduct(t, "Limited Edition Print", "59.99", 2)

	resp, env := doPost(t, orderURL, "/api/orders/", orderRequest(
		map[string]any{"product_id": p.ID, "quantity": 5},
	))
	if resp.StatusCode != http.StatusBadRequest || env.ErrorCode != "INSUFFICIENT_STOCK" {
		t.Fatalf("status %d errorCode %q, want 400 INSUFFICIENT_STOCK", resp.StatusCode, env.ErrorCode)
	}
	if !strings.Contains(env.Message, "Limited Edition Print") {
		t.Errorf("message %q should name the product", env.Message)
	}

	// Nothing persisted.
	_, listEnv := doGet(t, orderURL, "/api/orders/")
	for _, o := range dataAs[[]orderData](t, listEnv) {
		for _, it := range o.Items {
			if it.ProductID == p.ID {
				t.Errorf("rejected order left item for product %d", p.ID)
			}
		}
	}
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	resp, env := doPost(t, orderURL, "/api/orders/", orderRequest(
		map[string]any{"product_id": 999999, "quantity": 1},
	))
	if resp.StatusCode != http.StatusBadRequest || env.ErrorCode != "PRODUCT_NOT_FOUND" {
		t.Fatalf("status %d errorCode %q, want 400 PRODUCT_NOT_FOUND", resp.StatusCode, env.ErrorCode)
	}
}

func TestGetOrder(t *testing.T) {
	p := createProduct(t, "Desk Lamp", "34.50", 8)

	_, createEnv := doPost(t, orderURL, "/api/orders/", orderRequest(
		map[string]any{"product_id": p.ID, "quantity": 1},
	))
	created := dataAs[orderData](t, createEnv)

	resp, env := doGet(t, orderURL, "/api/orders/"+itoa(created.ID)+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get order: status %d", resp.StatusCode)
	}
	got := dataAs[orderData](t, env)
	if got.OrderNumber != created.OrderNumber {
		t.Errorf("order number = %q, want %q", got.OrderNumber, created.OrderNumber)
	}
	if len(got.Items) != 1 || got.Items[0].ProductName != "Desk Lamp" {
		t.Errorf("items = %+v", got.Items)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	resp, env := doGet(t, orderURL, "/api/orders/999999/")
	if resp.StatusCode != http.StatusNotFound || env.ErrorCode != "ORDER_NOT_FOUND" {
		t.Fatalf("status %d errorCode %q, want 404 ORDER_NOT_FOUND", resp.StatusCode, env.ErrorCode)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	p := createProduct(t, "Water Bottle", "12.00", 20)

	_, createEnv := doPost(t, orderURL, "/api/orders/", orderRequest(
		map[string]any{"product_id": p.ID, "quantity": 1},
	))
	created := dataAs[orderData](t, createEnv)

	resp, env := doJSON(t, http.MethodPatch, orderURL+"/api/orders/"+itoa(created.ID)+"/status/", map[string]any{
		"status": "shipped",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status: %d %q", resp.StatusCode, env.ErrorCode)
	}
	if got := dataAs[orderData](t, env); got.Status != "shipped" {
		t.Errorf("status = %q, want shipped", got.Status)
	}

	resp, env = doJSON(t, http.MethodPatch, orderURL+"/api/orders/"+itoa(created.ID)+"/status/", map[string]any{
		"status": "teleported",
	})
	if resp.StatusCode != http.StatusBadRequest || env.ErrorCode != "INVALID_STATUS" {
		t.Errorf("invalid status: %d %q, want 400 INVALID_STATUS", resp.StatusCode, env.ErrorCode)
	}
}

func TestCreateOrder_ValidationFailsFast(t *testing.T) {
	p := createProduct(t, "Notebook", "4.99", 100)

	// Second item is malformed; error should cite item 2 and nothing persists.
	resp, env := doPost(t, orderURL, "/api/orders/", orderRequest(
		map[string]any{"product_id": p.ID, "quantity": 1},
		map[string]any{"product_id": p.ID, "quantity": "zero"},
	))
	if resp.StatusCode != http.StatusBadRequest || env.ErrorCode != "VALIDATION_ERROR" {
		t.Fatalf("status %d errorCode %q, want 400 VALIDATION_ERROR", resp.StatusCode, env.ErrorCode)
	}
	if !strings.Contains(env.Message, "2") {
		t.Errorf("message %q should reference item 2", env.Message)
	}
}
