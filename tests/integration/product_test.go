//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestProductLifecycle(t *testing.T) {
	created := createProduct(t, "Mechanical Keyboard", "89.99", 12)
	if created.ID == 0 {
		t.Fatal("expected non-zero product id")
	}
	if created.Price != "89.99" {
		t.Errorf("price = %q, want 89.99", created.Price)
	}
	if !created.IsActive {
		t.Error("new products should default to active")
	}

	resp, env := doGet(t, productURL, "/api/products/")
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("list products: status %d", resp.StatusCode)
	}
	list := dataAs[[]productData](t, env)
	found := false
	for _, p := range list {
		if p.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("created product %d missing from list", created.ID)
	}
}

func TestProductStockEndpoint(t *testing.T) {
	created := createProduct(t, "USB-C Cable", "9.99", 3)

	resp, env := doGet(t, productURL, "/api/products/"+itoa(created.ID)+"/stock/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stock: status %d", resp.StatusCode)
	}

	stock := dataAs[stockData](t, env)
	if stock.Name != "USB-C Cable" {
		t.Errorf("name = %q", stock.Name)
	}
	if stock.Price != "9.99" {
		t.Errorf("price = %q, want 9.99", stock.Price)
	}
	if stock.StockQuantity != 3 || !stock.Available {
		t.Errorf("stock = %d available = %v, want 3/true", stock.StockQuantity, stock.Available)
	}
}

func TestProductStockNotFound(t *testing.T) {
	resp, env := doGet(t, productURL, "/api/products/999999/stock/")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if env.Success || env.ErrorCode != "PRODUCT_NOT_FOUND" {
		t.Errorf("errorCode = %q, want PRODUCT_NOT_FOUND", env.ErrorCode)
	}
}

func TestCategoryDuplicate(t *testing.T) {
	resp, _ := doPost(t, productURL, "/api/categories/", map[string]any{
		"name":        "Integration",
		"description": "integration test category",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create category: status %d", resp.StatusCode)
	}

	resp, env := doPost(t, productURL, "/api/categories/", map[string]any{
		"name": "Integration",
	})
	if resp.StatusCode != http.StatusBadRequest || env.ErrorCode != "CATEGORY_EXISTS" {
		t.Errorf("duplicate category: status %d errorCode %q", resp.StatusCode, env.ErrorCode)
	}
}
