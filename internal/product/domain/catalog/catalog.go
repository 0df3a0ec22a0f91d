// Package catalog holds the product service's domain: products, categories,
// and the stock snapshot exposed to other services.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for catalog lookups.
var (
	ErrNotFound       = errors.New("product not found")
	ErrCategoryExists = errors.New("category already exists")
)

// Category groups products.
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Product is a catalog item. Stock is owned exclusively by this service;
// consumers only ever read point-in-time copies.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	CategoryID    *int64
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockInfo is the snapshot served to other services.
type StockInfo struct {
	ProductID     int64
	Name          string
	Price         decimal.Decimal
	StockQuantity int
	Available     bool
}

// StockInfo derives the externally visible snapshot of the product.
func (p Product) StockInfo() StockInfo {
	return StockInfo{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Available:     p.StockQuantity > 0,
	}
}

// ValidationError indicates an invalid product or category field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ProductInput is the mutable set of product fields for create and update.
type ProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	CategoryID    *int64
	IsActive      bool
}

// Validate checks the input against the catalog rules.
func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if in.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if in.Price.Exponent() < -2 {
		return &ValidationError{Field: "price", Reason: "must have at most 2 decimal places"}
	}
	if in.StockQuantity < 0 {
		return &ValidationError{Field: "stock_quantity", Reason: "must not be negative"}
	}
	return nil
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	// List returns active products only.
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	// Stock returns the snapshot of an active product, or ErrNotFound for
	// missing and inactive products alike.
	Stock(ctx context.Context, id int64) (*StockInfo, error)
	Create(ctx context.Context, in ProductInput) (*Product, error)
	Update(ctx context.Context, id int64, in ProductInput) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, name, description string) (*Category, error)
}
