// Package postgres implements the product service repositories backed by
// PostgreSQL.
package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lucashsu95/microshop/internal/product/domain/catalog"
)

const (
	productColumns = `id, name, description, price, stock_quantity, category_id, is_active, created_at, updated_at`

	listProductsSQL = `SELECT ` + productColumns + ` FROM products WHERE is_active ORDER BY id`
	getProductSQL   = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	stockSQL = `SELECT id, name, price, stock_quantity FROM products WHERE id = $1 AND is_active`

	insertProductSQL = `INSERT INTO products (name, description, price, stock_quantity, category_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + productColumns

	updateProductSQL = `UPDATE products
		SET name = $2, description = $3, price = $4, stock_quantity = $5, category_id = $6, is_active = $7, updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns

	deleteProductSQL = `DELETE FROM products WHERE id = $1`
)

var _ catalog.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implements catalog.ProductRepository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns all active products ordered by ID.
func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "listing products")
	}
	return pgx.CollectRows(rows, scanProduct)
}

// Get returns a single product by its identifier, active or not.
func (r *ProductRepository) Get(ctx context.Context, id int64) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "getting product %d", id)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, errors.Wrapf(err, "getting product %d", id)
	}
	return &p, nil
}

// Stock returns the stock snapshot of an active product. Inactive products
// are indistinguishable from missing ones by design.
func (r *ProductRepository) Stock(ctx context.Context, id int64) (*catalog.StockInfo, error) {
	var info catalog.StockInfo
	err := r.pool.QueryRow(ctx, stockSQL, id).
		Scan(&info.ProductID, &info.Name, &info.Price, &info.StockQuantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, errors.Wrapf(err, "getting stock of product %d", id)
	}
	info.Available = info.StockQuantity > 0
	return &info, nil
}

// Create inserts a new product and returns it with generated fields filled.
func (r *ProductRepository) Create(ctx context.Context, in catalog.ProductInput) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, insertProductSQL,
		in.Name, in.Description, in.Price, in.StockQuantity, in.CategoryID, in.IsActive)
	if err != nil {
		return nil, errors.Wrap(err, "creating product")
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		return nil, errors.Wrap(err, "creating product")
	}
	return &p, nil
}

// Update overwrites all mutable fields of an existing product.
func (r *ProductRepository) Update(ctx context.Context, id int64, in catalog.ProductInput) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, updateProductSQL,
		id, in.Name, in.Description, in.Price, in.StockQuantity, in.CategoryID, in.IsActive)
	if err != nil {
		return nil, errors.Wrapf(err, "updating product %d", id)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, errors.Wrapf(err, "updating product %d", id)
	}
	return &p, nil
}

// Delete removes a product permanently.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, deleteProductSQL, id)
	if err != nil {
		return errors.Wrapf(err, "deleting product %d", id)
	}
	if ct.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity,
		&p.CategoryID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
