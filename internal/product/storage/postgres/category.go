package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lucashsu95/microshop/internal/product/domain/catalog"
)

const (
	categoryColumns = `id, name, description, created_at, updated_at`

	listCategoriesSQL = `SELECT ` + categoryColumns + ` FROM categories ORDER BY id`

	insertCategorySQL = `INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING ` + categoryColumns
)

var _ catalog.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository implements catalog.CategoryRepository backed by PostgreSQL.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository returns a CategoryRepository that uses the given pool.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// List returns all categories ordered by ID.
func (r *CategoryRepository) List(ctx context.Context) ([]catalog.Category, error) {
	rows, err := r.pool.Query(ctx, listCategoriesSQL)
	if err != nil {
		return nil, errors.Wrap(err, "listing categories")
	}
	return pgx.CollectRows(rows, scanCategory)
}

// Create inserts a new category. Duplicate names surface as
// catalog.ErrCategoryExists via the unique constraint.
func (r *CategoryRepository) Create(ctx context.Context, name, description string) (*catalog.Category, error) {
	rows, err := r.pool.Query(ctx, insertCategorySQL, name, description)
	if err != nil {
		return nil, errors.Wrapf(err, "creating category %q", name)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCategory)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, catalog.ErrCategoryExists
		}
		return nil, errors.Wrapf(err, "creating category %q", name)
	}
	return &c, nil
}

func scanCategory(row pgx.CollectableRow) (catalog.Category, error) {
	var c catalog.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
