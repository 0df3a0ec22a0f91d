// Command seed-data populates the product database with a sample catalog.
// It is idempotent: categories and products already present (matched by name)
// are left untouched.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/lucashsu95/microshop/db"
	"github.com/lucashsu95/microshop/internal/pgdb"
	"github.com/lucashsu95/microshop/internal/product/domain/catalog"
	"github.com/lucashsu95/microshop/internal/product/storage/postgres"
)

type seedCategory struct {
	name        string
	description string
}

type seedProduct struct {
	name        string
	description string
	price       string
	stock       int
	category    string
}

var sampleCategories = []seedCategory{
	{"Electronics", "Electronic devices and gadgets"},
	{"Clothing", "Fashion and apparel items"},
	{"Books", "Educational and entertainment books"},
}

var sampleProducts = []seedProduct{
	{"iPhone 15 Pro", "Latest Apple smartphone with titanium design", "999.99", 25, "Electronics"},
	{"MacBook Air M3", "Ultra-thin laptop with M3 chip", "1299.99", 15, "Electronics"},
	{"Nike Air Max 270", "Comfortable running shoes with air cushioning", "149.99", 50, "Clothing"},
	{"Levis 501 Jeans", "Classic straight fit denim jeans", "79.99", 30, "Clothing"},
	{"Python Programming Guide", "Complete guide to Python programming for beginners", "39.99", 100, "Books"},
}

func main() {
	var databaseURL string
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL string) error {
	slog.Info("connecting to database")

	pool, err := pgdb.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := pgdb.RunMigrations(ctx, pool, db.ProductSchema); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	categories := postgres.NewCategoryRepository(pool)
	products := postgres.NewProductRepository(pool)

	categoryIDs, err := seedCategories(ctx, categories)
	if err != nil {
		return errors.Wrap(err, "seed categories")
	}

	if err := seedProducts(ctx, products, categoryIDs); err != nil {
		return errors.Wrap(err, "seed products")
	}

	return nil
}

// seedCategories creates the sample categories and returns name -> id for all
// of them, whether created now or already present.
func seedCategories(ctx context.Context, repo *postgres.CategoryRepository) (map[string]int64, error) {
	for _, c := range sampleCategories {
		created, err := repo.Create(ctx, c.name, c.description)
		switch {
		case errors.Is(err, catalog.ErrCategoryExists):
			slog.Info("category exists, skipping", slog.String("name", c.name))
		case err != nil:
			return nil, errors.Wrapf(err, "create category %s", c.name)
		default:
			slog.Info("created category", slog.Int64("id", created.ID), slog.String("name", created.Name))
		}
	}

	existing, err := repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	ids := make(map[string]int64, len(existing))
	for _, c := range existing {
		ids[c.Name] = c.ID
	}
	return ids, nil
}

func seedProducts(ctx context.Context, repo *postgres.ProductRepository, categoryIDs map[string]int64) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list products")
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.Name] = true
	}

	for _, p := range sampleProducts {
		if seen[p.name] {
			slog.Info("product exists, skipping", slog.String("name", p.name))
			continue
		}

		catID, ok := categoryIDs[p.category]
		if !ok {
			return errors.Errorf("unknown category %q for product %q", p.category, p.name)
		}

		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return errors.Wrapf(err, "parse price for %s", p.name)
		}

		created, err := repo.Create(ctx, catalog.ProductInput{
			Name:          p.name,
			Description:   p.description,
			Price:         price,
			StockQuantity: p.stock,
			CategoryID:    &catID,
			IsActive:      true,
		})
		if err != nil {
			return errors.Wrapf(err, "create product %s", p.name)
		}

		slog.Info("created product",
			slog.Int64("id", created.ID),
			slog.String("name", created.Name),
			slog.String("price", created.Price.StringFixed(2)),
		)
	}

	return nil
}
