package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tarmachan/storefront/internal/domain"
	"github.com/tarmachan/storefront/pkg/database"
)

// CategoryRepository implements repository.CategoryRepository using PostgreSQL.
// Categories are reference data; this repository is read-only.
type CategoryRepository struct {
	db database.DBTX
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(db database.DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name, slug FROM categories ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return scanCategories(rows)
}

// ListByNames returns the categories whose names appear in the given set.
// Unknown names are simply absent from the result.
func (r *CategoryRepository) ListByNames(ctx context.Context, names []string) ([]domain.Category, error) {
	query := `SELECT id, name, slug FROM categories WHERE name = ANY($1) ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("list categories by name: %w", err)
	}

	return scanCategories(rows)
}

func scanCategories(rows pgx.Rows) ([]domain.Category, error) {
	defer rows.Close()

	var categories []domain.Category

	for rows.Next() {
		var c domain.Category

		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	if categories == nil {
		categories = []domain.Category{}
	}

	return categories, nil
}
