package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tarmachan/storefront/internal/domain"
	"github.com/tarmachan/storefront/internal/repository"
	"github.com/tarmachan/storefront/pkg/database"
	apperrors "github.com/tarmachan/storefront/pkg/errors"
)

// sortColumns maps listing sort keys to ORDER BY expressions. Keys are
// whitelisted here so user input never reaches the ORDER BY clause directly.
var sortColumns = map[string]string{
	domain.SortKeyName:      "lower(p.name)",
	domain.SortKeyCategory:  "c.name",
	domain.SortKeyPrice:     "p.price",
	domain.SortKeyRating:    "p.rating",
	domain.SortKeyCreatedAt: "p.created_at",
}

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, name, slug, description, category_id, price, image_url, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Slug,
		p.Description,
		p.CategoryID,
		p.Price,
		p.ImageURL,
		p.Rating,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, slug, description, category_id, price, image_url, rating, created_at, updated_at
		FROM products
		WHERE id = $1`

	var p domain.Product

	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.CategoryID,
		&p.Price,
		&p.ImageURL,
		&p.Rating,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}

// List returns products matching the given filter with the total count.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if len(filter.CategoryNames) > 0 {
		conditions = append(conditions, fmt.Sprintf("c.name = ANY($%d)", argIndex))
		args = append(args, filter.CategoryNames)
		argIndex++
	}

	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// No sort key means the store's natural order.
	orderClause := ""
	if col, ok := sortColumns[filter.SortKey]; ok {
		direction := "ASC"
		if filter.Descending {
			direction = "DESC"
		}
		orderClause = fmt.Sprintf("ORDER BY %s %s", col, direction)
	}

	// count(*) OVER() gives the total count in a single query.
	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.slug, p.description, p.category_id, p.price, p.image_url, p.rating, p.created_at, p.updated_at,
			   count(*) OVER() AS total_count
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		%s
		%s`,
		whereClause, orderClause,
	)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		var p domain.Product

		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Slug,
			&p.Description,
			&p.CategoryID,
			&p.Price,
			&p.ImageURL,
			&p.Rating,
			&p.CreatedAt,
			&p.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, totalCount, nil
}

// Update modifies an existing product in the database.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET name = $1, slug = $2, description = $3, category_id = $4,
		    price = $5, image_url = $6, rating = $7, updated_at = $8
		WHERE id = $9`

	ct, err := r.db.Exec(ctx, query,
		p.Name,
		p.Slug,
		p.Description,
		p.CategoryID,
		p.Price,
		p.ImageURL,
		p.Rating,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// UpdateRating persists a recomputed denormalized rating for a product.
func (r *ProductRepository) UpdateRating(ctx context.Context, id string, rating float64) error {
	query := `UPDATE products SET rating = $1, updated_at = $2 WHERE id = $3`

	ct, err := r.db.Exec(ctx, query, rating, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

// Delete removes a product and its comments in one transaction.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete product: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("delete product comments: %w", err)
	}

	ct, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete product: %w", err)
	}

	return nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
