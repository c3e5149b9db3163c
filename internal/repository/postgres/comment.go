package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tarmachan/storefront/internal/domain"
	"github.com/tarmachan/storefront/pkg/database"
	apperrors "github.com/tarmachan/storefront/pkg/errors"
)

// CommentRepository implements repository.CommentRepository using PostgreSQL.
type CommentRepository struct {
	db database.DBTX
}

// NewCommentRepository creates a new PostgreSQL-backed comment repository.
func NewCommentRepository(db database.DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new comment into the database.
func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	query := `
		INSERT INTO comments (id, product_id, user_id, subject, body, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		c.ID,
		c.ProductID,
		c.UserID,
		c.Subject,
		c.Body,
		c.Rating,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by its ID.
func (r *CommentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	query := `
		SELECT id, product_id, user_id, subject, body, rating, created_at
		FROM comments
		WHERE id = $1`

	var c domain.Comment

	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.ProductID,
		&c.UserID,
		&c.Subject,
		&c.Body,
		&c.Rating,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("comment", id)
		}
		return nil, fmt.Errorf("scan comment: %w", err)
	}

	return &c, nil
}

// ListByProduct returns a product's comments, newest first.
func (r *CommentRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Comment, error) {
	query := `
		SELECT id, product_id, user_id, subject, body, rating, created_at
		FROM comments
		WHERE product_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment

	for rows.Next() {
		var c domain.Comment

		if err := rows.Scan(
			&c.ID,
			&c.ProductID,
			&c.UserID,
			&c.Subject,
			&c.Body,
			&c.Rating,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}

		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}

	if comments == nil {
		comments = []domain.Comment{}
	}

	return comments, nil
}

// Summary returns the average rating and comment count for a product.
func (r *CommentRepository) Summary(ctx context.Context, productID string) (domain.RatingSummary, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM comments
		WHERE product_id = $1`

	var summary domain.RatingSummary

	err := r.db.QueryRow(ctx, query, productID).Scan(&summary.AverageRating, &summary.TotalCount)
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("comment summary: %w", err)
	}

	return summary, nil
}

// Delete removes a comment from the database by its ID.
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM comments WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("comment", id)
	}

	return nil
}
