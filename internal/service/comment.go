package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tarmachan/storefront/internal/domain"
	"github.com/tarmachan/storefront/internal/event"
	"github.com/tarmachan/storefront/internal/repository"
	apperrors "github.com/tarmachan/storefront/pkg/errors"
)

// CommentService implements the business logic for product comments.
type CommentService struct {
	comments repository.CommentRepository
	products repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(
	comments repository.CommentRepository,
	products repository.ProductRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// AddCommentInput holds the parameters for creating a comment.
type AddCommentInput struct {
	Subject string
	Body    string
	Rating  int
}

// AddComment creates a comment on a product for the acting user. The rating
// value is persisted as submitted; the product's aggregate rating is not
// recomputed here but on the next detail view.
func (s *CommentService) AddComment(ctx context.Context, actor domain.Actor, productID string, input *AddCommentInput) (*domain.Comment, error) {
	if actor.UserID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("get product for comment: %w", err)
	}

	comment := &domain.Comment{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    actor.UserID,
		Subject:   input.Subject,
		Body:      input.Body,
		Rating:    input.Rating,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if err := s.producer.PublishCommentCreated(ctx, comment); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish comment.created event",
			slog.String("comment_id", comment.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "comment created",
		slog.String("comment_id", comment.ID),
		slog.String("product_id", comment.ProductID),
		slog.String("user_id", comment.UserID),
		slog.Int("rating", comment.Rating),
	)

	return comment, nil
}

// DeleteComment removes a comment if the actor authored it or is a store
// owner, then recomputes and persists the product's rating from the remaining
// comments (0 when none are left). It returns the deleted comment's subject
// and product ID for the confirmation notice and redirect.
func (s *CommentService) DeleteComment(ctx context.Context, actor domain.Actor, id string) (subject, productID string, err error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return "", "", fmt.Errorf("get comment for delete: %w", err)
	}

	// The product must still exist; the rating write below requires it, and
	// a missing product is a not-found before any authorization verdict.
	if _, err := s.products.GetByID(ctx, comment.ProductID); err != nil {
		return "", "", fmt.Errorf("get product for comment delete: %w", err)
	}

	if !actor.Is(comment.UserID) && !actor.IsAdministrator() {
		// The product ID still comes back so the caller can bounce the
		// actor to the page they came from.
		return "", comment.ProductID, apperrors.Forbidden("only the comment author or a store owner can delete it")
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return "", "", fmt.Errorf("delete comment: %w", err)
	}

	summary, err := s.comments.Summary(ctx, comment.ProductID)
	if err != nil {
		return "", "", fmt.Errorf("get comment summary: %w", err)
	}

	rating := 0.0
	if summary.TotalCount > 0 {
		rating = roundRating(summary.AverageRating)
	}

	if err := s.products.UpdateRating(ctx, comment.ProductID, rating); err != nil {
		return "", "", fmt.Errorf("resync product rating: %w", err)
	}

	if err := s.producer.PublishCommentDeleted(ctx, id, comment.ProductID, rating); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish comment.deleted event",
			slog.String("comment_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "comment deleted",
		slog.String("comment_id", id),
		slog.String("product_id", comment.ProductID),
		slog.String("user_id", actor.UserID),
		slog.Float64("rating", rating),
	)

	return comment.Subject, comment.ProductID, nil
}
