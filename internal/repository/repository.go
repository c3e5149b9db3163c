package repository

import (
	"context"

	"github.com/tarmachan/storefront/internal/domain"
)

// ProductFilter defines filter and ordering criteria for listing products.
// Zero values mean "not applied"; an unset SortKey yields the store's natural
// order.
type ProductFilter struct {
	SortKey       string
	Descending    bool
	CategoryNames []string
	Search        *string
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns products matching the given filter along with the total count.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)

	// Update modifies an existing product in the store.
	Update(ctx context.Context, product *domain.Product) error

	// UpdateRating persists a recomputed denormalized rating for a product.
	UpdateRating(ctx context.Context, id string, rating float64) error

	// Delete removes a product and all of its comments in one transaction.
	Delete(ctx context.Context, id string) error
}

// CategoryRepository provides read access to the category reference data.
type CategoryRepository interface {
	// List returns all categories.
	List(ctx context.Context) ([]domain.Category, error)

	// ListByNames returns the categories whose names appear in the given set.
	ListByNames(ctx context.Context, names []string) ([]domain.Category, error)
}

// CommentRepository defines the interface for comment persistence operations.
type CommentRepository interface {
	// Create inserts a new comment into the store.
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID retrieves a comment by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Comment, error)

	// ListByProduct returns a product's comments, newest first.
	ListByProduct(ctx context.Context, productID string) ([]domain.Comment, error)

	// Summary returns the average rating and comment count for a product.
	Summary(ctx context.Context, productID string) (domain.RatingSummary, error)

	// Delete removes a comment from the store by its identifier.
	Delete(ctx context.Context, id string) error
}

// ContactRepository defines the interface for contact-message persistence
// operations. Messages are created outside this service.
type ContactRepository interface {
	// List returns all contact messages in the store's natural order.
	List(ctx context.Context) ([]domain.ContactMessage, error)

	// GetByID retrieves a contact message by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.ContactMessage, error)

	// Delete removes a contact message from the store by its identifier.
	Delete(ctx context.Context, id string) error
}
