package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/tarmachan/storefront/internal/domain"
	"github.com/tarmachan/storefront/internal/event"
	"github.com/tarmachan/storefront/internal/repository"
	"github.com/tarmachan/storefront/internal/storage"
	apperrors "github.com/tarmachan/storefront/pkg/errors"
	"github.com/tarmachan/storefront/pkg/slug"
)

// ErrEmptySearch is returned by ListProducts when the search parameter is
// present but empty. No query is executed in that case; the handler redirects
// back to the unfiltered listing.
var ErrEmptySearch = errors.New("empty search input")

// CatalogService implements the business logic for the product catalog.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	comments   repository.CommentRepository
	storage    storage.Storage
	producer   *event.Producer
	logger     *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	comments repository.CommentRepository,
	store storage.Storage,
	producer *event.Producer,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		comments:   comments,
		storage:    store,
		producer:   producer,
		logger:     logger,
	}
}

// ListQuery holds the composable listing parameters. A nil Search means the
// parameter was absent; a pointer to "" means it was submitted empty.
type ListQuery struct {
	SortKey       string
	Direction     string
	CategoryNames []string
	Search        *string
}

// ProductListResult is the listing payload. It echoes the applied filters so
// the client can render the current selection state.
type ProductListResult struct {
	Products          []domain.Product  `json:"products"`
	TotalCount        int               `json:"total_count"`
	CurrentCategories []domain.Category `json:"current_categories"`
	SearchTerm        string            `json:"search_term"`
	CurrentSorting    string            `json:"current_sorting"`
}

// ProductDetailResult is the detail payload: the product with its comments,
// newest first, and the comment count.
type ProductDetailResult struct {
	Product      *domain.Product  `json:"product"`
	Comments     []domain.Comment `json:"comments"`
	CommentCount int              `json:"comment_count"`
}

// ProductInput holds the parameters for creating or updating a product.
// Image is optional; when set, the file is stored and the product's image
// URL replaced.
type ProductInput struct {
	Name        string
	Description string
	CategoryID  *string
	Price       int64
	Image       *storage.UploadInput
}

// ListProducts returns products matching the query. Sort, category, and
// search filters compose.
func (s *CatalogService) ListProducts(ctx context.Context, query ListQuery) (*ProductListResult, error) {
	if query.Search != nil && *query.Search == "" {
		return nil, ErrEmptySearch
	}

	if query.SortKey != "" && !domain.IsValidSortKey(query.SortKey) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown sort key %q", query.SortKey))
	}

	currentSorting := "none_none"
	direction := domain.SortAsc
	if query.Direction == domain.SortDesc {
		direction = domain.SortDesc
	}
	if query.SortKey != "" {
		currentSorting = query.SortKey + "_" + direction
	}

	filter := repository.ProductFilter{
		SortKey:       query.SortKey,
		Descending:    direction == domain.SortDesc,
		CategoryNames: query.CategoryNames,
		Search:        query.Search,
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	currentCategories := []domain.Category{}
	if len(query.CategoryNames) > 0 {
		currentCategories, err = s.categories.ListByNames(ctx, query.CategoryNames)
		if err != nil {
			return nil, fmt.Errorf("list filter categories: %w", err)
		}
	}

	searchTerm := ""
	if query.Search != nil {
		searchTerm = *query.Search
	}

	return &ProductListResult{
		Products:          products,
		TotalCount:        total,
		CurrentCategories: currentCategories,
		SearchTerm:        searchTerm,
		CurrentSorting:    currentSorting,
	}, nil
}

// GetProductDetail returns a product with its comments, resyncing the
// denormalized rating from the comments. With at least one comment the
// recomputed rating is persisted; with none the rating is 0 and nothing is
// written.
func (s *CatalogService) GetProductDetail(ctx context.Context, id string) (*ProductDetailResult, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	comments, err := s.comments.ListByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list product comments: %w", err)
	}

	summary, err := s.comments.Summary(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get comment summary: %w", err)
	}

	if summary.TotalCount > 0 {
		rating := roundRating(summary.AverageRating)
		if err := s.products.UpdateRating(ctx, id, rating); err != nil {
			return nil, fmt.Errorf("resync product rating: %w", err)
		}
		product.Rating = rating
	} else {
		product.Rating = 0
	}

	return &ProductDetailResult{
		Product:      product,
		Comments:     comments,
		CommentCount: summary.TotalCount,
	}, nil
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CreateProduct creates a new product. Store-owner only.
func (s *CatalogService) CreateProduct(ctx context.Context, actor domain.Actor, input *ProductInput) (*domain.Product, error) {
	if !actor.IsAdministrator() {
		return nil, apperrors.Forbidden("only store owners can manage products")
	}

	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Slug:        slug.Generate(input.Name),
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Price:       input.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if input.Image != nil {
		result, err := s.storage.Upload(ctx, input.Image)
		if err != nil {
			return nil, fmt.Errorf("store product image: %w", err)
		}
		product.ImageURL = result.URL
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
		slog.String("user_id", actor.UserID),
	)

	return product, nil
}

// GetProductForEdit returns a product for the edit form. Store-owner only.
func (s *CatalogService) GetProductForEdit(ctx context.Context, actor domain.Actor, id string) (*domain.Product, error) {
	if !actor.IsAdministrator() {
		return nil, apperrors.Forbidden("only store owners can manage products")
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for edit: %w", err)
	}

	return product, nil
}

// UpdateProduct replaces a product's editable fields. Store-owner only.
func (s *CatalogService) UpdateProduct(ctx context.Context, actor domain.Actor, id string, input *ProductInput) (*domain.Product, error) {
	if !actor.IsAdministrator() {
		return nil, apperrors.Forbidden("only store owners can manage products")
	}

	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}

	if input.Name != product.Name {
		product.Slug = slug.Generate(input.Name)
	}
	product.Name = input.Name
	product.Description = input.Description
	product.CategoryID = input.CategoryID
	product.Price = input.Price

	if input.Image != nil {
		result, err := s.storage.Upload(ctx, input.Image)
		if err != nil {
			return nil, fmt.Errorf("store product image: %w", err)
		}
		product.ImageURL = result.URL
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID),
		slog.String("user_id", actor.UserID),
	)

	return product, nil
}

// DeleteProduct removes a product and its comments. Store-owner only.
func (s *CatalogService) DeleteProduct(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsAdministrator() {
		return apperrors.Forbidden("only store owners can manage products")
	}

	// Verify existence first so absent products surface as 404.
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get product for delete: %w", err)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if err := s.producer.PublishProductDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
		slog.String("user_id", actor.UserID),
	)

	return nil
}

// roundRating rounds a mean rating to two decimals.
func roundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}
