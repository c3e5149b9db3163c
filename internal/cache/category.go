package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tarmachan/storefront/internal/domain"
	"github.com/tarmachan/storefront/internal/repository"
)

const categoryListKey = "storefront:categories"

// CategoryCache is a Redis read-through cache in front of a
// repository.CategoryRepository. Categories change rarely and only outside
// this service, so staleness is bounded by TTL rather than invalidation.
type CategoryCache struct {
	inner  repository.CategoryRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCategoryCache wraps a category repository with a Redis cache.
func NewCategoryCache(inner repository.CategoryRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CategoryCache {
	return &CategoryCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// List returns all categories, serving from Redis when possible. Cache
// failures fall through to the store.
func (c *CategoryCache) List(ctx context.Context) ([]domain.Category, error) {
	data, err := c.client.Get(ctx, categoryListKey).Bytes()
	if err == nil {
		var categories []domain.Category
		if err := json.Unmarshal(data, &categories); err == nil {
			return categories, nil
		}
		c.logger.WarnContext(ctx, "corrupt category cache entry, refetching")
	} else if err != redis.Nil {
		c.logger.WarnContext(ctx, "category cache read failed",
			slog.String("error", err.Error()),
		)
	}

	categories, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.store(ctx, categories); err != nil {
		c.logger.WarnContext(ctx, "category cache write failed",
			slog.String("error", err.Error()),
		)
	}

	return categories, nil
}

// ListByNames passes through to the store. The name filter varies per
// request, so only the full list is cached.
func (c *CategoryCache) ListByNames(ctx context.Context, names []string) ([]domain.Category, error) {
	return c.inner.ListByNames(ctx, names)
}

func (c *CategoryCache) store(ctx context.Context, categories []domain.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}

	if err := c.client.Set(ctx, categoryListKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set categories: %w", err)
	}

	return nil
}
