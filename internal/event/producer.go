package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tarmachan/storefront/internal/domain"
	pkgkafka "github.com/tarmachan/storefront/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicProductCreated = "storefront.product.created"
	TopicProductUpdated = "storefront.product.updated"
	TopicProductDeleted = "storefront.product.deleted"
	TopicCommentCreated = "storefront.comment.created"
	TopicCommentDeleted = "storefront.comment.deleted"
	TopicContactDeleted = "storefront.contact.deleted"
)

// Aggregate type constants.
const (
	AggregateTypeProduct = "product"
	AggregateTypeComment = "comment"
	AggregateTypeContact = "contact_message"
)

// Source identifier for events originating from this service.
const SourceStorefront = "storefront-api"

// ProductData is the payload for product.created and product.updated events.
type ProductData struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	CategoryID  *string `json:"category_id,omitempty"`
	Price       int64   `json:"price"`
	ImageURL    string  `json:"image_url"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// CommentCreatedData is the payload for a comment.created event.
type CommentCreatedData struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	Subject   string `json:"subject"`
	Rating    int    `json:"rating"`
}

// CommentDeletedData is the payload for a comment.deleted event. Rating is
// the product's recomputed rating after the deletion.
type CommentDeletedData struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Rating    float64 `json:"rating"`
}

// ContactDeletedData is the payload for a contact.deleted event.
type ContactDeletedData struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	return p.publishProduct(ctx, TopicProductCreated, product)
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	return p.publishProduct(ctx, TopicProductUpdated, product)
}

func (p *Producer) publishProduct(ctx context.Context, topic string, product *domain.Product) error {
	data := ProductData{
		ID:          product.ID,
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		CategoryID:  product.CategoryID,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
	}

	event, err := pkgkafka.NewEvent(topic, product.ID, AggregateTypeProduct, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published product event",
		slog.String("topic", topic),
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return nil
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, productID string) error {
	data := ProductDeletedData{ID: productID}

	event, err := pkgkafka.NewEvent(TopicProductDeleted, productID, AggregateTypeProduct, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create product.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductDeleted, event); err != nil {
		return fmt.Errorf("publish product.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.deleted event",
		slog.String("product_id", productID),
	)

	return nil
}

// PublishCommentCreated publishes a comment.created event.
func (p *Producer) PublishCommentCreated(ctx context.Context, comment *domain.Comment) error {
	data := CommentCreatedData{
		ID:        comment.ID,
		ProductID: comment.ProductID,
		UserID:    comment.UserID,
		Subject:   comment.Subject,
		Rating:    comment.Rating,
	}

	event, err := pkgkafka.NewEvent(TopicCommentCreated, comment.ID, AggregateTypeComment, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create comment.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCommentCreated, event); err != nil {
		return fmt.Errorf("publish comment.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published comment.created event",
		slog.String("comment_id", comment.ID),
		slog.String("product_id", comment.ProductID),
	)

	return nil
}

// PublishCommentDeleted publishes a comment.deleted event carrying the
// product's recomputed rating.
func (p *Producer) PublishCommentDeleted(ctx context.Context, commentID, productID string, rating float64) error {
	data := CommentDeletedData{
		ID:        commentID,
		ProductID: productID,
		Rating:    rating,
	}

	event, err := pkgkafka.NewEvent(TopicCommentDeleted, commentID, AggregateTypeComment, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create comment.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCommentDeleted, event); err != nil {
		return fmt.Errorf("publish comment.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published comment.deleted event",
		slog.String("comment_id", commentID),
		slog.String("product_id", productID),
	)

	return nil
}

// PublishContactDeleted publishes a contact.deleted event.
func (p *Producer) PublishContactDeleted(ctx context.Context, messageID, subject string) error {
	data := ContactDeletedData{ID: messageID, Subject: subject}

	event, err := pkgkafka.NewEvent(TopicContactDeleted, messageID, AggregateTypeContact, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create contact.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicContactDeleted, event); err != nil {
		return fmt.Errorf("publish contact.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published contact.deleted event",
		slog.String("message_id", messageID),
	)

	return nil
}
