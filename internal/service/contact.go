package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tarmachan/storefront/internal/domain"
	"github.com/tarmachan/storefront/internal/event"
	"github.com/tarmachan/storefront/internal/repository"
	apperrors "github.com/tarmachan/storefront/pkg/errors"
)

// ContactService implements the admin panel over contact messages. Messages
// are submitted through a separate public site; this service only lists,
// inspects, and deletes them.
type ContactService struct {
	messages repository.ContactRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewContactService creates a new contact-message service.
func NewContactService(messages repository.ContactRepository, producer *event.Producer, logger *slog.Logger) *ContactService {
	return &ContactService{
		messages: messages,
		producer: producer,
		logger:   logger,
	}
}

// ListMessages returns all contact messages as the store holds them.
// Store-owner only.
func (s *ContactService) ListMessages(ctx context.Context, actor domain.Actor) ([]domain.ContactMessage, error) {
	if !actor.IsAdministrator() {
		return nil, apperrors.Forbidden("only store owners can view contact messages")
	}

	messages, err := s.messages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}

	return messages, nil
}

// GetMessage returns a single contact message. Store-owner only.
func (s *ContactService) GetMessage(ctx context.Context, actor domain.Actor, id string) (*domain.ContactMessage, error) {
	if !actor.IsAdministrator() {
		return nil, apperrors.Forbidden("only store owners can view contact messages")
	}

	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get contact message: %w", err)
	}

	return message, nil
}

// DeleteMessage removes a contact message and returns its subject for the
// confirmation notice. Store-owner only.
func (s *ContactService) DeleteMessage(ctx context.Context, actor domain.Actor, id string) (string, error) {
	if !actor.IsAdministrator() {
		return "", apperrors.Forbidden("only store owners can manage contact messages")
	}

	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get contact message for delete: %w", err)
	}

	if err := s.messages.Delete(ctx, id); err != nil {
		return "", fmt.Errorf("delete contact message: %w", err)
	}

	if err := s.producer.PublishContactDeleted(ctx, id, message.Subject); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish contact.deleted event",
			slog.String("message_id", id),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "contact message deleted",
		slog.String("message_id", id),
		slog.String("user_id", actor.UserID),
	)

	return message.Subject, nil
}
