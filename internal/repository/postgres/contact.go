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

// ContactRepository implements repository.ContactRepository using PostgreSQL.
type ContactRepository struct {
	db database.DBTX
}

// NewContactRepository creates a new PostgreSQL-backed contact-message repository.
func NewContactRepository(db database.DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

// List returns all contact messages in the store's natural order.
func (r *ContactRepository) List(ctx context.Context) ([]domain.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, body, created_at
		FROM contact_messages`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.ContactMessage

	for rows.Next() {
		var m domain.ContactMessage

		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Email,
			&m.Subject,
			&m.Body,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact message row: %w", err)
		}

		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact message rows: %w", err)
	}

	if messages == nil {
		messages = []domain.ContactMessage{}
	}

	return messages, nil
}

// GetByID retrieves a contact message by its ID.
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, body, created_at
		FROM contact_messages
		WHERE id = $1`

	var m domain.ContactMessage

	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.Name,
		&m.Email,
		&m.Subject,
		&m.Body,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("contact message", id)
		}
		return nil, fmt.Errorf("scan contact message: %w", err)
	}

	return &m, nil
}

// Delete removes a contact message from the database by its ID.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM contact_messages WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("contact message", id)
	}

	return nil
}
