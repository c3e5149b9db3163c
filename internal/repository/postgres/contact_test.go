package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarmachan/storefront/internal/domain"
	apperrors "github.com/tarmachan/storefront/pkg/errors"
)

var contactColumns = []string{"id", "name", "email", "subject", "body", "created_at"}

func sampleContactMessage() domain.ContactMessage {
	return domain.ContactMessage{
		ID:        "msg-1",
		Name:      "Morag",
		Email:     "morag@example.com",
		Subject:   "Wholesale inquiry",
		Body:      "Do you ship pallets?",
		CreatedAt: now,
	}
}

func contactRow(m domain.ContactMessage) []any {
	return []any{m.ID, m.Name, m.Email, m.Subject, m.Body, m.CreatedAt}
}

func TestContactRepository_List(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewContactRepository(mock)

	m := sampleContactMessage()
	mock.ExpectQuery(`SELECT .+ FROM contact_messages\s*$`).
		WillReturnRows(pgxmock.NewRows(contactColumns).AddRow(contactRow(m)...))

	messages, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Wholesale inquiry", messages[0].Subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewContactRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM contact_messages WHERE id").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(contactColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_Delete_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewContactRepository(mock)

	mock.ExpectExec("DELETE FROM contact_messages WHERE id").
		WithArgs("msg-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "msg-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
