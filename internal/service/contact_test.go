package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tarmachan/storefront/internal/domain"
	apperrors "github.com/tarmachan/storefront/pkg/errors"
)

type mockContactRepository struct {
	mock.Mock
}

func (m *mockContactRepository) List(ctx context.Context) ([]domain.ContactMessage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ContactMessage), args.Error(1)
}

func (m *mockContactRepository) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactMessage), args.Error(1)
}

func (m *mockContactRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestContactService() (*ContactService, *mockContactRepository) {
	repo := new(mockContactRepository)
	svc := NewContactService(repo, newTestProducer(), newTestLogger())
	return svc, repo
}

func TestListMessages_AdminOnly(t *testing.T) {
	svc, repo := newTestContactService()

	_, err := svc.ListMessages(context.Background(), customer())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestListMessages_Success(t *testing.T) {
	svc, repo := newTestContactService()

	messages := []domain.ContactMessage{{ID: "msg-1", Subject: "Wholesale inquiry"}}
	repo.On("List", mock.Anything).Return(messages, nil)

	result, err := svc.ListMessages(context.Background(), admin())
	require.NoError(t, err)
	assert.Equal(t, messages, result)
	repo.AssertExpectations(t)
}

func TestGetMessage_AdminOnly(t *testing.T) {
	svc, repo := newTestContactService()

	_, err := svc.GetMessage(context.Background(), customer(), "msg-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestDeleteMessage_Success(t *testing.T) {
	svc, repo := newTestContactService()

	repo.On("GetByID", mock.Anything, "msg-1").
		Return(&domain.ContactMessage{ID: "msg-1", Subject: "Wholesale inquiry"}, nil)
	repo.On("Delete", mock.Anything, "msg-1").Return(nil)

	subject, err := svc.DeleteMessage(context.Background(), admin(), "msg-1")
	require.NoError(t, err)
	assert.Equal(t, "Wholesale inquiry", subject)
	repo.AssertExpectations(t)
}

func TestDeleteMessage_NotFound(t *testing.T) {
	svc, repo := newTestContactService()

	repo.On("GetByID", mock.Anything, "missing").
		Return(nil, apperrors.NotFound("contact message", "missing"))

	_, err := svc.DeleteMessage(context.Background(), admin(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteMessage_NonAdminForbidden(t *testing.T) {
	svc, repo := newTestContactService()

	_, err := svc.DeleteMessage(context.Background(), customer(), "msg-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
