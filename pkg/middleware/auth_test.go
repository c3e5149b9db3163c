package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func authTestHandler(t *testing.T, wantUserID, wantRole string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantUserID, UserIDFromContext(r.Context()))
		assert.Equal(t, wantRole, RoleFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidToken(t *testing.T) {
	validate := func(token string) (*Claims, error) {
		assert.Equal(t, "good-token", token)
		return &Claims{UserID: "user-1", Email: "shopper@example.com", Role: "customer"}, nil
	}

	handler := Auth(validate)(authTestHandler(t, "user-1", "customer"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_MissingHeader(t *testing.T) {
	validate := func(token string) (*Claims, error) {
		t.Fatal("validator must not be called")
		return nil, nil
	}

	handler := Auth(validate)(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing authorization header")
}

func TestAuth_MalformedHeader(t *testing.T) {
	handler := Auth(func(string) (*Claims, error) { return nil, nil })(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid authorization header format")
}

func TestAuth_InvalidToken(t *testing.T) {
	validate := func(token string) (*Claims, error) {
		return nil, errors.New("signature mismatch")
	}

	handler := Auth(validate)(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestAuth_BearerIsCaseInsensitive(t *testing.T) {
	validate := func(token string) (*Claims, error) {
		return &Claims{UserID: "user-1", Role: "customer"}, nil
	}

	handler := Auth(validate)(authTestHandler(t, "user-1", "customer"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
