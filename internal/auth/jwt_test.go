package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-validation"

func signToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() *Claims {
	return &Claims{
		UserID: "user-1",
		Email:  "shopper@example.com",
		Role:   "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestValidateAccessToken_Success(t *testing.T) {
	manager := NewJWTManager(testSecret)
	token := signToken(t, testSecret, validClaims())

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "shopper@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	manager := NewJWTManager(testSecret)
	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	token := signToken(t, testSecret, claims)

	_, err := manager.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	manager := NewJWTManager(testSecret)
	token := signToken(t, "a-different-secret", validClaims())

	_, err := manager.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongSigningMethod(t *testing.T) {
	manager := NewJWTManager(testSecret)

	// alg=none tokens must never validate.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims())
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(signed)
	assert.Error(t, err)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	manager := NewJWTManager(testSecret)

	_, err := manager.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}
