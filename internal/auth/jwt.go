// Package auth validates access tokens issued by the identity provider.
// The storefront never signs tokens itself.
package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail parsing, signature
// verification, or expiry checks.
var ErrInvalidToken = errors.New("invalid access token")

// Claims carries the identity fields the storefront cares about alongside
// the registered JWT claims.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager checks access tokens against the HMAC secret shared with the
// identity provider.
type JWTManager struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTManager creates a manager for the given shared secret. Only HS256
// tokens are accepted; anything else, including alg=none, is rejected.
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// ValidateAccessToken verifies the token and returns its claims.
func (m *JWTManager) ValidateAccessToken(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := m.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
