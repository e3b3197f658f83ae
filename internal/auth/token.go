// package auth provides bearer token issuance/verification and password hashing.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mixtapehq/mixtape/internal/shared"
)

// Claims are the identity claims embedded in every issued token.
//
// The gate trusts these claims for the token's lifetime instead of re-querying
// the user store per request.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies bearer tokens with an HMAC secret.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

// NewTokenIssuer creates a TokenIssuer. The secret is mandatory: there is no
// fallback value. A zero expiry defaults to 24 hours.
func NewTokenIssuer(secret string, expiry time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, shared.ErrMissingSecret
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}

	return &TokenIssuer{
		secret: []byte(secret),
		expiry: expiry,
	}, nil
}

// Issue signs a token embedding the user's identity with the configured expiry.
func (i *TokenIssuer) Issue(userID, username, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses a token string, checks its signature and expiry, and returns
// the embedded claims. Returns [shared.ErrTokenExpired] for expired tokens and
// [shared.ErrInvalidToken] for everything else that fails verification.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, shared.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, shared.ErrInvalidToken
	}

	return claims, nil
}

// Expiry returns the configured token lifetime.
func (i *TokenIssuer) Expiry() time.Duration {
	return i.expiry
}
