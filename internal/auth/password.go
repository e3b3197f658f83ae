package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mixtapehq/mixtape/internal/shared"
)

// HashPassword returns a salted bcrypt hash of the plaintext. The plaintext is
// never persisted or logged.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword compares a candidate password against a stored hash.
// Returns [shared.ErrInvalidCredentials] on mismatch.
func VerifyPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return shared.ErrInvalidCredentials
	}
	return nil
}
