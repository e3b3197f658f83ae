package models

import (
	"fmt"
	"strings"

	"github.com/mixtapehq/mixtape/internal/shared"
)

// User is an identity record. Usernames and emails are unique; emails are
// normalized to lowercase on construction. A user's playlists are derived from
// playlist ownership rather than stored on the user itself.
type User struct {
	record
	username     string
	email        string
	passwordHash string
}

// NewUser creates a User with the given sequence, username, email and password hash.
// The email is lowercased and trimmed.
func NewUser(sequence int, username, email, passwordHash string) *User {
	return &User{
		record:       newRecord(sequence),
		username:     strings.TrimSpace(username),
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
	}
}

func (u *User) Username() string     { return u.username }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }

// Validate checks username length, email shape, and hash presence.
func (u *User) Validate() error {
	if len(u.username) < 3 {
		return fmt.Errorf("%w: username must be at least 3 characters", shared.ErrInvalidInput)
	}
	if u.email == "" || !strings.Contains(u.email, "@") {
		return fmt.Errorf("%w: valid email is required", shared.ErrInvalidInput)
	}
	if u.passwordHash == "" {
		return fmt.Errorf("%w: password hash is required", shared.ErrInvalidInput)
	}
	return nil
}
