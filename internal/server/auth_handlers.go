package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mixtapehq/mixtape/internal/auth"
	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/shared"
)

// POST /api/auth/register
//
// registerHandler creates a user and issues a signed token.
func (a *API) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		serveError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if len(req.Username) < 3 {
		serveError(w, http.StatusBadRequest, "Username must be at least 3 characters")
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		serveError(w, http.StatusBadRequest, "Valid email is required")
		return
	}
	if len(req.Password) < 6 {
		serveError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	exists, err := a.users.Exists(req.Username, req.Email)
	if err != nil {
		a.serveStoreError(w, err, "register: existence check failed")
		return
	}
	if exists {
		serveError(w, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.serveStoreError(w, err, "register: hashing failed")
		return
	}

	user := models.NewUser(0, req.Username, req.Email, hash)
	if err := a.users.Create(user); err != nil {
		// The UNIQUE constraints backstop the existence check under races.
		a.serveStoreError(w, err, "register: create failed")
		return
	}

	token, err := a.tokens.Issue(user.ID(), user.Username(), user.Email())
	if err != nil {
		a.serveStoreError(w, err, "register: token issue failed")
		return
	}

	serveJSON(w, http.StatusCreated, authResponse{
		Message: "User created successfully",
		Token:   token,
		User:    makeUserResponse(user),
	})
}

// POST /api/auth/login
//
// loginHandler verifies credentials and issues a signed token. Unknown email
// and wrong password return the same message so accounts cannot be enumerated.
func (a *API) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		serveError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := a.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			serveError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		a.serveStoreError(w, err, "login: lookup failed")
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash(), req.Password); err != nil {
		serveError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := a.tokens.Issue(user.ID(), user.Username(), user.Email())
	if err != nil {
		a.serveStoreError(w, err, "login: token issue failed")
		return
	}

	serveJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    makeUserResponse(user),
	})
}
