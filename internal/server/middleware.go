package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mixtapehq/mixtape/internal/auth"
	"github.com/mixtapehq/mixtape/internal/shared"
)

type contextKey int

const contextClaims contextKey = iota

// authMiddleware is the bearer token gate. It verifies the token's signature
// and expiry, attaches the decoded identity to the request context, and never
// invokes downstream logic on failure.
func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			serveError(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		claims, err := a.tokens.Verify(token)
		if err != nil {
			serveError(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), contextClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// claimsFrom returns the identity attached by authMiddleware.
//
// If not found, sends an HTTP unauthorized error and returns nil.
func (a *API) claimsFrom(w http.ResponseWriter, r *http.Request) *auth.Claims {
	claims, ok := r.Context().Value(contextClaims).(*auth.Claims)
	if ok {
		return claims
	}
	serveError(w, http.StatusUnauthorized, "No token, authorization denied")
	return nil
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs method, path, status, and duration for every request.
func (a *API) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		a.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// rateLimitMiddleware applies the shared token bucket across all requests.
func (a *API) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.limiter.Allow() {
			serveError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// serveStoreError maps sentinel errors to their HTTP responses; anything
// unrecognized is logged and reported as a generic server error.
func (a *API) serveStoreError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, shared.ErrPlaylistNotFound), errors.Is(err, shared.ErrNotFound):
		serveError(w, http.StatusNotFound, "Playlist not found")
	case errors.Is(err, shared.ErrDuplicateTrack):
		serveError(w, http.StatusBadRequest, "Song already in playlist")
	case errors.Is(err, shared.ErrUserExists):
		serveError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, shared.ErrInvalidInput):
		serveError(w, http.StatusBadRequest, "Invalid input")
	default:
		a.logger.Error(op, "err", err)
		serveError(w, http.StatusInternalServerError, "Server error")
	}
}
