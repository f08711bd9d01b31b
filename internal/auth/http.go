// ABOUTME: HTTP middleware for bearer token authentication on API endpoints
// ABOUTME: Extracts the token from the Authorization header and adds the user to context

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2389/pantry/internal/store"
)

// Resolver maps a bearer token to a user.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*store.User, error)
}

// extractBearerToken extracts a token from the Authorization header.
// Both "Bearer <token>" and "Token <token>" are accepted.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}

	var token string
	switch {
	case strings.HasPrefix(authHeader, "Bearer "):
		token = strings.TrimPrefix(authHeader, "Bearer ")
	case strings.HasPrefix(authHeader, "Token "):
		token = strings.TrimPrefix(authHeader, "Token ")
	default:
		return "", "invalid authorization header format"
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// HTTPAuthMiddleware creates an HTTP middleware that resolves bearer tokens.
// Requests without a valid token get 401; disabled accounts get 403.
func HTTPAuthMiddleware(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
			if errMsg != "" {
				writeAuthError(w, http.StatusUnauthorized, errMsg)
				return
			}

			user, err := resolver.Resolve(r.Context(), token)
			switch {
			case errors.Is(err, ErrAccountDisabled):
				writeAuthError(w, http.StatusForbidden, "account has been disabled")
				return
			case errors.Is(err, ErrExpiredToken):
				writeAuthError(w, http.StatusUnauthorized, "token expired")
				return
			case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrMissingClaim):
				writeAuthError(w, http.StatusUnauthorized, "invalid token")
				return
			case err != nil:
				writeAuthError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			authCtx := &AuthContext{UserID: user.ID, Username: user.Username}
			next.ServeHTTP(w, r.WithContext(WithAuth(r.Context(), authCtx)))
		})
	}
}
