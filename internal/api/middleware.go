// Package api implements the portfolio REST API using chi.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starford/folio/internal/auth"
	"github.com/starford/folio/internal/models"
)

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware returns middleware that requires a valid
// "Authorization: Bearer <token>" header and stores the user in the request context.
func AuthMiddleware(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			u, err := a.Authenticate(r.Context(), strings.TrimSpace(token))
			if err != nil {
				slog.Debug("bearer token rejected", slog.String("error", err.Error()))
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), u)))
		})
	}
}
