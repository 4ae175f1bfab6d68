package middleware

import (
	"net/http"
	"strings"

	"github.com/mcoot/leelawheel/internal/api/apierr"
	"github.com/mcoot/leelawheel/internal/services/auth"
)

// Admin requires a valid admin bearer token
func Admin(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authService.Enabled() {
				apierr.WriteError(w, auth.ErrAdminDisabled)
				return
			}

			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if err := authService.Verify(token); err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}
