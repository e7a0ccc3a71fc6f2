package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtinfra "github.com/bernardmuller/expense-tracker-sub000/internal/infrastructure/jwt"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// Auth returns middleware that validates the Bearer access token and injects
// its claims into the request context. Refresh and verification-session
// tokens are rejected here; only access tokens open protected routes.
func Auth(provider *jwtinfra.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, `{"error":"missing or invalid authorization header"}`, http.StatusUnauthorized)
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := provider.DecodeAccessToken(tokenStr)
			if err != nil {
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts access-token claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.UserClaims, bool) {
	c, ok := ctx.Value(ClaimsKey).(*jwtinfra.UserClaims)
	return c, ok
}
