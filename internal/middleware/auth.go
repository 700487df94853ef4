// file: internal/middleware/auth.go
package middleware

import (
	"academichub/internal/config"
	"academichub/internal/models"
	"academichub/internal/services"
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// ClaimsKey is the context key for authenticated claims
	ClaimsKey ContextKey = "claims"
)

// Auth validates the bearer token and injects the claims into the context
func Auth(cfg *config.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				WriteError(w, r, services.NewUnauthorizedError("missing bearer token"))
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			claims := &services.Claims{}

			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				WriteError(w, r, services.NewUnauthorizedError("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose authenticated role is not in the allow
// list. Must run after Auth.
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	allowed := make(map[models.UserRole]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				WriteError(w, r, services.NewUnauthorizedError("authentication required"))
				return
			}
			if !allowed[claims.Role] {
				WriteError(w, r, services.NewForbiddenError("insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClaims extracts the authenticated claims from context, nil when absent
func GetClaims(ctx context.Context) *services.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*services.Claims); ok {
		return claims
	}
	return nil
}
