package middleware

import (
	"context"
	"net/http"
	"strings"

	"tradelink_server/utils"

	"github.com/gorilla/mux"
)

type contextKey string

const (
	userIDKey contextKey = "userId"
	roleKey   contextKey = "role"
)

// JWTAuth validates the Bearer token and stashes (userId, role) in the request
// context. Identity is trusted as-is; credential checks live in the identity
// service that minted the token.
func JWTAuth(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"success":false,"message":"Missing Authorization header"}`, http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader || tokenString == "" {
				http.Error(w, `{"success":false,"message":"Invalid Authorization header"}`, http.StatusUnauthorized)
				return
			}

			claims, err := utils.ParseToken(secret, tokenString)
			if err != nil {
				http.Error(w, `{"success":false,"message":"Invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, roleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id, or "" when unauthenticated.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// Role returns the authenticated role, or "" when unauthenticated.
func Role(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}
