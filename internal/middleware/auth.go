package middleware

import (
	"context"
	"net/http"
	"strings"

	"achieveit-backend/internal/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// JWTAuth rejects requests without a valid session token in the
// Authorization header (a bare token or "Bearer <token>") and stashes the
// authenticated user id in the request context.
func JWTAuth(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
			if token == "" {
				writeUnauthorized(w, "no token, authorization denied")
				return
			}

			userID, err := auth.UserIDFromToken(token, secret)
			if err != nil {
				writeUnauthorized(w, "token is not valid")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the authenticated user id, or "" if the request did not
// pass through JWTAuth.
func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
