package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// DemoUserID is the identity every request falls back to while
// account sign-in stays optional.
const DemoUserID = "demo_user_123"

// WithUser resolves the requester's identity. A valid bearer token
// wins; anything else resolves to the demo user. It never rejects.
func WithUser(secret []byte, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := DemoUserID
		header := r.Header.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			raw := strings.TrimPrefix(header, "Bearer ")
			if sub, err := ParseToken(secret, raw); err == nil {
				userID = sub
			}
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// UserID returns the resolved user id for the request, or the demo
// user when the middleware did not run.
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok && v != "" {
		return v
	}
	return DemoUserID
}
