package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fkhayef/splitledger/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UserIDKey is the context key for the calling user ID
	UserIDKey ContextKey = "user_id"

	// UserIDHeader carries the caller's user ID. Authentication happens in
	// front of this service; the header is trusted as is.
	UserIDHeader = "X-User-ID"
)

// UserID stores the caller's ID from the X-User-ID header in the request
// context. Requests without the header pass through anonymously; a header
// that is not a positive integer is rejected.
func UserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(UserIDHeader)
		if userIDStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			response.BadRequest(w, "Invalid "+UserIDHeader+" header")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID returns a copy of ctx carrying userID
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID extracts the user ID from the request context
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
