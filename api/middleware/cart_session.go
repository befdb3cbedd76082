package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/guardtag/guardtag-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

type cartSessionKey struct{}

// CartSession pins every request to a cart session id. A missing header
// mints a fresh id; either way the id is echoed back so the client can
// persist it for the next request.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(cartSessionHeader)
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(cartSessionHeader, sessionID)

			ctx := context.WithValue(r.Context(), cartSessionKey{}, sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartSessionID returns the session id pinned by CartSession, or "" when
// the middleware did not run.
func CartSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(cartSessionKey{}).(string); ok {
		return id
	}
	return ""
}
