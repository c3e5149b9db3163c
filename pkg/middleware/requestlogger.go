package middleware

import (
	"log/slog"
	"net/http"

	"github.com/tarmachan/storefront/pkg/logger"
)

// RequestLogger derives a request-scoped logger from base, enriched with the
// correlation ID, the authenticated user when present, and the active span,
// and stores it in context for handlers to pick up via logger.FromContext.
//
// Order matters: mount it after RequestLogging and Tracing so those values
// exist, and again inside authenticated route groups so user_id is captured
// after Auth runs.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if userID := UserIDFromContext(ctx); userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}

			scoped := logger.WithContext(ctx, base)
			next.ServeHTTP(w, r.WithContext(logger.NewContext(ctx, scoped)))
		})
	}
}
