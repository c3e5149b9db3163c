package http

import (
	"net/http"
	"strings"

	"github.com/tarmachan/storefront/internal/domain"
	"github.com/tarmachan/storefront/pkg/middleware"
)

// ContentTypeJSON rejects request bodies that are neither JSON nor multipart
// form data (product forms carry an image file).
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") && !strings.HasPrefix(ct, "multipart/form-data") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json or multipart/form-data"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// actorFromRequest builds the acting user from the validated token claims
// the auth middleware stored in context. Anonymous requests yield the zero
// Actor.
func actorFromRequest(r *http.Request) domain.Actor {
	ctx := r.Context()
	return domain.Actor{
		UserID: middleware.UserIDFromContext(ctx),
		Email:  middleware.EmailFromContext(ctx),
		Role:   middleware.RoleFromContext(ctx),
	}
}

// backLocation returns the Referer to redirect back to, or the fallback when
// the request carries none.
func backLocation(r *http.Request, fallback string) string {
	if ref := r.Header.Get("Referer"); ref != "" {
		return ref
	}
	return fallback
}
