package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tarmachan/storefront/internal/service"
	"github.com/tarmachan/storefront/pkg/httputil"
)

// ContactHandler handles the store-owner contact-message panel endpoints.
type ContactHandler struct {
	service *service.ContactService
	logger  *slog.Logger
}

// NewContactHandler creates a new contact-message HTTP handler.
func NewContactHandler(svc *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		service: svc,
		logger:  logger,
	}
}

// ListMessages handles GET /api/v1/contact-messages
func (h *ContactHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListMessages(r.Context(), actorFromRequest(r))
	if err != nil {
		if redirectForbidden(w, err) {
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: messages})
}

// GetMessage handles GET /api/v1/contact-messages/{id}
func (h *ContactHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	message, err := h.service.GetMessage(r.Context(), actorFromRequest(r), id.String())
	if err != nil {
		if redirectForbidden(w, err) {
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: message})
}

// DeleteMessage handles DELETE /api/v1/contact-messages/{id}
func (h *ContactHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	subject, err := h.service.DeleteMessage(r.Context(), actorFromRequest(r), id.String())
	if err != nil {
		if redirectForbidden(w, err) {
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteRedirect(w, "/api/v1/contact-messages",
		httputil.Success("Contact message "+subject+" deleted!"),
	)
}
