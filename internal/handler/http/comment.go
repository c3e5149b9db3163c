package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tarmachan/storefront/internal/service"
	apperrors "github.com/tarmachan/storefront/pkg/errors"
	"github.com/tarmachan/storefront/pkg/httputil"
)

// CommentHandler handles HTTP requests for comment endpoints.
type CommentHandler struct {
	service *service.CommentService
	logger  *slog.Logger
}

// NewCommentHandler creates a new comment HTTP handler.
func NewCommentHandler(svc *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		service: svc,
		logger:  logger,
	}
}

// AddCommentRequest is the JSON request body for adding a comment. The rating
// is persisted as submitted.
type AddCommentRequest struct {
	Subject string `json:"subject"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

// AddComment handles POST /api/v1/products/{id}/comments
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid JSON body: " + err.Error()},
		})
		return
	}

	input := &service.AddCommentInput{
		Subject: req.Subject,
		Body:    req.Comment,
		Rating:  req.Rating,
	}

	_, err := h.service.AddComment(r.Context(), actorFromRequest(r), id.String(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteRedirect(w, backLocation(r, "/api/v1/products/"+id.String()),
		httputil.Success("Successfully added comment!"),
	)
}

// DeleteComment handles DELETE /api/v1/comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	subject, productID, err := h.service.DeleteComment(r.Context(), actorFromRequest(r), id.String())
	if err != nil {
		// Unlike the admin surfaces, a refused deletion bounces back to the
		// page the actor came from, not home.
		if errors.Is(err, apperrors.ErrForbidden) {
			httputil.WriteRedirect(w, backLocation(r, "/api/v1/products/"+productID),
				httputil.Error("Only the team at Tarmachan and the reviewer can access this."),
			)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteRedirect(w, backLocation(r, "/api/v1/products/"+productID),
		httputil.Success("Review "+subject+" has been deleted!"),
	)
}
