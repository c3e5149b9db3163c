package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	apperrors "github.com/tarmachan/storefront/pkg/errors"
	"github.com/tarmachan/storefront/pkg/logger"
	"github.com/tarmachan/storefront/pkg/validator"
)

// Severity classifies a one-shot user notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is a one-shot user-facing message carried on a response. It is the
// explicit, process-agnostic rendition of a post-redirect flash message.
type Notice struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Info builds an info-severity notice.
func Info(text string) Notice { return Notice{Severity: SeverityInfo, Text: text} }

// Success builds a success-severity notice.
func Success(text string) Notice { return Notice{Severity: SeveritySuccess, Text: text} }

// Error builds an error-severity notice.
func Error(text string) Notice { return Notice{Severity: SeverityError, Text: text} }

// Response is the standard JSON response envelope.
type Response struct {
	Data     any            `json:"data,omitempty"`
	Notices  []Notice       `json:"notices,omitempty"`
	Redirect string         `json:"redirect,omitempty"`
	Error    *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse represents an error in the standard response format.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteRedirect writes a 303 See Other with the Location header set and a
// body carrying the redirect target plus any one-shot notices. Recoverable
// failures and post-mutation flows use this instead of a raw error page.
func WriteRedirect(w http.ResponseWriter, location string, notices ...Notice) {
	w.Header().Set("Location", location)
	WriteJSON(w, http.StatusSeeOther, Response{
		Redirect: location,
		Notices:  notices,
	})
}

// WriteError writes a standardized error response based on the error type.
// It prefers the request-scoped logger from context (set by the RequestLogger
// middleware) over the fallback logger, and logs internal server errors.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	requestID := logger.CorrelationIDFromContext(r.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		WriteJSON(w, appErr.Status, Response{
			Error: &ErrorResponse{Code: appErr.Code, Message: appErr.Message, RequestID: requestID},
		})
		return
	}

	status := apperrors.HTTPStatus(err)
	code := "INTERNAL_ERROR"
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		code = "NOT_FOUND"
		message = "resource not found"
	case errors.Is(err, apperrors.ErrInvalidInput):
		code = "INVALID_INPUT"
		message = err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		code = "FORBIDDEN"
		message = "insufficient permissions"
	}

	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, Response{
		Error: &ErrorResponse{Code: code, Message: message, RequestID: requestID},
	})
}

// WriteValidationError writes a 400 response with field-level validation
// errors, an error notice, and the submitted form state echoed back so the
// client can redisplay it for correction.
func WriteValidationError(w http.ResponseWriter, err error, notice Notice, form any) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Response{
			Data:    form,
			Notices: []Notice{notice},
			Error: &ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "request validation failed",
				Fields:  valErr.Fields(),
			},
		})
		return
	}

	WriteJSON(w, http.StatusBadRequest, Response{
		Data:    form,
		Notices: []Notice{notice},
		Error:   &ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()},
	})
}

// ParseUUID validates that the given string is a valid UUID and returns it.
// If invalid, it writes a 400 Bad Request response with code INVALID_PARAMETER
// and returns uuid.Nil plus false, signaling the caller to return early.
func ParseUUID(w http.ResponseWriter, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(param)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, Response{
			Error: &ErrorResponse{
				Code:    "INVALID_PARAMETER",
				Message: "invalid UUID: " + param,
			},
		})
		return uuid.Nil, false
	}
	return id, true
}
