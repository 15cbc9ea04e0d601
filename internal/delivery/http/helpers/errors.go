package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventticketing/internal/domain"
)

// WriteServiceError maps a service error onto the API error envelope.
// Unrecognised errors are logged and reported as internal_error without detail.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrActiveEventDelete):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "cannot delete the active event")
	case errors.Is(err, domain.ErrPaymentVerificationFailed):
		WriteJSONError(w, http.StatusBadRequest, ErrCodePaymentVerificationFailed, "payment verification failed")
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		logger.WarnContext(r.Context(), "payment gateway unavailable", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusBadGateway, ErrCodeUpstreamUnavailable, "payment gateway unavailable, try again later")
	case errors.Is(err, domain.ErrNoActiveEvent):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "no active event")
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "resource not found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid email or password")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
