package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

type contextKey string

const organizerIDKey contextKey = "organizerID"

// SetOrganizerID returns a context carrying the authenticated organizer ID.
func SetOrganizerID(ctx context.Context, organizerID string) context.Context {
	return context.WithValue(ctx, organizerIDKey, organizerID)
}

// OrganizerIDFromContext returns the authenticated organizer ID, if present.
func OrganizerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(organizerIDKey).(string)
	return id, ok && id != ""
}

// RequireAuth gates organizer routes (dashboard, events, inquiries,
// transactions) behind a bearer token issued by /auth/login.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, problem := bearerToken(r.Header.Get("Authorization"))
			if problem != "" {
				challenge(w, "", problem)
				return
			}
			organizerID, err := verifier.Verify(token)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, domain.ErrTokenExpired) {
					msg = "token expired, sign in again"
				}
				logger.InfoContext(r.Context(), "organizer token rejected",
					"path", r.URL.Path, "request_id", w.Header().Get(RequestIDHeader), "err", err)
				challenge(w, "invalid_token", msg)
				return
			}
			next(w, r.WithContext(SetOrganizerID(r.Context(), organizerID)))
		}
	}
}

// bearerToken extracts the token from an Authorization header. The scheme
// is matched case-insensitively.
func bearerToken(header string) (token, problem string) {
	if header == "" {
		return "", "missing authorization header"
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", "authorization must use the Bearer scheme"
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", "missing token"
	}
	return token, ""
}

func challenge(w http.ResponseWriter, code, msg string) {
	value := `Bearer realm="organizer"`
	if code != "" {
		value += `, error="` + code + `"`
	}
	w.Header().Set("WWW-Authenticate", value)
	h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, msg)
}
