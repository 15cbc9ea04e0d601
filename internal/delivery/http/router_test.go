package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventticketing/internal/delivery/http/controllers"
	"eventticketing/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubVerifier struct{}

func (stubVerifier) Verify(token string) (string, error) {
	if token == "good" {
		return "org-1", nil
	}
	return "", errors.New("bad token")
}

// stubEventService answers GetActiveEvent; other methods are unused here.
type stubEventService struct {
	domain.EventService
}

func (stubEventService) GetActiveEvent(ctx context.Context) (*domain.Event, error) {
	return nil, domain.ErrNoActiveEvent
}

type stubDashboardService struct{}

func (stubDashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	return &domain.DashboardStats{RecentSales: []*domain.Ticket{}}, nil
}

type okPinger struct{}

func (okPinger) PingContext(ctx context.Context) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "router_test_total", Help: "test"}))

	return NewRouter(Controllers{
		Payment:   controllers.NewPaymentController(testLogger, nil),
		Ticket:    controllers.NewTicketController(testLogger, nil),
		Event:     controllers.NewEventController(testLogger, stubEventService{}),
		Inquiry:   controllers.NewInquiryController(testLogger, nil),
		Auth:      controllers.NewAuthController(testLogger, nil),
		Dashboard: controllers.NewDashboardController(testLogger, stubDashboardService{}),
		Health:    controllers.NewHealthController(testLogger, okPinger{}),
	}, stubVerifier{}, reg, testLogger)
}

func TestRouter(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{"health is public", http.MethodGet, "/health", "", http.StatusOK},
		{"active event is public", http.MethodGet, "/events/active", "", http.StatusNotFound},
		{"ticket lookup rejects malformed id", http.MethodGet, "/tickets/not-a-uuid", "", http.StatusNotFound},
		{"stats requires auth", http.MethodGet, "/stats", "", http.StatusUnauthorized},
		{"stats rejects bad token", http.MethodGet, "/stats", "bad", http.StatusUnauthorized},
		{"stats with token", http.MethodGet, "/stats", "good", http.StatusOK},
		{"event list requires auth", http.MethodGet, "/events", "", http.StatusUnauthorized},
		{"event delete requires auth", http.MethodDelete, "/events/3f2b8a40-6a1e-4c3e-9d52-0b8e2f7d9a11", "", http.StatusUnauthorized},
		{"transactions require auth", http.MethodGet, "/transactions", "", http.StatusUnauthorized},
		{"inquiry list requires auth", http.MethodGet, "/inquiries", "", http.StatusUnauthorized},
		{"wrong method", http.MethodGet, "/verify-payment", "", http.StatusMethodNotAllowed},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestRouter_MetricsExposeRegistry(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "router_test_total")
}
