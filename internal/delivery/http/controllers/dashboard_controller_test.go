package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardService struct {
	stats *domain.DashboardStats
	err   error
}

func (f *fakeDashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	return f.stats, f.err
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }

func TestDashboardController_GetStats(t *testing.T) {
	svc := &fakeDashboardService{stats: &domain.DashboardStats{
		TotalTickets: 3, VerifiedTickets: 2, TicketPrice: 5000, TotalRevenue: 10000, RecentSales: []*domain.Ticket{},
	}}
	rr := httptest.NewRecorder()
	NewDashboardController(testLogger, svc).GetStats(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `"total_revenue":100.00`)
	assert.Contains(t, body, `"ticket_price":50.00`)
	assert.Contains(t, body, `"recent_sales":[]`)

	rr = httptest.NewRecorder()
	NewDashboardController(testLogger, &fakeDashboardService{err: errors.New("db down")}).GetStats(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, helpers.ErrCodeInternalError, errorCode(t, rr))
}

func TestHealthController(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHealthController(testLogger, fakePinger{}).Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"connected"}`, string(decodeEnvelope(t, rr).Data))

	rr = httptest.NewRecorder()
	NewHealthController(testLogger, fakePinger{err: errors.New("refused")}).Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, helpers.ErrCodeServiceUnavailable, errorCode(t, rr))
}
