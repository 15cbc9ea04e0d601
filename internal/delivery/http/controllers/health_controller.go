package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"eventticketing/internal/delivery/http/helpers"
)

const healthTimeout = 2 * time.Second

// Pinger reports database reachability. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the data payload for GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type HealthController struct {
	Logger *slog.Logger
	DB     Pinger
}

func NewHealthController(logger *slog.Logger, db Pinger) *HealthController {
	return &HealthController{Logger: logger, DB: db}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: healthy"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()
	if err := c.DB.PingContext(ctx); err != nil {
		c.Logger.ErrorContext(r.Context(), "health check failed", "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeServiceUnavailable, "database disconnected")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "healthy", Database: "connected"})
}
