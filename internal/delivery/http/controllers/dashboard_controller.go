package controllers

import (
	"log/slog"
	"net/http"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

// StatsSuccessResponse is the success envelope for GET /stats.
type StatsSuccessResponse struct {
	Data  *domain.DashboardStats `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type DashboardController struct {
	Logger  *slog.Logger
	Service domain.DashboardService
}

func NewDashboardController(logger *slog.Logger, svc domain.DashboardService) *DashboardController {
	return &DashboardController{Logger: logger, Service: svc}
}

// GetStats godoc
// @Summary Dashboard statistics
// @Description Ticket counts, revenue at the active event's price and the five most recent verified sales.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.StatsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /stats [get]
func (c *DashboardController) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.GetStats(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
