package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

// TicketSuccessResponse is the success envelope for GET /tickets/{ticketID}.
type TicketSuccessResponse struct {
	Data  *domain.Ticket    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListTransactionsResponse is the data payload for GET /transactions.
type ListTransactionsResponse struct {
	Items      []*domain.Ticket       `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListTransactionsSuccessResponse is the success envelope for GET /transactions.
type ListTransactionsSuccessResponse struct {
	Data  ListTransactionsResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type TicketController struct {
	Logger  *slog.Logger
	Service domain.TicketService
}

func NewTicketController(logger *slog.Logger, svc domain.TicketService) *TicketController {
	return &TicketController{Logger: logger, Service: svc}
}

// GetTicket godoc
// @Summary Get a ticket
// @Description Public ticket lookup used by the ticket page and QR code.
// @Tags tickets
// @Produce json
// @Param ticketID path string true "Ticket ID (UUID)"
// @Success 200 {object} controllers.TicketSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tickets/{ticketID} [get]
func (c *TicketController) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := r.PathValue("ticketID")
	if !uuidRegex.MatchString(ticketID) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "ticket not found")
		return
	}
	ticket, err := c.Service.GetTicket(r.Context(), ticketID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ticket)
}

// ListTransactions godoc
// @Summary List sold tickets
// @Description Newest first. search matches name, email, payment reference or phone number.
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 10, max 100)"
// @Success 200 {object} controllers.ListTransactionsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /transactions [get]
func (c *TicketController) ListTransactions(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	tickets, total, err := c.Service.ListTickets(r.Context(), search, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListTransactionsResponse{
		Items:      tickets,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}
