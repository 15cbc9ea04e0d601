package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

// CreateEventRequest is the request body for POST /events. ticket_price defaults to 50.00.
type CreateEventRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Venue       string         `json:"venue"`
	Date        *time.Time     `json:"date"`
	TicketPrice *domain.Amount `json:"ticket_price" swaggertype:"number"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.TicketPrice != nil && *c.TicketPrice < 0 {
		errs = append(errs, "ticket_price must not be negative")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. Omitted fields are unchanged.
type UpdateEventRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Venue       *string        `json:"venue"`
	Date        *time.Time     `json:"date"`
	TicketPrice *domain.Amount `json:"ticket_price" swaggertype:"number"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if u.TicketPrice != nil && *u.TicketPrice < 0 {
		errs = append(errs, "ticket_price must not be negative")
	}
	return errs
}

// EventSuccessResponse is the success envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsSuccessResponse is the success envelope for GET /events.
type ListEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// DeleteEventResponse is the data payload for DELETE /events/{eventID}.
type DeleteEventResponse struct {
	Status string `json:"status"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{Logger: logger, Service: svc}
}

// eventID returns the path event ID, writing a 404 when it is not a UUID.
func eventID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("eventID")
	if !uuidRegex.MatchString(id) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return "", false
	}
	return id, true
}

// ListEvents godoc
// @Summary List events
// @Description Active event first, then newest first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Create an event
// @Description New events start inactive.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	price := domain.DefaultTicketPrice
	if req.TicketPrice != nil {
		price = *req.TicketPrice
	}
	event := domain.NewEvent(req.Name, req.Description, req.Venue, req.Date, price, time.Now())
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// GetActiveEvent godoc
// @Summary Get the active event
// @Description Public. Used by the purchase page for name and price.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/active [get]
func (c *EventController) GetActiveEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetActiveEvent(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), id, domain.EventUpdate{
		Name:        req.Name,
		Description: req.Description,
		Venue:       req.Venue,
		Date:        req.Date,
		TicketPrice: req.TicketPrice,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description The active event cannot be deleted.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data.status: deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (event is active)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Status: "deleted"})
}

// ActivateEvent godoc
// @Summary Make an event the active one
// @Description Deactivates every other event in the same transaction.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/activate [post]
func (c *EventController) ActivateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	event, err := c.Service.SetActiveEvent(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
