package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

// CreateInquiryRequest is the request body for POST /inquiries.
type CreateInquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Validate implements Validator.
func (c CreateInquiryRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if strings.TrimSpace(c.Message) == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

// InquirySuccessResponse is the success envelope for POST /inquiries.
type InquirySuccessResponse struct {
	Data  *domain.Inquiry   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListInquiriesResponse is the data payload for GET /inquiries.
type ListInquiriesResponse struct {
	Items      []*domain.Inquiry      `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListInquiriesSuccessResponse is the success envelope for GET /inquiries.
type ListInquiriesSuccessResponse struct {
	Data  ListInquiriesResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// UnreadCountResponse is the data payload for GET /inquiries/unread-count.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// InquiryStatusResponse is the data payload for the read/unread endpoints.
type InquiryStatusResponse struct {
	ID     string `json:"id"`
	IsRead bool   `json:"is_read"`
}

type InquiryController struct {
	Logger  *slog.Logger
	Service domain.InquiryService
}

func NewInquiryController(logger *slog.Logger, svc domain.InquiryService) *InquiryController {
	return &InquiryController{Logger: logger, Service: svc}
}

// CreateInquiry godoc
// @Summary Submit the contact form
// @Tags inquiries
// @Accept json
// @Produce json
// @Param inquiry body CreateInquiryRequest true "Inquiry"
// @Success 201 {object} controllers.InquirySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /inquiries [post]
func (c *InquiryController) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req CreateInquiryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inquiry := &domain.Inquiry{Name: req.Name, Email: req.Email, Phone: req.Phone, Message: req.Message}
	if err := c.Service.Submit(r.Context(), inquiry); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, inquiry)
}

// ListInquiries godoc
// @Summary List inquiries
// @Description Newest first, 10 per page. search matches name, email, phone or message.
// @Tags inquiries
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Param page query int false "Page (default 1)"
// @Success 200 {object} controllers.ListInquiriesSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /inquiries [get]
func (c *InquiryController) ListInquiries(w http.ResponseWriter, r *http.Request) {
	page := helpers.DefaultPage
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v >= 1 {
		page = v
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	items, total, err := c.Service.List(r.Context(), search, page)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListInquiriesResponse{
		Items:      items,
		Pagination: helpers.NewPaginationMeta(page, domain.InquiryPageSize, total),
	})
}

// UnreadCount godoc
// @Summary Count unread inquiries
// @Tags inquiries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data.count"
// @Router /inquiries/unread-count [get]
func (c *InquiryController) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := c.Service.UnreadCount(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UnreadCountResponse{Count: n})
}

// MarkRead godoc
// @Summary Mark an inquiry as read
// @Tags inquiries
// @Produce json
// @Security BearerAuth
// @Param inquiryID path string true "Inquiry ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data.is_read: true"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /inquiries/{inquiryID}/read [patch]
func (c *InquiryController) MarkRead(w http.ResponseWriter, r *http.Request) {
	c.setRead(w, r, true)
}

// MarkUnread godoc
// @Summary Mark an inquiry as unread
// @Tags inquiries
// @Produce json
// @Security BearerAuth
// @Param inquiryID path string true "Inquiry ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data.is_read: false"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /inquiries/{inquiryID}/unread [patch]
func (c *InquiryController) MarkUnread(w http.ResponseWriter, r *http.Request) {
	c.setRead(w, r, false)
}

func (c *InquiryController) setRead(w http.ResponseWriter, r *http.Request, read bool) {
	id := r.PathValue("inquiryID")
	if !uuidRegex.MatchString(id) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "inquiry not found")
		return
	}
	mark := c.Service.MarkUnread
	if read {
		mark = c.Service.MarkRead
	}
	if err := mark(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InquiryStatusResponse{ID: id, IsRead: read})
}
