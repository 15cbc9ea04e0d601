package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

// maxTicketsPerPurchase bounds a single checkout.
const maxTicketsPerPurchase = 50

// VerifyPaymentRequest is the request body for POST /verify-payment.
// names lists one attendee per ticket; name is the legacy single-attendee field.
type VerifyPaymentRequest struct {
	Reference   string   `json:"reference"`
	Name        string   `json:"name"`
	Names       []string `json:"names"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
}

// Validate implements Validator.
func (v VerifyPaymentRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(v.Reference) == "" {
		errs = append(errs, "reference is required")
	}
	if len(v.Names) > maxTicketsPerPurchase {
		errs = append(errs, "too many attendees")
	}
	if email := strings.TrimSpace(v.Email); email != "" && !emailRegex.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// TicketsSuccessResponse is the success envelope for POST /verify-payment (201 or 200).
type TicketsSuccessResponse struct {
	Data  []*domain.Ticket  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// InitiatePaymentRequest is the request body for POST /initiate-payment.
// quantity is used when names is empty.
type InitiatePaymentRequest struct {
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	Names       []string `json:"names"`
	Quantity    int      `json:"quantity"`
}

// Validate implements Validator.
func (i InitiatePaymentRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(i.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if len(i.Names) == 0 && i.Quantity < 1 {
		errs = append(errs, "names or quantity is required")
	}
	if len(i.Names) > maxTicketsPerPurchase || i.Quantity > maxTicketsPerPurchase {
		errs = append(errs, "too many tickets")
	}
	return errs
}

// InitiatePaymentSuccessResponse is the success envelope for POST /initiate-payment (200).
type InitiatePaymentSuccessResponse struct {
	Data  *domain.PaymentInitialization `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

type PaymentController struct {
	Logger  *slog.Logger
	Service domain.PaymentService
}

func NewPaymentController(logger *slog.Logger, svc domain.PaymentService) *PaymentController {
	return &PaymentController{Logger: logger, Service: svc}
}

// VerifyPayment godoc
// @Summary Verify a payment and issue tickets
// @Description Verifies the reference with the payment gateway and issues one verified ticket per attendee name. Replaying a processed reference returns the stored tickets with 200 and creates nothing.
// @Tags payments
// @Accept json
// @Produce json
// @Param body body VerifyPaymentRequest true "Payment reference and attendees"
// @Success 201 {object} controllers.TicketsSuccessResponse "tickets created"
// @Success 200 {object} controllers.TicketsSuccessResponse "reference already processed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or payment_verification_failed"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /verify-payment [post]
func (c *PaymentController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req VerifyPaymentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.IssueTickets(r.Context(), domain.IssueTicketsRequest{
		Reference:   req.Reference,
		Names:       req.Names,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, res.Tickets)
}

// InitiatePayment godoc
// @Summary Start a checkout
// @Description Prices the order from the active event and opens a gateway checkout. Without a configured gateway a local dev_ reference is returned.
// @Tags payments
// @Accept json
// @Produce json
// @Param body body InitiatePaymentRequest true "Buyer and attendees"
// @Success 200 {object} controllers.InitiatePaymentSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no active event)"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_unavailable"
// @Router /initiate-payment [post]
func (c *PaymentController) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	var req InitiatePaymentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	init, err := c.Service.InitiatePayment(r.Context(), domain.InitiatePaymentRequest{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Names:       req.Names,
		Quantity:    req.Quantity,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, init)
}
