package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventticketing/internal/delivery/http/controllers"
	"eventticketing/internal/delivery/http/middleware"
	"eventticketing/internal/domain"
)

// Controllers groups every HTTP controller registered by NewRouter.
type Controllers struct {
	Payment   *controllers.PaymentController
	Ticket    *controllers.TicketController
	Event     *controllers.EventController
	Inquiry   *controllers.InquiryController
	Auth      *controllers.AuthController
	Dashboard *controllers.DashboardController
	Health    *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes.
// Organizer routes require a Bearer token checked by verifier. gatherer
// backs /metrics.
func NewRouter(c Controllers, verifier domain.TokenVerifier, gatherer prometheus.Gatherer, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Public
	mux.HandleFunc("POST /initiate-payment", c.Payment.InitiatePayment)
	mux.HandleFunc("POST /verify-payment", c.Payment.VerifyPayment)
	mux.HandleFunc("GET /tickets/{ticketID}", c.Ticket.GetTicket)
	mux.HandleFunc("GET /events/active", c.Event.GetActiveEvent)
	mux.HandleFunc("POST /inquiries", c.Inquiry.CreateInquiry)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /health", c.Health.Health)

	// Organizer
	mux.HandleFunc("GET /auth/me", auth(c.Auth.Me))
	mux.HandleFunc("GET /stats", auth(c.Dashboard.GetStats))
	mux.HandleFunc("GET /transactions", auth(c.Ticket.ListTransactions))
	mux.HandleFunc("GET /events", auth(c.Event.ListEvents))
	mux.HandleFunc("POST /events", auth(c.Event.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(c.Event.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Event.DeleteEvent))
	mux.HandleFunc("POST /events/{eventID}/activate", auth(c.Event.ActivateEvent))
	mux.HandleFunc("GET /inquiries", auth(c.Inquiry.ListInquiries))
	mux.HandleFunc("GET /inquiries/unread-count", auth(c.Inquiry.UnreadCount))
	mux.HandleFunc("PATCH /inquiries/{inquiryID}/read", auth(c.Inquiry.MarkRead))
	mux.HandleFunc("PATCH /inquiries/{inquiryID}/unread", auth(c.Inquiry.MarkUnread))

	// Metrics
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
