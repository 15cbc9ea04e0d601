package domain

import "context"

// VerificationStatus is the outcome of checking a reference with the gateway.
type VerificationStatus string

const (
	// VerificationSucceeded means the gateway confirmed a successful charge.
	VerificationSucceeded VerificationStatus = "succeeded"
	// VerificationFailed means the gateway answered and the charge did not succeed.
	VerificationFailed VerificationStatus = "failed"
	// VerificationUnavailable means the gateway could not be reached or answered garbage.
	VerificationUnavailable VerificationStatus = "unavailable"
	// VerificationSkipped means no gateway is configured (development only).
	VerificationSkipped VerificationStatus = "skipped"
)

// VerificationResult is what the gateway reported for a reference.
type VerificationResult struct {
	Status        VerificationStatus
	GatewayStatus string
	Amount        Amount
	Currency      string
	Message       string
}

// PaymentInitRequest asks the gateway to open a checkout.
type PaymentInitRequest struct {
	Email       string
	Amount      Amount
	Currency    string
	CallbackURL string
	Metadata    map[string]any
}

// PaymentInitResponse is the gateway's checkout handle.
type PaymentInitResponse struct {
	Reference        string
	AuthorizationURL string
	AccessCode       string
}

// PaymentGateway is the external payment provider (Paystack).
type PaymentGateway interface {
	// Verify returns a VerificationUnavailable result together with an error
	// wrapping ErrUpstreamUnavailable when the gateway cannot be consulted.
	Verify(ctx context.Context, reference string) (VerificationResult, error)
	Initialize(ctx context.Context, req PaymentInitRequest) (*PaymentInitResponse, error)
}

// PaymentRecorder receives payment outcomes for monitoring.
type PaymentRecorder interface {
	ObserveVerification(status VerificationStatus)
	ObserveIssued(tickets int)
}

// IssueTicketsRequest carries a client-submitted payment reference and attendees.
type IssueTicketsRequest struct {
	Reference   string
	Names       []string
	Name        string
	Email       string
	PhoneNumber string
}

// IssueTicketsResult holds the tickets for a reference. Created is false when
// the reference had already been processed and the stored tickets are returned.
type IssueTicketsResult struct {
	Tickets      []*Ticket
	Created      bool
	Verification VerificationStatus
}

// InitiatePaymentRequest opens a checkout for Quantity (or len(Names)) tickets.
type InitiatePaymentRequest struct {
	Email       string
	PhoneNumber string
	Names       []string
	Quantity    int
}

// PaymentInitialization is returned to the client to complete checkout.
type PaymentInitialization struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Amount           Amount `json:"amount" swaggertype:"number"`
	Currency         string `json:"currency"`
	Quantity         int    `json:"quantity"`
	EventID          string `json:"event_id"`
}

// PaymentService verifies payments and issues tickets.
type PaymentService interface {
	InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*PaymentInitialization, error)
	IssueTickets(ctx context.Context, req IssueTicketsRequest) (*IssueTicketsResult, error)
	// Wait blocks until background confirmation emails finish or ctx ends.
	Wait(ctx context.Context) error
}
