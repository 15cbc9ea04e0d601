package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventticketing/internal/domain"
)

// devReferencePrefix marks references minted locally when no gateway is configured.
const devReferencePrefix = "dev_"

const (
	defaultPaymentTimeout = 30 * time.Second
	defaultEmailTimeout   = 15 * time.Second
)

// PaymentOptions configures payment handling.
type PaymentOptions struct {
	// FailOpen issues tickets when the gateway is unreachable instead of
	// rejecting the request.
	FailOpen    bool
	Currency    string
	CallbackURL string
	Timeout     time.Duration
	// EmailTimeout bounds the confirmation email sent after issuance.
	EmailTimeout time.Duration
}

type paymentService struct {
	gateway      domain.PaymentGateway
	ticketRepo   domain.TicketRepository
	eventRepo    domain.EventRepository
	emailService domain.EmailService
	recorder     domain.PaymentRecorder
	logger       *slog.Logger
	opts         PaymentOptions
	now          func() time.Time
	newID        func() string

	mail sync.WaitGroup // in-flight confirmation emails
}

// NewPaymentService returns a PaymentService. A nil gateway means payments
// are not verified; config.Load only allows that outside production.
// emailService and recorder may be nil.
func NewPaymentService(
	gateway domain.PaymentGateway,
	ticketRepo domain.TicketRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	recorder domain.PaymentRecorder,
	logger *slog.Logger,
	opts PaymentOptions,
) domain.PaymentService {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultPaymentTimeout
	}
	if opts.EmailTimeout <= 0 {
		opts.EmailTimeout = defaultEmailTimeout
	}
	return &paymentService{
		gateway:      gateway,
		ticketRepo:   ticketRepo,
		eventRepo:    eventRepo,
		emailService: emailService,
		recorder:     recorder,
		logger:       logger,
		opts:         opts,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

func (s *paymentService) InitiatePayment(ctx context.Context, req domain.InitiatePaymentRequest) (*domain.PaymentInitialization, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	names := cleanNames(req.Names, "")
	quantity := req.Quantity
	if len(names) > 0 {
		quantity = len(names)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: at least one ticket is required", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoActiveEvent
		}
		return nil, fmt.Errorf("get active event: %w", err)
	}

	init := &domain.PaymentInitialization{
		Amount:   event.TicketPrice.Times(quantity),
		Currency: s.opts.Currency,
		Quantity: quantity,
		EventID:  event.ID,
	}

	if s.gateway == nil {
		init.Reference = devReferencePrefix + s.newID()
		s.logger.WarnContext(ctx, "payment gateway not configured, issuing local reference", "reference", init.Reference)
		return init, nil
	}

	resp, err := s.gateway.Initialize(ctx, domain.PaymentInitRequest{
		Email:       email,
		Amount:      init.Amount,
		Currency:    s.opts.Currency,
		CallbackURL: s.opts.CallbackURL,
		Metadata: map[string]any{
			"names":        names,
			"quantity":     quantity,
			"phone_number": strings.TrimSpace(req.PhoneNumber),
			"event_id":     event.ID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("initialize payment: %w", err)
	}
	init.Reference = resp.Reference
	init.AuthorizationURL = resp.AuthorizationURL
	init.AccessCode = resp.AccessCode
	return init, nil
}

func (s *paymentService) IssueTickets(ctx context.Context, req domain.IssueTicketsRequest) (*domain.IssueTicketsResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", domain.ErrInvalidInput)
	}
	names := cleanNames(req.Names, req.Name)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one attendee name is required", domain.ErrInvalidInput)
	}

	existing, err := s.existingTickets(ctx, reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logger.InfoContext(ctx, "reference already processed", "reference", reference, "tickets", len(existing))
		return &domain.IssueTicketsResult{Tickets: existing}, nil
	}

	status, err := s.verify(ctx, reference, len(names))
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.PhoneNumber)
	txn := &domain.Transaction{
		Reference:   reference,
		Email:       email,
		PhoneNumber: phone,
		TicketCount: len(names),
		CreatedAt:   now,
	}
	tickets := make([]*domain.Ticket, 0, len(names))
	for _, name := range names {
		tickets = append(tickets, &domain.Ticket{
			ID:          s.newID(),
			Name:        name,
			Email:       email,
			PhoneNumber: phone,
			Reference:   reference,
			Verified:    true,
			CreatedAt:   now,
		})
	}

	if err := s.ticketRepo.CreateBatch(ctx, txn, tickets); err != nil {
		if !errors.Is(err, domain.ErrTransactionExists) {
			return nil, fmt.Errorf("store tickets: %w", err)
		}
		// A concurrent request stored this reference first.
		winner, err := s.ticketRepo.ListByReference(ctx, reference)
		if err != nil {
			return nil, fmt.Errorf("list tickets: %w", err)
		}
		return &domain.IssueTicketsResult{Tickets: winner, Verification: status}, nil
	}

	if s.recorder != nil {
		s.recorder.ObserveIssued(len(tickets))
	}
	s.logger.InfoContext(ctx, "tickets issued", "reference", reference, "tickets", len(tickets), "verification", status)
	s.sendConfirmation(ctx, txn, tickets)

	return &domain.IssueTicketsResult{Tickets: tickets, Created: true, Verification: status}, nil
}

func (s *paymentService) existingTickets(ctx context.Context, reference string) ([]*domain.Ticket, error) {
	if _, err := s.ticketRepo.GetTransaction(ctx, reference); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	tickets, err := s.ticketRepo.ListByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// verify consults the gateway and applies the failure policy. It returns an
// error only when tickets must not be issued.
func (s *paymentService) verify(ctx context.Context, reference string, quantity int) (domain.VerificationStatus, error) {
	if s.gateway == nil {
		s.observe(domain.VerificationSkipped)
		s.logger.WarnContext(ctx, "payment gateway not configured, skipping verification", "reference", reference)
		return domain.VerificationSkipped, nil
	}

	result, err := s.gateway.Verify(ctx, reference)
	if err != nil || result.Status == domain.VerificationUnavailable {
		s.observe(domain.VerificationUnavailable)
		if err == nil {
			err = domain.ErrUpstreamUnavailable
		}
		if !errors.Is(err, domain.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
		}
		if s.opts.FailOpen {
			s.logger.WarnContext(ctx, "payment gateway unavailable, issuing unverified by policy", "reference", reference, "err", err)
			return domain.VerificationUnavailable, nil
		}
		s.logger.ErrorContext(ctx, "payment gateway unavailable", "reference", reference, "err", err)
		return "", fmt.Errorf("verify payment %s: %w", reference, err)
	}

	if result.Status != domain.VerificationSucceeded {
		s.observe(result.Status)
		s.logger.InfoContext(ctx, "payment not successful", "reference", reference, "gateway_status", result.GatewayStatus, "message", result.Message)
		return "", fmt.Errorf("%w: gateway status %q", domain.ErrPaymentVerificationFailed, result.GatewayStatus)
	}
	if err := s.checkPaid(ctx, reference, result, quantity); err != nil {
		if errors.Is(err, domain.ErrPaymentVerificationFailed) {
			s.observe(domain.VerificationFailed)
		}
		return "", err
	}
	s.observe(domain.VerificationSucceeded)
	return domain.VerificationSucceeded, nil
}

// checkPaid rejects a successful charge that does not cover quantity tickets
// at the active event price, or that was taken in another currency.
func (s *paymentService) checkPaid(ctx context.Context, reference string, result domain.VerificationResult, quantity int) error {
	if s.opts.Currency != "" && result.Currency != "" && !strings.EqualFold(result.Currency, s.opts.Currency) {
		s.logger.WarnContext(ctx, "payment currency mismatch", "reference", reference, "currency", result.Currency, "want", s.opts.Currency)
		return fmt.Errorf("%w: paid in %s, expected %s", domain.ErrPaymentVerificationFailed, result.Currency, s.opts.Currency)
	}
	event, err := s.eventRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.WarnContext(ctx, "no active event, amount not checked", "reference", reference)
			return nil
		}
		return fmt.Errorf("get active event: %w", err)
	}
	due := event.TicketPrice.Times(quantity)
	if result.Amount < due {
		s.logger.WarnContext(ctx, "payment does not cover tickets", "reference", reference, "paid", result.Amount, "due", due, "tickets", quantity)
		return fmt.Errorf("%w: paid %s, %d tickets cost %s", domain.ErrPaymentVerificationFailed, result.Amount, quantity, due)
	}
	return nil
}

func (s *paymentService) observe(status domain.VerificationStatus) {
	if s.recorder != nil {
		s.recorder.ObserveVerification(status)
	}
}

// sendConfirmation emails the buyer in the background, bounded by
// EmailTimeout. Failures are logged only; the tickets are already committed.
func (s *paymentService) sendConfirmation(ctx context.Context, txn *domain.Transaction, tickets []*domain.Ticket) {
	if s.emailService == nil || txn.Email == "" {
		return
	}
	ctx = context.WithoutCancel(ctx)
	s.mail.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, s.opts.EmailTimeout)
		defer cancel()

		data := &domain.TicketConfirmationEmailData{
			Email:     txn.Email,
			Reference: txn.Reference,
			Tickets:   tickets,
		}
		if event, err := s.eventRepo.GetActive(ctx); err == nil {
			data.EventName = event.Name
		}
		if err := s.emailService.SendTicketConfirmation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "ticket confirmation email failed", "reference", txn.Reference, "err", err)
		}
	})
}

// Wait blocks until pending confirmation emails finish or ctx is done.
func (s *paymentService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.mail.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cleanNames trims names and drops blanks, falling back to the single
// legacy name when the list is empty.
func cleanNames(names []string, fallback string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		if fallback = strings.TrimSpace(fallback); fallback != "" {
			out = append(out, fallback)
		}
	}
	return out
}
