package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventticketing/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendTicketConfirmation sends the purchase confirmation using the "ticket_confirmation" template.
func (s *emailService) SendTicketConfirmation(ctx context.Context, data *domain.TicketConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("ticket confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("ticket_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render ticket_confirmation template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send ticket confirmation email: %w", err)
	}
	s.logger.InfoContext(ctx, "ticket confirmation sent", "email", data.Email, "reference", data.Reference)
	return nil
}
