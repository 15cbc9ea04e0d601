package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventticketing/internal/domain"
)

type ticketService struct {
	ticketRepo     domain.TicketRepository
	contextTimeout time.Duration
}

func NewTicketService(ticketRepo domain.TicketRepository, timeout time.Duration) domain.TicketService {
	return &ticketService{ticketRepo: ticketRepo, contextTimeout: timeout}
}

func (s *ticketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	t, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

func (s *ticketService) ListTickets(ctx context.Context, search string, page domain.PaginationParams) ([]*domain.Ticket, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tickets, total, err := s.ticketRepo.List(ctx, search, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}
	if tickets == nil {
		tickets = []*domain.Ticket{}
	}
	return tickets, total, nil
}
