package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventticketing/internal/domain"
)

type dashboardService struct {
	ticketRepo     domain.TicketRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewDashboardService returns a DashboardService that recomputes every
// figure from storage on each call.
func NewDashboardService(ticketRepo domain.TicketRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.DashboardService {
	return &dashboardService{ticketRepo: ticketRepo, eventRepo: eventRepo, contextTimeout: timeout}
}

func (s *dashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	counts, err := s.ticketRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("ticket stats: %w", err)
	}

	stats := &domain.DashboardStats{
		TotalTickets:     counts.Total,
		VerifiedTickets:  counts.Verified,
		CheckedInTickets: counts.CheckedIn,
	}

	active, err := s.eventRepo.GetActive(ctx)
	switch {
	case err == nil:
		stats.TicketPrice = active.TicketPrice
		stats.ActiveEventID = active.ID
	case errors.Is(err, domain.ErrNotFound):
		// no active event: price and revenue stay zero
	default:
		return nil, fmt.Errorf("get active event: %w", err)
	}
	stats.TotalRevenue = stats.TicketPrice.Times(counts.Verified)

	recent, err := s.ticketRepo.ListRecentVerified(ctx, domain.RecentSalesLimit)
	if err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}
	if recent == nil {
		recent = []*domain.Ticket{}
	}
	stats.RecentSales = recent
	return stats, nil
}
