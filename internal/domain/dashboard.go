package domain

import "context"

// RecentSalesLimit is the number of tickets listed under recent sales.
const RecentSalesLimit = 5

// DashboardStats summarises sales for organizers.
type DashboardStats struct {
	TotalTickets     int       `json:"total_tickets"`
	VerifiedTickets  int       `json:"verified_tickets"`
	CheckedInTickets int       `json:"checked_in_tickets"`
	TicketPrice      Amount    `json:"ticket_price" swaggertype:"number"`
	TotalRevenue     Amount    `json:"total_revenue" swaggertype:"number"`
	ActiveEventID    string    `json:"active_event_id,omitempty"`
	RecentSales      []*Ticket `json:"recent_sales"`
}

// DashboardService computes DashboardStats from persisted state.
type DashboardService interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
}
