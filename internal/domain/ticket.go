package domain

import (
	"context"
	"time"
)

// Ticket is one attendee's admission record.
// swagger:model Ticket
type Ticket struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Reference   string    `json:"paystack_reference"`
	Verified    bool      `json:"verified"`
	CheckedIn   bool      `json:"checked_in"`
	CreatedAt   time.Time `json:"created_at"`
}

// Transaction is one gateway payment. It owns every ticket bought with its
// reference, and its reference is unique.
type Transaction struct {
	Reference   string    `json:"reference"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	TicketCount int       `json:"ticket_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// TicketStats are aggregate ticket counts.
type TicketStats struct {
	Total     int
	Verified  int
	CheckedIn int
}

// TicketRepository defines the interface for ticket storage
type TicketRepository interface {
	// CreateBatch stores the transaction and all of its tickets atomically.
	// It returns ErrTransactionExists when the reference is already stored.
	CreateBatch(ctx context.Context, txn *Transaction, tickets []*Ticket) error
	GetTransaction(ctx context.Context, reference string) (*Transaction, error)
	ListByReference(ctx context.Context, reference string) ([]*Ticket, error)
	GetByID(ctx context.Context, id string) (*Ticket, error)
	List(ctx context.Context, search string, page PaginationParams) ([]*Ticket, int, error)
	Stats(ctx context.Context) (TicketStats, error)
	ListRecentVerified(ctx context.Context, limit int) ([]*Ticket, error)
}

// TicketService exposes ticket lookups.
type TicketService interface {
	GetTicket(ctx context.Context, id string) (*Ticket, error)
	ListTickets(ctx context.Context, search string, page PaginationParams) ([]*Ticket, int, error)
}
