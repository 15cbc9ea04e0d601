package domain

import (
	"context"
	"time"
)

// InquiryPageSize is the fixed page size of the inquiry list.
const InquiryPageSize = 10

// Inquiry is a message sent through the public contact form.
// swagger:model Inquiry
type Inquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// InquiryRepository defines the interface for inquiry storage
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *Inquiry) error
	List(ctx context.Context, search string, page PaginationParams) ([]*Inquiry, int, error)
	CountUnread(ctx context.Context) (int, error)
	SetRead(ctx context.Context, id string, read bool) error
}

// InquiryService handles contact form submissions and their triage.
type InquiryService interface {
	Submit(ctx context.Context, inquiry *Inquiry) error
	List(ctx context.Context, search string, page int) ([]*Inquiry, int, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkUnread(ctx context.Context, id string) error
}
