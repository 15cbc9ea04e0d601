package domain

import (
	"context"
	"time"
)

// DefaultTicketPrice is applied to events created without a price (50.00).
const DefaultTicketPrice Amount = 5000

// Event is something tickets are sold for. At most one event is active at a
// time; the active event's price drives payments and revenue.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Venue       string     `json:"venue"`
	Date        *time.Time `json:"date,omitempty"`
	TicketPrice Amount     `json:"ticket_price" swaggertype:"number"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewEvent returns a new inactive Event. ID is set by the repository on create.
func NewEvent(name, description, venue string, date *time.Time, price Amount, now time.Time) *Event {
	return &Event{
		Name:        name,
		Description: description,
		Venue:       venue,
		Date:        date,
		TicketPrice: price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// EventUpdate carries the fields of a partial update. Nil fields are left unchanged.
type EventUpdate struct {
	Name        *string
	Description *string
	Venue       *string
	Date        *time.Time
	TicketPrice *Amount
}

// Empty reports whether no field is set.
func (u EventUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Venue == nil && u.Date == nil && u.TicketPrice == nil
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetActive returns ErrNotFound when no event is active.
	GetActive(ctx context.Context) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
	// SetActive deactivates every event and activates id in one transaction.
	SetActive(ctx context.Context, id string) (*Event, error)
}

// EventService defines organizer operations on events.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, id string) (*Event, error)
	GetActiveEvent(ctx context.Context) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
	SetActiveEvent(ctx context.Context, id string) (*Event, error)
}
