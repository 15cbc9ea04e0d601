package domain

import (
	"context"
	"time"
)

// Organizer is a staff account allowed to manage events and see sales.
// swagger:model Organizer
type Organizer struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PasswordHasher hashes and verifies organizer passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated organizer.
type TokenIssuer interface {
	Issue(organizerID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated organizer ID.
type TokenVerifier interface {
	Verify(token string) (organizerID string, err error)
}

// OrganizerRepository defines the interface for organizer storage
type OrganizerRepository interface {
	Create(ctx context.Context, o *Organizer) error
	GetByEmail(ctx context.Context, email string) (*Organizer, error)
	GetByID(ctx context.Context, id string) (*Organizer, error)
}

// AuthService authenticates organizers.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, organizer *Organizer, err error)
	GetByID(ctx context.Context, id string) (*Organizer, error)
	// EnsureOrganizer creates the account unless the email already exists.
	EnsureOrganizer(ctx context.Context, email, name, password string) (*Organizer, bool, error)
}
