package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"eventticketing/internal/domain"
)

type authService struct {
	organizerRepo domain.OrganizerRepository
	hasher        domain.PasswordHasher
	tokens        domain.TokenIssuer
	tokenExpiry   time.Duration
	now           func() time.Time
}

// NewAuthService creates an AuthService with the given repository, password hasher and token issuer
func NewAuthService(organizerRepo domain.OrganizerRepository, hasher domain.PasswordHasher, tokens domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		organizerRepo: organizerRepo,
		hasher:        hasher,
		tokens:        tokens,
		tokenExpiry:   tokenExpiry,
		now:           time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Organizer, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	o, err := s.organizerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get organizer: %w", err)
	}
	if err := s.hasher.Compare(o.PasswordHash, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(o.ID, o.Email, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, o, nil
}

func (s *authService) GetByID(ctx context.Context, id string) (*domain.Organizer, error) {
	o, err := s.organizerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get organizer: %w", err)
	}
	return o, nil
}

func (s *authService) EnsureOrganizer(ctx context.Context, email, name, password string) (*domain.Organizer, bool, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, false, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}

	existing, err := s.organizerRepo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get organizer: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, false, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = email
	}
	o := &domain.Organizer{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.organizerRepo.Create(ctx, o); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			// created concurrently by another instance
			existing, err := s.organizerRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, false, fmt.Errorf("get organizer: %w", err)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create organizer: %w", err)
	}
	return o, true, nil
}
