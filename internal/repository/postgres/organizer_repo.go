package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventticketing/internal/domain"
)

type organizerRepository struct {
	DB *sql.DB
}

func NewOrganizerRepository(db *sql.DB) domain.OrganizerRepository {
	return &organizerRepository{DB: db}
}

func (r *organizerRepository) Create(ctx context.Context, o *domain.Organizer) error {
	query := `
		INSERT INTO organizers (email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, o.Email, o.Name, o.PasswordHash, o.CreatedAt).Scan(&o.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *organizerRepository) GetByEmail(ctx context.Context, email string) (*domain.Organizer, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *organizerRepository) GetByID(ctx context.Context, id string) (*domain.Organizer, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *organizerRepository) getOne(ctx context.Context, where string, arg string) (*domain.Organizer, error) {
	query := `SELECT id, email, name, password_hash, created_at FROM organizers ` + where
	o := &domain.Organizer{}
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&o.ID, &o.Email, &o.Name, &o.PasswordHash, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}
