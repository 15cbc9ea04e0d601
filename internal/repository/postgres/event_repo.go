package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventticketing/internal/domain"
)

const eventColumns = `id, name, description, venue, date, ticket_price, is_active, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var dateNull sql.NullTime
	if err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Venue, &dateNull, &e.TicketPrice, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if dateNull.Valid {
		e.Date = &dateNull.Time
	}
	return e, nil
}

func eventErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
		return domain.ErrNotFound
	}
	return err
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, venue, date, ticket_price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, e.Name, e.Description, e.Venue, e.Date, e.TicketPrice, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, eventErr(err)
	}
	return e, nil
}

func (r *eventRepository) GetActive(ctx context.Context) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE is_active LIMIT 1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query))
	if err != nil {
		return nil, eventErr(err)
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY is_active DESC, created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	if upd.Empty() {
		return r.GetByID(ctx, id)
	}
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	add := func(column string, v any) {
		args = append(args, v)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Venue != nil {
		add("venue", *upd.Venue)
	}
	if upd.Date != nil {
		add("date", *upd.Date)
	}
	if upd.TicketPrice != nil {
		add("ticket_price", *upd.TicketPrice)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), len(args), eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, eventErr(err)
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1 AND NOT is_active`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return eventErr(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) SetActive(ctx context.Context, id string) (*domain.Event, error) {
	var activated *domain.Event
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		// Serialise concurrent activations so the single-active index never trips.
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, activeEventLockKey); err != nil {
			return fmt.Errorf("lock active event: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE events SET is_active = FALSE, updated_at = NOW() WHERE is_active AND id <> $1`, id); err != nil {
			return eventErr(err)
		}
		query := `UPDATE events SET is_active = TRUE, updated_at = NOW() WHERE id = $1 RETURNING ` + eventColumns
		e, err := scanEvent(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			return eventErr(err)
		}
		activated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return activated, nil
}
