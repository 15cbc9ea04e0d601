package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventticketing/internal/domain"
)

const ticketColumns = `id, name, email, phone_number, paystack_reference, verified, checked_in, created_at`

// ticketSearch matches the search term against the searchable ticket columns.
const ticketSearch = `($1 = '' OR name ILIKE $2 OR email ILIKE $2 OR paystack_reference ILIKE $2 OR phone_number ILIKE $2)`

type ticketRepository struct {
	DB *sql.DB
}

func NewTicketRepository(db *sql.DB) domain.TicketRepository {
	return &ticketRepository{DB: db}
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	t := &domain.Ticket{}
	if err := row.Scan(&t.ID, &t.Name, &t.Email, &t.PhoneNumber, &t.Reference, &t.Verified, &t.CheckedIn, &t.CreatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func scanTickets(rows *sql.Rows) ([]*domain.Ticket, error) {
	defer rows.Close()
	tickets := make([]*domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *ticketRepository) CreateBatch(ctx context.Context, txn *domain.Transaction, tickets []*domain.Ticket) error {
	if len(tickets) == 0 {
		return fmt.Errorf("%w: no tickets to create", domain.ErrInvalidInput)
	}
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		// A concurrent insert of the same reference blocks here until the
		// other transaction finishes, then affects no rows.
		res, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (reference, email, phone_number, ticket_count, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (reference) DO NOTHING
		`, txn.Reference, txn.Email, txn.PhoneNumber, txn.TicketCount, txn.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrTransactionExists
		}

		const perRow = 8
		values := make([]string, 0, len(tickets))
		args := make([]any, 0, len(tickets)*perRow)
		for i, t := range tickets {
			base := i * perRow
			values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
			args = append(args, t.ID, t.Name, t.Email, t.PhoneNumber, t.Reference, t.Verified, t.CheckedIn, t.CreatedAt)
		}
		query := `INSERT INTO tickets (` + ticketColumns + `) VALUES ` + strings.Join(values, ", ")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert tickets: %w", err)
		}
		return nil
	})
}

func (r *ticketRepository) GetTransaction(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `
		SELECT reference, email, phone_number, ticket_count, created_at
		FROM transactions
		WHERE reference = $1
	`
	txn := &domain.Transaction{}
	err := r.DB.QueryRowContext(ctx, query, reference).
		Scan(&txn.Reference, &txn.Email, &txn.PhoneNumber, &txn.TicketCount, &txn.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return txn, nil
}

func (r *ticketRepository) ListByReference(ctx context.Context, reference string) ([]*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE paystack_reference = $1 ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query, reference)
	if err != nil {
		return nil, err
	}
	return scanTickets(rows)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	t, err := scanTicket(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *ticketRepository) List(ctx context.Context, search string, page domain.PaginationParams) ([]*domain.Ticket, int, error) {
	search = strings.TrimSpace(search)
	pattern := likePattern(search)

	var total int
	countQuery := `SELECT COUNT(*) FROM tickets WHERE ` + ticketSearch
	if err := r.DB.QueryRowContext(ctx, countQuery, search, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE ` + ticketSearch + `
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`
	rows, err := r.DB.QueryContext(ctx, query, search, pattern, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	tickets, err := scanTickets(rows)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *ticketRepository) Stats(ctx context.Context) (domain.TicketStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE verified),
		       COUNT(*) FILTER (WHERE checked_in)
		FROM tickets
	`
	var s domain.TicketStats
	if err := r.DB.QueryRowContext(ctx, query).Scan(&s.Total, &s.Verified, &s.CheckedIn); err != nil {
		return domain.TicketStats{}, err
	}
	return s, nil
}

func (r *ticketRepository) ListRecentVerified(ctx context.Context, limit int) ([]*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE verified ORDER BY created_at DESC LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return scanTickets(rows)
}
