package postgres

import (
	"context"
	"database/sql"
	"strings"

	"eventticketing/internal/domain"
)

const inquirySearch = `($1 = '' OR name ILIKE $2 OR email ILIKE $2 OR phone ILIKE $2 OR message ILIKE $2)`

type inquiryRepository struct {
	DB *sql.DB
}

func NewInquiryRepository(db *sql.DB) domain.InquiryRepository {
	return &inquiryRepository{DB: db}
}

func (r *inquiryRepository) Create(ctx context.Context, q *domain.Inquiry) error {
	query := `
		INSERT INTO inquiries (name, email, phone, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, q.Name, q.Email, q.Phone, q.Message, q.CreatedAt).Scan(&q.ID)
}

func (r *inquiryRepository) List(ctx context.Context, search string, page domain.PaginationParams) ([]*domain.Inquiry, int, error) {
	search = strings.TrimSpace(search)
	pattern := likePattern(search)

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM inquiries WHERE `+inquirySearch, search, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, name, email, phone, message, is_read, created_at
		FROM inquiries
		WHERE ` + inquirySearch + `
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.QueryContext(ctx, query, search, pattern, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	inquiries := make([]*domain.Inquiry, 0)
	for rows.Next() {
		q := &domain.Inquiry{}
		if err := rows.Scan(&q.ID, &q.Name, &q.Email, &q.Phone, &q.Message, &q.IsRead, &q.CreatedAt); err != nil {
			return nil, 0, err
		}
		inquiries = append(inquiries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return inquiries, total, nil
}

func (r *inquiryRepository) CountUnread(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM inquiries WHERE NOT is_read`).Scan(&n)
	return n, err
}

func (r *inquiryRepository) SetRead(ctx context.Context, id string, read bool) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE inquiries SET is_read = $1 WHERE id = $2`, read, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
