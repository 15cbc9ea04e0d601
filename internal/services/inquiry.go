package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventticketing/internal/domain"
)

type inquiryService struct {
	inquiryRepo    domain.InquiryRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewInquiryService(inquiryRepo domain.InquiryRepository, timeout time.Duration) domain.InquiryService {
	return &inquiryService{inquiryRepo: inquiryRepo, contextTimeout: timeout, now: time.Now}
}

func (s *inquiryService) Submit(ctx context.Context, q *domain.Inquiry) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	q.Name = strings.TrimSpace(q.Name)
	q.Email = strings.TrimSpace(q.Email)
	q.Phone = strings.TrimSpace(q.Phone)
	q.Message = strings.TrimSpace(q.Message)
	switch {
	case q.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	case q.Email == "":
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	case q.Message == "":
		return fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	q.IsRead = false
	q.CreatedAt = s.now().UTC()

	if err := s.inquiryRepo.Create(ctx, q); err != nil {
		return fmt.Errorf("create inquiry: %w", err)
	}
	return nil
}

func (s *inquiryService) List(ctx context.Context, search string, page int) ([]*domain.Inquiry, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if page < 1 {
		page = 1
	}
	items, total, err := s.inquiryRepo.List(ctx, search, domain.PaginationParams{Page: page, PageSize: domain.InquiryPageSize})
	if err != nil {
		return nil, 0, fmt.Errorf("list inquiries: %w", err)
	}
	if items == nil {
		items = []*domain.Inquiry{}
	}
	return items, total, nil
}

func (s *inquiryService) UnreadCount(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	n, err := s.inquiryRepo.CountUnread(ctx)
	if err != nil {
		return 0, fmt.Errorf("count unread inquiries: %w", err)
	}
	return n, nil
}

func (s *inquiryService) MarkRead(ctx context.Context, id string) error {
	return s.setRead(ctx, id, true)
}

func (s *inquiryService) MarkUnread(ctx context.Context, id string) error {
	return s.setRead(ctx, id, false)
}

func (s *inquiryService) setRead(ctx context.Context, id string, read bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.inquiryRepo.SetRead(ctx, id, read); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update inquiry: %w", err)
	}
	return nil
}
