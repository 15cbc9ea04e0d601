package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"eventticketing/internal/domain"
)

// fakeTicketRepo is an in-memory TicketRepository for tests.
type fakeTicketRepo struct {
	mu           sync.Mutex
	transactions map[string]*domain.Transaction
	tickets      []*domain.Ticket
	createCalls  int
	createErr    error
	// beforeCreate runs inside CreateBatch before the reference check.
	beforeCreate func()
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{transactions: make(map[string]*domain.Transaction)}
}

func (f *fakeTicketRepo) CreateBatch(ctx context.Context, txn *domain.Transaction, tickets []*domain.Ticket) error {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.transactions[txn.Reference]; ok {
		return domain.ErrTransactionExists
	}
	f.transactions[txn.Reference] = txn
	f.tickets = append(f.tickets, tickets...)
	return nil
}

// seed stores a processed transaction directly.
func (f *fakeTicketRepo) seed(reference string, names ...string) []*domain.Ticket {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactions[reference] = &domain.Transaction{Reference: reference, TicketCount: len(names)}
	var out []*domain.Ticket
	for i, n := range names {
		t := &domain.Ticket{ID: fmt.Sprintf("%s-%d", reference, i), Name: n, Reference: reference, Verified: true, CreatedAt: time.Now()}
		f.tickets = append(f.tickets, t)
		out = append(out, t)
	}
	return out
}

func (f *fakeTicketRepo) GetTransaction(ctx context.Context, reference string) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.transactions[reference]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTicketRepo) ListByReference(ctx context.Context, reference string) ([]*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Ticket{}
	for _, t := range f.tickets {
		if t.Reference == reference {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) countByReference(reference string) int {
	out, _ := f.ListByReference(context.Background(), reference)
	return len(out)
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTicketRepo) List(ctx context.Context, search string, page domain.PaginationParams) ([]*domain.Ticket, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*domain.Ticket
	for _, t := range f.tickets {
		if search == "" || strings.Contains(strings.ToLower(t.Name), strings.ToLower(search)) {
			matched = append(matched, t)
		}
	}
	start := min(page.Offset(), len(matched))
	end := min(start+page.PageSize, len(matched))
	return matched[start:end], len(matched), nil
}

func (f *fakeTicketRepo) Stats(ctx context.Context) (domain.TicketStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var s domain.TicketStats
	for _, t := range f.tickets {
		s.Total++
		if t.Verified {
			s.Verified++
		}
		if t.CheckedIn {
			s.CheckedIn++
		}
	}
	return s, nil
}

func (f *fakeTicketRepo) ListRecentVerified(ctx context.Context, limit int) ([]*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Ticket
	for _, t := range f.tickets {
		if t.Verified {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
	err    error // if set, every call returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) add(name string, price domain.Amount, active bool) *domain.Event {
	e := &domain.Event{ID: fmt.Sprintf("ev-%d", f.nextID), Name: name, TicketPrice: price, IsActive: active, CreatedAt: time.Now()}
	f.nextID++
	f.byID[e.ID] = e
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetActive(ctx context.Context) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.byID {
		if e.IsActive {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil {
		e.Name = *upd.Name
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.Venue != nil {
		e.Venue = *upd.Venue
	}
	if upd.Date != nil {
		e.Date = upd.Date
	}
	if upd.TicketPrice != nil {
		e.TicketPrice = *upd.TicketPrice
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	e, ok := f.byID[id]
	if !ok || e.IsActive {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) SetActive(ctx context.Context, id string) (*domain.Event, error) {
	target, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for _, e := range f.byID {
		e.IsActive = false
	}
	target.IsActive = true
	return target, nil
}

// fakeGateway is a scripted PaymentGateway.
type fakeGateway struct {
	result      domain.VerificationResult
	err         error
	verifyCalls int
	initResp    *domain.PaymentInitResponse
	initErr     error
	lastInit    domain.PaymentInitRequest
}

func (g *fakeGateway) Verify(ctx context.Context, reference string) (domain.VerificationResult, error) {
	g.verifyCalls++
	return g.result, g.err
}

func (g *fakeGateway) Initialize(ctx context.Context, req domain.PaymentInitRequest) (*domain.PaymentInitResponse, error) {
	g.lastInit = req
	return g.initResp, g.initErr
}

type fakeRecorder struct {
	verifications []domain.VerificationStatus
	issued        int
}

func (r *fakeRecorder) ObserveVerification(status domain.VerificationStatus) {
	r.verifications = append(r.verifications, status)
}

func (r *fakeRecorder) ObserveIssued(n int) { r.issued += n }

type fakeEmailService struct {
	mu     sync.Mutex
	sent   []*domain.TicketConfirmationEmailData
	err    error
	hang   bool  // block until ctx is done, like a stalled SES call
	ctxErr error // ctx.Err() seen by a hung send
}

func (f *fakeEmailService) SendTicketConfirmation(ctx context.Context, data *domain.TicketConfirmationEmailData) error {
	if f.hang {
		<-ctx.Done()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, data)
	if f.hang {
		f.ctxErr = ctx.Err()
		return f.ctxErr
	}
	return f.err
}
