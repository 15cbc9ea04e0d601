package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"eventticketing/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_RevenueUsesActivePrice(t *testing.T) {
	tickets := newFakeTicketRepo()
	events := newFakeEventRepo()
	events.add("Old", 2000, false)
	active := events.add("Launch", 5000, true)
	tickets.seed("TX1", "Ama", "Kojo", "Esi")
	tickets.tickets = append(tickets.tickets, &domain.Ticket{ID: "unverified", Reference: "TX9", CheckedIn: true})

	stats, err := NewDashboardService(tickets, events, time.Second).GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalTickets)
	assert.Equal(t, 3, stats.VerifiedTickets)
	assert.Equal(t, 1, stats.CheckedInTickets)
	assert.Equal(t, domain.Amount(5000), stats.TicketPrice)
	assert.Equal(t, domain.Amount(15000), stats.TotalRevenue)
	assert.Equal(t, active.ID, stats.ActiveEventID)
	assert.Len(t, stats.RecentSales, 3)
}

func TestDashboard_NoActiveEvent(t *testing.T) {
	tickets := newFakeTicketRepo()
	tickets.seed("TX1", "Ama")
	events := newFakeEventRepo()
	events.add("Inactive", 5000, false)

	stats, err := NewDashboardService(tickets, events, time.Second).GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.VerifiedTickets)
	assert.Zero(t, stats.TicketPrice)
	assert.Zero(t, stats.TotalRevenue)
	assert.Empty(t, stats.ActiveEventID)
}

func TestDashboard_RecentSalesNewestFirstAndCapped(t *testing.T) {
	tickets := newFakeTicketRepo()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range 7 {
		tickets.tickets = append(tickets.tickets, &domain.Ticket{
			ID: fmt.Sprintf("t%d", i), Verified: true, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	stats, err := NewDashboardService(tickets, newFakeEventRepo(), time.Second).GetStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.RecentSales, domain.RecentSalesLimit)
	assert.Equal(t, "t6", stats.RecentSales[0].ID)
	assert.Equal(t, "t2", stats.RecentSales[4].ID)
}

func TestDashboard_RecomputedAfterIssuance(t *testing.T) {
	f := newPaymentFixture(nil, PaymentOptions{})
	f.events.add("Launch", 5000, true)
	dash := NewDashboardService(f.tickets, f.events, time.Second)

	before, err := dash.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, before.TotalRevenue)

	_, err = f.svc.IssueTickets(context.Background(), domain.IssueTicketsRequest{Reference: "TX1", Names: []string{"Ama", "Kojo"}})
	require.NoError(t, err)

	after, err := dash.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, after.VerifiedTickets)
	assert.Equal(t, domain.Amount(10000), after.TotalRevenue)
}

func TestDashboard_EventLookupError(t *testing.T) {
	events := newFakeEventRepo()
	events.err = errors.New("db down")

	_, err := NewDashboardService(newFakeTicketRepo(), events, time.Second).GetStats(context.Background())
	require.Error(t, err)
}
