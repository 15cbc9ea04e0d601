package services

import (
	"context"
	"testing"
	"time"

	"eventticketing/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketService(t *testing.T) {
	repo := newFakeTicketRepo()
	seeded := repo.seed("TX1", "Ama", "Kojo")
	svc := NewTicketService(repo, time.Second)

	got, err := svc.GetTicket(context.Background(), seeded[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Kojo", got.Name)

	_, err = svc.GetTicket(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	list, total, err := svc.ListTickets(context.Background(), "ama", domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Ama", list[0].Name)
}
