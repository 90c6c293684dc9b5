package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resident/internal/grievance/models"
	"resident/pkg/platform/sentinel"
)

func ticket(id, individualID string, at time.Time) *models.Ticket {
	return models.NewTicket(id, individualID, models.GrievanceRequest{EventID: "evt", Message: "help"}, at)
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := NewInMemory()

	require.NoError(t, s.Save(ctx, ticket("t-1", "4518367290", base)))
	require.NoError(t, s.Save(ctx, ticket("t-2", "4518367290", base.Add(time.Minute))))
	require.NoError(t, s.Save(ctx, ticket("t-3", "7890123456", base)))

	err := s.Save(ctx, ticket("t-1", "4518367290", base))
	assert.True(t, errors.Is(err, sentinel.ErrConflict))

	got, err := s.FindByTicketID(ctx, "t-2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, got.Status)

	_, err = s.FindByTicketID(ctx, "missing")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	list, err := s.ListByIndividualID(ctx, "4518367290")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "t-2", list[0].TicketID)
	assert.Equal(t, "t-1", list[1].TicketID)
}
