package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "resident/pkg/platform/audit"
)

type recordingStore struct {
	mu     sync.Mutex
	events []audit.Event
	fail   map[string]bool
}

func (s *recordingStore) Append(_ context.Context, event audit.Event) error {
	if s.fail[event.Action] {
		return errors.New("sink down")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func TestWorker_DrainsUntilInboxClosed(t *testing.T) {
	store := &recordingStore{fail: map[string]bool{"bad": true}}
	inbox := make(chan audit.Event, 3)
	inbox <- audit.Event{Action: "first"}
	inbox <- audit.Event{Action: "bad"}
	inbox <- audit.Event{Action: "last"}
	close(inbox)

	err := NewWorker(store, inbox, nil).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, store.events, 2, "failed append is skipped, not fatal")
	assert.Equal(t, "first", store.events[0].Action)
	assert.Equal(t, "last", store.events[1].Action)
}

func TestWorker_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewWorker(&recordingStore{}, make(chan audit.Event), nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
