package fanout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "resident/pkg/platform/audit"
	"resident/pkg/platform/audit/store/memory"
)

type failingSink struct{}

func (failingSink) Append(context.Context, audit.Event) error { return errors.New("sink down") }

func TestStore_AppendsToEverySink(t *testing.T) {
	first := memory.NewInMemoryStore()
	second := memory.NewInMemoryStore()
	store := New(failingSink{}, first, second)

	err := store.Append(context.Background(), audit.NewEvent(audit.EventSendOTPSuccess, "otp", "123"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink down")

	assert.Equal(t, 1, first.CountByAction("SEND_OTP_SUCCESS"))
	assert.Equal(t, 1, second.CountByAction("SEND_OTP_SUCCESS"))

	events, err := store.ListBySubject(context.Background(), "123")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
