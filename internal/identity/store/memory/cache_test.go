package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resident/pkg/platform/sentinel"
)

func TestTokenCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewTokenCacheWithClock(func() time.Time { return now })

	_, err := cache.Get(ctx, "123")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, cache.Set(ctx, "123", "tok-abc", time.Minute))
	token, err := cache.Get(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)

	now = now.Add(time.Minute)
	_, err = cache.Get(ctx, "123")
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "entry expires at ttl")
}

func TestTokenCache_SetDuringExpiredGetSurvives(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var (
		cache    *TokenCache
		injected bool
	)
	// the first clock read after the entry expired stands in for a Set that
	// lands between Get's read and its eviction
	clock := func() time.Time {
		if cache != nil && !injected && now.After(time.Date(2026, 1, 1, 0, 0, 30, 0, time.UTC)) {
			injected = true
			require.NoError(t, cache.Set(ctx, "123", "tok-fresh", time.Minute))
		}
		return now
	}
	cache = NewTokenCacheWithClock(clock)

	require.NoError(t, cache.Set(ctx, "123", "tok-stale", 10*time.Second))
	now = now.Add(time.Minute)

	token, err := cache.Get(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "tok-fresh", token, "the replacing entry is served, not evicted")
	require.True(t, injected)

	token, err = cache.Get(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "tok-fresh", token)
}

func TestTokenCache_ConcurrentGetAndSet(t *testing.T) {
	ctx := context.Background()
	cache := NewTokenCache()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = cache.Set(ctx, "123", fmt.Sprintf("tok-%d", i), time.Nanosecond)
		}()
		go func() {
			defer wg.Done()
			_, _ = cache.Get(ctx, "123")
		}()
	}
	wg.Wait()

	require.NoError(t, cache.Set(ctx, "123", "tok-final", time.Minute))
	token, err := cache.Get(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "tok-final", token)
}
