package memory

import (
	"context"
	"sync"
	"time"

	"resident/pkg/platform/sentinel"
)

type entry struct {
	token     string
	expiresAt time.Time
}

// TokenCache is an in-process IDA token cache with per-entry expiry.
type TokenCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewTokenCache() *TokenCache {
	return &TokenCache{entries: make(map[string]entry), now: time.Now}
}

// NewTokenCacheWithClock is used by tests to control expiry.
func NewTokenCacheWithClock(now func() time.Time) *TokenCache {
	return &TokenCache{entries: make(map[string]entry), now: now}
}

func (c *TokenCache) Get(_ context.Context, individualID string) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[individualID]
	c.mu.RUnlock()
	if !ok {
		return "", sentinel.ErrNotFound
	}
	if c.now().Before(e.expiresAt) {
		return e.token, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// a Set may have replaced the entry since the read lock was released
	e, ok = c.entries[individualID]
	if ok && c.now().Before(e.expiresAt) {
		return e.token, nil
	}
	delete(c.entries, individualID)
	return "", sentinel.ErrNotFound
}

func (c *TokenCache) Set(_ context.Context, individualID, token string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[individualID] = entry{token: token, expiresAt: c.now().Add(ttl)}
	return nil
}
