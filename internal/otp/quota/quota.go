// Package quota caps how many OTPs one individual can request in a sliding
// window, independently of the per-client rate limit.
package quota

import (
	"context"
	"fmt"
	"time"
)

// Result is the outcome of one quota check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Store records requests against a key and decides whether another fits.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

const keyPrefix = "resident:otp_quota:"

// Limiter applies a fixed limit and window to per-individual keys.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

// New returns a Limiter, or nil when limit is not positive (quota disabled).
func New(store Store, limit int, window time.Duration) *Limiter {
	if limit <= 0 || window <= 0 {
		return nil
	}
	return &Limiter{store: store, limit: limit, window: window}
}

// Check consumes one request for individualID. A nil Limiter allows
// everything.
func (l *Limiter) Check(ctx context.Context, individualID string) (*Result, error) {
	if l == nil {
		return &Result{Allowed: true}, nil
	}
	return l.store.Allow(ctx, keyPrefix+individualID, l.limit, l.window)
}

// ExceededError reports that an individual has used up the quota until ResetAt.
type ExceededError struct {
	ResetAt time.Time
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("otp quota exceeded until %s", e.ResetAt.UTC().Format(time.RFC3339))
}
