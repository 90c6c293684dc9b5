package quota

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// RedisStore implements Store as a sorted-set sliding window shared by all
// replicas. Members are scored by request time in milliseconds.
type RedisStore struct {
	client goredis.Cmdable
	now    func() time.Time
}

func NewRedisStore(client goredis.Cmdable) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

// Allow records the request and counts the window in one MULTI so concurrent
// replicas see each other's writes. A request over the limit is removed again.
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := s.now()
	cutoff := now.Add(-window).UnixMilli()
	member := uuid.NewString()

	var (
		count  *goredis.IntCmd
		oldest *goredis.ZSliceCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(cutoff, 10))
		pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now.UnixMilli()), Member: member})
		count = pipe.ZCard(ctx, key)
		oldest = pipe.ZRangeWithScores(ctx, key, 0, 0)
		pipe.PExpire(ctx, key, window)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record otp quota: %w", err)
	}

	resetAt := now.Add(window)
	if zs := oldest.Val(); len(zs) > 0 {
		resetAt = time.UnixMilli(int64(zs[0].Score)).Add(window)
	}
	used := int(count.Val())
	if used > limit {
		if err := s.client.ZRem(ctx, key, member).Err(); err != nil {
			return nil, fmt.Errorf("release otp quota: %w", err)
		}
		return &Result{Allowed: false, Remaining: 0, ResetAt: resetAt}, nil
	}
	return &Result{Allowed: true, Remaining: limit - used, ResetAt: resetAt}, nil
}
