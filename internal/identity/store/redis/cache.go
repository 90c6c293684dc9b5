// Package redis caches IDA tokens in Redis so replicas share lookups.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"resident/pkg/platform/sentinel"
)

const keyPrefix = "resident:ida_token:"

// TokenCache implements the identity token cache on Redis strings with TTL.
type TokenCache struct {
	client goredis.Cmdable
}

func NewTokenCache(client goredis.Cmdable) *TokenCache {
	return &TokenCache{client: client}
}

func (c *TokenCache) Get(ctx context.Context, individualID string) (string, error) {
	token, err := c.client.Get(ctx, keyPrefix+individualID).Result()
	if errors.Is(err, goredis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get ida token: %w", err)
	}
	return token, nil
}

func (c *TokenCache) Set(ctx context.Context, individualID, token string, ttl time.Duration) error {
	if err := c.client.Set(ctx, keyPrefix+individualID, token, ttl).Err(); err != nil {
		return fmt.Errorf("set ida token: %w", err)
	}
	return nil
}
