// Package cache stores computed match lists in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"skillswap/internal/matching"
	"skillswap/internal/store"
)

const keyPrefix = "skillswap:matches:"

func Open(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// MatchCache keys entries by seeker and store revision, so a dispatch makes
// every older entry unreachable and TTL only bounds memory. The revision
// epoch keeps processes sharing one Redis from reading each other's entries.
type MatchCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewMatchCache(client redis.Cmdable, ttl time.Duration) *MatchCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &MatchCache{client: client, ttl: ttl}
}

func Key(seekerID string, rev store.Revision) string {
	return fmt.Sprintf("%s%s:%s:%d", keyPrefix, rev.Epoch, seekerID, rev.Version)
}

func (c *MatchCache) Get(ctx context.Context, seekerID string, rev store.Revision) ([]matching.Match, bool, error) {
	raw, err := c.client.Get(ctx, Key(seekerID, rev)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached matches: %w", err)
	}

	var matches []matching.Match
	if err := json.Unmarshal(raw, &matches); err != nil {
		return nil, false, fmt.Errorf("decode cached matches: %w", err)
	}
	return matches, true, nil
}

func (c *MatchCache) Set(ctx context.Context, seekerID string, rev store.Revision, matches []matching.Match) error {
	raw, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("encode matches: %w", err)
	}
	if err := c.client.Set(ctx, Key(seekerID, rev), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached matches: %w", err)
	}
	return nil
}
