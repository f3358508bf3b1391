package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

const (
	// pendingTTL bounds how long a crashed request can hold a key.
	pendingTTL = time.Minute
	// resultTTL is how long a completed key keeps replaying its tweet.
	resultTTL = 24 * time.Hour

	pendingMarker = "pending"
)

// IdempotencyStore remembers which tweet an Idempotency-Key produced.
// Key format: idempotency:tweet:<caller scoped key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Claim reserves key for the current request. A completed key yields the
// recorded tweet id; a key still being processed yields
// domain.ErrRequestInProgress.
func (s *IdempotencyStore) Claim(ctx context.Context, key string) (int64, bool, error) {
	k := s.key(key)
	for range 2 {
		ok, err := s.client.SetNX(ctx, k, pendingMarker, pendingTTL).Result()
		if err != nil {
			return 0, false, fmt.Errorf("idempotency claim: %w", err)
		}
		if ok {
			return 0, true, nil
		}

		val, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			// expired between SETNX and GET
			continue
		}
		if err != nil {
			return 0, false, fmt.Errorf("idempotency lookup: %w", err)
		}
		if val == pendingMarker {
			return 0, false, domain.ErrRequestInProgress
		}
		id, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("idempotency value %q: %w", val, err)
		}
		return id, false, nil
	}
	return 0, false, domain.ErrRequestInProgress
}

// Complete records the tweet produced for key.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, id int64) error {
	if err := s.client.Set(ctx, s.key(key), strconv.FormatInt(id, 10), resultTTL).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release frees key after a failed request so the client can retry.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(key string) string {
	return "idempotency:tweet:" + key
}
