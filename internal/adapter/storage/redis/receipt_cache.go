package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ReceiptCache implements ports.ReceiptCache using Redis. It short-circuits
// repeat verifications of a reference that has already been settled. The
// cache is advisory only; a miss always falls through to the gateway and the
// ledger constraint remains the arbiter of whether a credit applies.
type ReceiptCache struct {
	client *goredis.Client
	prefix string
}

// NewReceiptCache creates a new Redis-backed receipt cache.
func NewReceiptCache(client *goredis.Client) *ReceiptCache {
	return &ReceiptCache{
		client: client,
		prefix: "receipt:",
	}
}

// Get retrieves a cached receipt by payment reference.
// Returns nil, nil if the reference has no cached receipt.
func (c *ReceiptCache) Get(ctx context.Context, reference string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+reference).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis receipt get: %w", err)
	}
	return val, nil
}

// Set stores a receipt with TTL.
func (c *ReceiptCache) Set(ctx context.Context, reference string, value []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+reference, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis receipt set: %w", err)
	}
	return nil
}
