package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/soft99/storefront-backend/pkg/redis"
)

type kvClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SnapshotKey(kind string) string
}

// Redis stores each collection as one JSON string under s99:snapshot:<kind>.
type Redis struct {
	client kvClient
	ttl    time.Duration
}

// NewRedis builds the store; ttl of zero keeps keys forever.
func NewRedis(client *redis.Client, ttl time.Duration) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Name() string { return "redis" }

func (r *Redis) Load(ctx context.Context, kind Kind) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.client.SnapshotKey(kind.String()))
	if redis.IsNil(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s snapshot: %w", kind, err)
	}
	return []byte(value), true, nil
}

func (r *Redis) Save(ctx context.Context, kind Kind, payload []byte) error {
	if err := r.client.Set(ctx, r.client.SnapshotKey(kind.String()), string(payload), r.ttl); err != nil {
		return fmt.Errorf("redis set %s snapshot: %w", kind, err)
	}
	return nil
}
