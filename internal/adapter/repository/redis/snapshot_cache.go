package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
)

// SnapshotCache implements usecase.SnapshotCache using Redis. It holds the
// record a session last committed so the fast mutation path can skip the
// initial database read. Entries expire on their own; a stale snapshot only
// costs one extra conflict retry.
type SnapshotCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSnapshotCache creates a new SnapshotCache.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		client: client,
		prefix: "session:",
		ttl:    ttl,
	}
}

// Get returns the snapshot for a session, or (nil, nil) on a miss.
func (c *SnapshotCache) Get(ctx context.Context, sessionID string) (*domain.StateRecord, error) {
	data, err := c.client.Get(ctx, c.prefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	record := &domain.StateRecord{}
	if err := json.Unmarshal(data, record); err != nil {
		// Treat a corrupt snapshot as a miss; the slow path re-reads.
		return nil, nil
	}

	return record, nil
}

// Put stores the snapshot a session just committed.
func (c *SnapshotCache) Put(ctx context.Context, sessionID string, record *domain.StateRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.prefix+sessionID, data, c.ttl).Err()
}

// Delete drops a session's snapshot.
func (c *SnapshotCache) Delete(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, c.prefix+sessionID).Err()
}
