package usecase

import (
	"context"
	"time"

	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
)

// StateRepository defines data access for the shared state record.
type StateRepository interface {
	// Read returns the current authoritative record.
	Read(ctx context.Context) (*domain.StateRecord, error)
	// ConditionalWrite replaces the record iff its baseline timestamp
	// still equals expectedBaselineAt. Returns whether the write took.
	ConditionalWrite(ctx context.Context, expectedBaselineAt time.Time, record *domain.StateRecord) (bool, error)
	// EnsureInitialized creates the record from the seed vectors if it
	// does not exist yet. Safe under concurrent first access.
	EnsureInitialized(ctx context.Context, names []string, values, rates []float64) (*domain.StateRecord, error)
}

// TxLogRepository defines data access for the append-only transaction log.
type TxLogRepository interface {
	Append(ctx context.Context, entry *domain.TransactionLogEntry) error
	// ListRecent returns entries newest first by timestamp, ties broken
	// by tx id descending.
	ListRecent(ctx context.Context, limit int) ([]*domain.TransactionLogEntry, error)
}

// SequenceRepository issues transaction ids. Next must never return the
// same value twice, across concurrent callers and process restarts.
type SequenceRepository interface {
	Next(ctx context.Context) (int64, error)
}

// SnapshotCache holds each session's last-committed view of the record,
// used as the fast-path candidate for that session's next subtraction.
// Get returns (nil, nil) on a cache miss.
type SnapshotCache interface {
	Get(ctx context.Context, sessionID string) (*domain.StateRecord, error)
	Put(ctx context.Context, sessionID string, record *domain.StateRecord) error
	Delete(ctx context.Context, sessionID string) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// MutationMetrics observes the mutation protocol. Implementations must be
// safe for concurrent use; a nil MutationMetrics disables recording.
type MutationMetrics interface {
	MutationCommitted(op string)
	MutationConflict(op string)
	MutationExhausted(op string)
	ObserveMutationDuration(op string, seconds float64)
	LogEntryWritten()
	LogWriteFailed()
	SnapshotHit()
	SnapshotMiss()
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
