package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// sequenceID is the fixed key of the single counter row.
const sequenceID = "tx_counter"

// SequenceRepository implements usecase.SequenceRepository with a durable
// single-row counter. The upsert-increment is atomic in the database, so
// concurrent callers and process restarts can never observe a repeated id.
type SequenceRepository struct {
	pool *pgxpool.Pool
}

// NewSequenceRepository creates a new SequenceRepository.
func NewSequenceRepository(pool *pgxpool.Pool) *SequenceRepository {
	return &SequenceRepository{pool: pool}
}

// Next atomically increments the persisted counter and returns it,
// creating the row on first use.
func (r *SequenceRepository) Next(ctx context.Context) (int64, error) {
	var value int64

	err := r.pool.QueryRow(ctx,
		`INSERT INTO tx_counter (id, value) VALUES ($1, 1)
		 ON CONFLICT (id) DO UPDATE SET value = tx_counter.value + 1
		 RETURNING value`,
		sequenceID,
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("next tx id: %w", err)
	}

	return value, nil
}
