package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
)

// stateRecordID is the fixed key of the single shared state row.
const stateRecordID = "live_state"

// StateRepository implements usecase.StateRepository on a single-row table.
// The conditional write is one UPDATE guarded by the stored baseline
// timestamp, so concurrent writers race on the database's row-level
// atomicity rather than any in-process lock.
type StateRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewStateRepository creates a new StateRepository.
func NewStateRepository(pool *pgxpool.Pool, retrier *Retrier) *StateRepository {
	return &StateRepository{
		pool:    pool,
		retrier: retrier,
	}
}

// Read returns the current authoritative record.
func (r *StateRepository) Read(ctx context.Context) (*domain.StateRecord, error) {
	record := &domain.StateRecord{}

	err := r.pool.QueryRow(ctx,
		`SELECT names, baseline_values, rates, baseline_at
		 FROM live_state WHERE id = $1`,
		stateRecordID,
	).Scan(&record.Names, &record.BaselineValues, &record.Rates, &record.BaselineAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStateUnavailable
		}
		return nil, fmt.Errorf("read state: %w", err)
	}

	record.BaselineAt = record.BaselineAt.UTC()

	return record, nil
}

// ConditionalWrite replaces the record iff its stored baseline timestamp
// still equals expectedBaselineAt.
func (r *StateRepository) ConditionalWrite(ctx context.Context, expectedBaselineAt time.Time, record *domain.StateRecord) (bool, error) {
	var applied bool

	op := func() error {
		tag, err := r.pool.Exec(ctx,
			`UPDATE live_state
			 SET names = $2, baseline_values = $3, rates = $4, baseline_at = $5
			 WHERE id = $1 AND baseline_at = $6`,
			stateRecordID,
			record.Names,
			record.BaselineValues,
			record.Rates,
			record.BaselineAt,
			expectedBaselineAt,
		)
		if err != nil {
			return err
		}

		applied = tag.RowsAffected() == 1
		return nil
	}

	var err error
	if r.retrier != nil {
		err = r.retrier.Retry(ctx, op)
	} else {
		err = op()
	}
	if err != nil {
		return false, fmt.Errorf("conditional write: %w", err)
	}

	return applied, nil
}

// EnsureInitialized creates the record from the seed vectors if absent.
// ON CONFLICT DO NOTHING makes concurrent first access create at most one
// row; every caller then reads whichever insert won.
func (r *StateRepository) EnsureInitialized(ctx context.Context, names []string, values, rates []float64) (*domain.StateRecord, error) {
	if len(names) == 0 || len(names) != len(values) || len(names) != len(rates) {
		return nil, domain.ErrShapeMismatch
	}

	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := r.pool.Exec(ctx,
		`INSERT INTO live_state (id, names, baseline_values, rates, baseline_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO NOTHING`,
		stateRecordID, names, values, rates, now,
	)
	if err != nil {
		return nil, fmt.Errorf("initialize state: %w", err)
	}

	return r.Read(ctx)
}
