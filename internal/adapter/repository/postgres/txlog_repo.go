package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
)

// TxLogRepository implements usecase.TxLogRepository. Rows are insert-only;
// there is no update or delete path.
type TxLogRepository struct {
	pool *pgxpool.Pool
}

// NewTxLogRepository creates a new TxLogRepository.
func NewTxLogRepository(pool *pgxpool.Pool) *TxLogRepository {
	return &TxLogRepository{pool: pool}
}

// Append inserts one transaction log entry.
func (r *TxLogRepository) Append(ctx context.Context, entry *domain.TransactionLogEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tx_log (tx_id, ts, entry_name, delta, note, actor)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.TxID,
		entry.Timestamp,
		entry.EntryName,
		decimalToNumeric(entry.Delta),
		entry.Note,
		entry.Actor,
	)
	if err != nil {
		return fmt.Errorf("append tx log: %w", err)
	}

	return nil
}

// ListRecent returns entries newest first by timestamp, ties broken by
// tx id descending.
func (r *TxLogRepository) ListRecent(ctx context.Context, limit int) ([]*domain.TransactionLogEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT tx_id, ts, entry_name, delta, note, actor
		 FROM tx_log
		 ORDER BY ts DESC, tx_id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list tx log: %w", err)
	}
	defer rows.Close()

	var entries []*domain.TransactionLogEntry
	for rows.Next() {
		entry := &domain.TransactionLogEntry{}
		var delta pgtype.Numeric

		err := rows.Scan(
			&entry.TxID,
			&entry.Timestamp,
			&entry.EntryName,
			&delta,
			&entry.Note,
			&entry.Actor,
		)
		if err != nil {
			return nil, err
		}

		entry.Timestamp = entry.Timestamp.UTC()
		entry.Delta = numericToDecimal(delta)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
