package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionLogEntry records one accepted subtraction. Entries are written
// exactly once per committed mutation and never updated or deleted.
type TransactionLogEntry struct {
	TxID      int64
	Timestamp time.Time
	EntryName string
	Delta     decimal.Decimal
	Note      string
	Actor     string
}
