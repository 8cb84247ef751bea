package usecase

import (
	"context"

	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
)

// TxLogUseCase handles transaction history queries.
type TxLogUseCase struct {
	txlogRepo TxLogRepository
}

// NewTxLogUseCase creates a new TxLogUseCase.
func NewTxLogUseCase(txlogRepo TxLogRepository) *TxLogUseCase {
	return &TxLogUseCase{txlogRepo: txlogRepo}
}

// ListRecentInput represents input for listing recent transactions.
type ListRecentInput struct {
	Limit int
}

// ListRecent returns recent transactions, newest first.
func (uc *TxLogUseCase) ListRecent(ctx context.Context, input ListRecentInput) ([]*domain.TransactionLogEntry, error) {
	if input.Limit <= 0 {
		input.Limit = DefaultLogLimit
	}
	if input.Limit > MaxLogLimit {
		input.Limit = MaxLogLimit
	}

	return uc.txlogRepo.ListRecent(ctx, input.Limit)
}
