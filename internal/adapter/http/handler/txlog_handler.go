package handler

import (
	"context"
	"net/http"

	"github.com/Suvojeet-Haldar/expense-manager/internal/adapter/http/dto"
	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
	"github.com/Suvojeet-Haldar/expense-manager/internal/usecase"
)

// TxLogService defines the behavior needed by TxLogHandler.
type TxLogService interface {
	ListRecent(ctx context.Context, input usecase.ListRecentInput) ([]*domain.TransactionLogEntry, error)
}

// TxLogHandler handles transaction log HTTP requests.
type TxLogHandler struct {
	txlogUC TxLogService
}

// NewTxLogHandler creates a new TxLogHandler.
func NewTxLogHandler(txlogUC TxLogService) *TxLogHandler {
	return &TxLogHandler{txlogUC: txlogUC}
}

// List returns recent transactions, newest first.
func (h *TxLogHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", usecase.DefaultLogLimit)

	entries, err := h.txlogUC.ListRecent(r.Context(), usecase.ListRecentInput{Limit: limit})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": dto.TransactionsFromDomain(entries),
	})
}
