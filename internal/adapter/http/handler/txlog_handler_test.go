package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
	"github.com/Suvojeet-Haldar/expense-manager/internal/usecase"
)

type txlogServiceStub struct {
	listFn func(ctx context.Context, input usecase.ListRecentInput) ([]*domain.TransactionLogEntry, error)
}

func (s *txlogServiceStub) ListRecent(ctx context.Context, input usecase.ListRecentInput) ([]*domain.TransactionLogEntry, error) {
	return s.listFn(ctx, input)
}

func TestTxLogHandler_List(t *testing.T) {
	handler := NewTxLogHandler(&txlogServiceStub{
		listFn: func(ctx context.Context, input usecase.ListRecentInput) ([]*domain.TransactionLogEntry, error) {
			if input.Limit != 5 {
				t.Fatalf("expected limit=5, got %d", input.Limit)
			}
			return []*domain.TransactionLogEntry{
				{TxID: 2, EntryName: "Var A", Delta: decimal.NewFromFloat(0.5)},
				{TxID: 1, EntryName: "Var B", Delta: decimal.NewFromInt(1)},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/transactions?limit=5", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Transactions []struct {
			TxID int64 `json:"tx_id"`
		} `json:"transactions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Transactions) != 2 || resp.Transactions[0].TxID != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTxLogHandler_List_DefaultLimit(t *testing.T) {
	handler := NewTxLogHandler(&txlogServiceStub{
		listFn: func(ctx context.Context, input usecase.ListRecentInput) ([]*domain.TransactionLogEntry, error) {
			if input.Limit != usecase.DefaultLogLimit {
				t.Fatalf("expected default limit, got %d", input.Limit)
			}
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTxLogHandler_List_ServiceError(t *testing.T) {
	handler := NewTxLogHandler(&txlogServiceStub{
		listFn: func(ctx context.Context, input usecase.ListRecentInput) ([]*domain.TransactionLogEntry, error) {
			return nil, errors.New("db error")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
