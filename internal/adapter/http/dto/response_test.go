package dto_test

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Suvojeet-Haldar/expense-manager/internal/adapter/http/dto"
	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
)

func TestStateFromDomainProjectsValues(t *testing.T) {
	baseline := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	record := &domain.StateRecord{
		Names:          []string{"Var A", "Var B"},
		BaselineValues: []float64{10, 20},
		Rates:          []float64{0.5, 0},
		BaselineAt:     baseline,
	}

	at := baseline.Add(4 * time.Second)
	resp := dto.StateFromDomain(record, at, 100, 7)

	if math.Abs(resp.Values[0]-12) > 1e-9 || math.Abs(resp.Values[1]-20) > 1e-9 {
		t.Fatalf("unexpected projected values: %v", resp.Values)
	}
	if !resp.ServedAt.Equal(at) || !resp.BaselineAt.Equal(baseline) {
		t.Fatalf("unexpected timestamps: served=%v baseline=%v", resp.ServedAt, resp.BaselineAt)
	}
	if resp.UpdatesPerSecond != 100 || resp.Decimals != 7 {
		t.Fatalf("unexpected display hints: %d/%d", resp.UpdatesPerSecond, resp.Decimals)
	}
}

func TestTransactionsFromDomain(t *testing.T) {
	entries := []*domain.TransactionLogEntry{
		{TxID: 2, EntryName: "Var A", Delta: decimal.NewFromFloat(0.5), Note: "lunch"},
		{TxID: 1, EntryName: "Var B", Delta: decimal.NewFromInt(3)},
	}

	result := dto.TransactionsFromDomain(entries)
	if len(result) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(result))
	}
	if result[0].TxID != 2 || result[0].Note != "lunch" {
		t.Fatalf("unexpected first response: %+v", result[0])
	}
	if !result[1].Delta.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("unexpected delta: %s", result[1].Delta)
	}
}
