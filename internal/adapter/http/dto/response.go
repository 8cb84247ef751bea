package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
)

// StateResponse represents the live record in API responses. Values are
// projected to the serving instant; clients animate forward from there
// using the rates and display hints.
type StateResponse struct {
	Names            []string  `json:"names"`
	Values           []float64 `json:"values"`
	Rates            []float64 `json:"rates"`
	BaselineAt       time.Time `json:"baseline_at"`
	ServedAt         time.Time `json:"served_at"`
	UpdatesPerSecond int       `json:"updates_per_second"`
	Decimals         int       `json:"decimals"`
}

// StateFromDomain converts the record to a response projected at the given
// instant.
func StateFromDomain(record *domain.StateRecord, at time.Time, updatesPerSecond, decimals int) *StateResponse {
	return &StateResponse{
		Names:            record.Names,
		Values:           record.ProjectAt(at),
		Rates:            record.Rates,
		BaselineAt:       record.BaselineAt,
		ServedAt:         at,
		UpdatesPerSecond: updatesPerSecond,
		Decimals:         decimals,
	}
}

// MutationResponse represents the outcome of an accepted mutation.
type MutationResponse struct {
	Message string         `json:"message"`
	TxID    int64          `json:"tx_id,omitempty"`
	State   *StateResponse `json:"state"`
}

// TransactionResponse represents a transaction log entry in API responses.
type TransactionResponse struct {
	TxID      int64           `json:"tx_id"`
	Timestamp time.Time       `json:"timestamp"`
	EntryName string          `json:"entry_name"`
	Delta     decimal.Decimal `json:"delta"`
	Note      string          `json:"note,omitempty"`
	Actor     string          `json:"actor,omitempty"`
}

// TransactionFromDomain converts a log entry to a response.
func TransactionFromDomain(e *domain.TransactionLogEntry) *TransactionResponse {
	return &TransactionResponse{
		TxID:      e.TxID,
		Timestamp: e.Timestamp,
		EntryName: e.EntryName,
		Delta:     e.Delta,
		Note:      e.Note,
		Actor:     e.Actor,
	}
}

// TransactionsFromDomain converts log entries to responses.
func TransactionsFromDomain(entries []*domain.TransactionLogEntry) []*TransactionResponse {
	result := make([]*TransactionResponse, len(entries))
	for i, e := range entries {
		result[i] = TransactionFromDomain(e)
	}
	return result
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
