package dto

import (
	"github.com/Suvojeet-Haldar/expense-manager/internal/usecase"
)

// SubtractRequest represents a request to subtract from an entry.
type SubtractRequest struct {
	Index  int     `json:"index"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SubtractRequest) ToUseCaseInput(sessionID, actor string) usecase.SubtractInput {
	return usecase.SubtractInput{
		SessionID: sessionID,
		Index:     r.Index,
		Amount:    r.Amount,
		Note:      r.Note,
		Actor:     actor,
	}
}

// AddEntryRequest represents a request to append a new entry.
type AddEntryRequest struct {
	Name       string  `json:"name"`
	StartValue float64 `json:"start_value"`
	Rate       float64 `json:"rate"`
}

// ToUseCaseInput converts to use case input.
func (r *AddEntryRequest) ToUseCaseInput(sessionID string) usecase.AddEntryInput {
	return usecase.AddEntryInput{
		SessionID:  sessionID,
		Name:       r.Name,
		StartValue: r.StartValue,
		Rate:       r.Rate,
	}
}

// EditEntryRequest represents a request to replace an entry in place.
type EditEntryRequest struct {
	Name         string  `json:"name"`
	CurrentValue float64 `json:"current_value"`
	Rate         float64 `json:"rate"`
}

// ToUseCaseInput converts to use case input.
func (r *EditEntryRequest) ToUseCaseInput(sessionID string, index int) usecase.EditEntryInput {
	return usecase.EditEntryInput{
		SessionID:    sessionID,
		Index:        index,
		Name:         r.Name,
		CurrentValue: r.CurrentValue,
		Rate:         r.Rate,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
