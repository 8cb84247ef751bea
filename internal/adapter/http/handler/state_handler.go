package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Suvojeet-Haldar/expense-manager/internal/adapter/http/dto"
	"github.com/Suvojeet-Haldar/expense-manager/internal/adapter/http/middleware"
	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
	"github.com/Suvojeet-Haldar/expense-manager/internal/usecase"
)

// sessionHeader carries the caller's session identity for the fast
// mutation path. Optional; requests without it always read the store first.
const sessionHeader = "X-Session-ID"

// StateService defines the behavior needed by StateHandler.
type StateService interface {
	Snapshot(ctx context.Context) (*domain.StateRecord, error)
	Subtract(ctx context.Context, input usecase.SubtractInput) (*usecase.MutationResult, error)
	AddEntry(ctx context.Context, input usecase.AddEntryInput) (*usecase.MutationResult, error)
	EditEntry(ctx context.Context, input usecase.EditEntryInput) (*usecase.MutationResult, error)
	DeleteEntry(ctx context.Context, input usecase.DeleteEntryInput) (*usecase.MutationResult, error)
}

// DisplayHints are advisory rendering parameters returned with the state.
type DisplayHints struct {
	UpdatesPerSecond int
	Decimals         int
}

// StateHandler handles live-state HTTP requests.
type StateHandler struct {
	stateUC StateService
	hints   DisplayHints
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(stateUC StateService, hints DisplayHints) *StateHandler {
	return &StateHandler{
		stateUC: stateUC,
		hints:   hints,
	}
}

// Get returns the record projected to the serving instant.
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.stateUC.Snapshot(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to read state", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.stateResponse(record))
}

// Subtract removes an amount from one entry.
func (h *StateHandler) Subtract(w http.ResponseWriter, r *http.Request) {
	var req dto.SubtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input := req.ToUseCaseInput(r.Header.Get(sessionHeader), actorFrom(r))

	result, err := h.stateUC.Subtract(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to subtract", err.Error())
		return
	}

	h.writeMutation(w, result)
}

// AddEntry appends a new entry.
func (h *StateHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	var req dto.AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.stateUC.AddEntry(r.Context(), req.ToUseCaseInput(r.Header.Get(sessionHeader)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add entry", err.Error())
		return
	}

	h.writeMutation(w, result)
}

// EditEntry replaces the entry at the index in the URL.
func (h *StateHandler) EditEntry(w http.ResponseWriter, r *http.Request) {
	index, ok := parseIndexParam(w, r)
	if !ok {
		return
	}

	var req dto.EditEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.stateUC.EditEntry(r.Context(), req.ToUseCaseInput(r.Header.Get(sessionHeader), index))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to edit entry", err.Error())
		return
	}

	h.writeMutation(w, result)
}

// DeleteEntry removes the entry at the index in the URL.
func (h *StateHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	index, ok := parseIndexParam(w, r)
	if !ok {
		return
	}

	result, err := h.stateUC.DeleteEntry(r.Context(), usecase.DeleteEntryInput{
		SessionID: r.Header.Get(sessionHeader),
		Index:     index,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to delete entry", err.Error())
		return
	}

	h.writeMutation(w, result)
}

func (h *StateHandler) writeMutation(w http.ResponseWriter, result *usecase.MutationResult) {
	writeJSON(w, http.StatusOK, dto.MutationResponse{
		Message: result.Message,
		TxID:    result.TxID,
		State:   h.stateResponse(result.Record),
	})
}

func (h *StateHandler) stateResponse(record *domain.StateRecord) *dto.StateResponse {
	return dto.StateFromDomain(record, time.Now().UTC(), h.hints.UpdatesPerSecond, h.hints.Decimals)
}

func parseIndexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry index", err.Error())
		return 0, false
	}
	return index, true
}

// actorFrom resolves the audit identity for log entries. Falls back to the
// session header when the request is unauthenticated.
func actorFrom(r *http.Request) string {
	if user, ok := middleware.GetUserFromContext(r.Context()); ok {
		return user.Email
	}
	return r.Header.Get(sessionHeader)
}
