package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
)

// errWriteConflict signals a lost conditional write inside the retry loop.
// It never escapes: exhaustion is reported as domain.ErrConflictExhausted.
var errWriteConflict = errors.New("conditional write lost the race")

// StateUseCase implements the optimistic mutation protocol over the shared
// state record. Subtract, AddEntry, EditEntry and DeleteEntry all run the
// same loop: project the candidate record to now, apply a transform,
// attempt a conditional write keyed on the candidate's baseline timestamp,
// and on conflict re-read and retry up to the fixed budget.
type StateUseCase struct {
	stateRepo StateRepository
	txlogRepo TxLogRepository
	seqRepo   SequenceRepository
	snapshots SnapshotCache
	metrics   MutationMetrics
	clock     func() time.Time

	seedNames  []string
	seedValues []float64
	seedRates  []float64
}

// Option configures a StateUseCase.
type Option func(*StateUseCase)

// WithClock overrides the time source. The default truncates to whole
// microseconds so baseline timestamps round-trip through the store exactly.
func WithClock(clock func() time.Time) Option {
	return func(uc *StateUseCase) {
		uc.clock = clock
	}
}

// NewStateUseCase creates a new StateUseCase. The seed vectors are used only
// on first-ever initialization of the record.
func NewStateUseCase(
	stateRepo StateRepository,
	txlogRepo TxLogRepository,
	seqRepo SequenceRepository,
	snapshots SnapshotCache,
	metrics MutationMetrics,
	seedNames []string,
	seedValues []float64,
	seedRates []float64,
	opts ...Option,
) *StateUseCase {
	uc := &StateUseCase{
		stateRepo:  stateRepo,
		txlogRepo:  txlogRepo,
		seqRepo:    seqRepo,
		snapshots:  snapshots,
		metrics:    metrics,
		clock:      utcNow,
		seedNames:  seedNames,
		seedValues: seedValues,
		seedRates:  seedRates,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// utcNow returns the current instant in UTC truncated to microseconds,
// matching timestamptz precision so the stored version token compares equal
// after a round trip.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// MutationResult is the terminal outcome of an accepted mutation.
type MutationResult struct {
	Record  *domain.StateRecord
	Message string
	TxID    int64
}

// Snapshot returns the authoritative record, creating it from the seed
// vectors on first access.
func (uc *StateUseCase) Snapshot(ctx context.Context) (*domain.StateRecord, error) {
	record, err := uc.stateRepo.EnsureInitialized(ctx, uc.seedNames, uc.seedValues, uc.seedRates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStateUnavailable, err)
	}

	return record, nil
}

// transform maps the candidate record, projected to now, to its successor.
// Returned errors are permanent: they stop the retry loop immediately.
type transform func(now time.Time, projected []float64, candidate *domain.StateRecord) (*domain.StateRecord, error)

// mutate runs the optimistic protocol. candidate may be a session-cached
// view for the first attempt; every retry re-reads the authoritative record.
func (uc *StateUseCase) mutate(ctx context.Context, op string, candidate *domain.StateRecord, fn transform) (*domain.StateRecord, error) {
	var committed *domain.StateRecord

	if uc.metrics != nil {
		start := time.Now()
		defer func() {
			uc.metrics.ObserveMutationDuration(op, time.Since(start).Seconds())
		}()
	}

	attempt := func() error {
		fresh := candidate == nil
		if fresh {
			record, err := uc.stateRepo.Read(ctx)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("%w: %v", domain.ErrStateUnavailable, err))
			}
			candidate = record
		}

		now := uc.clock()
		projected := candidate.ProjectAt(now)

		next, err := fn(now, projected, candidate)
		if err != nil {
			if !fresh {
				// A stale session snapshot can fail a shape check the
				// authoritative record would pass. Retry against the store.
				candidate = nil
				return errWriteConflict
			}
			return backoff.Permanent(err)
		}
		next.BaselineAt = now

		ok, err := uc.stateRepo.ConditionalWrite(ctx, candidate.BaselineAt, next)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("conditional write: %w", err))
		}
		if !ok {
			if uc.metrics != nil {
				uc.metrics.MutationConflict(op)
			}
			candidate = nil // force a fresh read on the next attempt
			return errWriteConflict
		}

		committed = next
		return nil
	}

	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(MutationRetryDelay), MutationRetries)

	err := backoff.Retry(attempt, backoff.WithContext(b, ctx))
	if err != nil {
		if errors.Is(err, errWriteConflict) {
			if uc.metrics != nil {
				uc.metrics.MutationExhausted(op)
			}
			log.Warn().Str("op", op).Int("retries", MutationRetries).Msg("mutation retries exhausted")
			return nil, domain.ErrConflictExhausted
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MutationCommitted(op)
	}

	return committed, nil
}

// SubtractInput represents input for subtracting from an entry.
type SubtractInput struct {
	SessionID string
	Index     int
	Amount    float64
	Note      string
	Actor     string
}

// Subtract removes Amount from the entry at Index, re-basing the whole
// record to the commit instant, then appends a transaction log entry.
// Log append failure does not roll the subtraction back; it is reported as
// a warning inside the success message.
func (uc *StateUseCase) Subtract(ctx context.Context, input SubtractInput) (*MutationResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	// Fast path candidate: this session's last committed view. A stale or
	// missing snapshot just means the first attempt reads from the store.
	var candidate *domain.StateRecord
	if input.SessionID != "" && uc.snapshots != nil {
		cached, err := uc.snapshots.Get(ctx, input.SessionID)
		if err != nil {
			log.Debug().Err(err).Str("session", input.SessionID).Msg("session snapshot unavailable")
		} else {
			candidate = cached
		}
		if uc.metrics != nil {
			if candidate != nil {
				uc.metrics.SnapshotHit()
			} else {
				uc.metrics.SnapshotMiss()
			}
		}
	}

	var entryName string
	record, err := uc.mutate(ctx, "subtract", candidate, func(now time.Time, projected []float64, cand *domain.StateRecord) (*domain.StateRecord, error) {
		if err := domain.ValidateIndex(input.Index, cand.Len()); err != nil {
			return nil, err
		}

		next := cand.Clone()
		next.BaselineValues = projected
		next.BaselineValues[input.Index] -= input.Amount
		entryName = next.Names[input.Index]

		return next, nil
	})
	if err != nil {
		return nil, err
	}

	uc.rememberSnapshot(ctx, input.SessionID, record)

	result := &MutationResult{
		Record:  record,
		Message: fmt.Sprintf("Subtracted %v from %s.", input.Amount, entryName),
	}

	txID, err := uc.appendLog(ctx, record.BaselineAt, entryName, input)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.LogWriteFailed()
		}
		log.Error().Err(err).Str("entry", entryName).Msg("transaction log append failed")
		result.Message += " Warning: transaction could not be logged."
		return result, nil
	}
	result.TxID = txID
	if uc.metrics != nil {
		uc.metrics.LogEntryWritten()
	}

	return result, nil
}

func (uc *StateUseCase) appendLog(ctx context.Context, at time.Time, entryName string, input SubtractInput) (int64, error) {
	txID, err := uc.seqRepo.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrLogWriteFailed, err)
	}

	entry := &domain.TransactionLogEntry{
		TxID:      txID,
		Timestamp: at,
		EntryName: entryName,
		Delta:     decimal.NewFromFloat(input.Amount),
		Note:      input.Note,
		Actor:     input.Actor,
	}

	if err := uc.txlogRepo.Append(ctx, entry); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrLogWriteFailed, err)
	}

	return txID, nil
}

// AddEntryInput represents input for appending a new entry.
type AddEntryInput struct {
	SessionID  string
	Name       string
	StartValue float64
	Rate       float64
}

// AddEntry appends a new entry; existing entries keep their projected values
// as their new baselines.
func (uc *StateUseCase) AddEntry(ctx context.Context, input AddEntryInput) (*MutationResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := domain.ValidateEntryName(input.Name); err != nil {
		return nil, err
	}

	record, err := uc.mutate(ctx, "add_entry", nil, func(now time.Time, projected []float64, cand *domain.StateRecord) (*domain.StateRecord, error) {
		if cand.IndexOf(input.Name) >= 0 {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateName, input.Name)
		}

		next := cand.Clone()
		next.BaselineValues = append(projected, input.StartValue)
		next.Names = append(next.Names, input.Name)
		next.Rates = append(next.Rates, input.Rate)

		return next, nil
	})
	if err != nil {
		return nil, err
	}

	uc.rememberSnapshot(ctx, input.SessionID, record)

	return &MutationResult{
		Record:  record,
		Message: fmt.Sprintf("Added entry %s.", input.Name),
	}, nil
}

// EditEntryInput represents input for replacing an entry in place.
type EditEntryInput struct {
	SessionID    string
	Index        int
	Name         string
	CurrentValue float64
	Rate         float64
}

// EditEntry replaces the entry's name and rate and sets its baseline to the
// caller-supplied current value, so no discontinuity is visible. Every other
// entry is re-based to its projected value at the commit instant.
func (uc *StateUseCase) EditEntry(ctx context.Context, input EditEntryInput) (*MutationResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := domain.ValidateEntryName(input.Name); err != nil {
		return nil, err
	}

	record, err := uc.mutate(ctx, "edit_entry", nil, func(now time.Time, projected []float64, cand *domain.StateRecord) (*domain.StateRecord, error) {
		if err := domain.ValidateIndex(input.Index, cand.Len()); err != nil {
			return nil, err
		}
		if at := cand.IndexOf(input.Name); at >= 0 && at != input.Index {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateName, input.Name)
		}

		next := cand.Clone()
		next.BaselineValues = projected
		next.BaselineValues[input.Index] = input.CurrentValue
		next.Names[input.Index] = input.Name
		next.Rates[input.Index] = input.Rate

		return next, nil
	})
	if err != nil {
		return nil, err
	}

	uc.rememberSnapshot(ctx, input.SessionID, record)

	return &MutationResult{
		Record:  record,
		Message: fmt.Sprintf("Updated entry %s.", input.Name),
	}, nil
}

// DeleteEntryInput represents input for removing an entry.
type DeleteEntryInput struct {
	SessionID string
	Index     int
}

// DeleteEntry removes the entry at Index; subsequent entries shift down and
// keep their projected values.
func (uc *StateUseCase) DeleteEntry(ctx context.Context, input DeleteEntryInput) (*MutationResult, error) {
	var entryName string

	record, err := uc.mutate(ctx, "delete_entry", nil, func(now time.Time, projected []float64, cand *domain.StateRecord) (*domain.StateRecord, error) {
		if err := domain.ValidateIndex(input.Index, cand.Len()); err != nil {
			return nil, err
		}
		entryName = cand.Names[input.Index]

		next := cand.Clone()
		next.BaselineValues = append(projected[:input.Index], projected[input.Index+1:]...)
		next.Names = append(next.Names[:input.Index], next.Names[input.Index+1:]...)
		next.Rates = append(next.Rates[:input.Index], next.Rates[input.Index+1:]...)

		return next, nil
	})
	if err != nil {
		return nil, err
	}

	uc.rememberSnapshot(ctx, input.SessionID, record)

	return &MutationResult{
		Record:  record,
		Message: fmt.Sprintf("Deleted entry %s.", entryName),
	}, nil
}

// rememberSnapshot stores the committed record as the session's fast-path
// candidate. Best-effort: a cache failure only costs the fast path.
func (uc *StateUseCase) rememberSnapshot(ctx context.Context, sessionID string, record *domain.StateRecord) {
	if sessionID == "" || uc.snapshots == nil {
		return
	}

	if err := uc.snapshots.Put(ctx, sessionID, record); err != nil {
		log.Debug().Err(err).Str("session", sessionID).Msg("failed to cache session snapshot")
	}
}
