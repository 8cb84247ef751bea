package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
)

// MockStateRepository is an in-memory StateRepository. Its default behavior
// implements a real compare-and-swap under a mutex, so concurrency tests
// exercise the same atomicity the store provides.
type MockStateRepository struct {
	mu     sync.Mutex
	record *domain.StateRecord

	ReadFunc              func(ctx context.Context) (*domain.StateRecord, error)
	ConditionalWriteFunc  func(ctx context.Context, expectedBaselineAt time.Time, record *domain.StateRecord) (bool, error)
	EnsureInitializedFunc func(ctx context.Context, names []string, values, rates []float64) (*domain.StateRecord, error)

	ReadCalls  int
	WriteCalls int
}

func NewMockStateRepository() *MockStateRepository {
	return &MockStateRepository{}
}

// Seed installs a record directly, bypassing EnsureInitialized.
func (m *MockStateRepository) Seed(record *domain.StateRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = record.Clone()
}

// Record returns a copy of the stored record.
func (m *MockStateRepository) Record() *domain.StateRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.record == nil {
		return nil
	}
	return m.record.Clone()
}

func (m *MockStateRepository) Read(ctx context.Context) (*domain.StateRecord, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadCalls++
	if m.record == nil {
		return nil, domain.ErrStateUnavailable
	}
	return m.record.Clone(), nil
}

func (m *MockStateRepository) ConditionalWrite(ctx context.Context, expectedBaselineAt time.Time, record *domain.StateRecord) (bool, error) {
	if m.ConditionalWriteFunc != nil {
		return m.ConditionalWriteFunc(ctx, expectedBaselineAt, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteCalls++
	if m.record == nil || !m.record.BaselineAt.Equal(expectedBaselineAt) {
		return false, nil
	}
	m.record = record.Clone()
	return true, nil
}

func (m *MockStateRepository) EnsureInitialized(ctx context.Context, names []string, values, rates []float64) (*domain.StateRecord, error) {
	if m.EnsureInitializedFunc != nil {
		return m.EnsureInitializedFunc(ctx, names, values, rates)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.record == nil {
		m.record = &domain.StateRecord{
			Names:          append([]string(nil), names...),
			BaselineValues: append([]float64(nil), values...),
			Rates:          append([]float64(nil), rates...),
			BaselineAt:     time.Now().UTC().Truncate(time.Microsecond),
		}
	}
	return m.record.Clone(), nil
}

// MockTxLogRepository is an in-memory TxLogRepository.
type MockTxLogRepository struct {
	mu      sync.Mutex
	entries []*domain.TransactionLogEntry

	AppendFunc     func(ctx context.Context, entry *domain.TransactionLogEntry) error
	ListRecentFunc func(ctx context.Context, limit int) ([]*domain.TransactionLogEntry, error)
}

func NewMockTxLogRepository() *MockTxLogRepository {
	return &MockTxLogRepository{}
}

func (m *MockTxLogRepository) Append(ctx context.Context, entry *domain.TransactionLogEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockTxLogRepository) ListRecent(ctx context.Context, limit int) ([]*domain.TransactionLogEntry, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.TransactionLogEntry
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

// Entries returns all appended entries in insertion order.
func (m *MockTxLogRepository) Entries() []*domain.TransactionLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.TransactionLogEntry(nil), m.entries...)
}

// MockSequenceRepository is an in-memory SequenceRepository.
type MockSequenceRepository struct {
	mu      sync.Mutex
	counter int64

	NextFunc func(ctx context.Context) (int64, error)
}

func NewMockSequenceRepository() *MockSequenceRepository {
	return &MockSequenceRepository{}
}

func (m *MockSequenceRepository) Next(ctx context.Context) (int64, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return m.counter, nil
}

// MockSnapshotCache is an in-memory SnapshotCache.
type MockSnapshotCache struct {
	mu        sync.Mutex
	snapshots map[string]*domain.StateRecord

	GetFunc func(ctx context.Context, sessionID string) (*domain.StateRecord, error)
	PutFunc func(ctx context.Context, sessionID string, record *domain.StateRecord) error
}

func NewMockSnapshotCache() *MockSnapshotCache {
	return &MockSnapshotCache{snapshots: make(map[string]*domain.StateRecord)}
}

func (m *MockSnapshotCache) Get(ctx context.Context, sessionID string) (*domain.StateRecord, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.snapshots[sessionID]; ok {
		return rec.Clone(), nil
	}
	return nil, nil
}

func (m *MockSnapshotCache) Put(ctx context.Context, sessionID string, record *domain.StateRecord) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, sessionID, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[sessionID] = record.Clone()
	return nil
}

func (m *MockSnapshotCache) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, sessionID)
	return nil
}

// MockUserRepository is an in-memory UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockIDGenerator returns sequential ids.
type MockIDGenerator struct {
	mu sync.Mutex
	n  int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("id-%d", m.n)
}

// MockMutationMetrics counts protocol events.
type MockMutationMetrics struct {
	mu          sync.Mutex
	Committed   map[string]int
	Conflicts   map[string]int
	Exhausted   map[string]int
	LogWrites   int
	LogFailures int
	Hits        int
	Misses      int
}

func NewMockMutationMetrics() *MockMutationMetrics {
	return &MockMutationMetrics{
		Committed: make(map[string]int),
		Conflicts: make(map[string]int),
		Exhausted: make(map[string]int),
	}
}

func (m *MockMutationMetrics) MutationCommitted(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Committed[op]++
}

func (m *MockMutationMetrics) MutationConflict(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Conflicts[op]++
}

func (m *MockMutationMetrics) MutationExhausted(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Exhausted[op]++
}

func (m *MockMutationMetrics) ObserveMutationDuration(op string, seconds float64) {}

func (m *MockMutationMetrics) LogEntryWritten() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LogWrites++
}

func (m *MockMutationMetrics) LogWriteFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LogFailures++
}

func (m *MockMutationMetrics) SnapshotHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Hits++
}

func (m *MockMutationMetrics) SnapshotMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Misses++
}
