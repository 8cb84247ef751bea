package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Suvojeet-Haldar/expense-manager/internal/adapter/http/handler"
	apimiddleware "github.com/Suvojeet-Haldar/expense-manager/internal/adapter/http/middleware"
	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
	"github.com/Suvojeet-Haldar/expense-manager/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"index":0,"amount":0.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/state/subtract", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /api/v1/state/",
		"POST /api/v1/state/subtract",
		"POST /api/v1/state/entries",
		"PUT /api/v1/state/entries/{index}",
		"DELETE /api/v1/state/entries/{index}",
		"GET /api/v1/transactions",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	stateHandler := handler.NewStateHandler(&stubStateService{}, handler.DisplayHints{
		UpdatesPerSecond: 100,
		Decimals:         7,
	})
	txlogHandler := handler.NewTxLogHandler(&stubTxLogService{})

	cfg := RouterConfig{
		HealthHandler: &handler.HealthHandler{},
		StateHandler:  stateHandler,
		TxLogHandler:  txlogHandler,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubStateService struct{}

func stubRecord() *domain.StateRecord {
	return &domain.StateRecord{
		Names:          []string{"Var A"},
		BaselineValues: []float64{1},
		Rates:          []float64{0},
		BaselineAt:     time.Now().UTC(),
	}
}

func (stubStateService) Snapshot(ctx context.Context) (*domain.StateRecord, error) {
	return stubRecord(), nil
}

func (stubStateService) Subtract(ctx context.Context, input usecase.SubtractInput) (*usecase.MutationResult, error) {
	return &usecase.MutationResult{Record: stubRecord()}, nil
}

func (stubStateService) AddEntry(ctx context.Context, input usecase.AddEntryInput) (*usecase.MutationResult, error) {
	return &usecase.MutationResult{Record: stubRecord()}, nil
}

func (stubStateService) EditEntry(ctx context.Context, input usecase.EditEntryInput) (*usecase.MutationResult, error) {
	return &usecase.MutationResult{Record: stubRecord()}, nil
}

func (stubStateService) DeleteEntry(ctx context.Context, input usecase.DeleteEntryInput) (*usecase.MutationResult, error) {
	return &usecase.MutationResult{Record: stubRecord()}, nil
}

type stubTxLogService struct{}

func (stubTxLogService) ListRecent(ctx context.Context, input usecase.ListRecentInput) ([]*domain.TransactionLogEntry, error) {
	return []*domain.TransactionLogEntry{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
