package integration

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Suvojeet-Haldar/expense-manager/internal/adapter/repository/postgres"
	"github.com/Suvojeet-Haldar/expense-manager/internal/usecase"
	"github.com/Suvojeet-Haldar/expense-manager/tests/testutil"
)

func TestConcurrentMutations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	pool := testDB.Pool
	stateRepo := postgres.NewStateRepository(pool, postgres.NewRetrier())
	txlogRepo := postgres.NewTxLogRepository(pool)
	seqRepo := postgres.NewSequenceRepository(pool)

	// Zero rates keep the expected total exact.
	newUC := func() *usecase.StateUseCase {
		return usecase.NewStateUseCase(
			stateRepo, txlogRepo, seqRepo, nil, nil,
			[]string{"Var A", "Var B"},
			[]float64{1000, 500},
			[]float64{0, 0},
		)
	}

	t.Run("concurrent subtracts all land", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		uc := newUC()
		if _, err := uc.Snapshot(ctx); err != nil {
			t.Fatalf("initialization failed: %v", err)
		}

		numWorkers := 16

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
			errorCount   atomic.Int32
		)

		wg.Add(numWorkers)

		for range numWorkers {
			go func() {
				defer wg.Done()

				_, err := uc.Subtract(ctx, usecase.SubtractInput{
					Index:  0,
					Amount: 10,
				})
				if err != nil {
					errorCount.Add(1)
				} else {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != int32(numWorkers) {
			t.Errorf("expected %d successful subtracts, got %d (errors: %d)",
				numWorkers, successCount.Load(), errorCount.Load())
		}

		record, err := stateRepo.Read(ctx)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}

		expected := 1000 - float64(numWorkers)*10
		if math.Abs(record.BaselineValues[0]-expected) > 1e-6 {
			t.Errorf("expected value %v, got %v", expected, record.BaselineValues[0])
		}
		if math.Abs(record.BaselineValues[1]-500) > 1e-6 {
			t.Errorf("expected untouched entry to stay 500, got %v", record.BaselineValues[1])
		}
	})

	t.Run("concurrent tx ids are unique", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		numWorkers := 32

		var wg sync.WaitGroup
		ids := make([]int64, numWorkers)

		wg.Add(numWorkers)
		for i := range numWorkers {
			go func() {
				defer wg.Done()

				id, err := seqRepo.Next(ctx)
				if err != nil {
					t.Errorf("sequence failed: %v", err)
					return
				}
				ids[i] = id
			}()
		}
		wg.Wait()

		seen := map[int64]bool{}
		for _, id := range ids {
			if id == 0 {
				continue
			}
			if seen[id] {
				t.Fatalf("duplicate tx id %d", id)
			}
			seen[id] = true
		}
		if len(seen) != numWorkers {
			t.Fatalf("expected %d distinct tx ids, got %d", numWorkers, len(seen))
		}
	})

	t.Run("counter survives re-read", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		first, err := seqRepo.Next(ctx)
		if err != nil {
			t.Fatalf("sequence failed: %v", err)
		}
		second, err := seqRepo.Next(ctx)
		if err != nil {
			t.Fatalf("sequence failed: %v", err)
		}

		if second != first+1 {
			t.Fatalf("expected consecutive ids, got %d then %d", first, second)
		}
	})
}
