package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/Suvojeet-Haldar/expense-manager/internal/adapter/repository/postgres"
	"github.com/Suvojeet-Haldar/expense-manager/internal/domain"
	"github.com/Suvojeet-Haldar/expense-manager/internal/usecase"
	"github.com/Suvojeet-Haldar/expense-manager/tests/testutil"
)

func TestUserRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	userRepo := postgres.NewUserRepository(testDB.Pool)
	uc := usecase.NewUserUseCase(userRepo, postgres.NewULIDGenerator())

	created, err := uc.CreateUser(ctx, usecase.CreateUserInput{
		Email:    "ops@example.com",
		Name:     "Ops",
		Password: "password123",
		Role:     domain.RoleOperator,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	t.Run("round trip preserves every column", func(t *testing.T) {
		stored, err := userRepo.GetByEmail(ctx, "ops@example.com")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}

		if stored.ID != created.ID {
			t.Errorf("expected id %s, got %s", created.ID, stored.ID)
		}
		if stored.Name != "Ops" || stored.Role != domain.RoleOperator {
			t.Errorf("unexpected user fields: %+v", stored)
		}
		if !stored.Active {
			t.Error("a freshly created user must be active")
		}
		if stored.HashedPassword == "" {
			t.Error("expected stored password hash")
		}
		if stored.CreatedAt.IsZero() || stored.UpdatedAt.IsZero() {
			t.Errorf("expected timestamps, got created %v updated %v", stored.CreatedAt, stored.UpdatedAt)
		}
	})

	t.Run("created user can log in", func(t *testing.T) {
		authed, err := uc.Authenticate(ctx, usecase.AuthenticateInput{
			Email:    "ops@example.com",
			Password: "password123",
		})
		if err != nil {
			t.Fatalf("authentication failed: %v", err)
		}
		if authed.Email != "ops@example.com" {
			t.Errorf("unexpected user %q", authed.Email)
		}

		_, err = uc.Authenticate(ctx, usecase.AuthenticateInput{
			Email:    "ops@example.com",
			Password: "wrong-password",
		})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("deactivated user cannot log in", func(t *testing.T) {
		_, err := testDB.Pool.Exec(ctx, `UPDATE users SET active = false WHERE email = $1`, "ops@example.com")
		if err != nil {
			t.Fatalf("deactivate failed: %v", err)
		}

		_, err = uc.Authenticate(ctx, usecase.AuthenticateInput{
			Email:    "ops@example.com",
			Password: "password123",
		})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := uc.CreateUser(ctx, usecase.CreateUserInput{
			Email:    "second@example.com",
			Password: "password123",
			Role:     domain.RoleViewer,
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		user := &domain.User{
			ID:             testutil.GenerateID(),
			Email:          "second@example.com",
			HashedPassword: "x",
			Role:           domain.RoleViewer,
			Active:         true,
		}
		if err := userRepo.Create(ctx, user); !errors.Is(err, domain.ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName, got %v", err)
		}
	})
}
