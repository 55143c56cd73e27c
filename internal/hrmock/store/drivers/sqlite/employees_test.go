package sqlite

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/idbadge/internal/hrmock/domain"
	"github.com/aussiebroadwan/idbadge/internal/hrmock/store"
	"github.com/aussiebroadwan/idbadge/pkg/idx"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestEmployees(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	employees := s.Employees()
	ctx := context.Background()

	emp := domain.Employee{
		ID:           idx.New().String(),
		UserID:       "E1001",
		FullName:     "Nguyen Van A",
		Department:   "QA",
		Email:        "a@co.vn",
		PhoneNumber:  "0901234567",
		PasswordHash: "$argon2id$fake",
	}

	t.Run("empty directory", func(t *testing.T) {
		empty, err := employees.IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)

		_, err = employees.GetByUserID(ctx, "E1001")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("create and read back", func(t *testing.T) {
		require.NoError(t, employees.Create(ctx, emp))

		got, err := employees.GetByUserID(ctx, "E1001")
		require.NoError(t, err)
		require.Equal(t, emp.ID, got.ID)
		require.Equal(t, emp.FullName, got.FullName)
		require.Equal(t, emp.PasswordHash, got.PasswordHash)
		require.False(t, got.CreatedAt.IsZero())

		empty, err := employees.IsEmpty(ctx)
		require.NoError(t, err)
		require.False(t, empty)
	})

	t.Run("duplicate userId", func(t *testing.T) {
		dup := emp
		dup.ID = idx.New().String()
		require.ErrorIs(t, employees.Create(ctx, dup), store.ErrAlreadyExists)
	})
}
