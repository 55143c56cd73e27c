package sqlite

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/idbadge/internal/badge/domain"
	"github.com/aussiebroadwan/idbadge/internal/badge/store"

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

func TestSessions_Token(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	sessions := s.Sessions()
	ctx := context.Background()

	t.Run("missing token returns ErrNotFound", func(t *testing.T) {
		_, err := sessions.GetToken(ctx)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("save and read back", func(t *testing.T) {
		require.NoError(t, sessions.SaveToken(ctx, "tok-1"))

		token, err := sessions.GetToken(ctx)
		require.NoError(t, err)
		require.Equal(t, "tok-1", token)
	})

	t.Run("save replaces previous value", func(t *testing.T) {
		require.NoError(t, sessions.SaveToken(ctx, "tok-2"))

		token, err := sessions.GetToken(ctx)
		require.NoError(t, err)
		require.Equal(t, "tok-2", token)
	})

	t.Run("delete removes and is idempotent", func(t *testing.T) {
		require.NoError(t, sessions.DeleteToken(ctx))
		require.NoError(t, sessions.DeleteToken(ctx))

		_, err := sessions.GetToken(ctx)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestSessions_Profile(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	sessions := s.Sessions()
	ctx := context.Background()

	profile := domain.Profile{
		RecordID:    "rec-9",
		UserID:      "E1001",
		FullName:    "Nguyen Van A",
		Department:  "Engineering",
		Email:       "a.nguyen@example.com",
		PhoneNumber: "0901234567",
	}

	t.Run("missing profile returns ErrNotFound", func(t *testing.T) {
		_, err := sessions.GetProfile(ctx)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("round trip preserves all fields", func(t *testing.T) {
		require.NoError(t, sessions.SaveProfile(ctx, profile))

		got, err := sessions.GetProfile(ctx)
		require.NoError(t, err)
		require.Equal(t, profile, got)
	})

	t.Run("delete removes and is idempotent", func(t *testing.T) {
		require.NoError(t, sessions.DeleteProfile(ctx))
		require.NoError(t, sessions.DeleteProfile(ctx))

		_, err := sessions.GetProfile(ctx)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestSessions_TokenAndProfileIndependent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	sessions := s.Sessions()
	ctx := context.Background()

	require.NoError(t, sessions.SaveToken(ctx, "tok"))
	require.NoError(t, sessions.SaveProfile(ctx, domain.Profile{UserID: "E1001"}))

	require.NoError(t, sessions.DeleteToken(ctx))

	_, err := sessions.GetToken(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := sessions.GetProfile(ctx)
	require.NoError(t, err)
	require.Equal(t, "E1001", got.UserID)
}
