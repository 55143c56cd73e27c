package file

import (
	"context"
	"crypto/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/idbadge/internal/badge/domain"
	"github.com/aussiebroadwan/idbadge/internal/badge/vault"

	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T) (*Vault, string) {
	t.Helper()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	dir := t.TempDir()
	v, err := NewVault(dir, key)
	require.NoError(t, err)
	return v, dir
}

func TestVault_RoundTrip(t *testing.T) {
	t.Parallel()

	v, _ := newTestVault(t)
	ctx := context.Background()

	cred := domain.StoredCredential{UserID: "E1001", Password: "pw"}
	require.NoError(t, v.Set(ctx, vault.KeyCredentials, cred))

	got, err := v.Get(ctx, vault.KeyCredentials)
	require.NoError(t, err)
	require.Equal(t, cred, got)
}

func TestVault_GetMissing(t *testing.T) {
	t.Parallel()

	v, _ := newTestVault(t)

	_, err := v.Get(context.Background(), vault.KeyCredentials)
	require.ErrorIs(t, err, vault.ErrNotFound)
}

func TestVault_SetReplaces(t *testing.T) {
	t.Parallel()

	v, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Set(ctx, vault.KeyCredentials, domain.StoredCredential{UserID: "E1001", Password: "old"}))
	require.NoError(t, v.Set(ctx, vault.KeyCredentials, domain.StoredCredential{UserID: "E1001", Password: "new"}))

	got, err := v.Get(ctx, vault.KeyCredentials)
	require.NoError(t, err)
	require.Equal(t, "new", got.Password)
}

func TestVault_DeleteIdempotent(t *testing.T) {
	t.Parallel()

	v, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Set(ctx, vault.KeyCredentials, domain.StoredCredential{UserID: "E1001", Password: "pw"}))
	require.NoError(t, v.Delete(ctx, vault.KeyCredentials))
	require.NoError(t, v.Delete(ctx, vault.KeyCredentials))

	_, err := v.Get(ctx, vault.KeyCredentials)
	require.ErrorIs(t, err, vault.ErrNotFound)
}

func TestVault_EntriesAreEncryptedAtRest(t *testing.T) {
	t.Parallel()

	v, dir := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Set(ctx, vault.KeyCredentials, domain.StoredCredential{UserID: "E1001", Password: "hunter2"}))

	raw, err := os.ReadFile(filepath.Join(dir, vault.KeyCredentials+".sealed"))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "hunter2")
	require.NotContains(t, string(raw), "E1001")
}

func TestVault_RejectsPathTraversalKeys(t *testing.T) {
	t.Parallel()

	v, _ := newTestVault(t)
	ctx := context.Background()

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		err := v.Set(ctx, key, domain.StoredCredential{})
		require.Error(t, err)
		require.True(t, strings.Contains(err.Error(), "invalid vault key"))
	}
}

func TestVault_RejectsShortMasterKey(t *testing.T) {
	t.Parallel()

	_, err := NewVault(t.TempDir(), []byte("short"))
	require.Error(t, err)
}
