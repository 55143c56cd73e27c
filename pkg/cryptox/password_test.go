package cryptox

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func usePepperDir(t *testing.T) {
	t.Helper()
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))
	resetPepper()
}

func resetPepper() {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepper = ""
}

func TestHashAndVerifyPassword(t *testing.T) {
	usePepperDir(t)

	hash, err := HashPassword("s3cret-pw")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, VerifyPassword("s3cret-pw", hash))
	require.Error(t, VerifyPassword("wrong", hash))
}

func TestHashesAreSalted(t *testing.T) {
	usePepperDir(t)

	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	usePepperDir(t)

	for _, encoded := range []string{
		"",
		"$argon2id$v=19$m=19456,t=2,p=1$short",
		"$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",
	} {
		require.Error(t, VerifyPassword("pw", encoded))
	}
}

func TestPepperPersistsAcrossReload(t *testing.T) {
	usePepperDir(t)

	first := GetPepper()
	require.NotEmpty(t, first)

	// A fresh process would reload the same pepper from disk.
	resetPepper()
	require.Equal(t, first, GetPepper())
}

func TestPepperSafeUnderConcurrentUse(t *testing.T) {
	dir := t.TempDir()
	resetPepper()

	// Several servers wiring up at once: each sets its pepper path and
	// starts hashing straight away.
	var wg sync.WaitGroup
	hashes := make([]string, 8)
	for i := range hashes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetPepperPath(filepath.Join(dir, "pepper"))
			h, err := HashPassword("pw")
			require.NoError(t, err)
			hashes[i] = h
		}()
	}
	wg.Wait()

	// Every goroutine hashed against the same cached pepper.
	for _, h := range hashes {
		require.NoError(t, VerifyPassword("pw", h))
	}
}
