package session_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/idbadge/internal/badge/biometric"
	"github.com/aussiebroadwan/idbadge/internal/badge/session"
	storemem "github.com/aussiebroadwan/idbadge/internal/badge/store/drivers/memory"
	"github.com/aussiebroadwan/idbadge/internal/badge/vault"
	vaultmem "github.com/aussiebroadwan/idbadge/internal/badge/vault/drivers/memory"
	hrhttp "github.com/aussiebroadwan/idbadge/internal/hrmock/http"
	hrservice "github.com/aussiebroadwan/idbadge/internal/hrmock/service"
	hrsqlite "github.com/aussiebroadwan/idbadge/internal/hrmock/store/drivers/sqlite"
	"github.com/aussiebroadwan/idbadge/pkg/cryptox"
	"github.com/aussiebroadwan/idbadge/pkg/identity"

	"github.com/stretchr/testify/require"
)

// startHRService runs the full mock HR service over httptest with one
// seeded employee.
func startHRService(t *testing.T) *identity.Client {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := hrsqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	seed := "E1001|pw|Nguyen Van A|QA|a@co.vn|0901234567"
	require.NoError(t, hrservice.Seed(context.Background(), st, logger, seed))

	router := hrhttp.NewRouter("test", logger)
	router.AuthService = &hrservice.AuthService{
		Store:  st,
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		Issuer: "hrmock-test",
	}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return identity.NewClient(server.URL)
}

func TestLifecycle_EndToEnd(t *testing.T) {
	t.Parallel()

	client := startHRService(t)
	sessions := storemem.NewStore().Sessions()
	v := vaultmem.NewVault()
	bio, err := biometric.NewStub(biometric.ModeApprove)
	require.NoError(t, err)

	newManager := func() *session.Manager {
		m, err := session.New(session.Options{
			Identity:  client,
			Store:     sessions,
			Vault:     v,
			Biometric: bio,
			Consent:   func(context.Context) bool { return true },
			Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
		require.NoError(t, err)
		return m
	}

	ctx := context.Background()

	// First launch: password login, consent enrols the credential.
	m := newManager()
	m.RestoreSession(ctx)
	require.False(t, m.State().LoggedIn())

	res, err := m.Login(ctx, "E1001", "pw")
	require.NoError(t, err)
	require.Equal(t, "Nguyen Van A", res.Profile.FullName)

	_, err = v.Get(ctx, vault.KeyCredentials)
	require.NoError(t, err, "consent should have enrolled the credential")

	token := m.State().Token
	require.NotEmpty(t, token)

	// QR fetch with the live token carries the record id.
	profile, err := m.FetchQrProfile(ctx, "E1001", token)
	require.NoError(t, err)
	require.NotEmpty(t, profile.RecordID)

	// A bad token is rejected without touching the session.
	_, err = m.FetchQrProfile(ctx, "E1001", "bogus")
	require.ErrorIs(t, err, identity.ErrUnauthorized)
	require.True(t, m.State().LoggedIn())

	// Second launch: restore from the durable store, no network call.
	m2 := newManager()
	m2.RestoreSession(ctx)
	require.Equal(t, m.State(), m2.State())

	// Third launch: biometric auto-login from the stored credential.
	m3 := newManager()
	auto, err := m3.TryBiometricAutoLogin(ctx)
	require.NoError(t, err)
	require.Equal(t, "Nguyen Van A", auto.Profile.FullName)
	require.True(t, m3.State().LoggedIn())

	// Logout clears everything; a fresh manager restores nothing.
	m3.Logout(ctx)
	_, err = v.Get(ctx, vault.KeyCredentials)
	require.ErrorIs(t, err, vault.ErrNotFound)

	m4 := newManager()
	m4.RestoreSession(ctx)
	require.False(t, m4.State().LoggedIn())

	_, err = m4.TryBiometricAutoLogin(ctx)
	require.ErrorIs(t, err, session.ErrNoCredential)
}

func TestLifecycle_InvalidCredentialsEndToEnd(t *testing.T) {
	t.Parallel()

	client := startHRService(t)
	bio, err := biometric.NewStub("")
	require.NoError(t, err)

	m, err := session.New(session.Options{
		Identity:  client,
		Store:     storemem.NewStore().Sessions(),
		Vault:     vaultmem.NewVault(),
		Biometric: bio,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	_, err = m.Login(context.Background(), "bad", "bad")
	require.ErrorIs(t, err, identity.ErrInvalidCredentials)
	require.False(t, m.State().LoggedIn())
}
