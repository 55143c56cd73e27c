// Package app wires the badge client together: identity client, durable
// session store, credential vault, biometric authenticator, and the
// session lifecycle manager.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/idbadge/internal/badge/biometric"
	"github.com/aussiebroadwan/idbadge/internal/badge/session"
	"github.com/aussiebroadwan/idbadge/internal/badge/store"
	"github.com/aussiebroadwan/idbadge/internal/badge/store/drivers/sqlite"
	"github.com/aussiebroadwan/idbadge/internal/badge/vault"
	vaultfile "github.com/aussiebroadwan/idbadge/internal/badge/vault/drivers/file"
	"github.com/aussiebroadwan/idbadge/pkg/cryptox"
	"github.com/aussiebroadwan/idbadge/pkg/identity"
	"github.com/aussiebroadwan/idbadge/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// App holds the initialised badge client.
type App struct {
	cfg    Config
	Logger *slog.Logger

	Identity *identity.Client
	Store    store.Store
	Vault    vault.Vault
	Manager  *session.Manager
}

// New initialises the client. A consent handler may be nil, in which
// case callers receive the enrolment-prompt signal from Login instead.
func New(cfg Config, consent session.ConsentFunc) (*App, error) {
	logger := slogx.New(slogx.Config{
		Service: "idbadge",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  os.Stderr,
	})

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL",
		filepath.Join(cfg.DataDir, "sessions.db"))
	st, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("apply session store migrations: %w", err)
	}

	masterKey, err := cryptox.LoadMasterKey(filepath.Join(cfg.DataDir, "vault.key"), "BADGE_VAULT_KEY")
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("load vault key: %w", err)
	}
	v, err := vaultfile.NewVault(filepath.Join(cfg.DataDir, "vault"), masterKey)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("open credential vault: %w", err)
	}

	authenticator, err := biometric.NewStub(cfg.Biometric)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	client := identity.NewClient(cfg.APIURL)

	manager, err := session.New(session.Options{
		Identity:  client,
		Store:     st.Sessions(),
		Vault:     v,
		Biometric: authenticator,
		Consent:   consent,
		Logger:    logger,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &App{
		cfg:      cfg,
		Logger:   logger,
		Identity: client,
		Store:    st,
		Vault:    v,
		Manager:  manager,
	}, nil
}

// Close releases the underlying resources.
func (a *App) Close() error {
	return a.Store.Close()
}
