// Package session implements the authenticated-session lifecycle: login,
// biometric auto-login, logout, and startup restoration. The Manager is
// the sole writer of the durable session store and credential vault for
// auth data; everything else observes state through State and Subscribe.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/idbadge/internal/badge/biometric"
	"github.com/aussiebroadwan/idbadge/internal/badge/domain"
	"github.com/aussiebroadwan/idbadge/internal/badge/store"
	"github.com/aussiebroadwan/idbadge/internal/badge/vault"
	"github.com/aussiebroadwan/idbadge/pkg/identity"
)

// IdentityClient is the slice of the identity service client the
// lifecycle depends on.
type IdentityClient interface {
	Login(ctx context.Context, userID, password string) (*identity.LoginResult, error)
	QrProfile(ctx context.Context, userID, token string) (*identity.Profile, error)
}

// ConsentFunc asks the holder whether to enable biometric login. It is
// invoked after a successful password login when no credential is stored
// yet.
type ConsentFunc func(ctx context.Context) bool

type Options struct {
	Identity  IdentityClient
	Store     store.Sessions
	Vault     vault.Vault
	Biometric biometric.Authenticator

	// Consent, when set, lets the Manager handle biometric enrolment
	// itself after a successful login. When nil the caller is handed a
	// PromptEnroll signal instead.
	Consent ConsentFunc

	Logger *slog.Logger
}

type Manager struct {
	identity  IdentityClient
	sessions  store.Sessions
	vault     vault.Vault
	biometric biometric.Authenticator
	consent   ConsentFunc
	log       *slog.Logger

	mu         sync.Mutex
	state      domain.AuthState
	loginSeq   uint64
	appliedSeq uint64

	subMu   sync.Mutex
	subs    map[uint64]chan domain.AuthState
	nextSub uint64
}

func New(opts Options) (*Manager, error) {
	if opts.Identity == nil {
		return nil, errors.New("session: identity client is required")
	}
	if opts.Store == nil {
		return nil, errors.New("session: session store is required")
	}
	if opts.Vault == nil {
		return nil, errors.New("session: credential vault is required")
	}
	if opts.Biometric == nil {
		return nil, errors.New("session: biometric authenticator is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Manager{
		identity:  opts.Identity,
		sessions:  opts.Store,
		vault:     opts.Vault,
		biometric: opts.Biometric,
		consent:   opts.Consent,
		log:       opts.Logger,
		subs:      make(map[uint64]chan domain.AuthState),
	}, nil
}

// State returns a copy of the current auth state.
func (m *Manager) State() domain.AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers an observer of auth state changes. The returned
// channel is buffered and updates are dropped rather than block the
// lifecycle; observers needing the exact current state call State. The
// cancel func unregisters and closes the channel.
func (m *Manager) Subscribe() (<-chan domain.AuthState, func()) {
	ch := make(chan domain.AuthState, 8)

	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	m.subMu.Unlock()

	cancel := func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (m *Manager) notify(state domain.AuthState) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- state:
		default:
		}
	}
}

// RestoreSession loads the persisted token and profile into memory. It
// restores only when both are present; a half-present pair or any read
// failure degrades to the logged-out state and is logged, never
// surfaced. A session applied by a concurrent login is never clobbered.
func (m *Manager) RestoreSession(ctx context.Context) {
	token, err := m.sessions.GetToken(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			m.log.WarnContext(ctx, "failed to read stored token, treating as logged out", slog.Any("error", err))
		}
		return
	}

	profile, err := m.sessions.GetProfile(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			m.log.WarnContext(ctx, "failed to read stored profile, treating as logged out", slog.Any("error", err))
		}
		return
	}

	m.mu.Lock()
	if m.appliedSeq > 0 {
		m.mu.Unlock()
		return
	}
	state := domain.AuthState{Token: token, Profile: profile}
	m.state = state
	m.mu.Unlock()

	m.log.InfoContext(ctx, "session restored", slog.String("user_id", profile.UserID))
	m.notify(state)
}

// Logout clears the stored credential, the persisted session, and the
// in-memory state. A failing vault delete never blocks the rest of the
// reset.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.vault.Delete(ctx, vault.KeyCredentials); err != nil {
		m.log.WarnContext(ctx, "failed to delete stored credential during logout", slog.Any("error", err))
	}
	if err := m.sessions.DeleteToken(ctx); err != nil {
		m.log.WarnContext(ctx, "failed to clear stored token during logout", slog.Any("error", err))
	}
	if err := m.sessions.DeleteProfile(ctx); err != nil {
		m.log.WarnContext(ctx, "failed to clear stored profile during logout", slog.Any("error", err))
	}

	m.mu.Lock()
	m.state = domain.AuthState{}
	m.mu.Unlock()

	m.log.InfoContext(ctx, "logged out")
	m.notify(domain.AuthState{})
}

func profileFromWire(p identity.Profile) domain.Profile {
	return domain.Profile{
		RecordID:    p.RecordID,
		UserID:      p.UserID,
		FullName:    p.FullName,
		Department:  p.Department,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
	}
}
