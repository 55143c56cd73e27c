package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/idbadge/internal/badge/domain"
	"github.com/aussiebroadwan/idbadge/internal/badge/vault"
)

// LoginResult is what a successful login or auto-login hands back.
type LoginResult struct {
	Profile domain.Profile

	// PromptEnroll signals the caller to ask the holder about enabling
	// biometric login. It is set only when no consent handler is
	// configured and no credential is stored yet.
	PromptEnroll bool
}

// Login authenticates against the identity service and, on success,
// applies the returned session to memory and the durable store.
//
// Concurrent logins race on the identity call; a monotonic sequence
// stamped per attempt ensures only responses newer than the last applied
// one take effect. A response losing that race is discarded and reported
// as ErrStaleLogin.
func (m *Manager) Login(ctx context.Context, userID, password string) (*LoginResult, error) {
	userID = strings.TrimSpace(userID)
	password = strings.TrimSpace(password)

	m.mu.Lock()
	m.loginSeq++
	seq := m.loginSeq
	m.mu.Unlock()

	res, err := m.identity.Login(ctx, userID, password)
	if err != nil {
		return nil, err
	}

	profile := profileFromWire(res.Data)
	state := domain.AuthState{Token: res.Token, Profile: profile}

	m.mu.Lock()
	if seq <= m.appliedSeq {
		m.mu.Unlock()
		m.log.WarnContext(ctx, "discarding stale login response",
			slog.String("user_id", userID),
			slog.Uint64("sequence", seq))
		return nil, ErrStaleLogin
	}
	m.appliedSeq = seq
	m.state = state

	// Persist before releasing the lock: the sequence guard must cover
	// the durable store too, or a slow attempt could overwrite a newer
	// session on disk after losing the in-memory race. Persistence
	// failures degrade to a memory-only session; the next launch simply
	// asks for a fresh login.
	if err := m.sessions.SaveToken(ctx, res.Token); err != nil {
		m.log.WarnContext(ctx, "failed to persist session token", slog.Any("error", err))
	}
	if err := m.sessions.SaveProfile(ctx, profile); err != nil {
		m.log.WarnContext(ctx, "failed to persist session profile", slog.Any("error", err))
	}
	m.mu.Unlock()

	m.log.InfoContext(ctx, "logged in", slog.String("user_id", userID))
	m.notify(state)

	return &LoginResult{Profile: profile, PromptEnroll: m.offerEnrolment(ctx, userID, password)}, nil
}

// offerEnrolment decides what happens after a successful password login:
// with a consent handler configured the Manager asks and enrols itself,
// otherwise it reports whether the caller should prompt. Either way an
// already-stored credential means no prompt.
func (m *Manager) offerEnrolment(ctx context.Context, userID, password string) bool {
	if _, err := m.vault.Get(ctx, vault.KeyCredentials); err == nil {
		return false
	} else if !errors.Is(err, vault.ErrNotFound) {
		m.log.WarnContext(ctx, "failed to check stored credential", slog.Any("error", err))
		return false
	}

	if m.consent == nil {
		return true
	}

	if m.consent(ctx) {
		if err := m.EnrollBiometric(ctx, userID, password); err != nil {
			m.log.WarnContext(ctx, "biometric enrolment failed, continuing logged in", slog.Any("error", err))
		}
	}
	return false
}

// EnrollBiometric stores the credential pair in the vault so future
// launches can offer biometric auto-login. Callers treat failure as
// non-fatal; the holder stays logged in either way.
func (m *Manager) EnrollBiometric(ctx context.Context, userID, password string) error {
	cred := domain.StoredCredential{UserID: userID, Password: password}
	if err := m.vault.Set(ctx, vault.KeyCredentials, cred); err != nil {
		return err
	}
	m.log.InfoContext(ctx, "biometric login enabled", slog.String("user_id", userID))
	return nil
}

// FetchQrProfile fetches the employee profile used for the QR badge. It
// never mutates the session: an unauthorized response surfaces as
// identity.ErrUnauthorized and the caller decides whether to log out.
func (m *Manager) FetchQrProfile(ctx context.Context, userID, token string) (domain.Profile, error) {
	p, err := m.identity.QrProfile(ctx, userID, token)
	if err != nil {
		return domain.Profile{}, err
	}
	return profileFromWire(*p), nil
}
