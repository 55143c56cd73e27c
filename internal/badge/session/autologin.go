package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/idbadge/internal/badge/vault"
)

// promptMessage is shown on the system biometric prompt.
const promptMessage = "Verify your identity to sign in"

// TryBiometricAutoLogin attempts a login from the stored credential,
// passing four gates in order: a credential exists, biometric hardware
// is present, biometrics are enrolled, and the holder passes the prompt.
// Any gate failing returns its sentinel with the session untouched; a
// passed prompt delegates to Login with the recovered credential.
func (m *Manager) TryBiometricAutoLogin(ctx context.Context) (*LoginResult, error) {
	cred, err := m.vault.Get(ctx, vault.KeyCredentials)
	if err != nil {
		if !errors.Is(err, vault.ErrNotFound) {
			m.log.WarnContext(ctx, "failed to read stored credential, skipping auto-login", slog.Any("error", err))
		}
		return nil, ErrNoCredential
	}

	available, err := m.biometric.Available(ctx)
	if err != nil {
		m.log.WarnContext(ctx, "biometric availability check failed, skipping auto-login", slog.Any("error", err))
		return nil, ErrBiometricUnavailable
	}
	if !available {
		return nil, ErrBiometricUnavailable
	}

	enrolled, err := m.biometric.Enrolled(ctx)
	if err != nil {
		m.log.WarnContext(ctx, "biometric enrolment check failed, skipping auto-login", slog.Any("error", err))
		return nil, ErrBiometricNotEnrolled
	}
	if !enrolled {
		return nil, ErrBiometricNotEnrolled
	}

	ok, err := m.biometric.Prompt(ctx, promptMessage)
	if err != nil {
		m.log.WarnContext(ctx, "biometric prompt failed, skipping auto-login", slog.Any("error", err))
		return nil, ErrBiometricCancelled
	}
	if !ok {
		return nil, ErrBiometricCancelled
	}

	return m.Login(ctx, cred.UserID, cred.Password)
}
