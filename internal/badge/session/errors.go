package session

import "errors"

var (
	// ErrStaleLogin reports a login response that arrived after a newer
	// attempt had already been applied. The stale result is discarded.
	ErrStaleLogin = errors.New("session: stale login response discarded")

	// Biometric auto-login gate outcomes. Each leaves the session state
	// untouched.
	ErrNoCredential         = errors.New("session: no stored credential")
	ErrBiometricUnavailable = errors.New("session: biometric hardware unavailable")
	ErrBiometricNotEnrolled = errors.New("session: no biometrics enrolled")
	ErrBiometricCancelled   = errors.New("session: biometric verification cancelled")
)
