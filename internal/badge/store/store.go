package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/idbadge/internal/badge/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the durable session store: plain persistent storage (no
// biometric gate) for the last-known token and profile, surviving process
// restarts. Concrete drivers (sqlite, memory) implement this.
type Store interface {
	Sessions() Sessions

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the underlying storage is still reachable.
	Ping(ctx context.Context) error
}

// Sessions persists the two pieces of auth state. Writes carry
// full-replace semantics: there are no partial updates, and a save after a
// save simply overwrites.
type Sessions interface {
	// SaveToken stores the session token.
	SaveToken(ctx context.Context, token string) error

	// GetToken returns the stored token or ErrNotFound.
	GetToken(ctx context.Context) (string, error)

	// DeleteToken removes the stored token. Deleting an absent token is not
	// an error.
	DeleteToken(ctx context.Context) error

	// SaveProfile stores the profile.
	SaveProfile(ctx context.Context, p domain.Profile) error

	// GetProfile returns the stored profile or ErrNotFound.
	GetProfile(ctx context.Context) (domain.Profile, error)

	// DeleteProfile removes the stored profile. Deleting an absent profile
	// is not an error.
	DeleteProfile(ctx context.Context) error
}
