package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/idbadge/internal/hrmock/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it
// and expose sub-repositories to keep concerns tidy and testable.
type Store interface {
	Employees() Employees

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Employees interface {
	// GetByUserID returns the employee with the given login identifier.
	GetByUserID(ctx context.Context, userID string) (domain.Employee, error)

	// Create inserts a new employee (id is provided by the app via ULID).
	Create(ctx context.Context, e domain.Employee) error

	// IsEmpty reports whether the directory has no employees yet.
	IsEmpty(ctx context.Context) (bool, error)
}
