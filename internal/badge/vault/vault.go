// Package vault defines the secure credential vault used for biometric
// auto-login. Implementations are expected to keep the stored credential
// confidential at rest.
package vault

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/idbadge/internal/badge/domain"
)

// KeyCredentials is the well-known vault entry holding the login
// credential saved after biometric enrolment.
const KeyCredentials = "faceid_credentials"

var ErrNotFound = errors.New("vault: entry not found")

// Vault stores a single login credential under a named key.
type Vault interface {
	// Set stores the credential, replacing any existing entry.
	Set(ctx context.Context, key string, cred domain.StoredCredential) error

	// Get returns the credential stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (domain.StoredCredential, error)

	// Delete removes the entry. Deleting an absent entry is not an error.
	Delete(ctx context.Context, key string) error
}
