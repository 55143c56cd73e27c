// Package memory provides an in-memory credential vault for tests.
package memory

import (
	"context"
	"sync"

	"github.com/aussiebroadwan/idbadge/internal/badge/domain"
	"github.com/aussiebroadwan/idbadge/internal/badge/vault"
)

type Vault struct {
	mu      sync.RWMutex
	entries map[string]domain.StoredCredential
}

func NewVault() *Vault {
	return &Vault{entries: make(map[string]domain.StoredCredential)}
}

func (v *Vault) Set(_ context.Context, key string, cred domain.StoredCredential) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries[key] = cred
	return nil
}

func (v *Vault) Get(_ context.Context, key string) (domain.StoredCredential, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	cred, ok := v.entries[key]
	if !ok {
		return domain.StoredCredential{}, vault.ErrNotFound
	}
	return cred, nil
}

func (v *Vault) Delete(_ context.Context, key string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.entries, key)
	return nil
}
