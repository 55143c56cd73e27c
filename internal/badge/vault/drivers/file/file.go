// Package file implements the credential vault as encrypted files on disk.
// Each entry is sealed with AES-256-GCM under a master key so credentials
// are never written in the clear.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aussiebroadwan/idbadge/internal/badge/domain"
	"github.com/aussiebroadwan/idbadge/internal/badge/vault"
	"github.com/aussiebroadwan/idbadge/pkg/cryptox"
)

type Vault struct {
	mu  sync.Mutex
	dir string
	key []byte
}

// NewVault opens a vault rooted at dir, creating the directory if needed.
// The master key must be 32 bytes, typically from cryptox.LoadMasterKey.
func NewVault(dir string, masterKey []byte) (*Vault, error) {
	if len(masterKey) != 32 {
		return nil, fmt.Errorf("vault master key must be 32 bytes, got %d", len(masterKey))
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create vault directory: %w", err)
	}
	return &Vault{dir: dir, key: masterKey}, nil
}

func (v *Vault) Set(_ context.Context, key string, cred domain.StoredCredential) error {
	path, err := v.entryPath(key)
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}

	sealed, err := cryptox.SealSecret(v.key, plaintext)
	if err != nil {
		return fmt.Errorf("seal credential: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	// Write to a temp file then rename so readers never see a partial entry.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

func (v *Vault) Get(_ context.Context, key string) (domain.StoredCredential, error) {
	path, err := v.entryPath(key)
	if err != nil {
		return domain.StoredCredential{}, err
	}

	v.mu.Lock()
	sealed, err := os.ReadFile(path)
	v.mu.Unlock()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.StoredCredential{}, vault.ErrNotFound
		}
		return domain.StoredCredential{}, fmt.Errorf("read credential: %w", err)
	}

	plaintext, err := cryptox.OpenSecret(v.key, sealed)
	if err != nil {
		return domain.StoredCredential{}, fmt.Errorf("unseal credential: %w", err)
	}

	var cred domain.StoredCredential
	if err := json.Unmarshal(plaintext, &cred); err != nil {
		return domain.StoredCredential{}, fmt.Errorf("decode credential: %w", err)
	}
	return cred, nil
}

func (v *Vault) Delete(_ context.Context, key string) error {
	path, err := v.entryPath(key)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

// entryPath maps a vault key to a file inside the vault directory,
// rejecting keys that would escape it.
func (v *Vault) entryPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid vault key %q", key)
	}
	return filepath.Join(v.dir, key+".sealed"), nil
}
