// Package memory provides an in-memory session store for tests and for
// running the client without durable state.
package memory

import (
	"context"
	"sync"

	"github.com/aussiebroadwan/idbadge/internal/badge/domain"
	"github.com/aussiebroadwan/idbadge/internal/badge/store"
)

type Store struct {
	mu         sync.RWMutex
	token      string
	hasToken   bool
	profile    domain.Profile
	hasProfile bool
}

func NewStore() *Store { return &Store{} }

func (s *Store) Sessions() store.Sessions     { return (*sessionsRepo)(s) }
func (s *Store) ApplyMigrations() error       { return nil }
func (s *Store) Close() error                 { return nil }
func (s *Store) Ping(_ context.Context) error { return nil }

type sessionsRepo Store

func (r *sessionsRepo) SaveToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token, r.hasToken = token, true
	return nil
}

func (r *sessionsRepo) GetToken(_ context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.hasToken {
		return "", store.ErrNotFound
	}
	return r.token, nil
}

func (r *sessionsRepo) DeleteToken(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token, r.hasToken = "", false
	return nil
}

func (r *sessionsRepo) SaveProfile(_ context.Context, p domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile, r.hasProfile = p, true
	return nil
}

func (r *sessionsRepo) GetProfile(_ context.Context) (domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.hasProfile {
		return domain.Profile{}, store.ErrNotFound
	}
	return r.profile, nil
}

func (r *sessionsRepo) DeleteProfile(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile, r.hasProfile = domain.Profile{}, false
	return nil
}
