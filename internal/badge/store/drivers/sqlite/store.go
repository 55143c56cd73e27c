package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/idbadge/internal/badge/domain"
	"github.com/aussiebroadwan/idbadge/internal/badge/store"

	_ "modernc.org/sqlite"
)

// Well-known session store keys, kept identical to the mobile app's
// storage layout so a migration between the two is a straight copy.
const (
	keyToken    = "token"
	keyUserData = "userData"
)

type Store struct {
	db *sql.DB
}

// NewStore opens (and creates if missing) the sqlite-backed session store.
// Pass ":memory:" for an ephemeral store in tests.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single writer is the intended usage; cap the pool so concurrent
	// startup flows serialise on the driver instead of erroring with
	// SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Sessions() store.Sessions { return &sessionsRepo{db: s.db} }

type sessionsRepo struct {
	db *sql.DB
}

func (r *sessionsRepo) SaveToken(ctx context.Context, token string) error {
	return r.put(ctx, keyToken, token)
}

func (r *sessionsRepo) GetToken(ctx context.Context) (string, error) {
	return r.get(ctx, keyToken)
}

func (r *sessionsRepo) DeleteToken(ctx context.Context) error {
	return r.delete(ctx, keyToken)
}

func (r *sessionsRepo) SaveProfile(ctx context.Context, p domain.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return r.put(ctx, keyUserData, string(raw))
}

func (r *sessionsRepo) GetProfile(ctx context.Context) (domain.Profile, error) {
	raw, err := r.get(ctx, keyUserData)
	if err != nil {
		return domain.Profile{}, err
	}

	var p domain.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.Profile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return p, nil
}

func (r *sessionsRepo) DeleteProfile(ctx context.Context) error {
	return r.delete(ctx, keyUserData)
}

func (r *sessionsRepo) put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)
	return err
}

func (r *sessionsRepo) get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM session_store WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *sessionsRepo) delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_store WHERE key = ?`, key)
	return err
}
