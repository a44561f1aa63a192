/*
Package sqlite provides a SQLite-backed implementation of store.Store.

KEY TABLES:

	app_state: one JSON-encoded portfolio state per key, replaced on save

WAL MODE:

	The database is opened with WAL (Write-Ahead Logging) so a reader never
	blocks the writer.

MIGRATION:

	Schema is auto-migrated on New().
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/hypotheekplanner/mortgage-planner/internal/store"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ store.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		state_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the state stored under key.
func (s *Store) Save(ctx context.Context, key string, state domain.PortfolioState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_state (key, state_json, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET state_json = excluded.state_json, updated_at = excluded.updated_at`,
		key, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save state %q: %w", key, err)
	}
	return nil
}

// Load returns the state stored under key, or store.ErrNotFound.
func (s *Store) Load(ctx context.Context, key string) (domain.PortfolioState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT state_json FROM app_state WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PortfolioState{}, fmt.Errorf("%w: %q", store.ErrNotFound, key)
	}
	if err != nil {
		return domain.PortfolioState{}, fmt.Errorf("failed to load state %q: %w", key, err)
	}

	var state domain.PortfolioState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return domain.PortfolioState{}, fmt.Errorf("failed to decode state %q: %w", key, err)
	}
	return state, nil
}
