// Package redis provides a Redis-backed implementation of store.Store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/hypotheekplanner/mortgage-planner/internal/store"
)

// Store keeps the JSON-encoded state under a plain Redis key without expiry.
type Store struct {
	client *redis.Client
}

var _ store.Store = (*Store)(nil)

// New connects to the Redis server at addr.
func New(addr string) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Store{client: rdb}
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Save replaces the state stored under key.
func (s *Store) Save(ctx context.Context, key string, state domain.PortfolioState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := s.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save state %q: %w", key, err)
	}
	return nil
}

// Load returns the state stored under key, or store.ErrNotFound.
func (s *Store) Load(ctx context.Context, key string) (domain.PortfolioState, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.PortfolioState{}, fmt.Errorf("%w: %q", store.ErrNotFound, key)
	}
	if err != nil {
		return domain.PortfolioState{}, fmt.Errorf("failed to load state %q: %w", key, err)
	}

	var state domain.PortfolioState
	if err := json.Unmarshal(val, &state); err != nil {
		return domain.PortfolioState{}, fmt.Errorf("failed to decode state %q: %w", key, err)
	}
	return state, nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}
