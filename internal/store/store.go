// Package store defines persistence of the portfolio state. Implementations
// live in the sqlite and redis subpackages.
package store

import (
	"context"
	"errors"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
)

// DefaultKey is the fixed application key the state is saved under.
const DefaultKey = "hypotheek-planner"

// ErrNotFound is returned by Load when nothing was saved under the key.
var ErrNotFound = errors.New("state not found")

// Store persists one portfolio state per key.
type Store interface {
	Save(ctx context.Context, key string, state domain.PortfolioState) error
	Load(ctx context.Context, key string) (domain.PortfolioState, error)
	Close() error
}
