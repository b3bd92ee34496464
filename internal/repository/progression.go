package repository

import (
	"context"

	"github.com/cyberquest/backend/internal/domain"
)

// Progression is the persistence adapter for per-user progression records.
// One record per user, keyed by user id, written through synchronously after
// every mutation. Get returns (nil, nil) when no record exists; the engine
// treats absence as "construct and persist the default record".
type Progression interface {
	Get(ctx context.Context, userID string) (*domain.ProgressionRecord, error)
	Save(ctx context.Context, userID string, record *domain.ProgressionRecord) error
	Delete(ctx context.Context, userID string) error

	// All returns every stored record keyed by user id.
	// Used only by derived read views (leaderboard); the records are the
	// single source of truth and no second mutable copy is kept.
	All(ctx context.Context) (map[string]*domain.ProgressionRecord, error)
}
