// Package memory provides in-memory repository implementations used in tests
// and storage-free deployments. Records are deep-copied on the way in and out
// so callers can never alias stored state.
package memory

import (
	"context"
	"sync"

	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/repository"
)

type progressionRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.ProgressionRecord
}

// NewProgressionRepository creates an empty in-memory progression repository
func NewProgressionRepository() repository.Progression {
	return &progressionRepository{
		records: make(map[string]*domain.ProgressionRecord),
	}
}

func (r *progressionRepository) Get(ctx context.Context, userID string) (*domain.ProgressionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[userID]
	if !ok {
		return nil, nil
	}
	return rec.Clone(), nil
}

func (r *progressionRepository) Save(ctx context.Context, userID string, record *domain.ProgressionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[userID] = record.Clone()
	return nil
}

func (r *progressionRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, userID)
	return nil
}

func (r *progressionRepository) All(ctx context.Context) (map[string]*domain.ProgressionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*domain.ProgressionRecord, len(r.records))
	for id, rec := range r.records {
		out[id] = rec.Clone()
	}
	return out, nil
}
