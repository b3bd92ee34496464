package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/repository"
)

// DefaultLimit caps leaderboard queries that pass no explicit limit.
const DefaultLimit = 10

// MaxLimit is the hard ceiling for a single leaderboard query.
const MaxLimit = 100

// Service derives the leaderboard view. The progression records are the
// single source of truth; this view is computed from them on demand, never
// maintained as a second mutable copy.
type Service interface {
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type service struct {
	records repository.Progression
	users   repository.User

	// Derivation scans every record, so results are cached briefly
	cache *expirable.LRU[string, []domain.LeaderboardEntry]
}

// NewService creates a new leaderboard service.
// size bounds the number of cached result sets; ttl bounds their staleness.
func NewService(records repository.Progression, users repository.User, size int, ttl time.Duration) Service {
	return &service{
		records: records,
		users:   users,
		cache:   expirable.NewLRU[string, []domain.LeaderboardEntry](size, nil, ttl),
	}
}

// Top returns the highest-scoring users, ties broken by completions then id.
func (s *service) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	key := fmt.Sprintf("top:%d", limit)
	if entries, ok := s.cache.Get(key); ok {
		return entries, nil
	}

	records, err := s.records.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load progression records: %w", err)
	}

	names := make(map[string]string)
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}

	entries := make([]domain.LeaderboardEntry, 0, len(records))
	for userID, rec := range records {
		name := names[userID]
		if name == "" {
			name = userID
		}
		entries = append(entries, domain.LeaderboardEntry{
			UserID:      userID,
			DisplayName: name,
			Score:       rec.Score,
			Completed:   len(rec.CompletedChallenges),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].Completed != entries[j].Completed {
			return entries[i].Completed > entries[j].Completed
		}
		return entries[i].UserID < entries[j].UserID
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	s.cache.Add(key, entries)
	return entries, nil
}
