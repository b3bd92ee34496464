package progression

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cyberquest/backend/internal/catalog"
	"github.com/cyberquest/backend/internal/concurrency"
	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/event"
	"github.com/cyberquest/backend/internal/logger"
	"github.com/cyberquest/backend/internal/metrics"
)

// Service defines the progression engine business logic
type Service interface {
	// Read accessors
	Progress(ctx context.Context, userID string) (*domain.ProgressionRecord, error)
	RewardTiers(score int) []string
	LastRefusal(userID string) Refusal

	// Mutating operations
	RevealHint(ctx context.Context, userID, challengeID, hintID string) (*HintResult, error)
	SubmitFlag(ctx context.Context, userID, challengeID, candidate string) (*SubmitResult, error)
	UnlockChallenge(ctx context.Context, userID, challengeID string) error
	UnlockCategory(ctx context.Context, userID, categoryID string) error

	// Reset removes the user's record entirely (logout/account removal).
	Reset(ctx context.Context, userID string) error
}

// HintResult reports the outcome of a hint purchase. Refusals are expected
// user outcomes and are reported here, never as errors.
type HintResult struct {
	Revealed        bool    `json:"revealed"`
	AlreadyRevealed bool    `json:"already_revealed"`
	Text            string  `json:"text,omitempty"`
	Cost            int     `json:"cost"`
	Score           int     `json:"score"`
	Refusal         Refusal `json:"refusal,omitempty"`
}

// SubmitResult reports the outcome of a flag submission. Wrong guesses are
// frequent, non-exceptional outcomes: Correct=false with a nil error.
type SubmitResult struct {
	Correct           bool     `json:"correct"`
	AlreadyCompleted  bool     `json:"already_completed"`
	PointsAwarded     int      `json:"points_awarded"`
	UnlockedChallenge string   `json:"unlocked_challenge,omitempty"`
	Score             int      `json:"score"`
	RewardTiers       []string `json:"reward_tiers"`
	Refusal           Refusal  `json:"refusal,omitempty"`
}

type service struct {
	repo    Repository
	content *catalog.Catalog
	bus     event.Bus

	// Per-user write serialization; the record is a single-writer resource
	locks *concurrency.LockManager

	// Last refusal reason per user, queryable by the presentation layer
	refusalMu    sync.RWMutex
	lastRefusals map[string]Refusal
}

// NewService creates a new progression service
func NewService(repo Repository, content *catalog.Catalog, bus event.Bus) Service {
	return &service{
		repo:         repo,
		content:      content,
		bus:          bus,
		locks:        concurrency.NewLockManager(),
		lastRefusals: make(map[string]Refusal),
	}
}

// Progress returns the user's record, constructing and persisting the default
// record on first sight.
func (s *service) Progress(ctx context.Context, userID string) (*domain.ProgressionRecord, error) {
	if userID == "" {
		return nil, domain.ErrNoActiveUser
	}

	var rec *domain.ProgressionRecord
	err := s.locks.WithLock(userID, func() error {
		var err error
		rec, err = s.loadOrInit(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// RewardTiers maps a score to its unlocked cosmetic tiers. Pure function;
// recomputed on every call so threshold changes between releases are always
// reflected.
func (s *service) RewardTiers(score int) []string {
	return domain.TiersForScore(score)
}

// RevealHint purchases a hint for the user. Already-revealed is a no-op
// success; an underfunded purchase is refused with no deduction. Revealing a
// hint never unlocks content.
func (s *service) RevealHint(ctx context.Context, userID, challengeID, hintID string) (*HintResult, error) {
	log := logger.FromContext(ctx)
	if userID == "" {
		return nil, domain.ErrNoActiveUser
	}

	var result *HintResult
	err := s.locks.WithLock(userID, func() error {
		ch := s.content.Challenge(challengeID)
		if ch == nil {
			result = &HintResult{Refusal: RefusalUnknownChallenge}
			s.recordRefusal(userID, RefusalUnknownChallenge)
			return nil
		}
		hint := ch.Hint(hintID)
		if hint == nil {
			result = &HintResult{Refusal: RefusalUnknownHint}
			s.recordRefusal(userID, RefusalUnknownHint)
			return nil
		}

		rec, err := s.loadOrInit(ctx, userID)
		if err != nil {
			return err
		}

		if rec.HasUsedHint(challengeID, hintID) {
			// No-op success, distinguishable from a refusal so the UI can
			// show the right message
			result = &HintResult{
				Revealed:        true,
				AlreadyRevealed: true,
				Text:            hint.Text,
				Cost:            hint.Cost,
				Score:           rec.Score,
			}
			s.recordRefusal(userID, RefusalNone)
			return nil
		}

		if hint.Cost > rec.Score {
			result = &HintResult{
				Cost:    hint.Cost,
				Score:   rec.Score,
				Refusal: RefusalInsufficientScore,
			}
			s.recordRefusal(userID, RefusalInsufficientScore)
			return nil
		}

		// Mutate a clone; commit only on successful save
		next := rec.Clone()
		next.UseHint(challengeID, hintID, hint.Cost)

		if err := s.repo.Save(ctx, userID, next); err != nil {
			return fmt.Errorf("failed to persist hint purchase: %w", err)
		}

		result = &HintResult{
			Revealed: true,
			Text:     hint.Text,
			Cost:     hint.Cost,
			Score:    next.Score,
		}
		s.recordRefusal(userID, RefusalNone)
		metrics.HintsRevealed.Inc()

		if err := s.bus.Publish(ctx, event.NewHintRevealedEvent(userID, challengeID, hintID, hint.Cost, next.Score)); err != nil {
			log.Warn("Hint event publish failed", "userID", userID, "hintID", hintID, "error", err)
		}

		log.Info("Hint revealed", "userID", userID, "challengeID", challengeID, "hintID", hintID, "cost", hint.Cost, "score", next.Score)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SubmitFlag validates a candidate flag against the challenge solution.
// Comparison is exact after trimming whitespace - case-sensitive, no further
// normalization. That simplicity is deliberate and documented, not a bug.
func (s *service) SubmitFlag(ctx context.Context, userID, challengeID, candidate string) (*SubmitResult, error) {
	log := logger.FromContext(ctx)
	if userID == "" {
		return nil, domain.ErrNoActiveUser
	}

	var result *SubmitResult
	err := s.locks.WithLock(userID, func() error {
		ch := s.content.Challenge(challengeID)
		if ch == nil {
			result = &SubmitResult{Refusal: RefusalUnknownChallenge}
			s.recordRefusal(userID, RefusalUnknownChallenge)
			return nil
		}

		rec, err := s.loadOrInit(ctx, userID)
		if err != nil {
			return err
		}

		// Only Available challenges can transition to Completed
		if rec.ChallengeStateOf(challengeID) == domain.ChallengeStateLocked {
			result = &SubmitResult{
				Score:       rec.Score,
				RewardTiers: domain.TiersForScore(rec.Score),
				Refusal:     RefusalChallengeLocked,
			}
			s.recordRefusal(userID, RefusalChallengeLocked)
			return nil
		}

		if strings.TrimSpace(candidate) != strings.TrimSpace(ch.Flag) {
			// Wrong guess: no mutation, retry always allowed
			result = &SubmitResult{
				Score:       rec.Score,
				RewardTiers: domain.TiersForScore(rec.Score),
				Refusal:     RefusalWrongFlag,
			}
			s.recordRefusal(userID, RefusalWrongFlag)
			metrics.FlagsSubmitted.WithLabelValues("false").Inc()

			if err := s.bus.Publish(ctx, event.NewFlagRejectedEvent(userID, challengeID)); err != nil {
				log.Warn("Flag rejected event publish failed", "userID", userID, "error", err)
			}
			return nil
		}

		if rec.HasCompleted(challengeID) {
			// Idempotent completion: correct resubmission awards nothing
			result = &SubmitResult{
				Correct:          true,
				AlreadyCompleted: true,
				Score:            rec.Score,
				RewardTiers:      domain.TiersForScore(rec.Score),
			}
			s.recordRefusal(userID, RefusalNone)
			return nil
		}

		next := rec.Clone()
		next.MarkCompleted(challengeID)
		next.Score += ch.Points

		successor := s.content.Successor(challengeID)
		if successor != "" {
			next.UnlockChallenge(successor)
		}

		if err := s.repo.Save(ctx, userID, next); err != nil {
			return fmt.Errorf("failed to persist completion: %w", err)
		}

		result = &SubmitResult{
			Correct:           true,
			PointsAwarded:     ch.Points,
			UnlockedChallenge: successor,
			Score:             next.Score,
			RewardTiers:       domain.TiersForScore(next.Score),
		}
		s.recordRefusal(userID, RefusalNone)
		metrics.FlagsSubmitted.WithLabelValues("true").Inc()
		metrics.ChallengesCompleted.WithLabelValues(challengeID).Inc()

		if err := s.bus.Publish(ctx, event.NewChallengeCompletedEvent(userID, challengeID, ch.Points, next.Score, successor)); err != nil {
			log.Warn("Completion event publish failed", "userID", userID, "challengeID", challengeID, "error", err)
		}

		log.Info("Challenge completed", "userID", userID, "challengeID", challengeID, "points", ch.Points, "score", next.Score, "unlocked", successor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UnlockChallenge inserts the challenge into the unlocked set. Idempotent;
// persists afterward regardless (duplicate writes are cheap and local).
func (s *service) UnlockChallenge(ctx context.Context, userID, challengeID string) error {
	if userID == "" {
		return domain.ErrNoActiveUser
	}
	if s.content.Challenge(challengeID) == nil {
		return fmt.Errorf("%w: %s", domain.ErrChallengeNotFound, challengeID)
	}

	return s.locks.WithLock(userID, func() error {
		rec, err := s.loadOrInit(ctx, userID)
		if err != nil {
			return err
		}

		next := rec.Clone()
		added := next.UnlockChallenge(challengeID)

		if err := s.repo.Save(ctx, userID, next); err != nil {
			return fmt.Errorf("failed to persist unlock: %w", err)
		}

		if added {
			if err := s.bus.Publish(ctx, event.NewUnlockEvent(event.ChallengeUnlocked, userID, challengeID)); err != nil {
				logger.FromContext(ctx).Warn("Unlock event publish failed", "userID", userID, "error", err)
			}
		}
		return nil
	})
}

// UnlockCategory inserts the category into the unlocked set. Idempotent;
// persists afterward regardless.
func (s *service) UnlockCategory(ctx context.Context, userID, categoryID string) error {
	if userID == "" {
		return domain.ErrNoActiveUser
	}
	if s.content.Category(categoryID) == nil {
		return fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, categoryID)
	}

	return s.locks.WithLock(userID, func() error {
		rec, err := s.loadOrInit(ctx, userID)
		if err != nil {
			return err
		}

		next := rec.Clone()
		added := next.UnlockCategory(categoryID)

		if err := s.repo.Save(ctx, userID, next); err != nil {
			return fmt.Errorf("failed to persist unlock: %w", err)
		}

		if added {
			if err := s.bus.Publish(ctx, event.NewUnlockEvent(event.CategoryUnlocked, userID, categoryID)); err != nil {
				logger.FromContext(ctx).Warn("Unlock event publish failed", "userID", userID, "error", err)
			}
		}
		return nil
	})
}

// Reset clears the user's record entirely. No soft history is kept.
func (s *service) Reset(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrNoActiveUser
	}

	return s.locks.WithLock(userID, func() error {
		if err := s.repo.Delete(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}

		s.refusalMu.Lock()
		delete(s.lastRefusals, userID)
		s.refusalMu.Unlock()

		if err := s.bus.Publish(ctx, event.NewRecordResetEvent(userID)); err != nil {
			logger.FromContext(ctx).Warn("Reset event publish failed", "userID", userID, "error", err)
		}

		logger.FromContext(ctx).Info("Progression record reset", "userID", userID)
		return nil
	})
}

// loadOrInit fetches the record, constructing and persisting the catalog
// default when the user has none yet. Callers must hold the user lock.
func (s *service) loadOrInit(ctx context.Context, userID string) (*domain.ProgressionRecord, error) {
	rec, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	if rec != nil {
		return rec, nil
	}

	rec = s.content.DefaultRecord()
	if err := s.repo.Save(ctx, userID, rec); err != nil {
		return nil, fmt.Errorf("failed to persist default record: %w", err)
	}

	logger.FromContext(ctx).Info("Default progression record created", "userID", userID, "score", rec.Score)
	return rec, nil
}
