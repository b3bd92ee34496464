package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/repository"
)

type progressionRepository struct {
	db *pgxpool.Pool
}

// NewProgressionRepository creates a new Postgres-backed progression repository
func NewProgressionRepository(db *pgxpool.Pool) repository.Progression {
	return &progressionRepository{db: db}
}

// Get loads the record for a user, or (nil, nil) when absent.
func (r *progressionRepository) Get(ctx context.Context, userID string) (*domain.ProgressionRecord, error) {
	query := `
		SELECT score, completed_challenges, unlocked_challenges, unlocked_categories, used_hints
		FROM progression_records
		WHERE user_id = $1
	`

	rec := &domain.ProgressionRecord{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&rec.Score,
		&rec.CompletedChallenges,
		&rec.UnlockedChallenges,
		&rec.UnlockedCategories,
		&rec.UsedHints,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get progression record: %w", err)
	}

	return rec, nil
}

// Save writes the record through synchronously (insert or update).
func (r *progressionRepository) Save(ctx context.Context, userID string, record *domain.ProgressionRecord) error {
	query := `
		INSERT INTO progression_records (user_id, score, completed_challenges, unlocked_challenges, unlocked_categories, used_hints, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			score = EXCLUDED.score,
			completed_challenges = EXCLUDED.completed_challenges,
			unlocked_challenges = EXCLUDED.unlocked_challenges,
			unlocked_categories = EXCLUDED.unlocked_categories,
			used_hints = EXCLUDED.used_hints,
			updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query, userID,
		record.Score,
		record.CompletedChallenges,
		record.UnlockedChallenges,
		record.UnlockedCategories,
		record.UsedHints,
	)
	if err != nil {
		return fmt.Errorf("failed to save progression record: %w", err)
	}
	return nil
}

// Delete removes the record entirely. Missing rows are not an error.
func (r *progressionRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM progression_records WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete progression record: %w", err)
	}
	return nil
}

// All returns every stored record keyed by user id.
func (r *progressionRepository) All(ctx context.Context) (map[string]*domain.ProgressionRecord, error) {
	query := `
		SELECT user_id, score, completed_challenges, unlocked_challenges, unlocked_categories, used_hints
		FROM progression_records
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query progression records: %w", err)
	}
	defer rows.Close()

	records := make(map[string]*domain.ProgressionRecord)
	for rows.Next() {
		var userID string
		rec := &domain.ProgressionRecord{}
		if err := rows.Scan(&userID, &rec.Score, &rec.CompletedChallenges, &rec.UnlockedChallenges, &rec.UnlockedCategories, &rec.UsedHints); err != nil {
			return nil, fmt.Errorf("failed to scan progression record: %w", err)
		}
		records[userID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate progression records: %w", err)
	}

	return records, nil
}
