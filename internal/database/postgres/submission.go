package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/repository"
)

type submissionRepository struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates a new Postgres-backed submission audit repository
func NewSubmissionRepository(db *pgxpool.Pool) repository.Submission {
	return &submissionRepository{db: db}
}

// Record appends one audit row.
func (r *submissionRepository) Record(ctx context.Context, sub *domain.Submission) error {
	query := `
		INSERT INTO submissions (user_id, challenge_id, kind, correct)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, sub.UserID, sub.ChallengeID, sub.Kind, sub.Correct)
	if err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}
	return nil
}

// List retrieves audit rows based on filter criteria
func (r *submissionRepository) List(ctx context.Context, filter repository.SubmissionFilter) ([]domain.Submission, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, user_id, challenge_id, kind, correct, created_at
		FROM submissions
		WHERE 1=1`)

	args := []interface{}{}
	argNum := 1

	if filter.UserID != nil {
		fmt.Fprintf(&queryBuilder, " AND user_id = $%d", argNum)
		args = append(args, *filter.UserID)
		argNum++
	}

	if filter.ChallengeID != nil {
		fmt.Fprintf(&queryBuilder, " AND challenge_id = $%d", argNum)
		args = append(args, *filter.ChallengeID)
		argNum++
	}

	if filter.Kind != nil {
		fmt.Fprintf(&queryBuilder, " AND kind = $%d", argNum)
		args = append(args, *filter.Kind)
		argNum++
	}

	if filter.Since != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at >= $%d", argNum)
		args = append(args, *filter.Since)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		var sub domain.Submission
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.ChallengeID, &sub.Kind, &sub.Correct, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}

	return subs, nil
}
