package repository

import (
	"context"
	"time"

	"github.com/cyberquest/backend/internal/domain"
)

// SubmissionFilter narrows audit-trail queries.
type SubmissionFilter struct {
	UserID      *string
	ChallengeID *string
	Kind        *string
	Since       *time.Time
	Limit       int
}

// Submission is the audit trail for flag attempts and hint purchases.
// Append-only; the engine never reads it on the mutation path.
type Submission interface {
	Record(ctx context.Context, sub *domain.Submission) error
	List(ctx context.Context, filter SubmissionFilter) ([]domain.Submission, error)
}
