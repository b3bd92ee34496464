// Package eventlog records the submission audit trail: every flag attempt and
// hint purchase. It subscribes to the event bus; failures are logged and
// never block a progression mutation.
package eventlog

import (
	"context"

	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/repository"
)

// Service exposes the audit trail read side.
type Service interface {
	Submissions(ctx context.Context, filter repository.SubmissionFilter) ([]domain.Submission, error)
}

type service struct {
	repo repository.Submission
}

// NewService creates a new eventlog service
func NewService(repo repository.Submission) Service {
	return &service{repo: repo}
}

func (s *service) Submissions(ctx context.Context, filter repository.SubmissionFilter) ([]domain.Submission, error) {
	return s.repo.List(ctx, filter)
}
