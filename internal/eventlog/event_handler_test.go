package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/event"
	"github.com/cyberquest/backend/internal/repository"
)

// mockSubmissionRepo captures recorded rows
type mockSubmissionRepo struct {
	rows      []*domain.Submission
	recordErr error
}

func (m *mockSubmissionRepo) Record(ctx context.Context, sub *domain.Submission) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.rows = append(m.rows, sub)
	return nil
}

func (m *mockSubmissionRepo) List(ctx context.Context, filter repository.SubmissionFilter) ([]domain.Submission, error) {
	out := make([]domain.Submission, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, *r)
	}
	return out, nil
}

func TestEventHandler_RecordsAuditRows(t *testing.T) {
	repo := &mockSubmissionRepo{}
	bus := event.NewMemoryBus()
	NewEventHandler(repo).Register(bus)
	ctx := context.Background()

	require.NoError(t, bus.Publish(ctx, event.NewChallengeCompletedEvent("alice", "c1", 50, 100, "c2")))
	require.NoError(t, bus.Publish(ctx, event.NewFlagRejectedEvent("alice", "c2")))
	require.NoError(t, bus.Publish(ctx, event.NewHintRevealedEvent("alice", "c2", "h1", 10, 90)))

	require.Len(t, repo.rows, 3)

	assert.Equal(t, domain.SubmissionKindFlag, repo.rows[0].Kind)
	assert.True(t, repo.rows[0].Correct)
	assert.Equal(t, "c1", repo.rows[0].ChallengeID)

	assert.Equal(t, domain.SubmissionKindFlag, repo.rows[1].Kind)
	assert.False(t, repo.rows[1].Correct)

	assert.Equal(t, domain.SubmissionKindHint, repo.rows[2].Kind)
	assert.True(t, repo.rows[2].Correct)
}

func TestEventHandler_RepoFailureDoesNotPropagate(t *testing.T) {
	repo := &mockSubmissionRepo{recordErr: errors.New("db down")}
	bus := event.NewMemoryBus()
	NewEventHandler(repo).Register(bus)

	// Audit failures are advisory: the publish must still succeed
	err := bus.Publish(context.Background(), event.NewFlagRejectedEvent("alice", "c1"))
	assert.NoError(t, err)
}

func TestEventHandler_RejectsWrongPayloadType(t *testing.T) {
	repo := &mockSubmissionRepo{}
	h := NewEventHandler(repo)

	err := h.HandleChallengeCompleted(context.Background(), event.Event{
		Type:    event.ChallengeCompleted,
		Payload: "not a payload",
	})
	assert.Error(t, err)
	assert.Empty(t, repo.rows)
}

func TestService_Submissions(t *testing.T) {
	repo := &mockSubmissionRepo{rows: []*domain.Submission{
		{UserID: "alice", ChallengeID: "c1", Kind: domain.SubmissionKindFlag, Correct: true},
	}}
	svc := NewService(repo)

	subs, err := svc.Submissions(context.Background(), repository.SubmissionFilter{})
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}
