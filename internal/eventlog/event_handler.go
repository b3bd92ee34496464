package eventlog

import (
	"context"
	"fmt"

	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/event"
	"github.com/cyberquest/backend/internal/logger"
	"github.com/cyberquest/backend/internal/metrics"
	"github.com/cyberquest/backend/internal/repository"
)

// EventHandler appends audit rows for progression events
type EventHandler struct {
	repo repository.Submission
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(repo repository.Submission) *EventHandler {
	return &EventHandler{repo: repo}
}

// Register registers the event handlers to the bus
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.ChallengeCompleted, h.HandleChallengeCompleted)
	bus.Subscribe(event.FlagRejected, h.HandleFlagRejected)
	bus.Subscribe(event.HintRevealed, h.HandleHintRevealed)
}

// HandleChallengeCompleted records a correct flag submission
func (h *EventHandler) HandleChallengeCompleted(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.ChallengeCompletedPayloadV1)
	if !ok {
		return fmt.Errorf("invalid payload type for completion event: %T", evt.Payload)
	}

	return h.record(ctx, &domain.Submission{
		UserID:      payload.UserID,
		ChallengeID: payload.ChallengeID,
		Kind:        domain.SubmissionKindFlag,
		Correct:     true,
	})
}

// HandleFlagRejected records a wrong flag submission
func (h *EventHandler) HandleFlagRejected(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.FlagRejectedPayloadV1)
	if !ok {
		return fmt.Errorf("invalid payload type for rejection event: %T", evt.Payload)
	}

	return h.record(ctx, &domain.Submission{
		UserID:      payload.UserID,
		ChallengeID: payload.ChallengeID,
		Kind:        domain.SubmissionKindFlag,
		Correct:     false,
	})
}

// HandleHintRevealed records a hint purchase
func (h *EventHandler) HandleHintRevealed(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.HintRevealedPayloadV1)
	if !ok {
		return fmt.Errorf("invalid payload type for hint event: %T", evt.Payload)
	}

	return h.record(ctx, &domain.Submission{
		UserID:      payload.UserID,
		ChallengeID: payload.ChallengeID,
		Kind:        domain.SubmissionKindHint,
		Correct:     true,
	})
}

func (h *EventHandler) record(ctx context.Context, sub *domain.Submission) error {
	if err := h.repo.Record(ctx, sub); err != nil {
		// The audit trail is advisory; log and move on
		logger.FromContext(ctx).Warn("Failed to record submission", "userID", sub.UserID, "challengeID", sub.ChallengeID, "error", err)
		metrics.EventHandlerErrors.WithLabelValues(sub.Kind).Inc()
	}
	return nil
}
