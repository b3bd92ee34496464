package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// EventSchemaVersion is the current schema version for published events
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Common event types
const (
	ChallengeCompleted Type = "challenge.completed"
	HintRevealed       Type = "hint.revealed"
	CategoryUnlocked   Type = "category.unlocked"
	ChallengeUnlocked  Type = "challenge.unlocked"
	FlagRejected       Type = "flag.rejected"
	RecordReset        Type = "record.reset"
)

// Typed event payloads for type safety

// ChallengeCompletedPayloadV1 is the typed payload for challenge completion events
type ChallengeCompletedPayloadV1 struct {
	UserID            string `json:"user_id"`
	ChallengeID       string `json:"challenge_id"`
	Points            int    `json:"points"`
	NewScore          int    `json:"new_score"`
	UnlockedChallenge string `json:"unlocked_challenge,omitempty"`
	Timestamp         int64  `json:"timestamp"`
}

// HintRevealedPayloadV1 is the typed payload for hint purchase events
type HintRevealedPayloadV1 struct {
	UserID      string `json:"user_id"`
	ChallengeID string `json:"challenge_id"`
	HintID      string `json:"hint_id"`
	Cost        int    `json:"cost"`
	NewScore    int    `json:"new_score"`
	Timestamp   int64  `json:"timestamp"`
}

// FlagRejectedPayloadV1 is the typed payload for wrong-flag events
type FlagRejectedPayloadV1 struct {
	UserID      string `json:"user_id"`
	ChallengeID string `json:"challenge_id"`
	Timestamp   int64  `json:"timestamp"`
}

// UnlockPayloadV1 is the typed payload for category/challenge unlock events
type UnlockPayloadV1 struct {
	UserID    string `json:"user_id"`
	TargetID  string `json:"target_id"`
	Timestamp int64  `json:"timestamp"`
}

// RecordResetPayloadV1 is the typed payload for record removal events
type RecordResetPayloadV1 struct {
	UserID    string `json:"user_id"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewChallengeCompletedEvent creates a new challenge completion event
func NewChallengeCompletedEvent(userID, challengeID string, points, newScore int, unlockedChallenge string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChallengeCompleted,
		Payload: ChallengeCompletedPayloadV1{
			UserID:            userID,
			ChallengeID:       challengeID,
			Points:            points,
			NewScore:          newScore,
			UnlockedChallenge: unlockedChallenge,
			Timestamp:         time.Now().Unix(),
		},
	}
}

// NewHintRevealedEvent creates a new hint purchase event
func NewHintRevealedEvent(userID, challengeID, hintID string, cost, newScore int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    HintRevealed,
		Payload: HintRevealedPayloadV1{
			UserID:      userID,
			ChallengeID: challengeID,
			HintID:      hintID,
			Cost:        cost,
			NewScore:    newScore,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewFlagRejectedEvent creates a new wrong-flag event
func NewFlagRejectedEvent(userID, challengeID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    FlagRejected,
		Payload: FlagRejectedPayloadV1{
			UserID:      userID,
			ChallengeID: challengeID,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewUnlockEvent creates a category or challenge unlock event
func NewUnlockEvent(eventType Type, userID, targetID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: UnlockPayloadV1{
			UserID:    userID,
			TargetID:  targetID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewRecordResetEvent creates a record removal event
func NewRecordResetEvent(userID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RecordReset,
		Payload: RecordResetPayloadV1{
			UserID:    userID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously; a handler error never blocks other handlers.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
