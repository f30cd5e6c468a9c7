// Package events provides a small in-memory event mechanism that decouples
// answer recording from its side effects. The learning service emits an
// event when a correct answer is recorded without knowing who awards the
// experience point; the schedule upsert and the award stay independent,
// non-atomic operations.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ExperienceAwarded signals that a user answered a word correctly and has
// earned an experience point.
type ExperienceAwarded struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	WordID     int64
	OccurredAt time.Time
}

// NewExperienceAwarded creates an ExperienceAwarded event for the given user
// and word.
func NewExperienceAwarded(userID uuid.UUID, wordID int64) *ExperienceAwarded {
	return &ExperienceAwarded{
		ID:         uuid.New(),
		UserID:     userID,
		WordID:     wordID,
		OccurredAt: time.Now().UTC(),
	}
}

// Handler processes emitted events.
type Handler interface {
	// HandleEvent processes a single event. Errors are surfaced to the
	// emitter's caller but do not stop delivery to other handlers.
	HandleEvent(ctx context.Context, event *ExperienceAwarded) error
}

// Emitter publishes events to registered handlers.
type Emitter interface {
	// RegisterHandler adds a new handler to receive events.
	RegisterHandler(handler Handler)

	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *ExperienceAwarded) error
}
