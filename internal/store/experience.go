package store

import (
	"context"

	"github.com/google/uuid"
)

// ExperienceStore defines the interface for the experience-point counter
// consumed by the leaderboard feature. The learning engine only increments
// it; ranking and display live outside the core.
type ExperienceStore interface {
	// Increment adds one experience point for the user, creating the
	// counter row on first award. Fire-and-forget from the caller's point
	// of view: the only consumed result is error surfacing.
	Increment(ctx context.Context, userID uuid.UUID) error
}
