package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wordtrail/wordtrail-api/internal/store"
)

// StoreExperienceHandler awards experience points by incrementing the
// persistent counter. It is registered on the emitter at startup.
type StoreExperienceHandler struct {
	experience store.ExperienceStore
	logger     *slog.Logger
}

// Ensure StoreExperienceHandler implements Handler
var _ Handler = (*StoreExperienceHandler)(nil)

// NewStoreExperienceHandler creates a handler backed by the given store.
func NewStoreExperienceHandler(
	experience store.ExperienceStore,
	logger *slog.Logger,
) *StoreExperienceHandler {
	if experience == nil {
		panic("experience store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StoreExperienceHandler{
		experience: experience,
		logger:     logger.With(slog.String("component", "experience_handler")),
	}
}

// HandleEvent implements Handler.
func (h *StoreExperienceHandler) HandleEvent(ctx context.Context, event *ExperienceAwarded) error {
	if err := h.experience.Increment(ctx, event.UserID); err != nil {
		return fmt.Errorf("failed to award experience: %w", err)
	}

	h.logger.Debug("experience awarded",
		slog.String("user_id", event.UserID.String()),
		slog.Int64("word_id", event.WordID))
	return nil
}
