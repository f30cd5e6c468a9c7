package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// ProgressStore defines the interface for per-(user, word) scheduling state
// persistence. Uniqueness is enforced on the (user ID, word ID) pair.
// Version: 1.0
type ProgressStore interface {
	// Get retrieves scheduling state for one (user, word) pair.
	// Returns ErrProgressNotFound if no state has been recorded yet;
	// callers synthesize the default state in that case.
	Get(ctx context.Context, userID uuid.UUID, wordID int64) (*domain.WordProgress, error)

	// GetForUser retrieves all existing scheduling states for the given
	// words, keyed by word ID. Words without recorded state are simply
	// absent from the map, never an error.
	GetForUser(
		ctx context.Context,
		userID uuid.UUID,
		wordIDs []int64,
	) (map[int64]*domain.WordProgress, error)

	// Upsert writes scheduling state, inserting on first answer and
	// updating thereafter. It handles domain validation internally and
	// returns validation errors from the domain WordProgress if data is
	// invalid.
	Upsert(ctx context.Context, progress *domain.WordProgress) error

	// Reset reinitializes the state for one (user, word) pair back to
	// defaults. Used by the external relearn feature.
	// Returns ErrProgressNotFound if no state exists.
	Reset(ctx context.Context, userID uuid.UUID, wordID int64) error

	// WithTx returns a new ProgressStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ProgressStore
}
