// Package learning provides the application-level learning service: daily
// word sampling, session composition, and answer recording over the spaced
// repetition engine.
package learning

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/session"
)

// Common error types for the learning service
var (
	// ErrNoWordsAvailable indicates the corpus holds no candidate words.
	// Callers present an empty state; this is not fatal.
	ErrNoWordsAvailable = errors.New("no words available")

	// ErrPersistenceFailure indicates a write to the progress store failed.
	// The computed schedule is discarded server-side but the caller's
	// in-memory session is untouched, so the user can keep answering.
	ErrPersistenceFailure = errors.New("failed to persist progress")

	// ErrWordNotFound indicates the referenced word does not exist.
	ErrWordNotFound = errors.New("word not found")

	// ErrProgressNotFound indicates no scheduling state exists to reset.
	ErrProgressNotFound = errors.New("word progress not found")
)

// Service composes learning sessions and records answers.
type Service interface {
	// DailyWords returns the reproducible "words of the day" sample for the
	// given reference date. The same date and corpus always yield the same
	// words. An empty corpus yields an empty slice, not an error.
	DailyWords(ctx context.Context, referenceDate time.Time, count int) ([]*domain.Word, error)

	// StartSession builds a learning session for the user: a shuffled,
	// duplicate-free working set of words joined with the user's scheduling
	// state. A thin corpus produces a smaller session rather than failing;
	// a completely empty corpus returns ErrNoWordsAvailable.
	StartSession(ctx context.Context, userID uuid.UUID) (*session.Session, error)

	// RecordOutcome applies one answer outcome to the user's scheduling
	// state: the SRS engine computes the next schedule, the result is
	// upserted, and a correct answer additionally triggers the experience
	// award side effect. The upsert and the award are independent
	// operations; neither is rolled back when the other fails.
	// Returns ErrWordNotFound when the outcome references a word that is
	// not in the corpus, and ErrPersistenceFailure (wrapped) when the
	// upsert fails.
	RecordOutcome(
		ctx context.Context,
		userID uuid.UUID,
		outcome domain.Outcome,
	) (*domain.WordProgress, error)

	// ResetProgress puts a word back on the relearn path by restoring the
	// default scheduling state. Returns ErrProgressNotFound if the user has
	// never answered the word.
	ResetProgress(ctx context.Context, userID uuid.UUID, wordID int64) error
}
