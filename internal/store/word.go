package store

import (
	"context"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// WordStore defines the read-only interface for vocabulary content. Words
// are written by the external content pipeline; the learning engine never
// mutates them.
type WordStore interface {
	// GetByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Word, error)

	// GetBatch retrieves up to limit words in stable id order starting at
	// the given offset. An empty result is valid, not an error.
	GetBatch(ctx context.Context, limit, offset int) ([]*domain.Word, error)

	// GetByPositions retrieves the words at the given zero-based positions
	// of the id-ordered corpus. Positions outside the corpus are skipped.
	// This backs the deterministic daily sample, whose positions are
	// computed against Count.
	GetByPositions(ctx context.Context, positions []int) ([]*domain.Word, error)

	// Count returns the total number of words in the corpus.
	Count(ctx context.Context) (int, error)
}
