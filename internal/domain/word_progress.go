package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Scheduling defaults for new (user, word) pairs.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3

	// MasteryThreshold is the interval, in days, beyond which a word counts
	// as mastered. Mastered == (Interval > MasteryThreshold), always derived,
	// never set independently.
	MasteryThreshold = 20
)

// Common validation errors for WordProgress
var (
	ErrEmptyProgressUserID = errors.New("word progress user ID cannot be empty")
	ErrInvalidProgressWord = errors.New("word progress word ID must be positive")
	ErrInvalidInterval     = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor   = errors.New("ease factor must be greater than 1.0")
)

// WordProgress tracks a user's spaced repetition scheduling state for a
// single vocabulary word. It is keyed by the (UserID, WordID) pair and is
// mutated only by the SRS engine, or reset to defaults by an explicit
// relearn operation.
type WordProgress struct {
	UserID         uuid.UUID `json:"user_id"`
	WordID         int64     `json:"word_id"`
	Interval       int       `json:"interval"`         // Days until due; 0 means due now / relearning
	EaseFactor     float64   `json:"ease_factor"`      // Growth multiplier, floor 1.3
	Repetitions    int       `json:"repetitions"`      // Total recorded answers, informational
	Mastered       bool      `json:"mastered"`         // Derived: Interval > MasteryThreshold
	LastReviewedAt time.Time `json:"last_reviewed_at"` // Zero until the first answer
	NextReviewAt   time.Time `json:"next_review_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewWordProgress creates scheduling state for a user and word with default
// values. New words are due immediately.
func NewWordProgress(userID uuid.UUID, wordID int64) (*WordProgress, error) {
	now := time.Now().UTC()
	progress := &WordProgress{
		UserID:         userID,
		WordID:         wordID,
		Interval:       0,
		EaseFactor:     DefaultEaseFactor,
		Repetitions:    0,
		Mastered:       false,
		LastReviewedAt: time.Time{},
		NextReviewAt:   now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the WordProgress has valid data.
// Returns an error if any field fails validation.
func (p *WordProgress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}

	if p.WordID <= 0 {
		return ErrInvalidProgressWord
	}

	if p.Interval < 0 {
		return ErrInvalidInterval
	}

	if p.EaseFactor <= 1.0 {
		return ErrInvalidEaseFactor
	}

	return nil
}

// IsNew reports whether this progress has never recorded an answer. New
// progress is synthesized lazily by the session composer and only persisted
// once an answer is actually recorded.
func (p *WordProgress) IsNew() bool {
	return p.LastReviewedAt.IsZero()
}
