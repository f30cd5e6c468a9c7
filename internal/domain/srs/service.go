package srs

import (
	"errors"
	"time"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// Common errors
var (
	ErrNilProgress = errors.New("word progress cannot be nil")
)

// Service defines the interface for spaced repetition scheduling operations.
type Service interface {
	// Review computes new scheduling state from a recorded answer.
	// The returned progress is a new instance; the prior state is untouched.
	Review(
		prior *domain.WordProgress,
		wasCorrect bool,
		now time.Time,
	) (*domain.WordProgress, error)

	// Reset reinitializes the scheduling state to defaults, putting the word
	// back on the relearn path. Used by the explicit relearn feature.
	Reset(
		prior *domain.WordProgress,
		now time.Time,
	) (*domain.WordProgress, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// Review implements the Service interface for answer-driven updates.
func (s *defaultService) Review(
	prior *domain.WordProgress,
	wasCorrect bool,
	now time.Time,
) (*domain.WordProgress, error) {
	if prior == nil {
		return nil, ErrNilProgress
	}

	return nextProgress(prior, wasCorrect, now, s.params), nil
}

// Reset implements the Service interface for the relearn operation.
func (s *defaultService) Reset(
	prior *domain.WordProgress,
	now time.Time,
) (*domain.WordProgress, error) {
	if prior == nil {
		return nil, ErrNilProgress
	}

	return &domain.WordProgress{
		UserID:         prior.UserID,
		WordID:         prior.WordID,
		Interval:       0,
		EaseFactor:     domain.DefaultEaseFactor,
		Repetitions:    0,
		Mastered:       false,
		LastReviewedAt: prior.LastReviewedAt,
		NextReviewAt:   now,
		CreatedAt:      prior.CreatedAt,
		UpdatedAt:      now,
	}, nil
}
