package srs

import (
	"math"
	"time"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// nextEaseFactor determines the new ease factor after an answer.
//
// A correct answer raises the ease factor by the configured bonus, letting
// intervals grow faster over time. An incorrect answer lowers it by the
// configured penalty. There is no upper bound: a long correct streak keeps
// raising the factor. The floor at params.MinEaseFactor also repairs a prior
// state with a degenerate ease factor rather than rejecting it.
func nextEaseFactor(currentEF float64, wasCorrect bool, params *Params) float64 {
	var newEF float64
	if wasCorrect {
		newEF = currentEF + params.CorrectEaseBonus
	} else {
		newEF = currentEF - params.IncorrectEasePenalty
	}

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return newEF
}

// nextInterval determines the new interval in days.
//
// The schedule is a leveled ladder rather than a continuous curve:
//
//   - incorrect answers always reset the interval to 0 (relearn queue)
//   - the first correct answer moves 0 → params.FirstInterval
//   - the second moves params.FirstInterval → params.SecondInterval
//   - every later correct answer multiplies the current interval by the
//     prior ease factor, rounded half away from zero
//
// The ease factor passed in must be the factor in effect before this answer;
// the bonus for the current answer only influences the next rung.
func nextInterval(currentInterval int, priorEF float64, wasCorrect bool, params *Params) int {
	if !wasCorrect {
		return 0
	}

	switch currentInterval {
	case 0:
		return params.FirstInterval
	case params.FirstInterval:
		return params.SecondInterval
	default:
		return int(math.Round(float64(currentInterval) * priorEF))
	}
}

// nextReviewAt determines when the word should next be shown.
//
// An interval of 0 means the word is on the short-term relearn queue and
// comes back after params.RelearnMinutes. Any other interval is counted in
// whole days from now.
func nextReviewAt(interval int, now time.Time, params *Params) time.Time {
	if interval == 0 {
		return now.Add(time.Duration(params.RelearnMinutes) * time.Minute)
	}
	return now.AddDate(0, 0, interval)
}

// nextProgress creates a new WordProgress with updated values after an
// answer. It follows the immutable update pattern: the prior state is never
// modified, a fresh copy carries the new schedule. The function is total for
// any prior state; degenerate values are clamped, not rejected.
func nextProgress(
	prior *domain.WordProgress,
	wasCorrect bool,
	now time.Time,
	params *Params,
) *domain.WordProgress {
	next := &domain.WordProgress{
		UserID:         prior.UserID,
		WordID:         prior.WordID,
		Interval:       prior.Interval,
		EaseFactor:     prior.EaseFactor,
		Repetitions:    prior.Repetitions,
		LastReviewedAt: prior.LastReviewedAt,
		NextReviewAt:   prior.NextReviewAt,
		CreatedAt:      prior.CreatedAt,
		UpdatedAt:      prior.UpdatedAt,
	}

	// A negative interval in stored state is treated as "due now".
	currentInterval := prior.Interval
	if currentInterval < 0 {
		currentInterval = 0
	}

	next.Interval = nextInterval(currentInterval, prior.EaseFactor, wasCorrect, params)
	next.EaseFactor = nextEaseFactor(prior.EaseFactor, wasCorrect, params)
	next.Mastered = next.Interval > params.MasteryThreshold
	next.Repetitions++
	next.LastReviewedAt = now
	next.NextReviewAt = nextReviewAt(next.Interval, now, params)
	next.UpdatedAt = now

	return next
}
