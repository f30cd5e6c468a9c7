// Package quiz contains the per-question mechanics of a learning run:
// multiple-choice distractor generation and the three interchangeable
// answer-mode state machines. Every mode terminates in the same
// domain.Outcome shape consumed by the scheduling engine.
package quiz

import (
	"math/rand"

	"github.com/samber/lo"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// DefaultDistractorCount is how many wrong options accompany the correct
// answer in multiple-choice mode.
const DefaultDistractorCount = 3

// Distractors picks up to k plausible wrong answers for the target word from
// the given pool. The target itself is never included; entries sharing the
// target's ID are filtered out first. Returns min(k, |filtered pool|) words.
//
// The pool is expected to be a bounded candidate set fetched alongside the
// target; selection does not need to be uniform over the whole corpus.
func Distractors(target *domain.Word, pool []*domain.Word, k int) []*domain.Word {
	if k <= 0 {
		k = DefaultDistractorCount
	}

	candidates := lo.Filter(pool, func(w *domain.Word, _ int) bool {
		return w.ID != target.ID
	})

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}

// Question is one multiple-choice prompt: the target word plus its shuffled
// options. The option order is fixed at construction and cached for the
// question's lifetime, so repeated renders never reorder the choices under
// the user.
type Question struct {
	Target  *domain.Word
	Options []*domain.Word
}

// NewQuestion builds a multiple-choice question for the target word,
// drawing distractors from the pool and shuffling target + distractors
// exactly once.
func NewQuestion(target *domain.Word, pool []*domain.Word) *Question {
	options := append(Distractors(target, pool, DefaultDistractorCount), target)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &Question{
		Target:  target,
		Options: options,
	}
}

// IsCorrect reports whether the selected option is the target word.
func (q *Question) IsCorrect(optionID int64) bool {
	return optionID == q.Target.ID
}

// OptionAt returns the option at the given zero-based index, or nil when the
// index is out of range. Used by number-key selection (1–4 mapped to 0–3 by
// the caller).
func (q *Question) OptionAt(index int) *domain.Word {
	if index < 0 || index >= len(q.Options) {
		return nil
	}
	return q.Options[index]
}
