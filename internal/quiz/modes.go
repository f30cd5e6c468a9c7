package quiz

import (
	"strings"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// Status is the answer state a mode exposes to its host. Every mode starts
// at StatusIdle for a fresh word and reaches a terminal status from which
// the host advances to the next word.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusCorrect Status = "correct"
	StatusWrong   Status = "wrong"
)

// WriteMode collects a typed answer for one word. Submitting compares the
// trimmed input case-insensitively against the word text. A wrong answer is
// not a dead end: the user may edit and resubmit before advancing, but only
// the first submission is recorded as the outcome for scheduling.
type WriteMode struct {
	word *domain.Word

	input    string
	status   Status
	recorded *domain.Outcome
}

// NewWriteMode starts write mode for the given word.
func NewWriteMode(word *domain.Word) *WriteMode {
	return &WriteMode{word: word, status: StatusIdle}
}

// SetInput updates the input text. Any edit resets the status to idle.
func (m *WriteMode) SetInput(text string) {
	m.input = text
	m.status = StatusIdle
}

// Submit evaluates the current input and returns the resulting status.
// The first submission fixes the recorded outcome; later retries only
// change the displayed status.
func (m *WriteMode) Submit() Status {
	if m.word.MatchesAnswer(m.input) {
		m.status = StatusCorrect
	} else {
		m.status = StatusWrong
	}

	if m.recorded == nil {
		m.recorded = &domain.Outcome{
			WordID:     m.word.ID,
			WasCorrect: m.status == StatusCorrect,
			RawAnswer:  strings.TrimSpace(m.input),
		}
	}
	return m.status
}

// Status returns the current answer state.
func (m *WriteMode) Status() Status {
	return m.status
}

// Outcome returns the recorded outcome, or nil before any submission.
func (m *WriteMode) Outcome() *domain.Outcome {
	return m.recorded
}

// Advance resets all transient state for the next word. Stale input or
// status must never leak into the following item.
func (m *WriteMode) Advance(next *domain.Word) {
	m.word = next
	m.input = ""
	m.status = StatusIdle
	m.recorded = nil
}

// ChoiceMode collects a selection from a multiple-choice question. Once
// answered, further selections are ignored until the host advances.
type ChoiceMode struct {
	question *Question

	answered bool
	status   Status
	recorded *domain.Outcome
}

// NewChoiceMode starts multiple-choice mode for the given question.
func NewChoiceMode(question *Question) *ChoiceMode {
	return &ChoiceMode{question: question, status: StatusIdle}
}

// Question returns the cached question, including its fixed option order.
func (m *ChoiceMode) Question() *Question {
	return m.question
}

// Select records the choice of the option with the given word ID and
// returns the resulting status. Selections after the first are ignored.
func (m *ChoiceMode) Select(optionID int64) Status {
	if m.answered {
		return m.status
	}
	m.answered = true

	if m.question.IsCorrect(optionID) {
		m.status = StatusCorrect
	} else {
		m.status = StatusWrong
	}

	m.recorded = &domain.Outcome{
		WordID:     m.question.Target.ID,
		WasCorrect: m.status == StatusCorrect,
	}
	return m.status
}

// SelectIndex records a selection by zero-based option index, matching
// number-key input. Out-of-range indexes are ignored.
func (m *ChoiceMode) SelectIndex(index int) Status {
	option := m.question.OptionAt(index)
	if option == nil {
		return m.status
	}
	return m.Select(option.ID)
}

// Answered reports whether a selection has been made.
func (m *ChoiceMode) Answered() bool {
	return m.answered
}

// Status returns the current answer state.
func (m *ChoiceMode) Status() Status {
	return m.status
}

// Outcome returns the recorded outcome, or nil before any selection.
func (m *ChoiceMode) Outcome() *domain.Outcome {
	return m.recorded
}

// Advance resets the mode for the next question.
func (m *ChoiceMode) Advance(next *Question) {
	m.question = next
	m.answered = false
	m.status = StatusIdle
	m.recorded = nil
}

// FlipMode is the self-assessed flash card mode. Flipping between front and
// back is a manual toggle unrelated to correctness; the user judges
// themselves with an explicit known / not-known action that is only
// available once the back face has been shown.
type FlipMode struct {
	word *domain.Word

	showingBack bool
	flipped     bool // back face shown at least once
	status      Status
	recorded    *domain.Outcome
}

// NewFlipMode starts flip-card mode for the given word, front face up.
func NewFlipMode(word *domain.Word) *FlipMode {
	return &FlipMode{word: word, status: StatusIdle}
}

// Flip toggles between the front and back face.
func (m *FlipMode) Flip() {
	m.showingBack = !m.showingBack
	if m.showingBack {
		m.flipped = true
	}
}

// ShowingBack reports whether the back face is currently visible.
func (m *FlipMode) ShowingBack() bool {
	return m.showingBack
}

// MarkKnown records a self-assessed correct outcome. Ignored unless the
// back face has been shown, and only the first judgement counts.
func (m *FlipMode) MarkKnown() Status {
	return m.mark(true)
}

// MarkUnknown records a self-assessed incorrect outcome under the same
// guards as MarkKnown.
func (m *FlipMode) MarkUnknown() Status {
	return m.mark(false)
}

func (m *FlipMode) mark(known bool) Status {
	if !m.flipped || m.recorded != nil {
		return m.status
	}

	if known {
		m.status = StatusCorrect
	} else {
		m.status = StatusWrong
	}
	m.recorded = &domain.Outcome{
		WordID:     m.word.ID,
		WasCorrect: known,
	}
	return m.status
}

// Status returns the current answer state.
func (m *FlipMode) Status() Status {
	return m.status
}

// Outcome returns the recorded outcome, or nil before a judgement.
func (m *FlipMode) Outcome() *domain.Outcome {
	return m.recorded
}

// Advance resets the card to its front face for the next word.
func (m *FlipMode) Advance(next *domain.Word) {
	m.word = next
	m.showingBack = false
	m.flipped = false
	m.status = StatusIdle
	m.recorded = nil
}
