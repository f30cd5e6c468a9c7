package domain

// Outcome is the normalized result of answering a single word in any quiz
// mode. It is ephemeral: consumed by the SRS engine immediately after the
// answer and then discarded.
type Outcome struct {
	WordID     int64  `json:"word_id"`
	WasCorrect bool   `json:"was_correct"`
	RawAnswer  string `json:"raw_answer,omitempty"`
}
