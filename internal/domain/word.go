package domain

import (
	"errors"
	"strings"
)

// Common validation errors for Word
var (
	ErrEmptyWordText    = errors.New("word text cannot be empty")
	ErrEmptyWordMeaning = errors.New("word meaning cannot be empty")
	ErrInvalidWordID    = errors.New("word ID must be positive")
)

// Word is an immutable vocabulary content record. Rows are created and
// maintained by the external content pipeline; the learning engine only
// reads them.
type Word struct {
	ID              int64  `json:"id"`
	Text            string `json:"text"`             // Target-language word
	Meaning         string `json:"meaning"`          // Native-language meaning
	PartOfSpeech    string `json:"part_of_speech"`   // e.g. "noun", "verb"
	Level           string `json:"level"`            // CEFR-like tag, e.g. "B1"
	ExampleSentence string `json:"example_sentence"` // Target-language example
	ExampleMeaning  string `json:"example_meaning"`  // Native-language example
	AudioURL        string `json:"audio_url,omitempty"`
	Phonetic        string `json:"phonetic,omitempty"`
}

// Validate checks if the Word has valid data.
// Returns an error if any field fails validation.
func (w *Word) Validate() error {
	if w.ID <= 0 {
		return ErrInvalidWordID
	}

	if strings.TrimSpace(w.Text) == "" {
		return ErrEmptyWordText
	}

	if strings.TrimSpace(w.Meaning) == "" {
		return ErrEmptyWordMeaning
	}

	return nil
}

// MatchesAnswer reports whether the given raw input matches the word text,
// ignoring case and surrounding whitespace. Empty input never matches.
func (w *Word) MatchesAnswer(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	return strings.EqualFold(trimmed, w.Text)
}
