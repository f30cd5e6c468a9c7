// Package session builds and tracks one bounded learning run: an ordered
// working set of vocabulary words joined with each word's scheduling state.
// Sessions are ephemeral and never persisted; abandoning one loses nothing,
// because answers are recorded individually as they happen.
package session

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// DefaultSize is the target number of words per learning run. Fewer
// candidates produce a smaller session rather than an error.
const DefaultSize = 10

// Entry pairs a vocabulary word with the user's scheduling state for it.
// For words the user has never answered, Progress holds the default state
// and stays unpersisted until an answer is actually recorded.
type Entry struct {
	Word     *domain.Word
	Progress *domain.WordProgress
}

// Session is an ordered sequence of entries plus a cursor. Lifetime is one
// learning run.
type Session struct {
	UserID  uuid.UUID
	Entries []Entry

	cursor int
}

// Compose builds a session from candidate words and the user's existing
// scheduling states, keyed by word ID.
//
// Candidate order is irrelevant: duplicates are dropped by word ID and the
// presentation order is shuffled uniformly, once. Words without existing
// state get a lazily synthesized default. The session is capped at
// targetSize; a targetSize <= 0 falls back to DefaultSize.
func Compose(
	userID uuid.UUID,
	candidates []*domain.Word,
	states map[int64]*domain.WordProgress,
	targetSize int,
) (*Session, error) {
	if targetSize <= 0 {
		targetSize = DefaultSize
	}

	unique := lo.UniqBy(candidates, func(w *domain.Word) int64 { return w.ID })

	entries := make([]Entry, 0, len(unique))
	for _, word := range unique {
		progress, ok := states[word.ID]
		if !ok {
			var err error
			progress, err = domain.NewWordProgress(userID, word.ID)
			if err != nil {
				return nil, err
			}
		}
		entries = append(entries, Entry{Word: word, Progress: progress})
	}

	rand.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})

	if len(entries) > targetSize {
		entries = entries[:targetSize]
	}

	return &Session{
		UserID:  userID,
		Entries: entries,
	}, nil
}

// Size returns the number of words in the session.
func (s *Session) Size() int {
	return len(s.Entries)
}

// Done reports whether the cursor has moved past the last entry.
func (s *Session) Done() bool {
	return s.cursor >= len(s.Entries)
}

// Current returns the entry under the cursor, or nil once the session is
// done.
func (s *Session) Current() *Entry {
	if s.Done() {
		return nil
	}
	return &s.Entries[s.cursor]
}

// Advance moves the cursor to the next entry and reports whether one exists.
func (s *Session) Advance() bool {
	if s.Done() {
		return false
	}
	s.cursor++
	return !s.Done()
}

// Remaining returns how many entries are left, including the current one.
func (s *Session) Remaining() int {
	if s.Done() {
		return 0
	}
	return len(s.Entries) - s.cursor
}

// WordIDs returns the ids of all words in the session, in presentation
// order.
func (s *Session) WordIDs() []int64 {
	return lo.Map(s.Entries, func(e Entry, _ int) int64 { return e.Word.ID })
}
