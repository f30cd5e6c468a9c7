package learning_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/domain/srs"
	"github.com/wordtrail/wordtrail-api/internal/service/learning"
)

func newTestService(
	words *mockWordStore,
	progress *mockProgressStore,
	emitter *mockEmitter,
) learning.Service {
	return learning.NewService(
		words,
		progress,
		srs.NewDefaultService(),
		emitter,
		learning.Config{SessionSize: 10, DailyWordCount: 5},
		nil,
	)
}

func TestNewServicePanicsOnNilDependencies(t *testing.T) {
	t.Parallel()

	words := newMockWordStore(5)
	progress := newMockProgressStore()
	emitter := &mockEmitter{}
	srsService := srs.NewDefaultService()
	cfg := learning.Config{}

	assert.Panics(t, func() {
		learning.NewService(nil, progress, srsService, emitter, cfg, nil)
	})
	assert.Panics(t, func() {
		learning.NewService(words, nil, srsService, emitter, cfg, nil)
	})
	assert.Panics(t, func() {
		learning.NewService(words, progress, nil, emitter, cfg, nil)
	})
	assert.Panics(t, func() {
		learning.NewService(words, progress, srsService, nil, cfg, nil)
	})
}

func TestDailyWordsDeterministic(t *testing.T) {
	t.Parallel()

	referenceDate := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	// Two services over identical corpora must sample identical words.
	svcA := newTestService(newMockWordStore(100), newMockProgressStore(), &mockEmitter{})
	svcB := newTestService(newMockWordStore(100), newMockProgressStore(), &mockEmitter{})

	wordsA, err := svcA.DailyWords(context.Background(), referenceDate, 5)
	require.NoError(t, err)
	wordsB, err := svcB.DailyWords(context.Background(), referenceDate, 5)
	require.NoError(t, err)

	require.Len(t, wordsA, 5)
	for i := range wordsA {
		assert.Equal(t, wordsA[i].ID, wordsB[i].ID)
	}
}

func TestDailyWordsCached(t *testing.T) {
	t.Parallel()

	words := newMockWordStore(100)
	svc := newTestService(words, newMockProgressStore(), &mockEmitter{})
	referenceDate := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	first, err := svc.DailyWords(context.Background(), referenceDate, 5)
	require.NoError(t, err)

	// A store failure after the first call is invisible while the cache
	// covers the same date.
	words.countErr = errors.New("database down")

	second, err := svc.DailyWords(context.Background(), referenceDate, 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDailyWordsCachedWithThinCorpus(t *testing.T) {
	t.Parallel()

	// Three words cannot fill a sample of five; the shortfall must not
	// defeat the cache for the rest of the day.
	words := newMockWordStore(3)
	svc := newTestService(words, newMockProgressStore(), &mockEmitter{})
	referenceDate := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	first, err := svc.DailyWords(context.Background(), referenceDate, 5)
	require.NoError(t, err)
	require.Len(t, first, 3)

	words.countErr = errors.New("database down")

	second, err := svc.DailyWords(context.Background(), referenceDate, 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDailyWordsEmptyCorpus(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMockWordStore(0), newMockProgressStore(), &mockEmitter{})

	words, err := svc.DailyWords(context.Background(), time.Now().UTC(), 5)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestDailyWordsCountFallback(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMockWordStore(100), newMockProgressStore(), &mockEmitter{})

	words, err := svc.DailyWords(context.Background(), time.Now().UTC(), 0)
	require.NoError(t, err)
	assert.Len(t, words, 5, "non-positive count falls back to the configured daily count")
}

func TestStartSession(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	progress := newMockProgressStore()

	// Pre-seed state for a few words; the rest must get lazy defaults.
	existing := &domain.WordProgress{
		UserID:     userID,
		WordID:     3,
		Interval:   5,
		EaseFactor: 2.8,

		LastReviewedAt: time.Now().UTC().AddDate(0, 0, -5),
	}
	require.NoError(t, progress.Upsert(context.Background(), existing))

	svc := newTestService(newMockWordStore(30), progress, &mockEmitter{})

	sess, err := svc.StartSession(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 10, sess.Size())
	assert.Equal(t, userID, sess.UserID)

	seen := make(map[int64]struct{})
	for _, entry := range sess.Entries {
		require.NotNil(t, entry.Word)
		require.NotNil(t, entry.Progress)
		assert.Equal(t, entry.Word.ID, entry.Progress.WordID)

		_, dup := seen[entry.Word.ID]
		assert.False(t, dup, "word %d appears twice", entry.Word.ID)
		seen[entry.Word.ID] = struct{}{}

		if entry.Word.ID == 3 {
			assert.Equal(t, 5, entry.Progress.Interval)
		}
	}
}

func TestStartSessionThinCorpus(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMockWordStore(4), newMockProgressStore(), &mockEmitter{})

	sess, err := svc.StartSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 4, sess.Size())
}

func TestStartSessionEmptyCorpus(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMockWordStore(0), newMockProgressStore(), &mockEmitter{})

	_, err := svc.StartSession(context.Background(), uuid.New())
	assert.ErrorIs(t, err, learning.ErrNoWordsAvailable)
}

func TestRecordOutcomeFirstAnswer(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	progress := newMockProgressStore()
	emitter := &mockEmitter{}
	svc := newTestService(newMockWordStore(10), progress, emitter)

	next, err := svc.RecordOutcome(context.Background(), userID, domain.Outcome{
		WordID:     7,
		WasCorrect: true,
	})
	require.NoError(t, err)

	// A first correct answer lands on the first rung of the ladder.
	assert.Equal(t, 1, next.Interval)
	assert.InDelta(t, 2.6, next.EaseFactor, 1e-9)
	assert.Equal(t, 1, next.Repetitions)

	// The state was persisted and can be read back.
	stored, err := progress.Get(context.Background(), userID, 7)
	require.NoError(t, err)
	assert.Equal(t, next, stored)
}

func TestRecordOutcomeExistingProgress(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	progress := newMockProgressStore()
	require.NoError(t, progress.Upsert(context.Background(), &domain.WordProgress{
		UserID:     userID,
		WordID:     7,
		Interval:   3,
		EaseFactor: 2.7,

		LastReviewedAt: time.Now().UTC().AddDate(0, 0, -3),
	}))

	svc := newTestService(newMockWordStore(10), progress, &mockEmitter{})

	next, err := svc.RecordOutcome(context.Background(), userID, domain.Outcome{
		WordID:     7,
		WasCorrect: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 8, next.Interval)
	assert.InDelta(t, 2.8, next.EaseFactor, 1e-9)
}

func TestRecordOutcomeAwardsExperienceOnlyWhenCorrect(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	emitter := &mockEmitter{}
	svc := newTestService(newMockWordStore(10), newMockProgressStore(), emitter)

	_, err := svc.RecordOutcome(context.Background(), userID, domain.Outcome{
		WordID:     1,
		WasCorrect: false,
	})
	require.NoError(t, err)
	assert.Empty(t, emitter.emitted(), "an incorrect answer earns nothing")

	_, err = svc.RecordOutcome(context.Background(), userID, domain.Outcome{
		WordID:     1,
		WasCorrect: true,
	})
	require.NoError(t, err)

	emitted := emitter.emitted()
	require.Len(t, emitted, 1)
	assert.Equal(t, userID, emitted[0].UserID)
	assert.Equal(t, int64(1), emitted[0].WordID)
}

func TestRecordOutcomeUnknownWord(t *testing.T) {
	t.Parallel()

	progress := newMockProgressStore()
	emitter := &mockEmitter{}
	svc := newTestService(newMockWordStore(10), progress, emitter)

	_, err := svc.RecordOutcome(context.Background(), uuid.New(), domain.Outcome{
		WordID:     999,
		WasCorrect: true,
	})

	assert.ErrorIs(t, err, learning.ErrWordNotFound)
	assert.Zero(t, progress.upsertCalls, "no schedule write for a word that does not exist")
	assert.Empty(t, emitter.emitted())
}

func TestRecordOutcomePersistenceFailure(t *testing.T) {
	t.Parallel()

	progress := newMockProgressStore()
	progress.upsertErr = errors.New("connection reset")
	emitter := &mockEmitter{}
	svc := newTestService(newMockWordStore(10), progress, emitter)

	_, err := svc.RecordOutcome(context.Background(), uuid.New(), domain.Outcome{
		WordID:     1,
		WasCorrect: true,
	})

	assert.ErrorIs(t, err, learning.ErrPersistenceFailure)
	assert.Empty(t, emitter.emitted(), "no award when the schedule write failed")
}

func TestRecordOutcomeEmitFailureKeepsScheduleUpdate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	progress := newMockProgressStore()
	emitter := &mockEmitter{emitErr: errors.New("handler exploded")}
	svc := newTestService(newMockWordStore(10), progress, emitter)

	next, err := svc.RecordOutcome(context.Background(), userID, domain.Outcome{
		WordID:     1,
		WasCorrect: true,
	})

	require.NoError(t, err, "a failed award never unwinds the schedule write")
	require.NotNil(t, next)

	stored, err := progress.Get(context.Background(), userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Interval)
}

func TestRecordOutcomeMasteredWordLapses(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	progress := newMockProgressStore()
	require.NoError(t, progress.Upsert(context.Background(), &domain.WordProgress{
		UserID:     userID,
		WordID:     2,
		Interval:   25,
		EaseFactor: 2.9,
		Mastered:   true,

		LastReviewedAt: time.Now().UTC().AddDate(0, 0, -25),
	}))

	svc := newTestService(newMockWordStore(10), progress, &mockEmitter{})

	next, err := svc.RecordOutcome(context.Background(), userID, domain.Outcome{
		WordID:     2,
		WasCorrect: false,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, next.Interval)
	assert.False(t, next.Mastered)
}

func TestResetProgress(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	progress := newMockProgressStore()
	require.NoError(t, progress.Upsert(context.Background(), &domain.WordProgress{
		UserID:     userID,
		WordID:     4,
		Interval:   25,
		EaseFactor: 3.0,
		Mastered:   true,
	}))

	svc := newTestService(newMockWordStore(10), progress, &mockEmitter{})

	require.NoError(t, svc.ResetProgress(context.Background(), userID, 4))

	stored, err := progress.Get(context.Background(), userID, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Interval)
	assert.InDelta(t, domain.DefaultEaseFactor, stored.EaseFactor, 1e-9)
	assert.False(t, stored.Mastered)
}

func TestResetProgressNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMockWordStore(10), newMockProgressStore(), &mockEmitter{})

	err := svc.ResetProgress(context.Background(), uuid.New(), 99)
	assert.ErrorIs(t, err, learning.ErrProgressNotFound)
}

// A whole-session walkthrough: start a run over a hundred-word corpus,
// answer every word correctly, and verify every schedule moved forward.
func TestFullSessionAllCorrect(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	progress := newMockProgressStore()
	emitter := &mockEmitter{}
	svc := newTestService(newMockWordStore(100), progress, emitter)

	sess, err := svc.StartSession(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 10, sess.Size())

	for _, entry := range sess.Entries {
		next, err := svc.RecordOutcome(context.Background(), userID, domain.Outcome{
			WordID:     entry.Word.ID,
			WasCorrect: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, next.Interval)
		assert.True(t, next.NextReviewAt.After(time.Now().UTC()))
	}

	assert.Len(t, emitter.emitted(), 10, "one experience award per correct answer")
}
