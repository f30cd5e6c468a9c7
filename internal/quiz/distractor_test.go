package quiz_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/quiz"
)

func makePool(n int) []*domain.Word {
	pool := make([]*domain.Word, 0, n)
	for i := 1; i <= n; i++ {
		pool = append(pool, &domain.Word{
			ID:      int64(i),
			Text:    fmt.Sprintf("word-%d", i),
			Meaning: fmt.Sprintf("meaning-%d", i),
		})
	}
	return pool
}

func TestDistractorsExcludeTarget(t *testing.T) {
	t.Parallel()

	pool := makePool(20)
	target := pool[4]

	// The shuffle is non-deterministic, so sample repeatedly.
	for i := 0; i < 50; i++ {
		distractors := quiz.Distractors(target, pool, 3)
		require.Len(t, distractors, 3)

		for _, d := range distractors {
			assert.NotEqual(t, target.ID, d.ID, "target leaked into its own distractors")
		}
	}
}

func TestDistractorsCount(t *testing.T) {
	t.Parallel()

	pool := makePool(10)
	target := pool[0]

	testCases := []struct {
		name     string
		k        int
		expected int
	}{
		{"requested count available", 3, 3},
		{"zero falls back to default", 0, quiz.DefaultDistractorCount},
		{"negative falls back to default", -1, quiz.DefaultDistractorCount},
		{"more than pool yields whole filtered pool", 50, 9},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, quiz.Distractors(target, pool, tc.k), tc.expected)
		})
	}
}

func TestDistractorsSmallPool(t *testing.T) {
	t.Parallel()

	pool := makePool(3)
	target := pool[1]

	distractors := quiz.Distractors(target, pool, 3)
	assert.Len(t, distractors, 2, "a small pool yields fewer distractors, not an error")

	onlyTarget := []*domain.Word{target}
	assert.Empty(t, quiz.Distractors(target, onlyTarget, 3))
}

func TestDistractorsDistinct(t *testing.T) {
	t.Parallel()

	pool := makePool(15)
	distractors := quiz.Distractors(pool[0], pool, 5)

	seen := make(map[int64]struct{})
	for _, d := range distractors {
		_, dup := seen[d.ID]
		assert.False(t, dup, "distractor %d repeated", d.ID)
		seen[d.ID] = struct{}{}
	}
}

func TestNewQuestion(t *testing.T) {
	t.Parallel()

	pool := makePool(20)
	target := pool[7]

	q := quiz.NewQuestion(target, pool)

	require.Len(t, q.Options, quiz.DefaultDistractorCount+1)

	targetCount := 0
	for _, opt := range q.Options {
		if opt.ID == target.ID {
			targetCount++
		}
	}
	assert.Equal(t, 1, targetCount, "the target appears exactly once among the options")
}

func TestQuestionOptionOrderIsStable(t *testing.T) {
	t.Parallel()

	pool := makePool(20)
	q := quiz.NewQuestion(pool[0], pool)

	first := make([]int64, 0, len(q.Options))
	for _, opt := range q.Options {
		first = append(first, opt.ID)
	}

	// Re-reading the options must never reshuffle them.
	for i := 0; i < 10; i++ {
		for j, opt := range q.Options {
			assert.Equal(t, first[j], opt.ID)
		}
	}
}

func TestQuestionIsCorrect(t *testing.T) {
	t.Parallel()

	pool := makePool(10)
	target := pool[2]
	q := quiz.NewQuestion(target, pool)

	assert.True(t, q.IsCorrect(target.ID))
	assert.False(t, q.IsCorrect(target.ID+1))
}

func TestQuestionOptionAt(t *testing.T) {
	t.Parallel()

	pool := makePool(10)
	q := quiz.NewQuestion(pool[0], pool)

	require.NotNil(t, q.OptionAt(0))
	assert.Equal(t, q.Options[0].ID, q.OptionAt(0).ID)
	assert.Nil(t, q.OptionAt(-1))
	assert.Nil(t, q.OptionAt(len(q.Options)))
}
