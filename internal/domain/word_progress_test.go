package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

func TestNewWordProgress(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	progress, err := domain.NewWordProgress(userID, 42)
	require.NoError(t, err)

	assert.Equal(t, userID, progress.UserID)
	assert.Equal(t, int64(42), progress.WordID)
	assert.Equal(t, 0, progress.Interval)
	assert.InDelta(t, domain.DefaultEaseFactor, progress.EaseFactor, 1e-9)
	assert.Equal(t, 0, progress.Repetitions)
	assert.False(t, progress.Mastered)
	assert.True(t, progress.LastReviewedAt.IsZero())
	assert.False(t, progress.NextReviewAt.After(time.Now().UTC()), "new words are due immediately")
	assert.True(t, progress.IsNew())
}

func TestNewWordProgressInvalidInput(t *testing.T) {
	t.Parallel()

	_, err := domain.NewWordProgress(uuid.Nil, 42)
	assert.ErrorIs(t, err, domain.ErrEmptyProgressUserID)

	_, err = domain.NewWordProgress(uuid.New(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidProgressWord)
}

func TestWordProgressValidate(t *testing.T) {
	t.Parallel()

	valid := func() *domain.WordProgress {
		return &domain.WordProgress{
			UserID:     uuid.New(),
			WordID:     1,
			Interval:   3,
			EaseFactor: 2.5,
		}
	}

	testCases := []struct {
		name        string
		mutate      func(*domain.WordProgress)
		expectedErr error
	}{
		{
			name:        "valid progress",
			mutate:      func(p *domain.WordProgress) {},
			expectedErr: nil,
		},
		{
			name:        "nil user ID",
			mutate:      func(p *domain.WordProgress) { p.UserID = uuid.Nil },
			expectedErr: domain.ErrEmptyProgressUserID,
		},
		{
			name:        "non-positive word ID",
			mutate:      func(p *domain.WordProgress) { p.WordID = 0 },
			expectedErr: domain.ErrInvalidProgressWord,
		},
		{
			name:        "negative interval",
			mutate:      func(p *domain.WordProgress) { p.Interval = -1 },
			expectedErr: domain.ErrInvalidInterval,
		},
		{
			name:        "ease factor at or below 1.0",
			mutate:      func(p *domain.WordProgress) { p.EaseFactor = 1.0 },
			expectedErr: domain.ErrInvalidEaseFactor,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			progress := valid()
			tc.mutate(progress)

			err := progress.Validate()
			if tc.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}

func TestWordProgressIsNew(t *testing.T) {
	t.Parallel()

	progress := &domain.WordProgress{}
	assert.True(t, progress.IsNew())

	progress.LastReviewedAt = time.Now().UTC()
	assert.False(t, progress.IsNew())
}
