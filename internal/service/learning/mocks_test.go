package learning_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/events"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// mockWordStore serves a fixed in-memory corpus in id order.
type mockWordStore struct {
	words []*domain.Word

	countErr error
	batchErr error
}

var _ store.WordStore = (*mockWordStore)(nil)

func newMockWordStore(n int) *mockWordStore {
	words := make([]*domain.Word, 0, n)
	for i := 1; i <= n; i++ {
		words = append(words, &domain.Word{
			ID:      int64(i),
			Text:    fmt.Sprintf("word-%d", i),
			Meaning: fmt.Sprintf("meaning-%d", i),
		})
	}
	return &mockWordStore{words: words}
}

func (m *mockWordStore) GetByID(_ context.Context, id int64) (*domain.Word, error) {
	for _, w := range m.words {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, store.ErrWordNotFound
}

func (m *mockWordStore) GetBatch(_ context.Context, limit, offset int) ([]*domain.Word, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	if offset >= len(m.words) {
		return []*domain.Word{}, nil
	}
	end := offset + limit
	if end > len(m.words) {
		end = len(m.words)
	}
	return m.words[offset:end], nil
}

func (m *mockWordStore) GetByPositions(_ context.Context, positions []int) ([]*domain.Word, error) {
	result := make([]*domain.Word, 0, len(positions))
	for _, pos := range positions {
		if pos >= 0 && pos < len(m.words) {
			result = append(result, m.words[pos])
		}
	}
	return result, nil
}

func (m *mockWordStore) Count(_ context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.words), nil
}

// mockProgressStore keeps scheduling state keyed by (user, word) in memory.
type mockProgressStore struct {
	mu    sync.Mutex
	state map[string]*domain.WordProgress

	upsertErr   error
	getErr      error
	upsertCalls int
}

var _ store.ProgressStore = (*mockProgressStore)(nil)

func newMockProgressStore() *mockProgressStore {
	return &mockProgressStore{state: make(map[string]*domain.WordProgress)}
}

func progressKey(userID uuid.UUID, wordID int64) string {
	return fmt.Sprintf("%s/%d", userID, wordID)
}

func (m *mockProgressStore) Get(
	_ context.Context,
	userID uuid.UUID,
	wordID int64,
) (*domain.WordProgress, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	progress, ok := m.state[progressKey(userID, wordID)]
	if !ok {
		return nil, store.ErrProgressNotFound
	}
	return progress, nil
}

func (m *mockProgressStore) GetForUser(
	_ context.Context,
	userID uuid.UUID,
	wordIDs []int64,
) (map[int64]*domain.WordProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make(map[int64]*domain.WordProgress)
	for _, id := range wordIDs {
		if progress, ok := m.state[progressKey(userID, id)]; ok {
			result[id] = progress
		}
	}
	return result, nil
}

func (m *mockProgressStore) Upsert(_ context.Context, progress *domain.WordProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.upsertCalls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.state[progressKey(progress.UserID, progress.WordID)] = progress
	return nil
}

func (m *mockProgressStore) Reset(_ context.Context, userID uuid.UUID, wordID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := progressKey(userID, wordID)
	existing, ok := m.state[key]
	if !ok {
		return store.ErrProgressNotFound
	}

	reset := *existing
	reset.Interval = 0
	reset.EaseFactor = domain.DefaultEaseFactor
	reset.Repetitions = 0
	reset.Mastered = false
	m.state[key] = &reset
	return nil
}

func (m *mockProgressStore) WithTx(_ *sql.Tx) store.ProgressStore {
	return m
}

// mockEmitter records emitted events instead of dispatching them.
type mockEmitter struct {
	mu      sync.Mutex
	events  []*events.ExperienceAwarded
	emitErr error
}

var _ events.Emitter = (*mockEmitter)(nil)

func (m *mockEmitter) RegisterHandler(_ events.Handler) {}

func (m *mockEmitter) EmitEvent(_ context.Context, event *events.ExperienceAwarded) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.emitErr
}

func (m *mockEmitter) emitted() []*events.ExperienceAwarded {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*events.ExperienceAwarded{}, m.events...)
}
