package learning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/domain/daily"
	"github.com/wordtrail/wordtrail-api/internal/domain/srs"
	"github.com/wordtrail/wordtrail-api/internal/events"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/session"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// progressFetchChunk bounds how many word IDs go into one progress read.
// Session composition fans these reads out concurrently and joins the maps;
// ordering between the reads is irrelevant.
const progressFetchChunk = 4

// candidateMultiplier controls how many words are fetched as session
// candidates relative to the session size, leaving headroom for dedup.
const candidateMultiplier = 2

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// Config tunes a learning service instance.
type Config struct {
	SessionSize    int
	DailyWordCount int
}

// serviceImpl implements the Service interface.
type serviceImpl struct {
	words      store.WordStore
	progress   store.ProgressStore
	srsService srs.Service
	emitter    events.Emitter
	cfg        Config
	logger     *slog.Logger

	dailyMu    sync.Mutex
	dailySeed  int64
	dailyCount int
	dailyWords []*domain.Word
}

// NewService creates a new learning Service implementation.
func NewService(
	words store.WordStore,
	progress store.ProgressStore,
	srsService srs.Service,
	emitter events.Emitter,
	cfg Config,
	log *slog.Logger,
) Service {
	if words == nil {
		panic("words store cannot be nil")
	}
	if progress == nil {
		panic("progress store cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if emitter == nil {
		panic("emitter cannot be nil")
	}

	if cfg.SessionSize <= 0 {
		cfg.SessionSize = session.DefaultSize
	}
	if cfg.DailyWordCount <= 0 {
		cfg.DailyWordCount = 5
	}

	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		words:      words,
		progress:   progress,
		srsService: srsService,
		emitter:    emitter,
		cfg:        cfg,
		logger:     log.With(slog.String("component", "learning_service")),
	}
}

// DailyWords implements Service.DailyWords.
// The sample is cached per seed; the midnight scheduler and the first
// request of a new day both repopulate it.
func (s *serviceImpl) DailyWords(
	ctx context.Context,
	referenceDate time.Time,
	count int,
) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if count <= 0 {
		count = s.cfg.DailyWordCount
	}
	seed := daily.SeedForDate(referenceDate)

	s.dailyMu.Lock()
	// Keyed on the requested count, not the cached length: a corpus
	// smaller than count legitimately yields fewer words.
	if s.dailySeed == seed && s.dailyCount == count {
		cached := s.dailyWords
		s.dailyMu.Unlock()
		return cached, nil
	}
	s.dailyMu.Unlock()

	corpusSize, err := s.words.Count(ctx)
	if err != nil {
		log.Error("failed to size corpus for daily sample",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to size corpus: %w", err)
	}

	if corpusSize == 0 {
		log.Debug("empty corpus, daily sample is empty")
		return []*domain.Word{}, nil
	}

	positions := daily.Sample(seed, corpusSize, count)
	words, err := s.words.GetByPositions(ctx, positions)
	if err != nil {
		log.Error("failed to fetch daily sample words",
			slog.String("error", err.Error()),
			slog.Int64("seed", seed))
		return nil, fmt.Errorf("failed to fetch daily words: %w", err)
	}

	s.dailyMu.Lock()
	s.dailySeed = seed
	s.dailyCount = count
	s.dailyWords = words
	s.dailyMu.Unlock()

	log.Debug("daily sample computed",
		slog.Int64("seed", seed),
		slog.Int("corpus_size", corpusSize),
		slog.Int("word_count", len(words)))
	return words, nil
}

// StartSession implements Service.StartSession.
func (s *serviceImpl) StartSession(
	ctx context.Context,
	userID uuid.UUID,
) (*session.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	candidates, err := s.words.GetBatch(ctx, s.cfg.SessionSize*candidateMultiplier, 0)
	if err != nil {
		log.Error("failed to fetch session candidates",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	if len(candidates) == 0 {
		log.Debug("no candidate words for session",
			slog.String("user_id", userID.String()))
		return nil, ErrNoWordsAvailable
	}

	wordIDs := lo.Map(candidates, func(w *domain.Word, _ int) int64 { return w.ID })
	states, err := s.fetchProgressFanOut(ctx, userID, wordIDs)
	if err != nil {
		log.Error("failed to fetch progress for session",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to fetch progress: %w", err)
	}

	sess, err := session.Compose(userID, candidates, states, s.cfg.SessionSize)
	if err != nil {
		return nil, fmt.Errorf("failed to compose session: %w", err)
	}

	log.Debug("session composed",
		slog.String("user_id", userID.String()),
		slog.Int("size", sess.Size()))
	return sess, nil
}

// fetchProgressFanOut splits the word IDs into chunks and reads the user's
// scheduling states concurrently, joining the partial maps afterwards. The
// join is pure: no chunk overlaps another, so ordering doesn't matter.
func (s *serviceImpl) fetchProgressFanOut(
	ctx context.Context,
	userID uuid.UUID,
	wordIDs []int64,
) (map[int64]*domain.WordProgress, error) {
	chunks := lo.Chunk(wordIDs, progressFetchChunk)

	var wg sync.WaitGroup
	partials := make([]map[int64]*domain.WordProgress, len(chunks))
	errs := make([]error, len(chunks))

	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, ids []int64) {
			defer wg.Done()
			partials[i], errs[i] = s.progress.GetForUser(ctx, userID, ids)
		}(i, chunk)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	states := make(map[int64]*domain.WordProgress, len(wordIDs))
	for _, partial := range partials {
		for id, progress := range partial {
			states[id] = progress
		}
	}
	return states, nil
}

// RecordOutcome implements Service.RecordOutcome.
func (s *serviceImpl) RecordOutcome(
	ctx context.Context,
	userID uuid.UUID,
	outcome domain.Outcome,
) (*domain.WordProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("recording outcome",
		slog.String("user_id", userID.String()),
		slog.Int64("word_id", outcome.WordID),
		slog.Bool("was_correct", outcome.WasCorrect))

	if _, err := s.words.GetByID(ctx, outcome.WordID); err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("failed to look up word: %w", err)
	}

	prior, err := s.progress.Get(ctx, userID, outcome.WordID)
	if err != nil {
		if !errors.Is(err, store.ErrProgressNotFound) {
			return nil, fmt.Errorf("failed to load progress: %w", err)
		}
		// First answer for this pair: state is created now, not earlier.
		prior, err = domain.NewWordProgress(userID, outcome.WordID)
		if err != nil {
			return nil, fmt.Errorf("failed to create progress: %w", err)
		}
	}

	next, err := s.srsService.Review(prior, outcome.WasCorrect, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to compute next review: %w", err)
	}

	if err := s.progress.Upsert(ctx, next); err != nil {
		log.Error("failed to persist updated progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("word_id", outcome.WordID))
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	// The experience award is independent of the schedule write: it fires
	// only on correct answers and its failure never unwinds the upsert.
	if outcome.WasCorrect {
		if err := s.emitter.EmitEvent(ctx, events.NewExperienceAwarded(userID, outcome.WordID)); err != nil {
			log.Warn("experience award failed, schedule update kept",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()),
				slog.Int64("word_id", outcome.WordID))
		}
	}

	log.Debug("outcome recorded",
		slog.String("user_id", userID.String()),
		slog.Int64("word_id", outcome.WordID),
		slog.Int("interval", next.Interval),
		slog.Float64("ease_factor", next.EaseFactor),
		slog.Bool("mastered", next.Mastered),
		slog.Time("next_review_at", next.NextReviewAt))
	return next, nil
}

// ResetProgress implements Service.ResetProgress.
func (s *serviceImpl) ResetProgress(ctx context.Context, userID uuid.UUID, wordID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.progress.Reset(ctx, userID, wordID); err != nil {
		if errors.Is(err, store.ErrProgressNotFound) {
			return ErrProgressNotFound
		}
		log.Error("failed to reset progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("word_id", wordID))
		return fmt.Errorf("failed to reset progress: %w", err)
	}

	log.Info("progress reset",
		slog.String("user_id", userID.String()),
		slog.Int64("word_id", wordID))
	return nil
}
