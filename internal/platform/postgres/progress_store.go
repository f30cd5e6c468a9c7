package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// progressColumns is the shared select list for word_progress rows.
const progressColumns = `user_id, word_id, interval, ease_factor, repetitions,
	mastered, last_reviewed_at, next_review_at, created_at, updated_at`

// PostgresProgressStore implements the store.ProgressStore interface using a
// PostgreSQL database as the storage backend. Uniqueness on (user_id,
// word_id) is enforced by the schema; Upsert leans on it.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// Get implements store.ProgressStore.Get.
// Returns store.ErrProgressNotFound if no state exists for the pair.
func (s *PostgresProgressStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	wordID int64,
) (*domain.WordProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + progressColumns + `
		FROM word_progress
		WHERE user_id = $1 AND word_id = $2
	`

	progress, err := scanProgress(s.db.QueryRowContext(ctx, query, userID, wordID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word progress not found",
				slog.String("user_id", userID.String()),
				slog.Int64("word_id", wordID))
			return nil, store.ErrProgressNotFound
		}
		log.Error("failed to get word progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("word_id", wordID))
		return nil, MapError(err)
	}

	return progress, nil
}

// GetForUser implements store.ProgressStore.GetForUser.
// Words without recorded state are absent from the returned map.
func (s *PostgresProgressStore) GetForUser(
	ctx context.Context,
	userID uuid.UUID,
	wordIDs []int64,
) (map[int64]*domain.WordProgress, error) {
	states := make(map[int64]*domain.WordProgress, len(wordIDs))
	if len(wordIDs) == 0 {
		return states, nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + progressColumns + `
		FROM word_progress
		WHERE user_id = $1 AND word_id = ANY($2)
	`

	rows, err := s.db.QueryContext(ctx, query, userID, wordIDs)
	if err != nil {
		log.Error("failed to query word progress batch",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("word_count", len(wordIDs)))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		progress, err := scanProgress(rows)
		if err != nil {
			return nil, MapError(err)
		}
		states[progress.WordID] = progress
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return states, nil
}

// Upsert implements store.ProgressStore.Upsert.
// It inserts on the first recorded answer and updates thereafter, keyed by
// the unique (user_id, word_id) pair. Domain validation runs first.
func (s *PostgresProgressStore) Upsert(ctx context.Context, progress *domain.WordProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("word progress validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.Int64("word_id", progress.WordID))
		return err
	}

	query := `
		INSERT INTO word_progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, word_id) DO UPDATE SET
			interval = EXCLUDED.interval,
			ease_factor = EXCLUDED.ease_factor,
			repetitions = EXCLUDED.repetitions,
			mastered = EXCLUDED.mastered,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			next_review_at = EXCLUDED.next_review_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		progress.UserID,
		progress.WordID,
		progress.Interval,
		progress.EaseFactor,
		progress.Repetitions,
		progress.Mastered,
		nullableTime(progress.LastReviewedAt),
		progress.NextReviewAt,
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert word progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.Int64("word_id", progress.WordID))
		return MapError(err)
	}

	log.Debug("word progress upserted",
		slog.String("user_id", progress.UserID.String()),
		slog.Int64("word_id", progress.WordID),
		slog.Int("interval", progress.Interval),
		slog.Float64("ease_factor", progress.EaseFactor))
	return nil
}

// Reset implements store.ProgressStore.Reset.
// Returns store.ErrProgressNotFound if no state exists for the pair.
func (s *PostgresProgressStore) Reset(ctx context.Context, userID uuid.UUID, wordID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	query := `
		UPDATE word_progress
		SET interval = 0,
			ease_factor = $3,
			repetitions = 0,
			mastered = FALSE,
			next_review_at = $4,
			updated_at = $4
		WHERE user_id = $1 AND word_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, userID, wordID, domain.DefaultEaseFactor, now)
	if err != nil {
		log.Error("failed to reset word progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("word_id", wordID))
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrProgressNotFound
	}

	log.Info("word progress reset to defaults",
		slog.String("user_id", userID.String()),
		slog.Int64("word_id", wordID))
	return nil
}

// WithTx implements store.ProgressStore.WithTx.
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanProgress(row rowScanner) (*domain.WordProgress, error) {
	var progress domain.WordProgress
	var lastReviewedAt sql.NullTime

	err := row.Scan(
		&progress.UserID,
		&progress.WordID,
		&progress.Interval,
		&progress.EaseFactor,
		&progress.Repetitions,
		&progress.Mastered,
		&lastReviewedAt,
		&progress.NextReviewAt,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastReviewedAt.Valid {
		progress.LastReviewedAt = lastReviewedAt.Time
	}
	return &progress, nil
}

// nullableTime maps the zero time to NULL so "never reviewed" stays explicit
// in the schema.
func nullableTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
