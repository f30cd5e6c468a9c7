package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// PostgresExperienceStore implements the store.ExperienceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresExperienceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresExperienceStore creates a new PostgreSQL implementation of the
// ExperienceStore interface. If logger is nil, a default logger will be
// used.
func NewPostgresExperienceStore(db store.DBTX, logger *slog.Logger) *PostgresExperienceStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresExperienceStore{
		db:     db,
		logger: logger.With(slog.String("component", "experience_store")),
	}
}

// Ensure PostgresExperienceStore implements store.ExperienceStore interface
var _ store.ExperienceStore = (*PostgresExperienceStore)(nil)

// Increment implements store.ExperienceStore.Increment.
// The counter row is created on the first award.
func (s *PostgresExperienceStore) Increment(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO user_experience (user_id, points, updated_at)
		VALUES ($1, 1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			points = user_experience.points + 1,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, userID, time.Now().UTC())
	if err != nil {
		log.Error("failed to increment experience",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}

	log.Debug("experience incremented", slog.String("user_id", userID.String()))
	return nil
}
