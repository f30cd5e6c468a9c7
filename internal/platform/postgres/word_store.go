// Package postgres provides PostgreSQL implementations of the persistence
// interfaces defined in internal/store. It owns the query text, the data
// mapping between rows and domain records, and the translation of driver
// errors to store sentinels.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/samber/lo"

	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// wordColumns is the shared select list for word rows.
const wordColumns = `id, text, meaning, part_of_speech, level,
	example_sentence, example_meaning, audio_url, phonetic`

// PostgresWordStore implements the store.WordStore interface using a
// PostgreSQL database as the storage backend. Words are read-only here; the
// content pipeline writes them.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the
// WordStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// GetByID implements store.WordStore.GetByID.
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) GetByID(ctx context.Context, id int64) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE id = $1
	`

	word, err := scanWord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found", slog.Int64("word_id", id))
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to get word by ID",
			slog.String("error", err.Error()),
			slog.Int64("word_id", id))
		return nil, MapError(err)
	}

	return word, nil
}

// GetBatch implements store.WordStore.GetBatch.
// Rows come back in stable id order; an empty result is valid.
func (s *PostgresWordStore) GetBatch(ctx context.Context, limit, offset int) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + wordColumns + `
		FROM words
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to query word batch",
			slog.String("error", err.Error()),
			slog.Int("limit", limit),
			slog.Int("offset", offset))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectWords(rows)
}

// GetByPositions implements store.WordStore.GetByPositions.
// Positions index the id-ordered corpus, matching the sampler's contract;
// positions beyond the corpus are skipped silently.
func (s *PostgresWordStore) GetByPositions(ctx context.Context, positions []int) ([]*domain.Word, error) {
	if len(positions) == 0 {
		return []*domain.Word{}, nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + wordColumns + `
		FROM (
			SELECT ` + wordColumns + `,
				row_number() OVER (ORDER BY id) - 1 AS position
			FROM words
		) ranked
		WHERE position = ANY($1)
		ORDER BY position
	`

	// pq-style int arrays are not needed; pgx accepts a slice directly.
	args := lo.Map(positions, func(p int, _ int) int64 { return int64(p) })

	rows, err := s.db.QueryContext(ctx, query, args)
	if err != nil {
		log.Error("failed to query words by positions",
			slog.String("error", err.Error()),
			slog.Int("position_count", len(positions)))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectWords(rows)
}

// Count implements store.WordStore.Count.
func (s *PostgresWordStore) Count(ctx context.Context) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM words`).Scan(&count)
	if err != nil {
		log.Error("failed to count words", slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	return count, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (*domain.Word, error) {
	var word domain.Word
	var audioURL, phonetic sql.NullString

	err := row.Scan(
		&word.ID,
		&word.Text,
		&word.Meaning,
		&word.PartOfSpeech,
		&word.Level,
		&word.ExampleSentence,
		&word.ExampleMeaning,
		&audioURL,
		&phonetic,
	)
	if err != nil {
		return nil, err
	}

	word.AudioURL = audioURL.String
	word.Phonetic = phonetic.String
	return &word, nil
}

func collectWords(rows *sql.Rows) ([]*domain.Word, error) {
	words := make([]*domain.Word, 0)
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, MapError(err)
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return words, nil
}
