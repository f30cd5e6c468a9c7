// Package main implements the entry point for the WordTrail API server,
// which drives the spaced-repetition learning engine behind the vocabulary
// app: daily word sampling, learning sessions, and per-answer scheduling.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/wordtrail/wordtrail-api/internal/config"
	"github.com/wordtrail/wordtrail-api/internal/domain/srs"
	"github.com/wordtrail/wordtrail-api/internal/events"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/platform/postgres"
	"github.com/wordtrail/wordtrail-api/internal/service/learning"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.run(ctx); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// application bundles the long-lived dependencies wired at startup.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	db        *sql.DB
	service   learning.Service
	scheduler *dailyScheduler
}

// initializeApp loads configuration and sets up application components:
// logging, the database connection, migrations, stores, the SRS engine, and
// the learning service.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"session_size", cfg.Learning.SessionSize,
		"daily_word_count", cfg.Learning.DailyWordCount)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		_ = db.Close()
		return nil, err
	}

	wordStore := postgres.NewPostgresWordStore(db, appLogger)
	progressStore := postgres.NewPostgresProgressStore(db, appLogger)
	experienceStore := postgres.NewPostgresExperienceStore(db, appLogger)

	emitter := events.NewInMemoryEmitter(appLogger)
	emitter.RegisterHandler(events.NewStoreExperienceHandler(experienceStore, appLogger))

	service := learning.NewService(
		wordStore,
		progressStore,
		srs.NewDefaultService(),
		emitter,
		learning.Config{
			SessionSize:    cfg.Learning.SessionSize,
			DailyWordCount: cfg.Learning.DailyWordCount,
		},
		appLogger,
	)

	return &application{
		config:    cfg,
		logger:    appLogger,
		db:        db,
		service:   service,
		scheduler: newDailyScheduler(service, cfg.Learning.DailyWordCount, appLogger),
	}, nil
}

// setupDatabase establishes a connection to the database and configures the
// connection pool.
func setupDatabase(cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established")
	return db, nil
}

func (app *application) close() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}
