package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/wordtrail/wordtrail-api/internal/service/learning"
)

// dailyScheduler warms the daily-words cache right after midnight so the
// first dashboard request of the day doesn't pay for the sample computation.
type dailyScheduler struct {
	scheduler *gocron.Scheduler
	service   learning.Service
	wordCount int
	logger    *slog.Logger
}

func newDailyScheduler(service learning.Service, wordCount int, log *slog.Logger) *dailyScheduler {
	return &dailyScheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		wordCount: wordCount,
		logger:    log.With(slog.String("component", "daily_scheduler")),
	}
}

// Start begins running the warm-up job in the background.
func (s *dailyScheduler) Start() {
	_, err := s.scheduler.Every(1).Day().At("00:00").Do(s.warmDailyWords)
	if err != nil {
		s.logger.Error("failed to schedule daily warm-up",
			slog.String("error", err.Error()))
		return
	}

	s.scheduler.StartAsync()

	// Warm immediately too; a restart mid-day should not leave the cache
	// cold until the next midnight.
	go s.warmDailyWords()
}

// Stop terminates the scheduled job.
func (s *dailyScheduler) Stop() {
	s.scheduler.Stop()
}

func (s *dailyScheduler) warmDailyWords() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	words, err := s.service.DailyWords(ctx, time.Now(), s.wordCount)
	if err != nil {
		s.logger.Warn("daily words warm-up failed",
			slog.String("error", err.Error()))
		return
	}

	s.logger.Info("daily words cache warmed", slog.Int("count", len(words)))
}
