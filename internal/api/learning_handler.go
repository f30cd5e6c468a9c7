// Package api provides HTTP handlers for the learning engine's exposed
// surface: daily words, session composition, answer recording, and the
// relearn reset.
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wordtrail/wordtrail-api/internal/api/shared"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/service/learning"
	"github.com/wordtrail/wordtrail-api/internal/session"
)

// WordResponse represents the response data for a vocabulary word.
type WordResponse struct {
	ID              int64  `json:"id"`
	Text            string `json:"text"`
	Meaning         string `json:"meaning"`
	PartOfSpeech    string `json:"part_of_speech"`
	Level           string `json:"level"`
	ExampleSentence string `json:"example_sentence"`
	ExampleMeaning  string `json:"example_meaning"`
	AudioURL        string `json:"audio_url,omitempty"`
	Phonetic        string `json:"phonetic,omitempty"`
}

// ProgressResponse represents the response data for scheduling state.
type ProgressResponse struct {
	WordID       int64     `json:"word_id"`
	Interval     int       `json:"interval"`
	EaseFactor   float64   `json:"ease_factor"`
	Repetitions  int       `json:"repetitions"`
	Mastered     bool      `json:"mastered"`
	NextReviewAt time.Time `json:"next_review_at"`
}

// SessionEntryResponse pairs a word with its scheduling state.
type SessionEntryResponse struct {
	Word     WordResponse     `json:"word"`
	Progress ProgressResponse `json:"progress"`
}

// SessionResponse represents a freshly composed learning session.
type SessionResponse struct {
	Entries []SessionEntryResponse `json:"entries"`
}

// RecordOutcomeRequest represents the request body for recording an answer.
type RecordOutcomeRequest struct {
	WordID     int64  `json:"word_id" validate:"required,gt=0"`
	WasCorrect bool   `json:"was_correct"`
	RawAnswer  string `json:"raw_answer"`
}

// LearningHandler handles learning-related HTTP requests.
type LearningHandler struct {
	service learning.Service
	logger  *slog.Logger
}

// NewLearningHandler creates a new LearningHandler.
func NewLearningHandler(service learning.Service, log *slog.Logger) *LearningHandler {
	if service == nil {
		panic("service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &LearningHandler{
		service: service,
		logger:  log.With(slog.String("component", "learning_handler")),
	}
}

// RegisterRoutes attaches the handler's routes to the given router.
func (h *LearningHandler) RegisterRoutes(r chi.Router) {
	r.Get("/daily", h.GetDailyWords)
	r.Post("/sessions", h.StartSession)
	r.Post("/answers", h.RecordOutcome)
	r.Post("/progress/{wordID}/reset", h.ResetProgress)
}

// GetDailyWords handles GET /daily requests.
// The optional count query parameter bounds the sample size.
func (h *LearningHandler) GetDailyWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 50 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid count parameter")
			return
		}
		count = parsed
	}

	words, err := h.service.DailyWords(r.Context(), time.Now(), count)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("daily words served", slog.Int("count", len(words)))
	shared.RespondWithJSON(w, r, http.StatusOK, wordsToResponse(words))
}

// StartSession handles POST /sessions requests.
// An empty corpus yields 204, a valid empty state for the client.
func (h *LearningHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	sess, err := h.service.StartSession(r.Context(), userID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		if status == http.StatusNoContent {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("session started",
		slog.String("user_id", userID.String()),
		slog.Int("size", sess.Size()))
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(sess))
}

// RecordOutcome handles POST /answers requests.
func (h *LearningHandler) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req RecordOutcomeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	outcome := domain.Outcome{
		WordID:     req.WordID,
		WasCorrect: req.WasCorrect,
		RawAnswer:  req.RawAnswer,
	}

	progress, err := h.service.RecordOutcome(r.Context(), userID, outcome)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("outcome recorded",
		slog.String("user_id", userID.String()),
		slog.Int64("word_id", req.WordID),
		slog.Bool("was_correct", req.WasCorrect))
	shared.RespondWithJSON(w, r, http.StatusOK, progressToResponse(progress))
}

// ResetProgress handles POST /progress/{wordID}/reset requests.
func (h *LearningHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	wordID, err := strconv.ParseInt(chi.URLParam(r, "wordID"), 10, 64)
	if err != nil || wordID <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID")
		return
	}

	if err := h.service.ResetProgress(r.Context(), userID, wordID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("progress reset requested",
		slog.String("user_id", userID.String()),
		slog.Int64("word_id", wordID))
	w.WriteHeader(http.StatusNoContent)
}

func wordToResponse(word *domain.Word) WordResponse {
	return WordResponse{
		ID:              word.ID,
		Text:            word.Text,
		Meaning:         word.Meaning,
		PartOfSpeech:    word.PartOfSpeech,
		Level:           word.Level,
		ExampleSentence: word.ExampleSentence,
		ExampleMeaning:  word.ExampleMeaning,
		AudioURL:        word.AudioURL,
		Phonetic:        word.Phonetic,
	}
}

func wordsToResponse(words []*domain.Word) []WordResponse {
	responses := make([]WordResponse, 0, len(words))
	for _, word := range words {
		responses = append(responses, wordToResponse(word))
	}
	return responses
}

func progressToResponse(progress *domain.WordProgress) ProgressResponse {
	return ProgressResponse{
		WordID:       progress.WordID,
		Interval:     progress.Interval,
		EaseFactor:   progress.EaseFactor,
		Repetitions:  progress.Repetitions,
		Mastered:     progress.Mastered,
		NextReviewAt: progress.NextReviewAt,
	}
}

func sessionToResponse(sess *session.Session) SessionResponse {
	entries := make([]SessionEntryResponse, 0, sess.Size())
	for _, entry := range sess.Entries {
		entries = append(entries, SessionEntryResponse{
			Word:     wordToResponse(entry.Word),
			Progress: progressToResponse(entry.Progress),
		})
	}
	return SessionResponse{Entries: entries}
}
