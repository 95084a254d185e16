package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/ai"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/repository"
)

// questionCacheTTL bounds how long a generated set is reused before a fresh
// LLM call is made for the same topic/difficulty/count.
const questionCacheTTL = 30 * time.Minute

// QuestionGenerator produces multiple-choice questions for a topic.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, topic, difficulty string, count int) ([]ai.GeneratedQuestion, error)
}

// QuestionCache stores generated question sets with a TTL.
type QuestionCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// QuestionService owns assessment configuration and question generation.
type QuestionService struct {
	questions repository.QuestionRepositoryInterface
	configs   repository.AssessmentConfigRepositoryInterface
	generator QuestionGenerator
	cache     QuestionCache
	logger    *slog.Logger
}

func NewQuestionService(
	questions repository.QuestionRepositoryInterface,
	configs repository.AssessmentConfigRepositoryInterface,
	generator QuestionGenerator,
	cache QuestionCache,
	logger *slog.Logger,
) *QuestionService {
	return &QuestionService{
		questions: questions,
		configs:   configs,
		generator: generator,
		cache:     cache,
		logger:    logger,
	}
}

// SetConfig validates and stores the user's assessment setup.
func (s *QuestionService) SetConfig(ctx context.Context, cfg *domain.AssessmentConfig) error {
	cfg.Topic = strings.TrimSpace(cfg.Topic)
	cfg.Difficulty = strings.ToLower(strings.TrimSpace(cfg.Difficulty))

	if cfg.Topic == "" || cfg.Difficulty == "" || cfg.QuestionCount == 0 {
		return domain.ErrMissingFields
	}
	if cfg.QuestionCount < 0 || cfg.QuestionCount > domain.MaxQuestionCount {
		return domain.ErrValidationFailed.WithError(fmt.Errorf("question count %d out of range", cfg.QuestionCount))
	}
	if !domain.IsValidDifficulty(cfg.Difficulty) {
		return domain.ErrValidationFailed.WithError(fmt.Errorf("unknown difficulty %q", cfg.Difficulty))
	}

	return s.configs.Set(ctx, cfg)
}

// GetConfig returns the user's current assessment setup.
func (s *QuestionService) GetConfig(ctx context.Context, userID uuid.UUID) (*domain.AssessmentConfig, error) {
	return s.configs.Get(ctx, userID)
}

// Generate returns a fresh question set for the given parameters. Sets are
// cached, and every generated question is persisted best-effort into the bank
// (duplicates skipped).
func (s *QuestionService) Generate(ctx context.Context, topic, difficulty string, count int) ([]ai.GeneratedQuestion, error) {
	topic = strings.TrimSpace(topic)
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))

	if topic == "" || difficulty == "" || count == 0 {
		return nil, domain.ErrMissingFields
	}
	if count < 0 || count > domain.MaxQuestionCount {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("question count %d out of range", count))
	}

	cacheKey := fmt.Sprintf("questions:%s:%s:%d", topic, difficulty, count)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var questions []ai.GeneratedQuestion
			if err := json.Unmarshal(cached, &questions); err == nil {
				return questions, nil
			}
		}
	}

	questions, err := s.generator.GenerateQuestions(ctx, topic, difficulty, count)
	if err != nil {
		return nil, domain.ErrGenerationFailed.WithError(err)
	}

	s.storeGenerated(ctx, topic, difficulty, questions)

	if s.cache != nil {
		if payload, err := json.Marshal(questions); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, questionCacheTTL); err != nil {
				s.logger.Warn("failed to cache question set",
					slog.String("key", cacheKey),
					slog.Any("error", err),
				)
			}
		}
	}

	return questions, nil
}

// storeGenerated persists questions into the bank. Failures are logged, never
// surfaced: the set already exists in memory and the request can proceed.
func (s *QuestionService) storeGenerated(ctx context.Context, topic, difficulty string, questions []ai.GeneratedQuestion) {
	for _, q := range questions {
		question := &domain.Question{
			Topic:      topic,
			Difficulty: difficulty,
			Question:   q.Question,
			Answer:     q.CorrectAnswer,
			Options:    q.Options,
		}
		if err := s.questions.Create(ctx, question); err != nil {
			if errors.Is(err, domain.ErrQuestionExists) {
				continue
			}
			s.logger.Warn("failed to store generated question",
				slog.String("topic", topic),
				slog.Any("error", err),
			)
		}
	}
}

// AddQuestions bulk-inserts pre-written questions (admin path).
func (s *QuestionService) AddQuestions(ctx context.Context, topic, difficulty string, questions []ai.GeneratedQuestion) error {
	topic = strings.TrimSpace(topic)
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))

	if topic == "" || difficulty == "" || len(questions) == 0 {
		return domain.ErrMissingFields
	}

	for _, q := range questions {
		question := &domain.Question{
			Topic:      topic,
			Difficulty: difficulty,
			Question:   q.Question,
			Answer:     q.CorrectAnswer,
			Options:    q.Options,
		}
		if err := s.questions.Create(ctx, question); err != nil {
			if errors.Is(err, domain.ErrQuestionExists) {
				continue
			}
			return err
		}
	}

	return nil
}
