package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/ai"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
)

// QuestionService interface for assessment config and question generation
type QuestionService interface {
	SetConfig(ctx context.Context, cfg *domain.AssessmentConfig) error
	GetConfig(ctx context.Context, userID uuid.UUID) (*domain.AssessmentConfig, error)
	Generate(ctx context.Context, topic, difficulty string, count int) ([]ai.GeneratedQuestion, error)
	AddQuestions(ctx context.Context, topic, difficulty string, questions []ai.GeneratedQuestion) error
}

// QuestionHandler handles assessment setup and question endpoints
type QuestionHandler struct {
	service QuestionService
	logger  *slog.Logger
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service QuestionService, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{
		service: service,
		logger:  logger,
	}
}

// AssessmentRequest is the body for assessment configuration
type AssessmentRequest struct {
	Topic         string `json:"topic"`
	QuestionCount int    `json:"qnCount"`
	Difficulty    string `json:"difficulty"`
}

// AddQuestionsRequest is the body for bulk question insertion (admin)
type AddQuestionsRequest struct {
	Topic      string                 `json:"topic"`
	Difficulty string                 `json:"difficulty"`
	Questions  []ai.GeneratedQuestion `json:"questions"`
}

// SetAssessment POST /api/assessments - store the caller's assessment setup
func (h *QuestionHandler) SetAssessment(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req AssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrMissingFields
	}

	cfg := &domain.AssessmentConfig{
		UserID:        userID,
		Topic:         req.Topic,
		QuestionCount: req.QuestionCount,
		Difficulty:    req.Difficulty,
	}

	if err := h.service.SetConfig(c.Context(), cfg); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"config":  cfg,
	})
}

// GetAssessment GET /api/assessments - return the caller's assessment setup
func (h *QuestionHandler) GetAssessment(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	cfg, err := h.service.GetConfig(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(cfg)
}

// Generate GET /api/questions?topic=&difficulty=&count= - generate a question set
func (h *QuestionHandler) Generate(c *fiber.Ctx) error {
	topic := c.Query("topic")
	difficulty := c.Query("difficulty")
	count := c.QueryInt("count")

	questions, err := h.service.Generate(c.Context(), topic, difficulty, count)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"questions": questions,
	})
}

// AddQuestions POST /api/questions - bulk insert pre-written questions (admin)
func (h *QuestionHandler) AddQuestions(c *fiber.Ctx) error {
	var req AddQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrMissingFields
	}

	if err := h.service.AddQuestions(c.Context(), req.Topic, req.Difficulty, req.Questions); err != nil {
		return err
	}

	h.logger.Info("questions added",
		slog.String("topic", req.Topic),
		slog.Int("count", len(req.Questions)),
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"added":   len(req.Questions),
	})
}
