package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
)

// ResultService interface for assessment results
type ResultService interface {
	Create(ctx context.Context, result *domain.Result) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Result, error)
	History(ctx context.Context, userID uuid.UUID) (*domain.UserHistory, error)
}

// ResultHandler handles result submission and history endpoints
type ResultHandler struct {
	service ResultService
	logger  *slog.Logger
}

// NewResultHandler creates a new ResultHandler instance
func NewResultHandler(service ResultService, logger *slog.Logger) *ResultHandler {
	return &ResultHandler{
		service: service,
		logger:  logger,
	}
}

// CreateResultRequest is the body for result submission
type CreateResultRequest struct {
	Score          int                     `json:"score"`
	TotalQuestions int                     `json:"totalQuestions"`
	Topic          string                  `json:"topic"`
	Difficulty     string                  `json:"difficulty"`
	Questions      []domain.ResultQuestion `json:"questions"`
	UserAnswers    []string                `json:"userAnswers"`
}

// Create POST /api/results - store a finished attempt for the session user
func (h *ResultHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req CreateResultRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrMissingFields
	}

	result := &domain.Result{
		UserID:         userID,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Topic:          req.Topic,
		Difficulty:     req.Difficulty,
		Questions:      req.Questions,
		UserAnswers:    req.UserAnswers,
	}

	if err := h.service.Create(c.Context(), result); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"result":  result,
	})
}

// Get GET /api/results/:id - return one stored result
func (h *ResultHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrResultNotFound
	}

	result, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// History GET /api/results/user/:userId - attempts plus aggregates
func (h *ResultHandler) History(c *fiber.Ctx) error {
	sessionUserID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return domain.ErrUserNotFound
	}

	// A user reads their own history; admins read anyone's.
	if targetID != sessionUserID {
		if admin, ok := c.Locals(middleware.LocalIsAdmin).(bool); !ok || !admin {
			return domain.ErrForbidden
		}
	}

	history, err := h.service.History(c.Context(), targetID)
	if err != nil {
		return err
	}

	return c.JSON(history)
}
