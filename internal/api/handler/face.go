package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
)

// FaceAuthService interface for the face auth service
type FaceAuthService interface {
	Enroll(ctx context.Context, userID uuid.UUID, descriptor domain.Descriptor) error
	Verify(ctx context.Context, query domain.Descriptor) (*domain.Profile, string, error)
}

// FaceHandler handles face enrollment and verification requests
type FaceHandler struct {
	service FaceAuthService
	logger  *slog.Logger
}

// NewFaceHandler creates a new FaceHandler instance
func NewFaceHandler(service FaceAuthService, logger *slog.Logger) *FaceHandler {
	return &FaceHandler{
		service: service,
		logger:  logger,
	}
}

// EnrollRequest is the body for face registration
type EnrollRequest struct {
	UserID     string            `json:"userId"`
	Descriptor domain.Descriptor `json:"faceDescriptor"`
}

// VerifyRequest is the body for face login
type VerifyRequest struct {
	Descriptor domain.Descriptor `json:"faceDescriptor"`
}

// VerifyResponse is the payload for a successful face login
type VerifyResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	User    *domain.Profile `json:"user"`
}

// Enroll POST /auth/face/register - register the session user's descriptor
func (h *FaceHandler) Enroll(c *fiber.Ctx) error {
	// 1. Extract session user (already authenticated by middleware)
	sessionUserID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	// 2. Parse body
	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrMissingFields
	}

	// 3. A userId in the body, when present, must be the session user.
	// Nobody enrolls a descriptor for somebody else.
	if req.UserID != "" {
		bodyUserID, err := uuid.Parse(req.UserID)
		if err != nil {
			return domain.ErrMissingFields
		}
		if bodyUserID != sessionUserID {
			return domain.ErrForbidden
		}
	}

	// 4. Call service to enroll
	if err := h.service.Enroll(c.Context(), sessionUserID, req.Descriptor); err != nil {
		return err
	}

	h.logger.Info("face enrolled", slog.String("user_id", sessionUserID.String()))

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Face registered successfully",
	})
}

// Verify POST /auth/face - face login, no prior session required
func (h *FaceHandler) Verify(c *fiber.Ctx) error {
	// 1. Parse body
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrMissingFields
	}

	// 2. Call service to verify
	profile, token, err := h.service.Verify(c.Context(), req.Descriptor)
	if err != nil {
		return err
	}

	// 3. Return session token and public profile only
	return c.JSON(VerifyResponse{
		Success: true,
		Token:   token,
		User:    profile,
	})
}
