package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/auth"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
)

// UserService interface for account registration and logins
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.Profile, string, error)
	LoginWithGoogle(ctx context.Context, gp *auth.GoogleProfile) (*domain.Profile, string, error)
	Profile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

// GoogleOAuth interface for the Google login flow
type GoogleOAuth interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.GoogleProfile, error)
}

// AuthHandler handles account and session endpoints
type AuthHandler struct {
	users       UserService
	google      GoogleOAuth
	frontendURL string
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users UserService, google GoogleOAuth, frontendURL string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:       users,
		google:      google,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// RegisterRequest is the body for account creation
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for password login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is the payload for a successful login
type SessionResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	User    *domain.Profile `json:"user"`
}

// Register POST /auth/register - create a password account
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrMissingFields
	}

	user, err := h.users.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	h.logger.Info("user registered", slog.String("user_id", user.ID.String()))

	profile := user.Profile()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    profile,
	})
}

// Login POST /auth/login - password login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrMissingFields
	}

	profile, token, err := h.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(SessionResponse{
		Success: true,
		Token:   token,
		User:    profile,
	})
}

// GoogleRedirect GET /auth/google - start the OAuth flow
func (h *AuthHandler) GoogleRedirect(c *fiber.Ctx) error {
	state, err := randomState()
	if err != nil {
		return domain.ErrInternal.WithError(err)
	}

	// State round-trips through a short-lived cookie for CSRF protection.
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    state,
		MaxAge:   300,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect(h.google.AuthURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback GET /auth/google/callback - finish the OAuth flow
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	state := c.Query("state")
	if state == "" || state != c.Cookies("oauth_state") {
		return domain.ErrUnauthorized
	}
	c.ClearCookie("oauth_state")

	code := c.Query("code")
	if code == "" {
		return domain.ErrBadRequest
	}

	gp, err := h.google.Exchange(c.Context(), code)
	if err != nil {
		h.logger.Warn("google code exchange failed", slog.Any("error", err))
		return domain.ErrUnauthorized
	}

	_, token, err := h.users.LoginWithGoogle(c.Context(), gp)
	if err != nil {
		return err
	}

	// The SPA picks the token up from the redirect fragment.
	return c.Redirect(h.frontendURL+"/auth/callback#token="+token, fiber.StatusTemporaryRedirect)
}

// Status GET /auth/status - report the current session
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.users.Profile(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"isAuthenticated": true,
		"user":            profile,
	})
}

// Logout POST /auth/logout - sessions are stateless, the client discards the token
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

// randomState generates an unguessable OAuth state parameter
func randomState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
