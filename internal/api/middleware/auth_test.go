package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/auth"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
)

func newAuthApp(tokens TokenValidator) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if appErr, ok := err.(*domain.AppError); ok {
				return c.Status(appErr.StatusCode).JSON(appErr)
			}
			return c.Status(500).SendString(err.Error())
		},
	})
	app.Use(Auth(tokens))
	app.Get("/test", func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"user_id": userID})
	})
	return app
}

func TestAuth(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "quizzo-test", time.Hour)
	userID := uuid.New()

	validToken, err := jwtService.GenerateToken(userID, "alice@example.com", false)
	require.NoError(t, err)

	otherService := auth.NewJWTService("wrong-secret", "quizzo-test", time.Hour)
	forgedToken, err := otherService.GenerateToken(userID, "alice@example.com", false)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "valid session token",
			authHeader:     "Bearer " + validToken,
			expectedStatus: 200,
		},
		{
			name:           "missing Authorization header",
			authHeader:     "",
			expectedStatus: 401,
		},
		{
			name:           "token signed with another key",
			authHeader:     "Bearer " + forgedToken,
			expectedStatus: 401,
		},
		{
			name:           "invalid Bearer format",
			authHeader:     "Basic abc123",
			expectedStatus: 401,
		},
		{
			name:           "empty Bearer token",
			authHeader:     "Bearer ",
			expectedStatus: 401,
		},
		{
			name:           "garbage token",
			authHeader:     "Bearer not-a-jwt",
			expectedStatus: 401,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthApp(jwtService)

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "quizzo-test", time.Hour)

	adminToken, err := jwtService.GenerateToken(uuid.New(), "admin@example.com", true)
	require.NoError(t, err)
	userToken, err := jwtService.GenerateToken(uuid.New(), "alice@example.com", false)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if appErr, ok := err.(*domain.AppError); ok {
				return c.Status(appErr.StatusCode).JSON(appErr)
			}
			return c.Status(500).SendString(err.Error())
		},
	})
	app.Use(Auth(jwtService))
	app.Get("/admin", AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	t.Run("admin session passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("regular session is forbidden", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+userToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)
	})
}
