package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/auth"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
)

const (
	// LocalUserID is the key to retrieve the authenticated user id from context
	LocalUserID = "user_id"
	// LocalUserEmail is the key to retrieve the authenticated email from context
	LocalUserEmail = "user_email"
	// LocalIsAdmin is the key to retrieve the admin flag from context
	LocalIsAdmin = "is_admin"
)

// TokenValidator validates a session token and returns its claims
type TokenValidator interface {
	ValidateToken(token string) (*auth.SessionClaims, error)
}

// Auth creates an authentication middleware using JWT session tokens
func Auth(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Extract Bearer token
		token := extractBearerToken(c)
		if token == "" {
			return domain.ErrUnauthorized
		}

		// 2. Validate signature and expiry
		claims, err := tokens.ValidateToken(token)
		if err != nil {
			// Any error (malformed, expired, bad signature) returns 401
			return domain.ErrUnauthorized
		}

		// 3. Set session identity in context
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserEmail, claims.Email)
		c.Locals(LocalIsAdmin, claims.Admin)

		return c.Next()
	}
}

// AdminOnly requires an authenticated admin session. Must be chained after
// Auth.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, ok := c.Locals(LocalIsAdmin).(bool)
		if !ok {
			return domain.ErrUnauthorized
		}
		if !admin {
			return domain.ErrForbidden
		}
		return c.Next()
	}
}

// extractBearerToken extracts token from Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// GetUserID retrieves the authenticated user id from Fiber context
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(LocalUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

// GetUserEmail retrieves the authenticated email from Fiber context
func GetUserEmail(c *fiber.Ctx) (string, error) {
	email, ok := c.Locals(LocalUserEmail).(string)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	return email, nil
}
