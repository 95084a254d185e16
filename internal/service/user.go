package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/auth"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/repository"
)

// UserService handles account registration and credential logins.
type UserService struct {
	users    repository.UserRepositoryInterface
	sessions SessionIssuer
}

func NewUserService(users repository.UserRepositoryInterface, sessions SessionIssuer) *UserService {
	return &UserService{
		users:    users,
		sessions: sessions,
	}
}

// Register creates a password account. The email is the unique human
// identifier; the face descriptor is always unset at creation.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Name:         username,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies email/password credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.Profile, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domain.ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same answer for unknown email and bad password.
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: %w", err)
	}

	if user.PasswordHash == "" || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.sessions.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	profile := user.Profile()
	return &profile, token, nil
}

// LoginWithGoogle upserts the account bound to a Google identity and issues a
// session token.
func (s *UserService) LoginWithGoogle(ctx context.Context, gp *auth.GoogleProfile) (*domain.Profile, string, error) {
	user, err := s.users.UpsertGoogleUser(ctx, gp.ID, strings.ToLower(gp.Email), gp.Name, gp.Picture)
	if err != nil {
		return nil, "", fmt.Errorf("google login: %w", err)
	}

	token, err := s.sessions.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	profile := user.Profile()
	return &profile, token, nil
}

// Profile returns the public profile for an authenticated user id.
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return s.users.GetProfile(ctx, userID)
}
