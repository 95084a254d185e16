package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/facematch"
)

// DescriptorRegistry is the persistence boundary for face descriptors.
type DescriptorRegistry interface {
	ListEnrolled(ctx context.Context) ([]domain.EnrolledFace, error)
	SetDescriptor(ctx context.Context, userID uuid.UUID, descriptor domain.Descriptor) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

// SessionIssuer creates an authenticated session for a user. Only a verified
// face match may call it without prior credentials.
type SessionIssuer interface {
	GenerateToken(userID uuid.UUID, email string, admin bool) (string, error)
}

// FaceAuthService orchestrates face enrollment and verification. It is the
// only component that talks to both the registry and the match engine, and it
// owns the error contract exposed over the wire.
type FaceAuthService struct {
	registry  DescriptorRegistry
	sessions  SessionIssuer
	threshold float64
	logger    *slog.Logger
}

func NewFaceAuthService(registry DescriptorRegistry, sessions SessionIssuer, logger *slog.Logger) *FaceAuthService {
	return &FaceAuthService{
		registry:  registry,
		sessions:  sessions,
		threshold: facematch.DefaultThreshold,
		logger:    logger,
	}
}

func (s *FaceAuthService) WithThreshold(threshold float64) *FaceAuthService {
	s.threshold = threshold
	return s
}

// Enroll binds a descriptor to the given user, overwriting any previous one.
// The caller must have authenticated the user beforehand; descriptors are
// never bound on behalf of arbitrary account ids.
func (s *FaceAuthService) Enroll(ctx context.Context, userID uuid.UUID, descriptor domain.Descriptor) error {
	if userID == uuid.Nil || len(descriptor) == 0 {
		return domain.ErrMissingFields
	}
	if err := descriptor.Validate(); err != nil {
		return domain.ErrInvalidDescriptor.WithError(err)
	}

	if err := s.registry.SetDescriptor(ctx, userID, descriptor); err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return fmt.Errorf("enroll face: %w", err)
	}

	return nil
}

// Verify matches a query descriptor against the full enrolled population and,
// on an accepted match, issues a session for the matched user. The registry is
// never mutated here; session creation is the only side effect.
func (s *FaceAuthService) Verify(ctx context.Context, query domain.Descriptor) (*domain.Profile, string, error) {
	if len(query) == 0 {
		return nil, "", domain.ErrMissingFields
	}

	population, err := s.registry.ListEnrolled(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list enrolled faces: %w", err)
	}

	result, err := facematch.Match(query, population, s.threshold)
	if err != nil {
		if errors.Is(err, facematch.ErrNoEnrollments) {
			return nil, "", domain.ErrNoEnrolledFaces
		}
		if errors.Is(err, facematch.ErrDimensionMismatch) {
			// Corrupt enrollment data, not a routine non-match. Surface a
			// generic 500 and keep the detail server-side.
			s.logger.Error("face verification aborted",
				slog.Int("population", len(population)),
				slog.Any("error", err),
			)
			return nil, "", domain.ErrInternal.WithError(err)
		}
		return nil, "", fmt.Errorf("match face: %w", err)
	}

	if !result.Matched {
		return nil, "", domain.ErrFaceNotRecognized
	}

	profile, err := s.registry.GetProfile(ctx, result.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("load matched profile: %w", err)
	}

	token, err := s.sessions.GenerateToken(profile.ID, profile.Email, false)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("face verification accepted",
		slog.String("user_id", profile.ID.String()),
	)

	return profile, token, nil
}
