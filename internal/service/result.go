package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/repository"
)

// ResultService stores finished assessment attempts and serves history.
type ResultService struct {
	results repository.ResultRepositoryInterface
	users   repository.UserRepositoryInterface
}

func NewResultService(results repository.ResultRepositoryInterface, users repository.UserRepositoryInterface) *ResultService {
	return &ResultService{
		results: results,
		users:   users,
	}
}

// Create stores a submitted result. The score arrives as computed by the
// client alongside the full question/answer snapshot.
func (s *ResultService) Create(ctx context.Context, result *domain.Result) error {
	if result.UserID == uuid.Nil ||
		result.TotalQuestions == 0 ||
		result.Topic == "" ||
		result.Difficulty == "" ||
		len(result.Questions) == 0 ||
		len(result.UserAnswers) == 0 {
		return domain.ErrMissingFields
	}

	if result.Score < 0 || result.Score > result.TotalQuestions {
		return domain.ErrValidationFailed.WithError(
			fmt.Errorf("score %d out of range for %d questions", result.Score, result.TotalQuestions))
	}

	return s.results.Create(ctx, result)
}

// Get returns one stored result by id.
func (s *ResultService) Get(ctx context.Context, id uuid.UUID) (*domain.Result, error) {
	return s.results.GetByID(ctx, id)
}

// History returns a user's attempts, newest first, with aggregates.
func (s *ResultService) History(ctx context.Context, userID uuid.UUID) (*domain.UserHistory, error) {
	// Resolve the user first so an unknown id is a 404, not an empty history.
	if _, err := s.users.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	summaries, err := s.results.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	return &domain.UserHistory{
		Results:       summaries,
		TotalAttempts: len(summaries),
		AverageScore:  domain.ComputeAverageScore(summaries),
	}, nil
}
