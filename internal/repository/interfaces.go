package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
)

// PgxPool is the pool surface repositories depend on
// (compatible with pgxpool.Pool and pgxmock).
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// UserRepositoryInterface defines operations for user data access, including
// the face descriptor registry.
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpsertGoogleUser(ctx context.Context, googleID, email, name, picture string) (*domain.User, error)
	ListEnrolled(ctx context.Context) ([]domain.EnrolledFace, error)
	SetDescriptor(ctx context.Context, userID uuid.UUID, descriptor domain.Descriptor) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

// QuestionRepositoryInterface defines operations for the question bank
type QuestionRepositoryInterface interface {
	Create(ctx context.Context, question *domain.Question) error
	ListByTopic(ctx context.Context, topic, difficulty string, limit int) ([]domain.Question, error)
}

// ResultRepositoryInterface defines operations for assessment results
type ResultRepositoryInterface interface {
	Create(ctx context.Context, result *domain.Result) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Result, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ResultSummary, error)
}

// AssessmentConfigRepositoryInterface defines operations for per-user
// assessment configuration.
type AssessmentConfigRepositoryInterface interface {
	Set(ctx context.Context, cfg *domain.AssessmentConfig) error
	Get(ctx context.Context, userID uuid.UUID) (*domain.AssessmentConfig, error)
}
