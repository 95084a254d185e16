package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
)

type AssessmentConfigRepository struct {
	pool PgxPool
}

func NewAssessmentConfigRepository(pool PgxPool) *AssessmentConfigRepository {
	return &AssessmentConfigRepository{pool: pool}
}

// Set stores the user's current assessment configuration, replacing any
// previous one.
func (r *AssessmentConfigRepository) Set(ctx context.Context, cfg *domain.AssessmentConfig) error {
	query := `
		INSERT INTO assessment_configs (user_id, topic, question_count, difficulty, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET topic = EXCLUDED.topic, question_count = EXCLUDED.question_count,
		              difficulty = EXCLUDED.difficulty, updated_at = NOW()
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		cfg.UserID,
		cfg.Topic,
		cfg.QuestionCount,
		cfg.Difficulty,
	).Scan(&cfg.UpdatedAt)

	if err != nil {
		return fmt.Errorf("set assessment config: %w", err)
	}

	return nil
}

func (r *AssessmentConfigRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.AssessmentConfig, error) {
	query := `
		SELECT user_id, topic, question_count, difficulty, updated_at
		FROM assessment_configs
		WHERE user_id = $1
	`

	var cfg domain.AssessmentConfig
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&cfg.UserID,
		&cfg.Topic,
		&cfg.QuestionCount,
		&cfg.Difficulty,
		&cfg.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get assessment config: %w", err)
	}

	return &cfg, nil
}
