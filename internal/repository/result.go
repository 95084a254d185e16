package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
)

type ResultRepository struct {
	pool PgxPool
}

func NewResultRepository(pool PgxPool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

func (r *ResultRepository) Create(ctx context.Context, result *domain.Result) error {
	query := `
		INSERT INTO results (id, user_id, score, total_questions, topic, difficulty, questions, user_answers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		result.ID,
		result.UserID,
		result.Score,
		result.TotalQuestions,
		result.Topic,
		result.Difficulty,
		result.Questions,
		result.UserAnswers,
	).Scan(&result.CreatedAt)

	if err != nil {
		return fmt.Errorf("create result: %w", err)
	}

	return nil
}

func (r *ResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Result, error) {
	query := `
		SELECT id, user_id, score, total_questions, topic, difficulty, questions, user_answers, created_at
		FROM results
		WHERE id = $1
	`

	var result domain.Result
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.UserID,
		&result.Score,
		&result.TotalQuestions,
		&result.Topic,
		&result.Difficulty,
		&result.Questions,
		&result.UserAnswers,
		&result.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}

	return &result, nil
}

func (r *ResultRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ResultSummary, error) {
	query := `
		SELECT id, score, total_questions, topic, difficulty, created_at
		FROM results
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var summaries []domain.ResultSummary
	for rows.Next() {
		var s domain.ResultSummary
		if err := rows.Scan(
			&s.ID,
			&s.Score,
			&s.TotalQuestions,
			&s.Topic,
			&s.Difficulty,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan result summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	return summaries, nil
}
