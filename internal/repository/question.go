package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
)

type QuestionRepository struct {
	pool PgxPool
}

func NewQuestionRepository(pool PgxPool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	query := `
		INSERT INTO questions (id, topic, difficulty, question, answer, options, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		question.ID,
		question.Topic,
		question.Difficulty,
		question.Question,
		question.Answer,
		question.Options,
	).Scan(&question.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrQuestionExists
		}
		return fmt.Errorf("create question: %w", err)
	}

	return nil
}

func (r *QuestionRepository) ListByTopic(ctx context.Context, topic, difficulty string, limit int) ([]domain.Question, error) {
	query := `
		SELECT id, topic, difficulty, question, answer, options, created_at
		FROM questions
		WHERE topic = $1 AND difficulty = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, topic, difficulty, limit)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(
			&q.ID,
			&q.Topic,
			&q.Difficulty,
			&q.Question,
			&q.Answer,
			&q.Options,
			&q.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return questions, nil
}
