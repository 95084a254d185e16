package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResultQuestion is the question snapshot stored with a submitted result, so
// history survives later edits to the question bank.
type ResultQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Result representa uma tentativa de avaliação concluída
type Result struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"userId"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	Topic          string           `json:"topic"`
	Difficulty     string           `json:"difficulty"`
	Questions      []ResultQuestion `json:"questions,omitempty"`
	UserAnswers    []string         `json:"userAnswers,omitempty"`
	CreatedAt      time.Time        `json:"date"`
}

// ResultSummary is the per-attempt projection used by history listings.
type ResultSummary struct {
	ID             uuid.UUID `json:"id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Topic          string    `json:"topic"`
	Difficulty     string    `json:"difficulty"`
	CreatedAt      time.Time `json:"date"`
}

// UserHistory aggregates a user's attempts for the dashboard.
type UserHistory struct {
	Results       []ResultSummary `json:"results"`
	TotalAttempts int             `json:"totalAttempts"`
	AverageScore  float64         `json:"averageScore"`
}

// ComputeAverageScore returns the mean score fraction across attempts,
// 0 when there are none.
func ComputeAverageScore(results []ResultSummary) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		if r.TotalQuestions > 0 {
			sum += float64(r.Score) / float64(r.TotalQuestions)
		}
	}
	return sum / float64(len(results))
}
