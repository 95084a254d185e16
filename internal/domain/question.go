package domain

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty levels accepted by the assessment configuration.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var validDifficulties = map[string]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// IsValidDifficulty reports whether s is a known difficulty level.
func IsValidDifficulty(s string) bool {
	return validDifficulties[s]
}

// MaxQuestionCount bounds a single assessment.
const MaxQuestionCount = 50

// Question representa uma questão de múltipla escolha
type Question struct {
	ID         uuid.UUID `json:"id"`
	Topic      string    `json:"topic"`
	Difficulty string    `json:"difficulty"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Options    []string  `json:"options"`
	CreatedAt  time.Time `json:"created_at"`
}

// AssessmentConfig is the per-user assessment setup chosen before a quiz run.
type AssessmentConfig struct {
	UserID        uuid.UUID `json:"userId"`
	Topic         string    `json:"topic"`
	QuestionCount int       `json:"qnCount"`
	Difficulty    string    `json:"difficulty"`
	UpdatedAt     time.Time `json:"-"`
}
