package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/ai"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
)

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) ListByTopic(ctx context.Context, topic, difficulty string, limit int) ([]domain.Question, error) {
	args := m.Called(ctx, topic, difficulty, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) Set(ctx context.Context, cfg *domain.AssessmentConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockConfigRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.AssessmentConfig, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssessmentConfig), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateQuestions(ctx context.Context, topic, difficulty string, count int) ([]ai.GeneratedQuestion, error) {
	args := m.Called(ctx, topic, difficulty, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ai.GeneratedQuestion), args.Error(1)
}

type MockQuestionCache struct {
	mock.Mock
}

func (m *MockQuestionCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockQuestionCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func sampleQuestions() []ai.GeneratedQuestion {
	return []ai.GeneratedQuestion{
		{
			Question:      "What does a goroutine run on?",
			Options:       []string{"OS thread", "Green thread multiplexed by the runtime", "Process", "Fiber"},
			CorrectAnswer: "Green thread multiplexed by the runtime",
		},
	}
}

func TestQuestionService_SetConfig(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		cfg        *domain.AssessmentConfig
		setupMocks func(*MockConfigRepository)
		wantErr    error
	}{
		{
			name: "valid config",
			cfg:  &domain.AssessmentConfig{UserID: userID, Topic: "go", Difficulty: "Medium", QuestionCount: 10},
			setupMocks: func(r *MockConfigRepository) {
				r.On("Set", mock.Anything, mock.MatchedBy(func(c *domain.AssessmentConfig) bool {
					return c.Difficulty == "medium"
				})).Return(nil)
			},
		},
		{
			name:       "missing topic",
			cfg:        &domain.AssessmentConfig{UserID: userID, Difficulty: "easy", QuestionCount: 10},
			setupMocks: func(r *MockConfigRepository) {},
			wantErr:    domain.ErrMissingFields,
		},
		{
			name:       "count above limit",
			cfg:        &domain.AssessmentConfig{UserID: userID, Topic: "go", Difficulty: "easy", QuestionCount: domain.MaxQuestionCount + 1},
			setupMocks: func(r *MockConfigRepository) {},
			wantErr:    domain.ErrValidationFailed,
		},
		{
			name:       "unknown difficulty",
			cfg:        &domain.AssessmentConfig{UserID: userID, Topic: "go", Difficulty: "brutal", QuestionCount: 10},
			setupMocks: func(r *MockConfigRepository) {},
			wantErr:    domain.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configs := &MockConfigRepository{}
			tt.setupMocks(configs)

			svc := NewQuestionService(&MockQuestionRepository{}, configs, &MockGenerator{}, nil, testLogger())

			err := svc.SetConfig(context.Background(), tt.cfg)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			configs.AssertExpectations(t)
		})
	}
}

func TestQuestionService_Generate_CacheMiss(t *testing.T) {
	questions := sampleQuestions()

	repo := &MockQuestionRepository{}
	generator := &MockGenerator{}
	cache := &MockQuestionCache{}

	cache.On("Get", mock.Anything, "questions:go:easy:1").Return(nil, errors.New("not found"))
	generator.On("GenerateQuestions", mock.Anything, "go", "easy", 1).Return(questions, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	cache.On("Set", mock.Anything, "questions:go:easy:1", mock.Anything, questionCacheTTL).Return(nil)

	svc := NewQuestionService(repo, &MockConfigRepository{}, generator, cache, testLogger())

	got, err := svc.Generate(context.Background(), "go", "easy", 1)
	require.NoError(t, err)
	assert.Equal(t, questions, got)

	generator.AssertExpectations(t)
	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestQuestionService_Generate_CacheHitSkipsGenerator(t *testing.T) {
	questions := sampleQuestions()
	payload, err := json.Marshal(questions)
	require.NoError(t, err)

	generator := &MockGenerator{}
	cache := &MockQuestionCache{}
	cache.On("Get", mock.Anything, "questions:go:easy:1").Return(payload, nil)

	svc := NewQuestionService(&MockQuestionRepository{}, &MockConfigRepository{}, generator, cache, testLogger())

	got, err := svc.Generate(context.Background(), "go", "easy", 1)
	require.NoError(t, err)
	assert.Equal(t, questions, got)

	generator.AssertNotCalled(t, "GenerateQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestQuestionService_Generate_ProviderFailure(t *testing.T) {
	generator := &MockGenerator{}
	generator.On("GenerateQuestions", mock.Anything, "go", "easy", 5).Return(nil, errors.New("quota exceeded"))

	svc := NewQuestionService(&MockQuestionRepository{}, &MockConfigRepository{}, generator, nil, testLogger())

	_, err := svc.Generate(context.Background(), "go", "easy", 5)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestQuestionService_Generate_DuplicateStoreIsNotFatal(t *testing.T) {
	questions := sampleQuestions()

	repo := &MockQuestionRepository{}
	generator := &MockGenerator{}
	generator.On("GenerateQuestions", mock.Anything, "go", "easy", 1).Return(questions, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrQuestionExists)

	svc := NewQuestionService(repo, &MockConfigRepository{}, generator, nil, testLogger())

	got, err := svc.Generate(context.Background(), "go", "easy", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
