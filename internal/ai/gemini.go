// Package ai generates multiple-choice questions with the Gemini API.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.0-flash"

// GeneratedQuestion is one question as returned by the model.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// GeminiProvider generates assessment questions via the Gemini API.
type GeminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client}, nil
}

func (p *GeminiProvider) Name() string {
	return geminiModel
}

// GenerateQuestions asks the model for count questions on topic at the given
// difficulty. The model occasionally emits broken JSON; the parse error is fed
// back and the request retried a few times before giving up.
func (p *GeminiProvider) GenerateQuestions(ctx context.Context, topic, difficulty string, count int) ([]GeneratedQuestion, error) {
	const maxRetries = 3

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildQuestionPrompt(topic, difficulty, count)},
			},
		},
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	var lastError error
	var lastResponse string

	for range maxRetries {
		result, err := p.client.Models.GenerateContent(ctx, geminiModel, contents, config)
		if err != nil {
			return nil, fmt.Errorf("gemini API error: %w", err)
		}

		content := result.Text()
		if content == "" {
			return nil, errors.New("no response from Gemini")
		}
		lastResponse = content

		questions, err := parseQuestions(content)
		if err != nil {
			lastError = err

			// Add model response and error feedback to contents for retry
			contents = append(contents,
				&genai.Content{
					Role:  "model",
					Parts: []*genai.Part{{Text: content}},
				},
				&genai.Content{
					Role:  "user",
					Parts: []*genai.Part{{Text: fmt.Sprintf("JSON parse error: %v. Please fix the JSON and try again. Remember to escape quotes inside strings with backslash.", err)}},
				},
			)
			continue
		}

		return questions, nil
	}

	return nil, fmt.Errorf("failed to parse questions JSON after %d attempts: %w (last response: %s)", maxRetries, lastError, lastResponse)
}

func parseQuestions(content string) ([]GeneratedQuestion, error) {
	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(content), &questions); err != nil {
		return nil, err
	}

	if len(questions) == 0 {
		return nil, errors.New("model returned an empty question list")
	}

	for i, q := range questions {
		if q.Question == "" || q.CorrectAnswer == "" {
			return nil, fmt.Errorf("question %d is missing text or answer", i)
		}
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("question %d has %d options, want 4", i, len(q.Options))
		}
	}

	return questions, nil
}
