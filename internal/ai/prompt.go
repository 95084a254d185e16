package ai

import "fmt"

func buildQuestionPrompt(topic, difficulty string, count int) string {
	return fmt.Sprintf(`Generate %d multiple-choice questions on %s with %s difficulty.
Respond with a JSON array only, using this structure:
[{"question": "", "options": ["", "", "", ""], "correctAnswer": ""}]
Rules:
- exactly 4 options per question
- correctAnswer must be copied verbatim from options
- no markdown fences, no commentary, JSON only`, count, topic, difficulty)
}
