package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr string
	}{
		{
			name: "valid payload",
			content: `[
				{"question": "What is a goroutine?", "options": ["a thread", "a lightweight routine", "a process", "a channel"], "correctAnswer": "a lightweight routine"},
				{"question": "What does cap() return?", "options": ["length", "capacity", "pointer", "size in bytes"], "correctAnswer": "capacity"}
			]`,
			want: 2,
		},
		{
			name:    "broken json",
			content: `[{"question": "unterminated`,
			wantErr: "unexpected end",
		},
		{
			name:    "empty list",
			content: `[]`,
			wantErr: "empty question list",
		},
		{
			name:    "wrong option count",
			content: `[{"question": "q", "options": ["a", "b"], "correctAnswer": "a"}]`,
			wantErr: "2 options, want 4",
		},
		{
			name:    "missing answer",
			content: `[{"question": "q", "options": ["a", "b", "c", "d"]}]`,
			wantErr: "missing text or answer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuestions(tt.content)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestBuildQuestionPrompt(t *testing.T) {
	prompt := buildQuestionPrompt("golang", "medium", 7)
	assert.True(t, strings.Contains(prompt, "7 multiple-choice questions"))
	assert.True(t, strings.Contains(prompt, "golang"))
	assert.True(t, strings.Contains(prompt, "medium"))
	assert.True(t, strings.Contains(prompt, "correctAnswer"))
}
