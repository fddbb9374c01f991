package question

import (
	"testing"

	"feedback-platform/backend/internal/form/shared"

	"github.com/google/uuid"
)

func TestText_Validate(t *testing.T) {
	tests := []struct {
		name        string
		required    bool
		value       string
		shouldError bool
	}{
		{
			name:        "Should accept free text",
			required:    true,
			value:       "Works great for our team",
			shouldError: false,
		},
		{
			name:        "Should reject empty value when required",
			required:    true,
			value:       "",
			shouldError: true,
		},
		{
			name:        "Should reject whitespace-only value when required",
			required:    true,
			value:       "   \t",
			shouldError: true,
		},
		{
			name:        "Should accept empty value when optional",
			required:    false,
			value:       "",
			shouldError: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text := NewText(shared.Question{
				ID:       uuid.New(),
				Type:     shared.QuestionTypeText,
				Prompt:   "Comments",
				Required: tc.required,
			})

			err := text.Validate(tc.value)
			if tc.shouldError && err == nil {
				t.Errorf("Validate(%q) = nil, want error", tc.value)
			}
			if !tc.shouldError && err != nil {
				t.Errorf("Validate(%q) = %v, want nil", tc.value, err)
			}
		})
	}
}
