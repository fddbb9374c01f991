package question

import (
	"errors"
	"testing"

	"feedback-platform/backend/internal/form/shared"

	"github.com/google/uuid"
)

func validDefinition() []shared.Question {
	return []shared.Question{
		{ID: uuid.New(), Type: shared.QuestionTypeText, Prompt: "What did you like?", Required: true},
		{ID: uuid.New(), Type: shared.QuestionTypeText, Prompt: "What could improve?", Required: false},
		{ID: uuid.New(), Type: shared.QuestionTypeMultipleChoice, Prompt: "Rating", Required: true, Options: []string{"Good", "Bad"}},
	}
}

func TestValidateDefinition(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]shared.Question) []shared.Question
		wantErr error
	}{
		{
			name:   "Should accept three questions",
			mutate: func(qs []shared.Question) []shared.Question { return qs },
		},
		{
			name: "Should accept five questions",
			mutate: func(qs []shared.Question) []shared.Question {
				return append(qs,
					shared.Question{ID: uuid.New(), Type: shared.QuestionTypeText, Prompt: "Anything else?"},
					shared.Question{ID: uuid.New(), Type: shared.QuestionTypeText, Prompt: "Final comments"},
				)
			},
		},
		{
			name: "Should reject two questions",
			mutate: func(qs []shared.Question) []shared.Question {
				return qs[:2]
			},
			wantErr: ErrInvalidQuestionCount{Given: 2},
		},
		{
			name: "Should reject six questions",
			mutate: func(qs []shared.Question) []shared.Question {
				for i := 0; i < 3; i++ {
					qs = append(qs, shared.Question{ID: uuid.New(), Type: shared.QuestionTypeText, Prompt: "Extra"})
				}
				return qs
			},
			wantErr: ErrInvalidQuestionCount{Given: 6},
		},
		{
			name: "Should reject an empty prompt",
			mutate: func(qs []shared.Question) []shared.Question {
				qs[1].Prompt = "  "
				return qs
			},
			wantErr: ErrEmptyPrompt{Index: 1},
		},
		{
			name: "Should reject an unknown type",
			mutate: func(qs []shared.Question) []shared.Question {
				qs[0].Type = "dropdown"
				return qs
			},
			wantErr: ErrUnknownQuestionType{Type: "dropdown"},
		},
		{
			name: "Should reject multiple-choice with a single option",
			mutate: func(qs []shared.Question) []shared.Question {
				qs[2].Options = []string{"Good"}
				return qs
			},
			wantErr: ErrTooFewOptions{Index: 2, Given: 1},
		},
		{
			name: "Should not count blank options",
			mutate: func(qs []shared.Question) []shared.Question {
				qs[2].Options = []string{"Good", "   "}
				return qs
			},
			wantErr: ErrTooFewOptions{Index: 2, Given: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDefinition(tc.mutate(validDefinition()))
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDefinition() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateDefinition() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewAnswerable(t *testing.T) {
	text, err := NewAnswerable(shared.Question{Type: shared.QuestionTypeText, Prompt: "Comments"})
	if err != nil {
		t.Fatalf("NewAnswerable(text) returned error: %v", err)
	}
	if _, ok := text.(Text); !ok {
		t.Errorf("expected Text, got %T", text)
	}

	mc, err := NewAnswerable(shared.Question{Type: shared.QuestionTypeMultipleChoice, Prompt: "Rating", Options: []string{"Good", "Bad"}})
	if err != nil {
		t.Fatalf("NewAnswerable(multiple-choice) returned error: %v", err)
	}
	if _, ok := mc.(MultipleChoice); !ok {
		t.Errorf("expected MultipleChoice, got %T", mc)
	}

	_, err = NewAnswerable(shared.Question{Type: "scale", Prompt: "Scale"})
	var unknown ErrUnknownQuestionType
	if !errors.As(err, &unknown) {
		t.Fatalf("expected ErrUnknownQuestionType, got %T", err)
	}
}
