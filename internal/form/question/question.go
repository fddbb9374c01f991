package question

import (
	"strings"

	"feedback-platform/backend/internal/form/shared"
)

const (
	// MinQuestions and MaxQuestions bound the question count of a form.
	MinQuestions = 3
	MaxQuestions = 5

	// MinChoiceOptions is the least number of options a multiple-choice
	// question must declare.
	MinChoiceOptions = 2
)

// Answerable validates submitted values against one question's type and
// constraints.
type Answerable interface {
	Question() shared.Question

	// Validate checks if the provided answer value is valid according to the
	// question's type and constraints.
	Validate(value string) error
}

// NewAnswerable wraps a question definition in its type-specific validator.
func NewAnswerable(q shared.Question) (Answerable, error) {
	switch q.Type {
	case shared.QuestionTypeText:
		return NewText(q), nil
	case shared.QuestionTypeMultipleChoice:
		return NewMultipleChoice(q)
	default:
		return nil, ErrUnknownQuestionType{Type: string(q.Type)}
	}
}

// ValidateDefinition enforces the authoring-time rules for a form's question
// list: 3 to 5 questions, non-empty prompts, a supported type per question,
// and at least two non-empty options on every multiple-choice question.
func ValidateDefinition(questions []shared.Question) error {
	if len(questions) < MinQuestions || len(questions) > MaxQuestions {
		return ErrInvalidQuestionCount{Given: len(questions)}
	}

	for i, q := range questions {
		if !q.Type.IsValid() {
			return ErrUnknownQuestionType{Type: string(q.Type)}
		}

		if strings.TrimSpace(q.Prompt) == "" {
			return ErrEmptyPrompt{Index: i}
		}

		if q.Type == shared.QuestionTypeMultipleChoice {
			options := 0
			for _, option := range q.Options {
				if strings.TrimSpace(option) != "" {
					options++
				}
			}
			if options < MinChoiceOptions {
				return ErrTooFewOptions{Index: i, Given: options}
			}
		}
	}

	return nil
}
