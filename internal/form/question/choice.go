package question

import (
	"feedback-platform/backend/internal/form/shared"
)

type MultipleChoice struct {
	question shared.Question
}

func NewMultipleChoice(q shared.Question) (MultipleChoice, error) {
	if len(q.Options) < MinChoiceOptions {
		return MultipleChoice{}, ErrTooFewOptions{Given: len(q.Options)}
	}

	return MultipleChoice{question: q}, nil
}

func (m MultipleChoice) Question() shared.Question {
	return m.question
}

// Validate requires the value to equal one of the declared option strings.
// The match is case-sensitive and exact.
func (m MultipleChoice) Validate(value string) error {
	if value == "" {
		if m.question.Required {
			return ErrEmptyAnswer{QuestionID: m.question.ID.String()}
		}
		return nil
	}

	for _, option := range m.question.Options {
		if option == value {
			return nil
		}
	}

	return ErrInvalidChoice{
		QuestionID: m.question.ID.String(),
		Value:      value,
	}
}
