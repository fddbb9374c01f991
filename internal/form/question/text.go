package question

import (
	"strings"

	"feedback-platform/backend/internal/form/shared"
)

type Text struct {
	question shared.Question
}

func NewText(q shared.Question) Text {
	return Text{question: q}
}

func (t Text) Question() shared.Question {
	return t.question
}

// Validate accepts any free-text value; a required question rejects values
// that are empty after trimming.
func (t Text) Validate(value string) error {
	if t.question.Required && strings.TrimSpace(value) == "" {
		return ErrEmptyAnswer{QuestionID: t.question.ID.String()}
	}

	return nil
}
