package testdata

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"feedback-platform/backend/internal/form/shared"
)

func RandomName() string {
	return gofakeit.Name()
}

func RandomEmail() string {
	return gofakeit.Email()
}

func RandomTitle() string {
	return gofakeit.Sentence(4)
}

func RandomDescription() string {
	return gofakeit.Sentence(10)
}

func RandomPrompt() string {
	return gofakeit.Question()
}

// TextQuestion builds a text question with a random prompt and a fresh id.
func TextQuestion(required bool) shared.Question {
	return shared.Question{
		ID:       uuid.New(),
		Type:     shared.QuestionTypeText,
		Prompt:   RandomPrompt(),
		Required: required,
	}
}

// ChoiceQuestion builds a multiple-choice question over the given options.
func ChoiceQuestion(required bool, options ...string) shared.Question {
	return shared.Question{
		ID:       uuid.New(),
		Type:     shared.QuestionTypeMultipleChoice,
		Prompt:   RandomPrompt(),
		Required: required,
		Options:  options,
	}
}
