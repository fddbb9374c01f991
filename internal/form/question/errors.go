package question

import "fmt"

type ErrUnknownQuestionType struct {
	Type string
}

func (e ErrUnknownQuestionType) Error() string {
	return fmt.Sprintf("unknown question type %q", e.Type)
}

type ErrInvalidQuestionCount struct {
	Given int
}

func (e ErrInvalidQuestionCount) Error() string {
	return fmt.Sprintf("form must have between %d and %d questions, got %d", MinQuestions, MaxQuestions, e.Given)
}

type ErrEmptyPrompt struct {
	Index int
}

func (e ErrEmptyPrompt) Error() string {
	return fmt.Sprintf("question %d has an empty prompt", e.Index)
}

type ErrTooFewOptions struct {
	Index int
	Given int
}

func (e ErrTooFewOptions) Error() string {
	return fmt.Sprintf("multiple-choice question %d must declare at least %d options, got %d", e.Index, MinChoiceOptions, e.Given)
}

type ErrInvalidChoice struct {
	QuestionID string
	Value      string
}

func (e ErrInvalidChoice) Error() string {
	return fmt.Sprintf("value %q is not a declared option of question %s", e.Value, e.QuestionID)
}

type ErrEmptyAnswer struct {
	QuestionID string
}

func (e ErrEmptyAnswer) Error() string {
	return fmt.Sprintf("question %s requires a non-empty answer", e.QuestionID)
}
