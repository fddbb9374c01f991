package shared

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
)

// IsValid reports whether the type is one of the supported question types.
func (t QuestionType) IsValid() bool {
	return t == QuestionTypeText || t == QuestionTypeMultipleChoice
}

// Question is one entry of a form's ordered question list. The ID is assigned
// once when the question is first persisted and stays stable across edits so
// that stored answers keep resolving to it.
type Question struct {
	ID       uuid.UUID    `json:"id"`
	Type     QuestionType `json:"type"`
	Prompt   string       `json:"question"`
	Required bool         `json:"required"`
	Options  []string     `json:"options,omitempty"`
}

// Answer pairs a question reference with the submitted value. For text
// questions the value is free text; for multiple-choice it must equal one of
// the question's declared option strings.
type Answer struct {
	QuestionID uuid.UUID `json:"questionId"`
	Value      string    `json:"answer"`
}

// DecodeQuestions unmarshals the JSONB question document stored on a form row.
func DecodeQuestions(raw []byte) ([]Question, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var questions []Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("decode question document: %w", err)
	}

	return questions, nil
}

// EncodeQuestions marshals an ordered question list into the JSONB document
// stored on a form row.
func EncodeQuestions(questions []Question) ([]byte, error) {
	raw, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("encode question document: %w", err)
	}

	return raw, nil
}

// DecodeAnswers unmarshals the JSONB answer document stored on a response row.
func DecodeAnswers(raw []byte) ([]Answer, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var answers []Answer
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("decode answer document: %w", err)
	}

	return answers, nil
}

// EncodeAnswers marshals an ordered answer list into the JSONB document stored
// on a response row.
func EncodeAnswers(answers []Answer) ([]byte, error) {
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("encode answer document: %w", err)
	}

	return raw, nil
}

// FindAnswer returns the answer referencing questionID, scanning the response
// document in order. The bool reports whether such an answer exists.
func FindAnswer(answers []Answer, questionID uuid.UUID) (Answer, bool) {
	for _, answer := range answers {
		if answer.QuestionID == questionID {
			return answer, true
		}
	}

	return Answer{}, false
}
