package submit

import (
	"context"
	"errors"
	"fmt"

	"feedback-platform/backend/internal"
	"feedback-platform/backend/internal/form/question"
	"feedback-platform/backend/internal/form/response"
	"feedback-platform/backend/internal/form/shared"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type ResponseStore interface {
	Create(ctx context.Context, formID uuid.UUID, answers []shared.Answer, meta response.Metadata) (shared.ResponseData, error)
}

type Service struct {
	logger        *zap.Logger
	tracer        trace.Tracer
	responseStore ResponseStore
}

func NewService(logger *zap.Logger, responseStore ResponseStore) *Service {
	return &Service{
		logger:        logger,
		tracer:        otel.Tracer("submit/service"),
		responseStore: responseStore,
	}
}

// Validate checks one anonymous submission against the form's question list:
// every answer must reference a question of the form, every required question
// must carry a non-empty answer, and multiple-choice values must match a
// declared option.
func (s *Service) Validate(questions []shared.Question, answers []shared.Answer) error {
	if len(answers) == 0 {
		return internal.ErrEmptySubmission
	}

	byID := make(map[uuid.UUID]shared.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	for _, answer := range answers {
		q, ok := byID[answer.QuestionID]
		if !ok {
			return fmt.Errorf("%w: %s", internal.ErrQuestionNotFound, answer.QuestionID)
		}

		answerable, err := question.NewAnswerable(q)
		if err != nil {
			return err
		}

		if err := answerable.Validate(answer.Value); err != nil {
			var invalidChoice question.ErrInvalidChoice
			if errors.As(err, &invalidChoice) {
				return fmt.Errorf("%w: %w", internal.ErrInvalidChoice, err)
			}
			var emptyAnswer question.ErrEmptyAnswer
			if errors.As(err, &emptyAnswer) {
				return fmt.Errorf("%w: %w", internal.ErrQuestionRequired, err)
			}
			return err
		}
	}

	for _, q := range questions {
		if !q.Required {
			continue
		}
		answer, ok := shared.FindAnswer(answers, q.ID)
		if !ok || answer.Value == "" {
			return fmt.Errorf("%w: %s", internal.ErrQuestionRequired, q.ID)
		}
	}

	return nil
}

// Submit validates the answers against the form and persists them as one
// immutable response. The returned snapshot carries the server-assigned
// identifier and submission instant.
func (s *Service) Submit(ctx context.Context, formID uuid.UUID, questions []shared.Question, answers []shared.Answer, meta response.Metadata) (shared.ResponseData, error) {
	traceCtx, span := s.tracer.Start(ctx, "Submit")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	if err := s.Validate(questions, answers); err != nil {
		span.RecordError(err)
		return shared.ResponseData{}, err
	}

	created, err := s.responseStore.Create(traceCtx, formID, answers, meta)
	if err != nil {
		span.RecordError(err)
		return shared.ResponseData{}, err
	}

	logger.Info("recorded form response",
		zap.String("form_id", formID.String()),
		zap.String("response_id", created.ID.String()))

	return created, nil
}
