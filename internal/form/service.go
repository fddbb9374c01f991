package form

import (
	"context"
	"errors"
	"fmt"

	"feedback-platform/backend/internal"
	"feedback-platform/backend/internal/form/question"
	"feedback-platform/backend/internal/form/shared"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Querier interface {
	Create(ctx context.Context, arg CreateParams) (Form, error)
	Update(ctx context.Context, arg UpdateParams) (Form, error)
	Delete(ctx context.Context, arg DeleteParams) error
	GetByIDAndOwner(ctx context.Context, arg GetByIDAndOwnerParams) (Form, error)
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (Form, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (Form, error)
	ListByOwner(ctx context.Context, createdBy uuid.UUID) ([]Form, error)
}

type ResponseStore interface {
	CountByFormID(ctx context.Context, formID uuid.UUID) (int64, error)
	DeleteByFormID(ctx context.Context, formID uuid.UUID) error
}

// Detail is a form row with its question document decoded and, for owner
// views, the number of responses collected so far.
type Detail struct {
	Form          Form
	Questions     []shared.Question
	ResponseCount int64
}

type Service struct {
	logger        *zap.Logger
	queries       Querier
	tracer        trace.Tracer
	responseStore ResponseStore
	sanitizer     *bluemonday.Policy
}

func NewService(logger *zap.Logger, db DBTX, responseStore ResponseStore) *Service {
	return &Service{
		logger:        logger,
		queries:       New(db),
		tracer:        otel.Tracer("form/service"),
		responseStore: responseStore,
		sanitizer:     bluemonday.StrictPolicy(),
	}
}

func (s *Service) decode(currentForm Form) (Detail, error) {
	questions, err := shared.DecodeQuestions(currentForm.Questions)
	if err != nil {
		return Detail{}, err
	}

	return Detail{Form: currentForm, Questions: questions}, nil
}

// Create persists a new form owned by userID. Title and description are
// sanitized, the question list is validated against the authoring rules, and
// every question receives a stable identifier.
func (s *Service) Create(ctx context.Context, req Request, userID uuid.UUID) (Detail, error) {
	traceCtx, span := s.tracer.Start(ctx, "Create")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	questions := make([]shared.Question, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = q.toQuestion(s.sanitizer)
		questions[i].ID = uuid.New()
	}

	if err := question.ValidateDefinition(questions); err != nil {
		return Detail{}, fmt.Errorf("%w: %w", internal.ErrInvalidFormDefinition, err)
	}

	encoded, err := shared.EncodeQuestions(questions)
	if err != nil {
		span.RecordError(err)
		return Detail{}, err
	}

	title := s.sanitizer.Sanitize(req.Title)
	description := s.sanitizer.Sanitize(req.Description)

	newForm, err := s.queries.Create(traceCtx, CreateParams{
		Title:       title,
		Description: pgtype.Text{String: description, Valid: description != ""},
		Questions:   encoded,
		CreatedBy:   userID,
		PublicID:    uuid.New(),
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "create form")
		span.RecordError(err)
		return Detail{}, err
	}

	return Detail{Form: newForm, Questions: questions}, nil
}

// ListByOwner returns the caller's forms newest-first, each decorated with
// its response count.
func (s *Service) ListByOwner(ctx context.Context, userID uuid.UUID) ([]Detail, error) {
	traceCtx, span := s.tracer.Start(ctx, "ListByOwner")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	forms, err := s.queries.ListByOwner(traceCtx, userID)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "forms", "created_by", userID.String(), logger, "list forms by owner")
		span.RecordError(err)
		return nil, err
	}

	details := make([]Detail, 0, len(forms))
	for _, currentForm := range forms {
		detail, err := s.decode(currentForm)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}

		count, err := s.responseStore.CountByFormID(traceCtx, currentForm.ID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		detail.ResponseCount = count

		details = append(details, detail)
	}

	return details, nil
}

// GetByIDAndOwner returns the form only when it exists and belongs to userID.
// Absence and foreign ownership are both reported as not found.
func (s *Service) GetByIDAndOwner(ctx context.Context, id uuid.UUID, userID uuid.UUID) (Detail, error) {
	traceCtx, span := s.tracer.Start(ctx, "GetByIDAndOwner")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	currentForm, err := s.queries.GetByIDAndOwner(traceCtx, GetByIDAndOwnerParams{ID: id, CreatedBy: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Detail{}, internal.ErrFormNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "forms", "id", id.String(), logger, "get form by id and owner")
		span.RecordError(err)
		return Detail{}, err
	}

	detail, err := s.decode(currentForm)
	if err != nil {
		span.RecordError(err)
		return Detail{}, err
	}

	count, err := s.responseStore.CountByFormID(traceCtx, currentForm.ID)
	if err != nil {
		span.RecordError(err)
		return Detail{}, err
	}
	detail.ResponseCount = count

	return detail, nil
}

// GetByPublicID resolves a public share token to its form. Inactive and
// absent forms are indistinguishable to the caller.
func (s *Service) GetByPublicID(ctx context.Context, publicID uuid.UUID) (Detail, error) {
	traceCtx, span := s.tracer.Start(ctx, "GetByPublicID")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	currentForm, err := s.queries.GetByPublicID(traceCtx, publicID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Detail{}, internal.ErrFormNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "forms", "public_id", publicID.String(), logger, "get form by public id")
		span.RecordError(err)
		return Detail{}, err
	}

	return s.decode(currentForm)
}

// GetActiveByID resolves a form id for direct submission. Inactive and absent
// forms are indistinguishable to the caller.
func (s *Service) GetActiveByID(ctx context.Context, id uuid.UUID) (Detail, error) {
	traceCtx, span := s.tracer.Start(ctx, "GetActiveByID")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	currentForm, err := s.queries.GetActiveByID(traceCtx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Detail{}, internal.ErrFormNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "forms", "id", id.String(), logger, "get active form by id")
		span.RecordError(err)
		return Detail{}, err
	}

	return s.decode(currentForm)
}

// Update applies a partial edit to an owned form. A replaced question list is
// re-validated; questions that keep their id stay stable for stored answers,
// new entries are assigned fresh ids.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest, userID uuid.UUID) (Detail, error) {
	traceCtx, span := s.tracer.Start(ctx, "Update")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	current, err := s.GetByIDAndOwner(traceCtx, id, userID)
	if err != nil {
		return Detail{}, err
	}

	title := current.Form.Title
	if req.Title != nil {
		title = s.sanitizer.Sanitize(*req.Title)
	}

	description := current.Form.Description.String
	if req.Description != nil {
		description = s.sanitizer.Sanitize(*req.Description)
	}

	isActive := current.Form.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	questions := current.Questions
	if req.Questions != nil {
		existing := make(map[uuid.UUID]bool, len(current.Questions))
		for _, q := range current.Questions {
			existing[q.ID] = true
		}

		questions = make([]shared.Question, len(req.Questions))
		for i, q := range req.Questions {
			questions[i] = q.toQuestion(s.sanitizer)
			if id, parseErr := uuid.Parse(q.ID); parseErr == nil && existing[id] {
				questions[i].ID = id
			} else {
				questions[i].ID = uuid.New()
			}
		}

		if err := question.ValidateDefinition(questions); err != nil {
			return Detail{}, fmt.Errorf("%w: %w", internal.ErrInvalidFormDefinition, err)
		}
	}

	encoded, err := shared.EncodeQuestions(questions)
	if err != nil {
		span.RecordError(err)
		return Detail{}, err
	}

	updatedForm, err := s.queries.Update(traceCtx, UpdateParams{
		ID:          id,
		CreatedBy:   userID,
		Title:       title,
		Description: pgtype.Text{String: description, Valid: description != ""},
		Questions:   encoded,
		IsActive:    isActive,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Detail{}, internal.ErrFormNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "forms", "id", id.String(), logger, "update form")
		span.RecordError(err)
		return Detail{}, err
	}

	detail := Detail{Form: updatedForm, Questions: questions, ResponseCount: current.ResponseCount}
	return detail, nil
}

// Delete removes an owned form and cascades to its responses.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	traceCtx, span := s.tracer.Start(ctx, "Delete")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	// Owner check first so a foreign form reads as not found instead of a
	// silent no-op delete.
	if _, err := s.GetByIDAndOwner(traceCtx, id, userID); err != nil {
		return err
	}

	if err := s.responseStore.DeleteByFormID(traceCtx, id); err != nil {
		span.RecordError(err)
		return err
	}

	err := s.queries.Delete(traceCtx, DeleteParams{ID: id, CreatedBy: userID})
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "forms", "id", id.String(), logger, "delete form")
		span.RecordError(err)
		return err
	}

	return nil
}
