package response

import (
	"context"

	"feedback-platform/backend/internal/form/shared"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultPageSize matches the listing endpoint's default limit.
const DefaultPageSize = 50

type Querier interface {
	Create(ctx context.Context, arg CreateParams) (FormResponse, error)
	CountByFormID(ctx context.Context, formID uuid.UUID) (int64, error)
	ListByFormID(ctx context.Context, arg ListByFormIDParams) ([]FormResponse, error)
	ListAllByFormID(ctx context.Context, formID uuid.UUID) ([]FormResponse, error)
	DeleteByFormID(ctx context.Context, formID uuid.UUID) error
}

// Metadata is the audit trail captured with a submission. It is stored on the
// response row and never surfaced through summaries or exports.
type Metadata struct {
	IPAddress string
	UserAgent string
}

// Pagination describes the window a listing call returned.
type Pagination struct {
	CurrentPage    int   `json:"currentPage"`
	TotalPages     int   `json:"totalPages"`
	TotalResponses int64 `json:"totalResponses"`
	HasMore        bool  `json:"hasMore"`
}

type Service struct {
	logger  *zap.Logger
	queries Querier
	tracer  trace.Tracer
}

func NewService(logger *zap.Logger, db DBTX) *Service {
	return &Service{
		logger:  logger,
		queries: New(db),
		tracer:  otel.Tracer("response/service"),
	}
}

func decode(row FormResponse) (shared.ResponseData, error) {
	answers, err := shared.DecodeAnswers(row.Answers)
	if err != nil {
		return shared.ResponseData{}, err
	}

	return shared.ResponseData{
		ID:          row.ID,
		FormID:      row.FormID,
		SubmittedAt: row.SubmittedAt.Time,
		Answers:     answers,
	}, nil
}

// Create persists one immutable response document. The submission timestamp
// is assigned by the database.
func (s *Service) Create(ctx context.Context, formID uuid.UUID, answers []shared.Answer, meta Metadata) (shared.ResponseData, error) {
	traceCtx, span := s.tracer.Start(ctx, "Create")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	encoded, err := shared.EncodeAnswers(answers)
	if err != nil {
		span.RecordError(err)
		return shared.ResponseData{}, err
	}

	row, err := s.queries.Create(traceCtx, CreateParams{
		FormID:    formID,
		Answers:   encoded,
		IpAddress: pgtype.Text{String: meta.IPAddress, Valid: meta.IPAddress != ""},
		UserAgent: pgtype.Text{String: meta.UserAgent, Valid: meta.UserAgent != ""},
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "create response")
		span.RecordError(err)
		return shared.ResponseData{}, err
	}

	return decode(row)
}

// ListByFormID returns one page of responses, newest submission first, with
// pagination metadata. A page past the end yields an empty item list and
// accurate metadata, not an error.
func (s *Service) ListByFormID(ctx context.Context, formID uuid.UUID, page int, pageSize int) ([]shared.ResponseData, Pagination, error) {
	traceCtx, span := s.tracer.Start(ctx, "ListByFormID")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total, err := s.queries.CountByFormID(traceCtx, formID)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "form_responses", "form_id", formID.String(), logger, "count responses by form id")
		span.RecordError(err)
		return nil, Pagination{}, err
	}

	offset := (page - 1) * pageSize
	rows, err := s.queries.ListByFormID(traceCtx, ListByFormIDParams{
		FormID: formID,
		Limit:  int32(pageSize),
		Offset: int32(offset),
	})
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "form_responses", "form_id", formID.String(), logger, "list responses by form id")
		span.RecordError(err)
		return nil, Pagination{}, err
	}

	items := make([]shared.ResponseData, 0, len(rows))
	for _, row := range rows {
		item, err := decode(row)
		if err != nil {
			span.RecordError(err)
			return nil, Pagination{}, err
		}
		items = append(items, item)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	pagination := Pagination{
		CurrentPage:    page,
		TotalPages:     totalPages,
		TotalResponses: total,
		HasMore:        int64(offset+len(items)) < total,
	}

	return items, pagination, nil
}

// ListAllByFormID returns the complete response set, newest submission first.
// Summary and export recompute from this full snapshot on every call.
func (s *Service) ListAllByFormID(ctx context.Context, formID uuid.UUID) ([]shared.ResponseData, error) {
	traceCtx, span := s.tracer.Start(ctx, "ListAllByFormID")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	rows, err := s.queries.ListAllByFormID(traceCtx, formID)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "form_responses", "form_id", formID.String(), logger, "list all responses by form id")
		span.RecordError(err)
		return nil, err
	}

	items := make([]shared.ResponseData, 0, len(rows))
	for _, row := range rows {
		item, err := decode(row)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *Service) CountByFormID(ctx context.Context, formID uuid.UUID) (int64, error) {
	traceCtx, span := s.tracer.Start(ctx, "CountByFormID")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	count, err := s.queries.CountByFormID(traceCtx, formID)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "form_responses", "form_id", formID.String(), logger, "count responses by form id")
		span.RecordError(err)
		return 0, err
	}

	return count, nil
}

// DeleteByFormID removes every response of a form. Only invoked as the
// cascade of a form deletion.
func (s *Service) DeleteByFormID(ctx context.Context, formID uuid.UUID) error {
	traceCtx, span := s.tracer.Start(ctx, "DeleteByFormID")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	err := s.queries.DeleteByFormID(traceCtx, formID)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "form_responses", "form_id", formID.String(), logger, "delete responses by form id")
		span.RecordError(err)
		return err
	}

	return nil
}
