package response

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"feedback-platform/backend/internal"
	"feedback-platform/backend/internal/form"
	"feedback-platform/backend/internal/form/export"
	"feedback-platform/backend/internal/form/shared"
	"feedback-platform/backend/internal/form/summary"
	"feedback-platform/backend/internal/user"

	handlerutil "github.com/NYCU-SDC/summer/pkg/handler"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type AnswerResponse struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type ResponseItem struct {
	ID          string           `json:"id"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Answers     []AnswerResponse `json:"answers"`
}

// FormInfo is the slim form echo attached to listing and summary payloads so
// the client can render prompts without a second request.
type FormInfo struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Questions []form.QuestionResponse `json:"questions"`
}

type ListResponse struct {
	Responses  []ResponseItem `json:"responses"`
	Pagination Pagination     `json:"pagination"`
	Form       FormInfo       `json:"form"`
}

type SummaryResponse struct {
	Form    FormInfo        `json:"form"`
	Summary summary.Summary `json:"summary"`
}

func toResponseItems(items []shared.ResponseData) []ResponseItem {
	result := make([]ResponseItem, len(items))
	for i, item := range items {
		answers := make([]AnswerResponse, len(item.Answers))
		for j, answer := range item.Answers {
			answers[j] = AnswerResponse{
				QuestionID: answer.QuestionID.String(),
				Answer:     answer.Value,
			}
		}
		result[i] = ResponseItem{
			ID:          item.ID.String(),
			SubmittedAt: item.SubmittedAt,
			Answers:     answers,
		}
	}
	return result
}

func toFormInfo(detail form.Detail) FormInfo {
	full := form.ToResponse(detail)
	return FormInfo{
		ID:        full.ID,
		Title:     full.Title,
		Questions: full.Questions,
	}
}

type FormStore interface {
	GetByIDAndOwner(ctx context.Context, id uuid.UUID, userID uuid.UUID) (form.Detail, error)
}

type Store interface {
	ListByFormID(ctx context.Context, formID uuid.UUID, page int, pageSize int) ([]shared.ResponseData, Pagination, error)
	ListAllByFormID(ctx context.Context, formID uuid.UUID) ([]shared.ResponseData, error)
}

type Summarizer interface {
	Compute(ctx context.Context, formID uuid.UUID, questions []shared.Question, responses []shared.ResponseData) (summary.Summary, error)
}

type Exporter interface {
	CSV(ctx context.Context, questions []shared.Question, responses []shared.ResponseData) ([]byte, error)
	XLSX(ctx context.Context, questions []shared.Question, responses []shared.ResponseData) ([]byte, error)
}

type Handler struct {
	logger        *zap.Logger
	tracer        trace.Tracer
	problemWriter *problem.HttpWriter
	formStore     FormStore
	store         Store
	summarizer    Summarizer
	exporter      Exporter
}

func NewHandler(
	logger *zap.Logger,
	problemWriter *problem.HttpWriter,
	formStore FormStore,
	store Store,
	summarizer Summarizer,
	exporter Exporter,
) *Handler {
	return &Handler{
		logger:        logger,
		tracer:        otel.Tracer("response/handler"),
		problemWriter: problemWriter,
		formStore:     formStore,
		store:         store,
		summarizer:    summarizer,
		exporter:      exporter,
	}
}

// ownedForm resolves the path's formId and enforces ownership. Foreign and
// absent forms both surface as not found.
func (h *Handler) ownedForm(ctx context.Context, r *http.Request) (form.Detail, error) {
	id, err := handlerutil.ParseUUID(r.PathValue("formId"))
	if err != nil {
		return form.Detail{}, err
	}

	currentUser, ok := user.GetFromContext(ctx)
	if !ok {
		return form.Detail{}, internal.ErrNoUserInContext
	}

	return h.formStore.GetByIDAndOwner(ctx, id, currentUser.ID)
}

// ListHandler returns one page of a form's responses, newest first, with the
// pagination window and a slim echo of the form.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "ListHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	detail, err := h.ownedForm(traceCtx, r)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			h.problemWriter.WriteError(traceCtx, w, internal.ErrInvalidPageParameter, logger)
			return
		}
	}

	pageSize := DefaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil || pageSize < 1 {
			h.problemWriter.WriteError(traceCtx, w, internal.ErrInvalidLimitParameter, logger)
			return
		}
	}

	items, pagination, err := h.store.ListByFormID(traceCtx, detail.Form.ID, page, pageSize)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, ListResponse{
		Responses:  toResponseItems(items),
		Pagination: pagination,
		Form:       toFormInfo(detail),
	})
}

// SummaryHandler returns the per-question aggregation of a form's responses.
func (h *Handler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "SummaryHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	detail, err := h.ownedForm(traceCtx, r)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	responses, err := h.store.ListAllByFormID(traceCtx, detail.Form.ID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	result, err := h.summarizer.Compute(traceCtx, detail.Form.ID, detail.Questions, responses)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, SummaryResponse{
		Form:    toFormInfo(detail),
		Summary: result,
	})
}

// ExportHandler streams the full response set as a file download. The default
// format is CSV; ?format=xlsx selects a workbook instead.
func (h *Handler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "ExportHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	detail, err := h.ownedForm(traceCtx, r)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	responses, err := h.store.ListAllByFormID(traceCtx, detail.Form.ID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	var body []byte
	var contentType string
	switch format {
	case "csv":
		body, err = h.exporter.CSV(traceCtx, detail.Questions, responses)
		contentType = "text/csv"
	case "xlsx":
		body, err = h.exporter.XLSX(traceCtx, detail.Questions, responses)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		h.problemWriter.WriteError(traceCtx, w, internal.ErrInvalidExportFormat, logger)
		return
	}
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(detail.Form.Title, format)+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.Warn("failed to write export body", zap.Error(err))
	}
}
