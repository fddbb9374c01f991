package submit

import (
	"context"
	"net"
	"net/http"

	"feedback-platform/backend/internal/form"
	"feedback-platform/backend/internal/form/response"
	"feedback-platform/backend/internal/form/shared"

	handlerutil "github.com/NYCU-SDC/summer/pkg/handler"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// AnswerRequest rejects empty answer values at body validation; respondents
// skip an optional question by omitting its entry, not by sending "".
type AnswerRequest struct {
	QuestionID string `json:"questionId" validate:"required,uuid"`
	Answer     string `json:"answer" validate:"required"`
}

type Request struct {
	FormID  string          `json:"formId" validate:"required,uuid"`
	Answers []AnswerRequest `json:"answers" validate:"required,min=1,dive"`
}

// PublicRequest carries a submission against a share link; the form is
// identified by the path, not the body.
type PublicRequest struct {
	Answers []AnswerRequest `json:"answers" validate:"required,min=1,dive"`
}

type Response struct {
	Message    string `json:"message"`
	ResponseID string `json:"responseId"`
}

func toAnswers(requests []AnswerRequest) []shared.Answer {
	answers := make([]shared.Answer, len(requests))
	for i, a := range requests {
		answers[i] = shared.Answer{
			QuestionID: uuid.MustParse(a.QuestionID),
			Value:      a.Answer,
		}
	}
	return answers
}

type FormStore interface {
	GetActiveByID(ctx context.Context, id uuid.UUID) (form.Detail, error)
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (form.Detail, error)
}

type Store interface {
	Submit(ctx context.Context, formID uuid.UUID, questions []shared.Question, answers []shared.Answer, meta response.Metadata) (shared.ResponseData, error)
}

type Handler struct {
	logger        *zap.Logger
	tracer        trace.Tracer
	validator     *validator.Validate
	problemWriter *problem.HttpWriter
	formStore     FormStore
	store         Store
}

func NewHandler(
	logger *zap.Logger,
	validator *validator.Validate,
	problemWriter *problem.HttpWriter,
	formStore FormStore,
	store Store,
) *Handler {
	return &Handler{
		logger:        logger,
		tracer:        otel.Tracer("submit/handler"),
		validator:     validator,
		problemWriter: problemWriter,
		formStore:     formStore,
		store:         store,
	}
}

// metadata captures the submitter's address and client for the audit columns.
func metadata(r *http.Request) response.Metadata {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return response.Metadata{
		IPAddress: host,
		UserAgent: r.UserAgent(),
	}
}

// SubmitHandler records an anonymous response against a form addressed by its
// internal id. Inactive and absent forms both read as not found.
func (h *Handler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "SubmitHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	var req Request
	if err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &req); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	formID, err := handlerutil.ParseUUID(req.FormID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	detail, err := h.formStore.GetActiveByID(traceCtx, formID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	created, err := h.store.Submit(traceCtx, detail.Form.ID, detail.Questions, toAnswers(req.Answers), metadata(r))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusCreated, Response{
		Message:    "Response submitted successfully",
		ResponseID: created.ID.String(),
	})
}

// SubmitPublicHandler records an anonymous response against a form addressed
// by its public share token.
func (h *Handler) SubmitPublicHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "SubmitPublicHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	publicIDStr := r.PathValue("publicId")
	publicID, err := handlerutil.ParseUUID(publicIDStr)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	var req PublicRequest
	if err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &req); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	detail, err := h.formStore.GetByPublicID(traceCtx, publicID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	created, err := h.store.Submit(traceCtx, detail.Form.ID, detail.Questions, toAnswers(req.Answers), metadata(r))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusCreated, Response{
		Message:    "Response submitted successfully",
		ResponseID: created.ID.String(),
	})
}
