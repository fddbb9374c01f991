package form

import (
	"context"
	"net/http"
	"time"

	"feedback-platform/backend/internal"
	"feedback-platform/backend/internal/form/shared"
	"feedback-platform/backend/internal/user"

	handlerutil "github.com/NYCU-SDC/summer/pkg/handler"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type QuestionRequest struct {
	ID       string   `json:"id" validate:"omitempty,uuid"`
	Type     string   `json:"type" validate:"required,question_type"`
	Question string   `json:"question" validate:"required"`
	Required *bool    `json:"required"`
	Options  []string `json:"options"`
}

// toQuestion converts the request DTO into the stored question shape. The
// required flag defaults to true when omitted, matching the authoring UI.
func (q QuestionRequest) toQuestion(sanitizer *bluemonday.Policy) shared.Question {
	required := true
	if q.Required != nil {
		required = *q.Required
	}

	options := make([]string, 0, len(q.Options))
	for _, option := range q.Options {
		options = append(options, sanitizer.Sanitize(option))
	}
	if len(options) == 0 {
		options = nil
	}

	return shared.Question{
		Type:     shared.QuestionType(q.Type),
		Prompt:   sanitizer.Sanitize(q.Question),
		Required: required,
		Options:  options,
	}
}

type Request struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Questions   []QuestionRequest `json:"questions" validate:"required,min=3,max=5,dive"`
}

type UpdateRequest struct {
	Title       *string           `json:"title" validate:"omitempty,min=1"`
	Description *string           `json:"description"`
	Questions   []QuestionRequest `json:"questions" validate:"omitempty,min=3,max=5,dive"`
	IsActive    *bool             `json:"isActive"`
}

type QuestionResponse struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

type Response struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Questions     []QuestionResponse `json:"questions"`
	PublicID      string             `json:"publicId"`
	IsActive      bool               `json:"isActive"`
	ResponseCount int64              `json:"responseCount"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// PublicResponse is the respondent-facing view: no owner, no counters.
type PublicResponse struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Questions   []QuestionResponse `json:"questions"`
	PublicID    string             `json:"publicId"`
}

func toQuestionResponses(questions []shared.Question) []QuestionResponse {
	responses := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		responses[i] = QuestionResponse{
			ID:       q.ID.String(),
			Type:     string(q.Type),
			Question: q.Prompt,
			Required: q.Required,
			Options:  q.Options,
		}
	}
	return responses
}

// ToResponse converts a form Detail into the owner-facing API shape.
func ToResponse(detail Detail) Response {
	return Response{
		ID:            detail.Form.ID.String(),
		Title:         detail.Form.Title,
		Description:   detail.Form.Description.String,
		Questions:     toQuestionResponses(detail.Questions),
		PublicID:      detail.Form.PublicID.String(),
		IsActive:      detail.Form.IsActive,
		ResponseCount: detail.ResponseCount,
		CreatedAt:     detail.Form.CreatedAt.Time,
		UpdatedAt:     detail.Form.UpdatedAt.Time,
	}
}

func ToPublicResponse(detail Detail) PublicResponse {
	return PublicResponse{
		Title:       detail.Form.Title,
		Description: detail.Form.Description.String,
		Questions:   toQuestionResponses(detail.Questions),
		PublicID:    detail.Form.PublicID.String(),
	}
}

type Store interface {
	Create(ctx context.Context, req Request, userID uuid.UUID) (Detail, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest, userID uuid.UUID) (Detail, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	GetByIDAndOwner(ctx context.Context, id uuid.UUID, userID uuid.UUID) (Detail, error)
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (Detail, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]Detail, error)
}

type Handler struct {
	logger        *zap.Logger
	tracer        trace.Tracer
	validator     *validator.Validate
	problemWriter *problem.HttpWriter
	store         Store
}

func NewHandler(
	logger *zap.Logger,
	validator *validator.Validate,
	problemWriter *problem.HttpWriter,
	store Store,
) *Handler {
	return &Handler{
		logger:        logger,
		tracer:        otel.Tracer("form/handler"),
		validator:     validator,
		problemWriter: problemWriter,
		store:         store,
	}
}

func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "CreateHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	var req Request
	if err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &req); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	currentUser, ok := user.GetFromContext(traceCtx)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrNoUserInContext, logger)
		return
	}

	newForm, err := h.store.Create(traceCtx, req, currentUser.ID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusCreated, ToResponse(newForm))
}

func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "ListHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	currentUser, ok := user.GetFromContext(traceCtx)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrNoUserInContext, logger)
		return
	}

	forms, err := h.store.ListByOwner(traceCtx, currentUser.ID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	responses := make([]Response, len(forms))
	for i, detail := range forms {
		responses[i] = ToResponse(detail)
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, responses)
}

func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "GetHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	idStr := r.PathValue("formId")
	id, err := handlerutil.ParseUUID(idStr)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	currentUser, ok := user.GetFromContext(traceCtx)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrNoUserInContext, logger)
		return
	}

	detail, err := h.store.GetByIDAndOwner(traceCtx, id, currentUser.ID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, ToResponse(detail))
}

func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "UpdateHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	idStr := r.PathValue("formId")
	id, err := handlerutil.ParseUUID(idStr)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	var req UpdateRequest
	if err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &req); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	currentUser, ok := user.GetFromContext(traceCtx)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrNoUserInContext, logger)
		return
	}

	detail, err := h.store.Update(traceCtx, id, req, currentUser.ID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, ToResponse(detail))
}

func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "DeleteHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	idStr := r.PathValue("formId")
	id, err := handlerutil.ParseUUID(idStr)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	currentUser, ok := user.GetFromContext(traceCtx)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrNoUserInContext, logger)
		return
	}

	err = h.store.Delete(traceCtx, id, currentUser.ID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusNoContent, nil)
}

// GetPublicHandler serves the respondent view of an active form. No
// authentication is required.
func (h *Handler) GetPublicHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "GetPublicHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	publicIDStr := r.PathValue("publicId")
	publicID, err := handlerutil.ParseUUID(publicIDStr)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	detail, err := h.store.GetByPublicID(traceCtx, publicID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, ToPublicResponse(detail))
}
