package summary

import (
	"context"
	"strconv"
	"time"

	"feedback-platform/backend/internal"
	"feedback-platform/backend/internal/form/shared"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TextSampleSize caps how many individual text answers a question summary
// carries. TotalResponses still reflects the full count.
const TextSampleSize = 20

// QuestionSummary aggregates every answer given to a single question.
// Multiple-choice questions report per-option tallies over the declared
// options only; text questions report the latest answers verbatim.
type QuestionSummary struct {
	QuestionID     uuid.UUID           `json:"questionId"`
	Question       string              `json:"question"`
	Type           shared.QuestionType `json:"type"`
	TotalResponses int                 `json:"totalResponses"`
	Options        []string            `json:"options,omitempty"`
	OptionCounts   map[string]int      `json:"optionCounts,omitempty"`
	Responses      []string            `json:"responses,omitempty"`
	ResponseRate   string              `json:"responseRate"`
}

// Timeframe brackets the submission instants of the response set. Both ends
// are null while the form has no responses; the object itself is always
// present in the payload.
type Timeframe struct {
	Earliest *time.Time `json:"earliest"`
	Latest   *time.Time `json:"latest"`
}

// Summary is the aggregate view of a form's collected responses.
type Summary struct {
	TotalResponses    int               `json:"totalResponses"`
	QuestionSummaries []QuestionSummary `json:"questionSummaries"`
	ResponseTimeframe Timeframe         `json:"responseTimeframe"`
}

type Service struct {
	logger *zap.Logger
	tracer trace.Tracer
}

func NewService(logger *zap.Logger) *Service {
	return &Service{
		logger: logger,
		tracer: otel.Tracer("summary/service"),
	}
}

// rate renders answered/total as a percentage with one decimal place. A form
// with no responses reports the literal "0".
func rate(answered, total int) string {
	if total == 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(answered)/float64(total)*100, 'f', 1, 64)
}

// Compute aggregates responses against the form's question list. Responses
// must all belong to formID and arrive newest submission first; the text
// samples and the timeframe both rely on that ordering.
func (s *Service) Compute(ctx context.Context, formID uuid.UUID, questions []shared.Question, responses []shared.ResponseData) (Summary, error) {
	traceCtx, span := s.tracer.Start(ctx, "Compute")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	if err := s.Validate(formID, responses); err != nil {
		span.RecordError(err)
		return Summary{}, err
	}

	total := len(responses)

	summaries := make([]QuestionSummary, 0, len(questions))
	for _, q := range questions {
		qs := QuestionSummary{
			QuestionID: q.ID,
			Question:   q.Prompt,
			Type:       q.Type,
		}

		answered := 0
		switch q.Type {
		case shared.QuestionTypeMultipleChoice:
			counts := make(map[string]int, len(q.Options))
			for _, option := range q.Options {
				counts[option] = 0
			}
			for _, resp := range responses {
				answer, ok := shared.FindAnswer(resp.Answers, q.ID)
				if !ok || answer.Value == "" {
					continue
				}
				answered++
				// Values outside the declared options are counted toward
				// the answer total but get no bucket of their own.
				if _, declared := counts[answer.Value]; declared {
					counts[answer.Value]++
				}
			}
			qs.Options = q.Options
			qs.OptionCounts = counts
		case shared.QuestionTypeText:
			var sample []string
			for _, resp := range responses {
				answer, ok := shared.FindAnswer(resp.Answers, q.ID)
				if !ok || answer.Value == "" {
					continue
				}
				answered++
				if len(sample) < TextSampleSize {
					sample = append(sample, answer.Value)
				}
			}
			qs.Responses = sample
		default:
			logger.Warn("skipping question with unknown type",
				zap.String("question_id", q.ID.String()),
				zap.String("type", string(q.Type)))
			continue
		}

		qs.TotalResponses = answered
		qs.ResponseRate = rate(answered, total)
		summaries = append(summaries, qs)
	}

	result := Summary{
		TotalResponses:    total,
		QuestionSummaries: summaries,
	}

	if total > 0 {
		earliest := responses[total-1].SubmittedAt
		latest := responses[0].SubmittedAt
		result.ResponseTimeframe = Timeframe{
			Earliest: &earliest,
			Latest:   &latest,
		}
	}

	return result, nil
}

// Validate confirms every response in the set was collected for formID. A
// mismatch indicates the caller paired responses with the wrong form.
func (s *Service) Validate(formID uuid.UUID, responses []shared.ResponseData) error {
	for _, resp := range responses {
		if resp.FormID != formID {
			return internal.ErrResponseFormMismatch
		}
	}

	return nil
}
