package export

import (
	"context"
	"strings"
	"time"

	"feedback-platform/backend/internal/form/shared"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Service struct {
	logger *zap.Logger
	tracer trace.Tracer
}

func NewService(logger *zap.Logger) *Service {
	return &Service{
		logger: logger,
		tracer: otel.Tracer("export/service"),
	}
}

// quote wraps a field in double quotes unconditionally, doubling any embedded
// quote. Forced quoting keeps commas and newlines inside answers intact in
// every spreadsheet import.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// header returns the column labels: response identity, submission instant,
// then one column per question prompt in form order.
func header(questions []shared.Question) []string {
	columns := make([]string, 0, len(questions)+2)
	columns = append(columns, "Response ID", "Submitted At")
	for _, q := range questions {
		columns = append(columns, q.Prompt)
	}
	return columns
}

// row flattens one response into cells aligned with header. Unanswered
// questions yield empty cells.
func row(questions []shared.Question, resp shared.ResponseData) []string {
	cells := make([]string, 0, len(questions)+2)
	cells = append(cells, resp.ID.String(), resp.SubmittedAt.UTC().Format(time.RFC3339))
	for _, q := range questions {
		answer, ok := shared.FindAnswer(resp.Answers, q.ID)
		if !ok {
			cells = append(cells, "")
			continue
		}
		cells = append(cells, answer.Value)
	}
	return cells
}

// CSV renders the full response set as comma-separated text, one line per
// response under a header line. Every field is quoted and lines are joined
// with a bare newline, without a trailing one.
func (s *Service) CSV(ctx context.Context, questions []shared.Question, responses []shared.ResponseData) ([]byte, error) {
	_, span := s.tracer.Start(ctx, "CSV")
	defer span.End()

	lines := make([]string, 0, len(responses)+1)

	quoted := make([]string, 0, len(questions)+2)
	for _, column := range header(questions) {
		quoted = append(quoted, quote(column))
	}
	lines = append(lines, strings.Join(quoted, ","))

	for _, resp := range responses {
		cells := row(questions, resp)
		quoted = quoted[:0]
		for _, cell := range cells {
			quoted = append(quoted, quote(cell))
		}
		lines = append(lines, strings.Join(quoted, ","))
	}

	return []byte(strings.Join(lines, "\n")), nil
}

// Filename derives a download name from the form title: non-alphanumeric runs
// collapse to single dashes.
func Filename(title string, extension string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "form"
	}

	return "form-responses-" + name + "." + extension
}
