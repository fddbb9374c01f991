package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"feedback-platform/backend/internal"
	"feedback-platform/backend/internal/form/shared"
	"feedback-platform/backend/test/testdata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	return &Service{
		logger: zap.NewNop(),
		tracer: noop.NewTracerProvider().Tracer("test"),
	}
}

func responseAt(formID uuid.UUID, submittedAt time.Time, answers ...shared.Answer) shared.ResponseData {
	return shared.ResponseData{
		ID:          uuid.New(),
		FormID:      formID,
		SubmittedAt: submittedAt,
		Answers:     answers,
	}
}

func TestCompute_NoResponses(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	questions := []shared.Question{
		testdata.TextQuestion(true),
		testdata.ChoiceQuestion(true, "Good", "Bad"),
		testdata.TextQuestion(false),
	}

	result, err := svc.Compute(context.Background(), uuid.New(), questions, nil)
	require.NoError(t, err)

	require.Equal(t, 0, result.TotalResponses)
	require.Nil(t, result.ResponseTimeframe.Earliest)
	require.Nil(t, result.ResponseTimeframe.Latest)
	require.Len(t, result.QuestionSummaries, 3)
	for _, qs := range result.QuestionSummaries {
		require.Equal(t, 0, qs.TotalResponses)
		require.Equal(t, "0", qs.ResponseRate)
	}

	choice := result.QuestionSummaries[1]
	require.Equal(t, map[string]int{"Good": 0, "Bad": 0}, choice.OptionCounts)
}

func TestCompute_NoResponses_TimeframeObjectPresent(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	questions := []shared.Question{
		testdata.TextQuestion(true),
		testdata.TextQuestion(true),
		testdata.TextQuestion(true),
	}

	result, err := svc.Compute(context.Background(), uuid.New(), questions, nil)
	require.NoError(t, err)

	// The timeframe object is always serialized, with null ends at zero
	// responses, so clients never branch on a missing key.
	encoded, err := json.Marshal(result)
	require.NoError(t, err)
	require.Contains(t, string(encoded), `"responseTimeframe":{"earliest":null,"latest":null}`)
}

func TestCompute_MixedQuestions(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	formID := uuid.New()

	comments := testdata.TextQuestion(false)
	rating := testdata.ChoiceQuestion(true, "Good", "Bad")
	name := testdata.TextQuestion(true)
	questions := []shared.Question{comments, rating, name}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Newest first, as the store returns them.
	responses := []shared.ResponseData{
		responseAt(formID, base.Add(2*time.Hour),
			shared.Answer{QuestionID: rating.ID, Value: "Good"},
			shared.Answer{QuestionID: name.ID, Value: "Carol"},
		),
		responseAt(formID, base.Add(time.Hour),
			shared.Answer{QuestionID: comments.ID, Value: "Loved it"},
			shared.Answer{QuestionID: rating.ID, Value: "Good"},
			shared.Answer{QuestionID: name.ID, Value: "Bob"},
		),
		responseAt(formID, base,
			shared.Answer{QuestionID: rating.ID, Value: "Bad"},
			shared.Answer{QuestionID: name.ID, Value: "Alice"},
		),
	}

	result, err := svc.Compute(context.Background(), formID, questions, responses)
	require.NoError(t, err)

	require.Equal(t, 3, result.TotalResponses)
	require.NotNil(t, result.ResponseTimeframe.Earliest)
	require.NotNil(t, result.ResponseTimeframe.Latest)
	require.Equal(t, base, *result.ResponseTimeframe.Earliest)
	require.Equal(t, base.Add(2*time.Hour), *result.ResponseTimeframe.Latest)

	commentsSummary := result.QuestionSummaries[0]
	require.Equal(t, 1, commentsSummary.TotalResponses)
	require.Equal(t, "33.3", commentsSummary.ResponseRate)
	require.Equal(t, []string{"Loved it"}, commentsSummary.Responses)

	ratingSummary := result.QuestionSummaries[1]
	require.Equal(t, 3, ratingSummary.TotalResponses)
	require.Equal(t, "100.0", ratingSummary.ResponseRate)
	require.Equal(t, map[string]int{"Good": 2, "Bad": 1}, ratingSummary.OptionCounts)

	nameSummary := result.QuestionSummaries[2]
	require.Equal(t, []string{"Carol", "Bob", "Alice"}, nameSummary.Responses)
}

func TestCompute_UndeclaredOptionExcluded(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	formID := uuid.New()

	rating := testdata.ChoiceQuestion(false, "Good", "Bad")
	questions := []shared.Question{rating}

	now := time.Now().UTC()
	responses := []shared.ResponseData{
		responseAt(formID, now, shared.Answer{QuestionID: rating.ID, Value: "Good"}),
		responseAt(formID, now.Add(-time.Minute), shared.Answer{QuestionID: rating.ID, Value: "Mediocre"}),
	}

	result, err := svc.Compute(context.Background(), formID, questions, responses)
	require.NoError(t, err)

	summary := result.QuestionSummaries[0]
	require.Equal(t, 2, summary.TotalResponses)
	require.Equal(t, map[string]int{"Good": 1, "Bad": 0}, summary.OptionCounts)

	counted := 0
	for _, n := range summary.OptionCounts {
		counted += n
	}
	require.LessOrEqual(t, counted, summary.TotalResponses)
}

func TestCompute_TextSampleCapped(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	formID := uuid.New()

	q := testdata.TextQuestion(true)
	questions := []shared.Question{q}

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	responses := make([]shared.ResponseData, 0, 25)
	for i := 25; i >= 1; i-- {
		responses = append(responses, responseAt(formID, base.Add(time.Duration(i)*time.Minute),
			shared.Answer{QuestionID: q.ID, Value: fmt.Sprintf("answer %d", i)},
		))
	}

	result, err := svc.Compute(context.Background(), formID, questions, responses)
	require.NoError(t, err)

	summary := result.QuestionSummaries[0]
	require.Equal(t, 25, summary.TotalResponses)
	require.Len(t, summary.Responses, TextSampleSize)
	require.Equal(t, "answer 25", summary.Responses[0])
	require.Equal(t, "answer 6", summary.Responses[TextSampleSize-1])
	require.Equal(t, "100.0", summary.ResponseRate)
}

func TestCompute_EmptyAnswerNotCounted(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	formID := uuid.New()

	q := testdata.TextQuestion(false)
	questions := []shared.Question{q}

	responses := []shared.ResponseData{
		responseAt(formID, time.Now(), shared.Answer{QuestionID: q.ID, Value: ""}),
		responseAt(formID, time.Now().Add(-time.Minute), shared.Answer{QuestionID: q.ID, Value: "hello"}),
	}

	result, err := svc.Compute(context.Background(), formID, questions, responses)
	require.NoError(t, err)

	summary := result.QuestionSummaries[0]
	require.Equal(t, 1, summary.TotalResponses)
	require.Equal(t, []string{"hello"}, summary.Responses)
	require.Equal(t, "50.0", summary.ResponseRate)
}

func TestCompute_RejectsForeignResponses(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	formID := uuid.New()

	q := testdata.TextQuestion(true)
	questions := []shared.Question{q}

	responses := []shared.ResponseData{
		responseAt(formID, time.Now(), shared.Answer{QuestionID: q.ID, Value: "mine"}),
		responseAt(uuid.New(), time.Now().Add(-time.Minute), shared.Answer{QuestionID: q.ID, Value: "someone else's"}),
	}

	_, err := svc.Compute(context.Background(), formID, questions, responses)
	require.ErrorIs(t, err, internal.ErrResponseFormMismatch)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	formID := uuid.New()

	q := testdata.TextQuestion(true)

	ok := []shared.ResponseData{
		responseAt(formID, time.Now(), shared.Answer{QuestionID: q.ID, Value: "fine"}),
	}
	require.NoError(t, svc.Validate(formID, ok))

	foreign := []shared.ResponseData{
		responseAt(uuid.New(), time.Now(), shared.Answer{QuestionID: q.ID, Value: "stray"}),
	}
	require.ErrorIs(t, svc.Validate(formID, foreign), internal.ErrResponseFormMismatch)
}
