package shared

import (
	"time"

	"github.com/google/uuid"
)

// ResponseData is the engine-facing snapshot of one submitted response:
// identifier, owning form, server-assigned submission instant, and the
// decoded answer document. Aggregation and export operate on slices of these,
// always ordered newest submission first.
type ResponseData struct {
	ID          uuid.UUID
	FormID      uuid.UUID
	SubmittedAt time.Time
	Answers     []Answer
}
