package formbuilder

import (
	"context"
	"testing"

	"feedback-platform/backend/internal/form"
	"feedback-platform/backend/internal/form/shared"
	"feedback-platform/backend/test/testdata"
	"feedback-platform/backend/test/testdata/dbbuilder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
)

type Builder struct {
	t  *testing.T
	db dbbuilder.DBTX
}

func New(t *testing.T, db dbbuilder.DBTX) *Builder {
	return &Builder{t: t, db: db}
}

func (b Builder) Queries() *form.Queries {
	return form.New(b.db)
}

// Create inserts a form row. An owner is required because the created_by
// column carries a foreign key; set one with WithOwner.
func (b Builder) Create(opts ...Option) form.Form {
	queries := b.Queries()

	p := &FactoryParams{
		Title:       testdata.RandomTitle(),
		Description: testdata.RandomDescription(),
		Questions: []shared.Question{
			testdata.TextQuestion(true),
			testdata.TextQuestion(false),
			testdata.ChoiceQuestion(true, "Good", "Okay", "Bad"),
		},
		PublicID: uuid.New(),
	}
	for _, opt := range opts {
		opt(p)
	}

	require.NotEqual(b.t, uuid.Nil, p.CreatedBy, "form owner is required")

	encoded, err := shared.EncodeQuestions(p.Questions)
	require.NoError(b.t, err, "encode question document")

	created, err := queries.Create(context.Background(), form.CreateParams{
		Title:       p.Title,
		Description: pgtype.Text{String: p.Description, Valid: p.Description != ""},
		Questions:   encoded,
		CreatedBy:   p.CreatedBy,
		PublicID:    p.PublicID,
	})
	require.NoError(b.t, err, "create form row")

	return created
}
