package userbuilder

import (
	"context"
	"testing"

	"feedback-platform/backend/internal/user"
	"feedback-platform/backend/test/testdata"
	"feedback-platform/backend/test/testdata/dbbuilder"

	"github.com/stretchr/testify/require"
)

// defaultPasswordHash is a bcrypt digest of "password"; builder-created users
// never log in, the column is just non-null.
const defaultPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type Option func(*FactoryParams)

type FactoryParams struct {
	Name         string
	Email        string
	PasswordHash string
}

func WithName(name string) Option {
	return func(p *FactoryParams) { p.Name = name }
}

func WithEmail(email string) Option {
	return func(p *FactoryParams) { p.Email = email }
}

type Builder struct {
	t  *testing.T
	db dbbuilder.DBTX
}

func New(t *testing.T, db dbbuilder.DBTX) *Builder {
	return &Builder{t: t, db: db}
}

func (b Builder) Queries() *user.Queries {
	return user.New(b.db)
}

func (b Builder) Create(opts ...Option) user.User {
	queries := b.Queries()

	p := &FactoryParams{
		Name:         testdata.RandomName(),
		Email:        testdata.RandomEmail(),
		PasswordHash: defaultPasswordHash,
	}
	for _, opt := range opts {
		opt(p)
	}

	created, err := queries.Create(context.Background(), user.CreateParams{
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
	})
	require.NoError(b.t, err, "create user row")

	return created
}
