package user

import (
	"context"
	"testing"

	"feedback-platform/backend/internal"
	"feedback-platform/backend/test/testdata"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type mockQuerier struct {
	mock.Mock
}

func (m *mockQuerier) Create(ctx context.Context, arg CreateParams) (User, error) {
	args := m.Called(ctx, arg)
	row, _ := args.Get(0).(User)
	return row, args.Error(1)
}

func (m *mockQuerier) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockQuerier) GetByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	row, _ := args.Get(0).(User)
	return row, args.Error(1)
}

func (m *mockQuerier) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(User)
	return row, args.Error(1)
}

func newTestService(t *testing.T) (*Service, *mockQuerier) {
	t.Helper()

	q := &mockQuerier{}
	return &Service{
		logger:  zap.NewNop(),
		queries: q,
		tracer:  noop.NewTracerProvider().Tracer("test"),
	}, q
}

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()

	svc, q := newTestService(t)
	email := testdata.RandomEmail()

	q.On("ExistsByEmail", mock.Anything, email).Return(false, nil)
	q.On("Create", mock.Anything, mock.MatchedBy(func(arg CreateParams) bool {
		if arg.PasswordHash == "hunter2secret" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(arg.PasswordHash), []byte("hunter2secret")) == nil
	})).Return(User{ID: uuid.New(), Email: email}, nil)

	_, err := svc.Register(context.Background(), testdata.RandomName(), email, "hunter2secret")
	require.NoError(t, err)

	q.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, q := newTestService(t)
	email := testdata.RandomEmail()

	q.On("ExistsByEmail", mock.Anything, email).Return(true, nil)

	_, err := svc.Register(context.Background(), testdata.RandomName(), email, "hunter2secret")
	require.ErrorIs(t, err, internal.ErrEmailAlreadyExists)

	q.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := User{ID: uuid.New(), Email: testdata.RandomEmail(), PasswordHash: string(hash)}

	type testCase struct {
		name        string
		email       string
		password    string
		setup       func(q *mockQuerier)
		expectedErr error
	}

	cases := []testCase{
		{
			name:     "valid credentials",
			email:    stored.Email,
			password: "correct-password",
			setup: func(q *mockQuerier) {
				q.On("GetByEmail", mock.Anything, stored.Email).Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			email:    stored.Email,
			password: "wrong-password",
			setup: func(q *mockQuerier) {
				q.On("GetByEmail", mock.Anything, stored.Email).Return(stored, nil)
			},
			expectedErr: internal.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "correct-password",
			setup: func(q *mockQuerier) {
				q.On("GetByEmail", mock.Anything, "nobody@example.com").Return(User{}, pgx.ErrNoRows)
			},
			expectedErr: internal.ErrInvalidCredentials,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, q := newTestService(t)
			tc.setup(q)

			currentUser, err := svc.Authenticate(context.Background(), tc.email, tc.password)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, stored.ID, currentUser.ID)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	t.Parallel()

	svc, q := newTestService(t)
	id := uuid.New()

	q.On("GetByID", mock.Anything, id).Return(User{}, pgx.ErrNoRows)

	_, err := svc.GetByID(context.Background(), id)
	require.ErrorIs(t, err, internal.ErrUserNotFound)
}
