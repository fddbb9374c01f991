package jwt

import (
	"context"
	"testing"
	"time"

	"feedback-platform/backend/internal"
	"feedback-platform/backend/internal/user"
	"feedback-platform/backend/test/testdata"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, secret string, expiration time.Duration) *Service {
	t.Helper()

	return &Service{
		logger:                zap.NewNop(),
		secret:                secret,
		accessTokenExpiration: expiration,
		tracer:                noop.NewTracerProvider().Tracer("test"),
	}
}

func testUser() user.User {
	return user.User{
		ID:    uuid.New(),
		Name:  testdata.RandomName(),
		Email: testdata.RandomEmail(),
	}
}

func TestNewAndParse_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "test-secret", time.Hour)
	u := testUser()

	token, err := svc.New(context.Background(), u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.Parse(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, u.ID, userID)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := newTestService(t, "secret-a", time.Hour)
	verifier := newTestService(t, "secret-b", time.Hour)

	token, err := issuer.New(context.Background(), testUser())
	require.NoError(t, err)

	_, err = verifier.Parse(context.Background(), token)
	require.ErrorIs(t, err, internal.ErrInvalidJWTToken)
}

func TestParse_ExpiredToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "test-secret", -time.Minute)

	token, err := svc.New(context.Background(), testUser())
	require.NoError(t, err)

	_, err = svc.Parse(context.Background(), token)
	require.ErrorIs(t, err, internal.ErrInvalidJWTToken)
}

func TestParse_WrongIssuer(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "test-secret", time.Hour)
	u := testUser()

	now := time.Now()
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	signed, err := foreign.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Parse(context.Background(), signed)
	require.ErrorIs(t, err, internal.ErrInvalidJWTToken)
}

func TestParse_Garbage(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "test-secret", time.Hour)

	_, err := svc.Parse(context.Background(), "not-a-token")
	require.ErrorIs(t, err, internal.ErrInvalidJWTToken)
}
