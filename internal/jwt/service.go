package jwt

import (
	"context"
	"errors"
	"time"

	"feedback-platform/backend/internal"
	"feedback-platform/backend/internal/user"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const Issuer = "feedback-platform"

type Service struct {
	logger                *zap.Logger
	secret                string
	accessTokenExpiration time.Duration
	tracer                trace.Tracer
}

func NewService(logger *zap.Logger, secret string, accessTokenExpiration time.Duration) *Service {
	return &Service{
		logger:                logger,
		secret:                secret,
		accessTokenExpiration: accessTokenExpiration,
		tracer:                otel.Tracer("jwt/service"),
	}
}

type claims struct {
	Name  string
	Email string
	jwt.RegisteredClaims
}

// New issues a signed HS256 access token for the given user. The subject
// claim carries the user id.
func (s Service) New(ctx context.Context, u user.User) (string, error) {
	traceCtx, span := s.tracer.Start(ctx, "New")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	now := time.Now()
	tokenClaims := &claims{
		Name:  u.Name,
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    Issuer,
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		logger.Error("Failed to sign access token", zap.Error(err))
		span.RecordError(err)
		return "", internal.ErrInternalServerError
	}

	return signed, nil
}

// Parse validates a token string and returns the user id it was issued for.
func (s Service) Parse(ctx context.Context, tokenString string) (uuid.UUID, error) {
	_, span := s.tracer.Start(ctx, "Parse")
	defer span.End()

	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secret), nil
	}, jwt.WithIssuer(Issuer))
	if err != nil {
		return uuid.Nil, internal.ErrInvalidJWTToken
	}

	tokenClaims, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return uuid.Nil, internal.ErrInvalidJWTToken
	}

	userID, err := uuid.Parse(tokenClaims.Subject)
	if err != nil {
		return uuid.Nil, internal.ErrInvalidJWTToken
	}

	return userID, nil
}
