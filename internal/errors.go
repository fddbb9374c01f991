package internal

import (
	"errors"

	"github.com/NYCU-SDC/summer/pkg/problem"
)

var (
	// Auth Errors
	ErrUnauthorizedError   = errors.New("unauthorized error")
	ErrInternalServerError = errors.New("internal server error")
	ErrInvalidCredentials  = errors.New("invalid email or password")

	// JWT Authentication Errors
	ErrMissingAuthHeader       = errors.New("missing access token")
	ErrInvalidAuthHeaderFormat = errors.New("invalid access token")
	ErrInvalidJWTToken         = errors.New("invalid JWT token")

	// User Errors
	ErrUserNotFound       = errors.New("user not found")
	ErrNoUserInContext    = errors.New("no user found in request context")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Form Errors
	// ErrFormNotFound covers an absent form, a form owned by another user,
	// and an inactive form on public access. The three cases are deliberately
	// indistinguishable so an unauthorized caller cannot confirm existence.
	ErrFormNotFound          = errors.New("form not found")
	ErrInvalidFormDefinition = errors.New("invalid form definition")

	// Submission Errors
	ErrQuestionNotFound = errors.New("answer references a question that does not exist on this form")
	ErrQuestionRequired = errors.New("all required questions must be answered")
	ErrInvalidChoice    = errors.New("answer is not among the question's declared options")
	ErrEmptySubmission  = errors.New("submission must contain at least one answer")

	// Response Errors
	ErrResponseFormMismatch = errors.New("response does not belong to the supplied form")

	// Request Errors
	ErrInvalidRequestBody    = errors.New("invalid request body")
	ErrInvalidPageParameter  = errors.New("invalid page parameter")
	ErrInvalidLimitParameter = errors.New("invalid limit parameter")
	ErrInvalidExportFormat   = errors.New("invalid export format")
)

func NewProblemWriter() *problem.HttpWriter {
	return problem.NewWithMapping(ErrorHandler)
}

func ErrorHandler(err error) problem.Problem {
	switch {
	// Auth Errors
	case errors.Is(err, ErrUnauthorizedError):
		return problem.NewUnauthorizedProblem("unauthorized error")
	case errors.Is(err, ErrInternalServerError):
		return problem.NewInternalServerProblem("internal server error")
	case errors.Is(err, ErrInvalidCredentials):
		return problem.NewUnauthorizedProblem("invalid email or password")

	// JWT Authentication Errors
	case errors.Is(err, ErrMissingAuthHeader):
		return problem.NewUnauthorizedProblem("missing access token")
	case errors.Is(err, ErrInvalidAuthHeaderFormat):
		return problem.NewUnauthorizedProblem("invalid access token")
	case errors.Is(err, ErrInvalidJWTToken):
		return problem.NewUnauthorizedProblem("invalid JWT token")

	// User Errors
	case errors.Is(err, ErrUserNotFound):
		return problem.NewNotFoundProblem("user not found")
	case errors.Is(err, ErrNoUserInContext):
		return problem.NewUnauthorizedProblem("no user found in request context")
	case errors.Is(err, ErrEmailAlreadyExists):
		return problem.NewValidateProblem("email already exists")

	// Form Errors
	case errors.Is(err, ErrFormNotFound):
		return problem.NewNotFoundProblem("form not found")
	case errors.Is(err, ErrInvalidFormDefinition):
		return problem.NewValidateProblem(err.Error())

	// Submission Errors
	case errors.Is(err, ErrQuestionNotFound):
		return problem.NewValidateProblem("answer references a question that does not exist on this form")
	case errors.Is(err, ErrQuestionRequired):
		return problem.NewValidateProblem("all required questions must be answered")
	case errors.Is(err, ErrInvalidChoice):
		return problem.NewValidateProblem("answer is not among the question's declared options")
	case errors.Is(err, ErrEmptySubmission):
		return problem.NewValidateProblem("submission must contain at least one answer")

	// Response Errors
	case errors.Is(err, ErrResponseFormMismatch):
		return problem.NewInternalServerProblem("response does not belong to the supplied form")

	// Request Errors
	case errors.Is(err, ErrInvalidRequestBody):
		return problem.NewBadRequestProblem("invalid request body")
	case errors.Is(err, ErrInvalidPageParameter):
		return problem.NewBadRequestProblem("invalid page parameter")
	case errors.Is(err, ErrInvalidLimitParameter):
		return problem.NewBadRequestProblem("invalid limit parameter")
	case errors.Is(err, ErrInvalidExportFormat):
		return problem.NewBadRequestProblem("invalid export format")
	}
	return problem.Problem{}
}
