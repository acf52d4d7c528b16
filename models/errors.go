package models

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")

	// UnprocessableEntityError is rendered with the http status code 422
	UnprocessableEntityError = errors.New("unprocessable entity")
)

// Submission validation errors
var (
	ErrMalformedTestData = errors.Wrap(BadParameterError, "malformed test data")
	ErrInvalidDate       = errors.Wrap(BadParameterError, "invalid date or datetime string")
	ErrInvalidEncoding   = errors.Wrap(BadParameterError, "invalid base64 payload")
	ErrConstantMismatch  = errors.Wrap(BadParameterError, "submitted value does not match the test's constant value")
	ErrTemporalOrder     = errors.Wrap(BadParameterError, "work_completed must not be before work_started")
)

// Test list definition errors
var (
	ErrDuplicateTestSlug  = errors.Wrap(BadParameterError, "duplicate test slug in test list")
	ErrSublistTooDeep     = errors.Wrap(BadParameterError, "sublists may not contain sublists")
	ErrInvalidSlug        = errors.Wrap(BadParameterError, "slug is not a valid identifier")
	ErrInvalidFormat      = errors.Wrap(BadParameterError, "numeric format string is not well formed")
	ErrProcedureRequired  = errors.Wrap(BadParameterError, "calculation procedure is required for this test type")
	ErrConstantRequired   = errors.Wrap(BadParameterError, "constant tests require a constant value")
	ErrChoicesRequired    = errors.Wrap(BadParameterError, "multiple choice tests require at least two choices")
	ErrStatusNotFound     = errors.Wrap(NotFoundError, "test instance status not found")
	ErrNoDefaultStatus    = errors.New("no default test instance status is configured")
	ErrTestListNotFound   = errors.Wrap(NotFoundError, "test list not found")
	ErrCollectionNotFound = errors.Wrap(NotFoundError, "unit test collection not found")
)

// Composite resolution errors
const ErrMsgCyclicTestDependency = "Cyclic test dependency"

// ValidationError carries the complete list of problems found in a submission
// so the caller can fix everything in one round-trip.
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages ...string) ValidationError {
	return ValidationError{Messages: messages}
}

func (e ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func (e ValidationError) Unwrap() error {
	return BadParameterError
}
