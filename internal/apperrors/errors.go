package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of another resource
// (e.g. a second open shift for the same cashier).
var ErrConflict = errors.New("conflict")

// ErrInvalidState indicates that a status precondition of a state transition did not hold.
var ErrInvalidState = errors.New("invalid state")

// ErrOperationFailed wraps unexpected storage or query failures. The cause is logged, never shown.
var ErrOperationFailed = errors.New("operation failed")

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// AppError carries an HTTP-ish code, a caller-facing message and an optional cause.
// errors.Is matches it against its kind (one of the sentinels above).
type AppError struct {
	Code    int
	Message string
	Err     error
	kind    error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.kind != nil {
		return e.kind.Error()
	}
	return "application error"
}

// Unwrap exposes the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind of this error.
func (e *AppError) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

// Kind returns the sentinel this error is classified as.
func (e *AppError) Kind() error {
	return e.kind
}

// NewAppError builds an AppError whose kind is derived from the code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err, kind: kindForCode(code)}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, kind: ErrNotFound}
}

func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, kind: ErrValidation}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, kind: ErrConflict}
}

// NewInvalidStateError is returned by state machine guards; the message names the current status.
func NewInvalidStateError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, kind: ErrInvalidState}
}

// NewOperationFailedError hides cause behind a generic message.
func NewOperationFailedError(message string, cause error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: cause, kind: ErrOperationFailed}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, kind: ErrForbidden}
}

func kindForCode(code int) error {
	switch code {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	default:
		return ErrOperationFailed
	}
}

// IsGuardError reports whether err is an expected, caller-actionable failure
// that should be surfaced as-is instead of being wrapped.
func IsGuardError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrUnauthorized)
}

// HTTPStatus maps an error to the response status the handlers use.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate), errors.Is(err, ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
