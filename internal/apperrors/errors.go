package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrPeriodNotFound indicates that no payroll period exists for the requested organization/month.
var ErrPeriodNotFound = errors.New("payroll period not found")

// ErrInvalidEmployeeIDs indicates that a payroll request referenced employees that do not
// exist or are not active members of the organization.
var ErrInvalidEmployeeIDs = errors.New("invalid employee IDs provided")

// AppError carries an HTTP-ish status code alongside a message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a generic AppError with the given status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewConflictError creates an AppError representing a uniqueness conflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrDuplicate}
}

// NewValidationFailedError creates an AppError for invalid input.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewNotFoundError creates an AppError for a missing resource.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// DuplicateJobError is returned when a payroll run is submitted for a key that already has a
// live (non-terminal) job. It carries enough detail for the HTTP boundary to build the
// conflict response without a second queue lookup.
type DuplicateJobError struct {
	JobID string
	State string
}

func (e *DuplicateJobError) Error() string {
	return fmt.Sprintf("payroll job %s already exists in state %s", e.JobID, e.State)
}
