package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypeNotFound   ErrorType = "not_found"
)

// Error codes for the generation and collection paths. Handlers branch on
// these to pick the user-facing message and HTTP status.
const (
	CodeInsufficientTobaccos = "INSUFFICIENT_TOBACCOS"
	CodeUpstreamUnavailable  = "UPSTREAM_UNAVAILABLE"
	CodeMalformedJSON        = "MALFORMED_JSON"
	CodeMissingField         = "MISSING_FIELD"
	CodeNotFound             = "NOT_FOUND"
	CodeDuplicateName        = "DUPLICATE_NAME"
	CodeValidation           = "VALIDATION"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  fmt.Sprintf("%s:%d", file, line),
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)
	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   fmt.Sprintf("%s:%d", file, line),
	}
}

// Code returns the error code of err, or empty string for non-AppError values.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// NewValidationError reports invalid caller input.
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, CodeValidation, message)
}

// NewInsufficientTobaccos reports a collection too small to mix from.
func NewInsufficientTobaccos() *AppError {
	return New(ErrorTypeValidation, CodeInsufficientTobaccos, "need at least 2 tobaccos to build a mix")
}

// NewDuplicateName reports a case-insensitive name collision within a user's collection.
func NewDuplicateName(name string) *AppError {
	return New(ErrorTypeValidation, CodeDuplicateName, fmt.Sprintf("tobacco %q already in collection", name))
}

// NewNotFound reports a missing or foreign-owned entity.
func NewNotFound(entity string) *AppError {
	return New(ErrorTypeNotFound, CodeNotFound, fmt.Sprintf("%s not found", entity))
}

// NewUpstreamUnavailable reports a transport failure talking to the completion endpoint.
func NewUpstreamUnavailable(err error) *AppError {
	return Wrap(err, ErrorTypeExternal, CodeUpstreamUnavailable, "completion endpoint unavailable")
}

// NewMalformedJSON reports a completion reply that did not decode as one JSON object.
func NewMalformedJSON(err error) *AppError {
	return Wrap(err, ErrorTypeExternal, CodeMalformedJSON, "completion reply is not valid JSON")
}

// NewMissingField reports a completion reply missing a required key.
func NewMissingField(field string) *AppError {
	return New(ErrorTypeExternal, CodeMissingField, fmt.Sprintf("completion reply missing field %q", field))
}

// NewDatabaseError wraps a store-layer failure.
func NewDatabaseError(err error) *AppError {
	return Wrap(err, ErrorTypeDatabase, "DB_ERROR", "database operation failed")
}
