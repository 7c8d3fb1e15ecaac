package errors

import (
	"net/http"

	"crm/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Stable business error code clients branch on
	Message() string   // User-friendly error message
	Details() any      // Structured error context (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   any
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message string, details any) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() any {
	return e.details
}

// Is matches any BaseError carrying the same code, so copies made by WithDetails
// still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode && t.httpCode == e.httpCode
}

// WithDetails returns a copy carrying details.
func (e *BaseError) WithDetails(details any) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Authentication
	ErrNoToken = NewBaseError(
		http.StatusUnauthorized,
		"NO_TOKEN",
		"Authentication token is required",
		nil,
	)

	ErrNoAuthToken = NewBaseError(
		http.StatusUnauthorized,
		"NO_AUTH_TOKEN",
		"Authentication token is required",
		nil,
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Authentication token is invalid",
		nil,
	)

	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"Authentication token has expired",
		nil,
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		nil,
	)

	ErrAccountLocked = NewBaseError(
		http.StatusLocked,
		"ACCOUNT_LOCKED",
		"Account is temporarily locked due to repeated failed login attempts",
		nil,
	)

	ErrNoRefreshToken = NewBaseError(
		http.StatusUnauthorized,
		"NO_REFRESH_TOKEN",
		"Refresh token is required",
		nil,
	)

	ErrInvalidRefreshToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_REFRESH_TOKEN",
		"Refresh token is invalid or expired",
		nil,
	)

	// Authorization
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		nil,
	)

	// Concurrency
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		nil,
	)

	ErrVersionConflict = NewBaseError(
		http.StatusConflict,
		"VERSION_CONFLICT",
		"Record was modified by another request",
		nil,
	)

	// Validation
	ErrBusinessRuleViolation = NewBaseError(
		http.StatusBadRequest,
		"BUSINESS_RULE_VIOLATION",
		"Update violates business rules",
		nil,
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_ERROR",
		"Input validation failed",
		nil,
	)

	// Rate limiting
	ErrTooManyRequests = NewBaseError(
		http.StatusTooManyRequests,
		"RATE_LIMITED",
		"Too many requests, please slow down",
		nil,
	)

	// Transient
	ErrTransient = NewBaseError(
		http.StatusServiceUnavailable,
		"SERVICE_UNAVAILABLE",
		"Service temporarily unavailable, please retry",
		nil,
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error, please try again later",
		nil,
	)
)

// VersionConflictDetails is the body clients use to decide between merge and discard.
type VersionConflictDetails struct {
	CurrentVersion   int64 `json:"currentVersion"`
	AttemptedVersion int64 `json:"attemptedVersion"`
}

// NewVersionConflictError reports a lost optimistic-concurrency race.
func NewVersionConflictError(currentVersion, attemptedVersion int64) *BaseError {
	return ErrVersionConflict.WithDetails(VersionConflictDetails{
		CurrentVersion:   currentVersion,
		AttemptedVersion: attemptedVersion,
	})
}

// RuleViolation is one failed business rule.
type RuleViolation struct {
	Rule    string `json:"rule"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// BusinessRuleDetails wraps the violation list.
type BusinessRuleDetails struct {
	Violations []RuleViolation `json:"violations"`
}

// NewBusinessRuleError reports every violated rule at once.
func NewBusinessRuleError(violations []RuleViolation) *BaseError {
	return ErrBusinessRuleViolation.WithDetails(BusinessRuleDetails{Violations: violations})
}

// NewValidationError reports malformed input with a human-readable reason.
func NewValidationError(reason string) *BaseError {
	return ErrValidationFailed.WithDetails(map[string]string{"reason": reason})
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database operation failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() any {
	return e.details
}
