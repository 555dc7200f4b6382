// Package errors provides custom error types for the AegisWallet recurrence
// API. All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrForbidden    = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Recurring event errors.
var (
	ErrRecurringEventNotFound = &AppError{Code: "RECURRING_EVENT_NOT_FOUND", Message: "Recurring event not found", StatusCode: http.StatusNotFound}
	ErrRecurringEventInactive = &AppError{Code: "RECURRING_EVENT_INACTIVE", Message: "Recurring event is inactive", StatusCode: http.StatusConflict}
	ErrInvalidRecurrenceRule  = &AppError{Code: "INVALID_RECURRENCE_RULE", Message: "Invalid recurrence rule", StatusCode: http.StatusBadRequest}
	ErrTemplateNotFound       = &AppError{Code: "TEMPLATE_NOT_FOUND", Message: "Rule template not found", StatusCode: http.StatusNotFound}
)

// Generated event errors.
var (
	ErrGeneratedEventNotFound = &AppError{Code: "GENERATED_EVENT_NOT_FOUND", Message: "Generated event not found", StatusCode: http.StatusNotFound}
	ErrInvalidWindow          = &AppError{Code: "INVALID_WINDOW", Message: "Invalid generation window", StatusCode: http.StatusBadRequest}
)
