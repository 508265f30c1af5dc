package apperror

import (
	"errors"
	"net/http"
)

// Error codes returned to API clients
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidThemeMode   = "INVALID_THEME_MODE"
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeRateLimited        = "RATE_LIMITED"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Status  int          `json:"-"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`

	// Err is the underlying cause. It is logged but never sent to clients.
	Err error `json:"-"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common errors
var (
	ErrUnauthorized = &AppError{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: "User not authenticated"}
	ErrRateLimited  = &AppError{Status: http.StatusTooManyRequests, Code: CodeRateLimited, Message: "Rate limit exceeded. Please try again later."}
	ErrNotFound     = &AppError{Status: http.StatusNotFound, Code: CodeNotFound, Message: "Resource not found"}
)

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: "Validation failed",
		Fields:  fieldErrors,
	}
}

// NewInvalidThemeModeError is returned when a theme mode outside light/dark/system is submitted
func NewInvalidThemeModeError() *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidThemeMode,
		Message: "Theme mode must be 'light', 'dark', or 'system'",
		Fields:  []FieldError{{Field: "mode", Message: "must be one of light, dark, system"}},
	}
}

// NewBadRequestError creates a bad request error for a body that could not be decoded
func NewBadRequestError(message string, err error) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidRequestBody,
		Message: message,
		Err:     err,
	}
}

// NewInternalError hides err behind a generic message
func NewInternalError(err error) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "An unexpected error occurred",
		Err:     err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// From converts an error to AppError. Anything that is not already an AppError
// (persistence failures included) becomes a generic internal error.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}
