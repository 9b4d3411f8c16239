package errors

import (
	"fmt"
	"net/http"

	"github.com/feedbacklens/feedback-backend/logger"
)

type ErrorType string

const (
	ValidationError ErrorType = "VALIDATION_ERROR"
	RateLimitError  ErrorType = "RATE_LIMITED"
	DatabaseError   ErrorType = "DATABASE_ERROR"
	ServerError     ErrorType = "SERVER_ERROR"
	NotFoundError   ErrorType = "NOT_FOUND"
)

// FieldError describes a single validation violation on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType    `json:"type"`
	Message    string       `json:"message"`
	Detail     string       `json:"detail,omitempty"`
	Fields     []FieldError `json:"errors,omitempty"`
	RetryAfter int          `json:"-"`
	HTTPStatus int          `json:"-"`
	Raw        error        `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status code for the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.HTTPStatus
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// ValidationFailed reports that input validation rejected a request.
// It carries the full list of field-level violations, not just the first.
func ValidationFailed(fields []FieldError) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    "Please fix the errors in your submission",
		Fields:     fields,
		HTTPStatus: http.StatusBadRequest,
	}
}

// RateLimitExceeded reports that a client exhausted its submission quota.
func RateLimitExceeded(message string, retryAfterSeconds int) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Message:    message,
		RetryAfter: retryAfterSeconds,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// NewDatabaseError logs the raw error server-side and returns a sanitized
// error for the caller. Internal detail never reaches the response body.
func NewDatabaseError(err error) *AppError {
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Message:    "Something went wrong. Please try again later.",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case RateLimitError:
		return http.StatusTooManyRequests
	case NotFoundError:
		return http.StatusNotFound
	case DatabaseError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
