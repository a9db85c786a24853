package apperror

import (
	"errors"
	"net/http"
)

// AppError is an error safe to show to API clients, with its HTTP status.
// The underlying cause is kept for logs and never serialized.
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// User-visible failures
const (
	MsgLoadReservation = "could not load reservation"
	MsgProduceDocument = "could not produce document"
)

var (
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
)

// Wrap attaches a user-visible message and status to cause
func Wrap(code int, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, cause: cause}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// LoadReservationError reports a reservation that could not be fetched
func LoadReservationError(cause error) *AppError {
	return Wrap(http.StatusBadGateway, MsgLoadReservation, cause)
}

// ProduceDocumentError reports an invoice that could not be built or rendered
func ProduceDocumentError(code int, cause error) *AppError {
	return Wrap(code, MsgProduceDocument, cause)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts err to an AppError. Errors that are not AppErrors
// become a generic internal error so their text never reaches clients.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(http.StatusInternalServerError, ErrInternalServer.Message, err)
}
