package models

import "fmt"

// AppError represents a custom application error
type AppError struct {
	Code    string
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

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

// NewConfigError marks a fatal misconfiguration (missing base table, missing
// default asset). Callers abort the startup or maintenance pass; never retried.
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Code:    "CONFIG_ERROR",
		Message: message,
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// IsConfigError reports whether err is a fatal configuration error.
func IsConfigError(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == "CONFIG_ERROR"
}
