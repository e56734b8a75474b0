package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeLoadError        = "LOAD_ERROR"
	CodeSchemaError      = "SCHEMA_ERROR"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeEmptySelection   = "EMPTY_SELECTION"
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Common error constructors

// LoadError marks the dataset file as missing or unreadable. Fatal at
// startup.
func LoadError(message string, cause error) *AppError {
	return &AppError{Code: CodeLoadError, Message: message, Cause: cause}
}

// SchemaError marks a required column as absent or a categorical value as
// outside its expected domain.
func SchemaError(message string) *AppError {
	return New(CodeSchemaError, message)
}

// InsufficientData marks a regression or correlation requested on fewer than
// two usable points.
func InsufficientData(message string) *AppError {
	return New(CodeInsufficientData, message)
}

// EmptySelection marks the recoverable no-matching-records state.
func EmptySelection(message string) *AppError {
	return New(CodeEmptySelection, message)
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
