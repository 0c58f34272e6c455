package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Activation errors
	ErrNotApplicable       ErrorCode = "NOT_APPLICABLE"
	ErrPermissionDenied    ErrorCode = "PERMISSION_DENIED"
	ErrUserDetectionFailed ErrorCode = "USER_DETECTION_FAILED"

	// Synchronization errors
	ErrSourceMissing ErrorCode = "SOURCE_MISSING"
	ErrSourceEmpty   ErrorCode = "SOURCE_EMPTY"
	ErrCopyFailed    ErrorCode = "COPY_FAILED"
)

// EnvsyncError represents a structured error with code and details
type EnvsyncError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *EnvsyncError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *EnvsyncError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *EnvsyncError) Is(target error) bool {
	var targetErr *EnvsyncError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new EnvsyncError with the given code and message
func New(code ErrorCode, message string) *EnvsyncError {
	return &EnvsyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new EnvsyncError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *EnvsyncError {
	return &EnvsyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an EnvsyncError
func Wrap(err error, code ErrorCode, message string) *EnvsyncError {
	if err == nil {
		return nil
	}
	return &EnvsyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *EnvsyncError {
	if err == nil {
		return nil
	}
	return &EnvsyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *EnvsyncError) WithDetail(key string, value interface{}) *EnvsyncError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var envsyncErr *EnvsyncError
	if errors.As(err, &envsyncErr) {
		return envsyncErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an EnvsyncError
func GetErrorCode(err error) ErrorCode {
	var envsyncErr *EnvsyncError
	if errors.As(err, &envsyncErr) {
		return envsyncErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an EnvsyncError
func GetErrorDetails(err error) map[string]interface{} {
	var envsyncErr *EnvsyncError
	if errors.As(err, &envsyncErr) {
		return envsyncErr.Details
	}
	return nil
}
