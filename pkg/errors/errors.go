// Package errors defines common error types for the framework.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the framework.
const (
	CodeUnknown           = "UNKNOWN_ERROR"
	CodeInvalidParameters = "INVALID_PARAMETERS"
	CodeSubstrateFailure  = "SUBSTRATE_FAILURE"
	CodeRuleFault         = "RULE_FAULT"
	CodeConfigError       = "CONFIG_ERROR"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeStorageError      = "STORAGE_ERROR"
)

// AppError represents a framework error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message.
func Newf(code string, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances.
var (
	ErrInvalidParameters = New(CodeInvalidParameters, "invalid parameters")
	ErrSubstrateFailure  = New(CodeSubstrateFailure, "parallel substrate failure")
	ErrRuleFault         = New(CodeRuleFault, "user rule fault")
	ErrConfigError       = New(CodeConfigError, "configuration error")
	ErrDatabaseError     = New(CodeDatabaseError, "database error")
	ErrStorageError      = New(CodeStorageError, "storage error")
)

// IsInvalidParameters checks if the error is a parameter validation error.
func IsInvalidParameters(err error) bool {
	return errors.Is(err, ErrInvalidParameters)
}

// IsSubstrateFailure checks if the error is a parallel substrate error.
func IsSubstrateFailure(err error) bool {
	return errors.Is(err, ErrSubstrateFailure)
}

// IsDatabaseError checks if the error is a database error.
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabaseError)
}

// IsStorageError checks if the error is a storage error.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorageError)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
