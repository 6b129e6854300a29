package errors

import (
	"errors"
	"fmt"
)

// Generic codes, one per error type.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeDatabase         = "DATABASE_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeTimeout          = "TIMEOUT"
)

// Auth reason codes returned by the session manager.
const (
	CodeMissingCredentials    = "MISSING_CREDENTIALS"
	CodeInvalidEmailFormat    = "INVALID_EMAIL_FORMAT"
	CodeNonInstitutionalEmail = "NON_INSTITUTIONAL_EMAIL"
	CodeWeakPassword          = "WEAK_PASSWORD"
	CodeNotAuthenticated      = "NOT_AUTHENTICATED"
)

// Sentinels for errors.Is matching. They compare by type and code only.
var (
	ErrMissingCredentials    = &AppError{Type: ErrorTypeAuth, Code: CodeMissingCredentials}
	ErrInvalidEmailFormat    = &AppError{Type: ErrorTypeAuth, Code: CodeInvalidEmailFormat}
	ErrNonInstitutionalEmail = &AppError{Type: ErrorTypeAuth, Code: CodeNonInstitutionalEmail}
	ErrWeakPassword          = &AppError{Type: ErrorTypeAuth, Code: CodeWeakPassword}
	ErrNotAuthenticated      = &AppError{Type: ErrorTypeAuth, Code: CodeNotAuthenticated}
	ErrInvalidInput          = &AppError{Type: ErrorTypeInvalidInput, Code: CodeInvalidInput}
	ErrNotFound              = &AppError{Type: ErrorTypeNotFound, Code: CodeNotFound}
)

// systemMessages replace the detail of errors that are not the user's fault.
var systemMessages = map[ErrorType]string{
	ErrorTypeDatabase: "A database error occurred. Please try again.",
	ErrorTypeTimeout:  "The operation timed out. Please try again.",
}

const unexpectedMessage = "An unexpected error occurred. Please try again."

func newAppError(errorType ErrorType, code, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    code,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, CodeValidationFailed, message, cause)
}

// NewValidationErrorWithCode creates a validation error carrying a reason code
func NewValidationErrorWithCode(code string, message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, code, message, cause)
}

// NewAuthError creates a new session/authentication error
func NewAuthError(code string, message string) *AppError {
	return newAppError(ErrorTypeAuth, code, message, nil)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound, CodeNotFound,
		fmt.Sprintf("%s not found: %s", resource, identifier), nil).
		WithContext("resource", resource).
		WithContext("identifier", identifier)
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeDatabase, CodeDatabase,
		"database operation failed: "+operation, cause).
		WithContext("operation", operation)
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput, CodeInvalidInput,
		fmt.Sprintf("invalid input for %s: %s", field, reason), nil).
		WithContext("field", field).
		WithContext("value", value).
		WithContext("reason", reason)
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return newAppError(ErrorTypeTimeout, CodeTimeout,
		"operation timed out: "+operation, nil).
		WithContext("operation", operation).
		WithContext("timeout", timeout)
}

// WrapError wraps an existing error with additional context. The code is
// the type name.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return newAppError(errorType, errorType.String(), message, err)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// GetUserMessage returns the message to show the user. Errors the user can
// act on keep their message; system failures get a generic sentence.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	if appErr.Type.userFacing() {
		return appErr.Message
	}
	if message, ok := systemMessages[appErr.Type]; ok {
		return message
	}
	return unexpectedMessage
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether err is worth a debug log entry. Mistakes
// in user input are not.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	return !ok || !appErr.Type.userFacing()
}
