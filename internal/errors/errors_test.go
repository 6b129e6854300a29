package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name        string
		err         *AppError
		wantType    ErrorType
		wantCode    string
		wantMessage string
	}{
		{"validation", NewValidationError("title is required", cause), ErrorTypeValidation, CodeValidationFailed, "title is required"},
		{"validation with reason", NewValidationErrorWithCode("PAST_DATE", "due date is in the past", cause), ErrorTypeValidation, "PAST_DATE", "due date is in the past"},
		{"auth", NewAuthError(CodeNotAuthenticated, "you need to log in first"), ErrorTypeAuth, CodeNotAuthenticated, "you need to log in first"},
		{"not found", NewNotFoundError("task", "task_1_abc"), ErrorTypeNotFound, CodeNotFound, "task not found: task_1_abc"},
		{"database", NewDatabaseError("insert task", cause), ErrorTypeDatabase, CodeDatabase, "database operation failed: insert task"},
		{"invalid input", NewInvalidInputError("due", "mañana", "unrecognised date"), ErrorTypeInvalidInput, CodeInvalidInput, "invalid input for due: unrecognised date"},
		{"timeout", NewTimeoutError("login", time.Second), ErrorTypeTimeout, CodeTimeout, "operation timed out: login"},
		{"wrapped", WrapError(cause, ErrorTypeDatabase, "stored session user is corrupt"), ErrorTypeDatabase, "database", "stored session user is corrupt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantMessage, tt.err.Message)
			assert.NotNil(t, tt.err.Context)
		})
	}
}

func TestConstructorContext(t *testing.T) {
	notFound := NewNotFoundError("key", "auth.token")
	resource, _ := notFound.GetContext("resource")
	identifier, _ := notFound.GetContext("identifier")
	assert.Equal(t, "key", resource)
	assert.Equal(t, "auth.token", identifier)

	invalid := NewInvalidInputError("status", "archived", "must be pending or completed")
	value, _ := invalid.GetContext("value")
	assert.Equal(t, "archived", value)

	timeout := NewTimeoutError("login", 2*time.Second)
	limit, _ := timeout.GetContext("timeout")
	assert.Equal(t, 2*time.Second, limit)
}

func TestAsAppError(t *testing.T) {
	inner := NewNotFoundError("task", "task_1_abc")
	wrapped := fmt.Errorf("complete task: %w", inner)

	got, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsErrorType(wrapped, ErrorTypeNotFound))
	assert.False(t, IsErrorType(wrapped, ErrorTypeAuth))

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsErrorType(errors.New("plain"), ErrorTypeNotFound))
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"validation keeps its message", NewValidationError("title is required", nil), "title is required"},
		{"auth keeps its message", NewAuthError(CodeInvalidEmailFormat, "email format is invalid"), "email format is invalid"},
		{"not found keeps its message", NewNotFoundError("task", "task_1_abc"), "task not found: task_1_abc"},
		{"invalid input keeps its message", NewInvalidInputError("sort", "x", "unknown sort order"), "invalid input for sort: unknown sort order"},
		{"database is hidden", NewDatabaseError("insert task", errors.New("disk full")), "A database error occurred. Please try again."},
		{"timeout is hidden", NewTimeoutError("login", time.Second), "The operation timed out. Please try again."},
		{"unknown type", &AppError{Type: ErrorType(42), Message: "internal"}, "An unexpected error occurred. Please try again."},
		{"plain error", errors.New("plain"), "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetUserMessage(tt.err))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, CodeNonInstitutionalEmail, GetErrorCode(fmt.Errorf("login: %w", ErrNonInstitutionalEmail)))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(errors.New("plain")))
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewValidationError("bad", nil)))
	assert.False(t, ShouldLogError(NewAuthError(CodeWeakPassword, "short")))
	assert.False(t, ShouldLogError(NewNotFoundError("task", "x")))
	assert.False(t, ShouldLogError(NewInvalidInputError("due", "x", "bad")))
	assert.True(t, ShouldLogError(NewDatabaseError("insert task", nil)))
	assert.True(t, ShouldLogError(NewTimeoutError("login", time.Second)))
	assert.True(t, ShouldLogError(errors.New("plain")))
}
