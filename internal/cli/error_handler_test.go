package cli

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"tasku/internal/errors"
	"tasku/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler_Handle(t *testing.T) {
	handler := NewErrorHandler()

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, handler.Handle("list tasks", nil))
		assert.NoError(t, handler.HandleSimple(nil))
	})

	t.Run("validation errors use the friendly message", func(t *testing.T) {
		ve := validation.NewValidationError()
		ve.AddRequiredError("title", validation.ReasonTitleRequired)

		err := handler.Handle("create task", ve)

		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "failed to create task: "), err.Error())
		assert.Equal(t, validation.ReasonTitleRequired, validation.ReasonOf(err))
	})

	t.Run("past dates ask for confirmation", func(t *testing.T) {
		ve := validation.NewValidationError()
		ve.AddWarning("due_at", validation.ReasonPastDate, "due date is in the past", time.Time{})

		err := handler.Handle("create task", ve)

		assert.Contains(t, err.Error(), "pass --confirm-past to keep it")
		assert.True(t, validation.IsConfirmationRequired(err))
	})

	t.Run("missing session points at login", func(t *testing.T) {
		err := handler.Handle("list tasks", errors.NewAuthError(errors.CodeNotAuthenticated, "you need to log in first"))

		assert.Contains(t, err.Error(), "tasku login")
		assert.ErrorIs(t, err, errors.ErrNotAuthenticated)
	})

	t.Run("database errors are not leaked", func(t *testing.T) {
		err := handler.Handle("list tasks", errors.NewDatabaseError("select", stderrors.New("disk I/O error")))

		assert.Equal(t, "failed to list tasks: A database error occurred. Please try again.", err.Error())
	})

	t.Run("plain errors keep their text", func(t *testing.T) {
		err := handler.HandleSimple(stderrors.New("boom"))
		assert.Equal(t, "boom", err.Error())
	})
}

func TestErrorHandler_Classification(t *testing.T) {
	handler := NewErrorHandler()

	notFound := errors.NewNotFoundError("task", "task_1_abc")
	auth := errors.NewAuthError(errors.CodeWeakPassword, "too short")

	assert.True(t, handler.IsNotFoundError(notFound))
	assert.False(t, handler.IsNotFoundError(auth))
	assert.True(t, handler.IsAuthError(auth))
	assert.True(t, handler.IsValidationError(errors.NewValidationError("bad", nil)))
	assert.Equal(t, errors.CodeWeakPassword, handler.GetErrorCode(auth))
	assert.Equal(t, "UNKNOWN_ERROR", handler.GetErrorCode(stderrors.New("boom")))
}
