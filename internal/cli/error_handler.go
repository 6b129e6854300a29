package cli

import (
	stderrors "errors"
	"fmt"

	"tasku/internal/errors"
	"tasku/internal/logging"
	"tasku/internal/validation"
)

// userError carries the message shown to the user while keeping the
// original error reachable for errors.Is and errors.As.
type userError struct {
	message string
	cause   error
}

func (e *userError) Error() string {
	return e.message
}

func (e *userError) Unwrap() error {
	return e.cause
}

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &userError{
		message: fmt.Sprintf("failed to %s: %s", operation, eh.message(err)),
		cause:   err,
	}
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	return &userError{message: eh.message(err), cause: err}
}

func (eh *ErrorHandler) message(err error) string {
	if errors.ShouldLogError(err) {
		logging.Debugf("error detail: %v\n", err)
	}

	if validation.IsConfirmationRequired(err) {
		return fmt.Sprintf("%s; pass --confirm-past to keep it", eh.validationMessage(err))
	}
	if eh.IsValidationError(err) {
		return eh.validationMessage(err)
	}
	if stderrors.Is(err, errors.ErrNotAuthenticated) {
		return "you need to log in first: tasku login <email> --password <password>"
	}
	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err)
	}
	return err.Error()
}

func (eh *ErrorHandler) validationMessage(err error) string {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return ve.GetUserFriendlyMessage()
	}
	return errors.GetUserMessage(err)
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsAuthError checks if an error is a session error
func (eh *ErrorHandler) IsAuthError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeAuth)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
