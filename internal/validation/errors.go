package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationErrorType represents the type of validation error
type ValidationErrorType string

const (
	ErrorTypeRequired      ValidationErrorType = "required"
	ErrorTypeInvalidFormat ValidationErrorType = "invalid_format"
	ErrorTypeInvalidLength ValidationErrorType = "invalid_length"
	ErrorTypeInvalidValue  ValidationErrorType = "invalid_value"
	ErrorTypeInvalidRange  ValidationErrorType = "invalid_range"
	ErrorTypeInvalidState  ValidationErrorType = "invalid_state"
)

// Reason is the stable code callers switch on.
type Reason string

const (
	ReasonTitleRequired      Reason = "TITLE_REQUIRED"
	ReasonTitleTooShort      Reason = "TITLE_TOO_SHORT"
	ReasonTitleTooLong       Reason = "TITLE_TOO_LONG"
	ReasonSubjectRequired    Reason = "SUBJECT_REQUIRED"
	ReasonDateRequired       Reason = "DATE_REQUIRED"
	ReasonPriorityRequired   Reason = "PRIORITY_REQUIRED"
	ReasonInvalidPriority    Reason = "INVALID_PRIORITY"
	ReasonPastDate           Reason = "PAST_DATE"
	ReasonDateTooFarInFuture Reason = "DATE_TOO_FAR_IN_FUTURE"
	ReasonInvalidTransition  Reason = "INVALID_TRANSITION"
	ReasonTaskIDRequired     Reason = "TASK_ID_REQUIRED"
)

// Severity separates hard failures from conditions the caller may confirm.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field    string
	Type     ValidationErrorType
	Reason   Reason
	Severity Severity
	Message  string
	Value    interface{}
}

// Error implements the error interface for FieldError
func (fe *FieldError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", fe.Field, fe.Message)
}

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates a new ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{
		Errors: make([]FieldError, 0),
	}
}

// Error implements the error interface for ValidationError
func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "validation error"
	}

	if len(ve.Errors) == 1 {
		return ve.Errors[0].Error()
	}

	var messages []string
	for _, err := range ve.Errors {
		messages = append(messages, err.Error())
	}

	return fmt.Sprintf("multiple validation errors: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if the ValidationError has any errors
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Reason returns the reason of the first recorded error.
func (ve *ValidationError) Reason() Reason {
	if len(ve.Errors) == 0 {
		return ""
	}
	return ve.Errors[0].Reason
}

// IsWarning reports whether every recorded error is a warning.
func (ve *ValidationError) IsWarning() bool {
	if len(ve.Errors) == 0 {
		return false
	}
	for _, err := range ve.Errors {
		if err.Severity != SeverityWarning {
			return false
		}
	}
	return true
}

// AddError adds a new field error to the validation error
func (ve *ValidationError) AddError(field string, errorType ValidationErrorType, reason Reason, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:    field,
		Type:     errorType,
		Reason:   reason,
		Severity: SeverityError,
		Message:  message,
		Value:    value,
	})
}

// AddWarning adds a field warning that the caller can confirm past.
func (ve *ValidationError) AddWarning(field string, reason Reason, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:    field,
		Type:     ErrorTypeInvalidRange,
		Reason:   reason,
		Severity: SeverityWarning,
		Message:  message,
		Value:    value,
	})
}

// AddRequiredError adds a required field error
func (ve *ValidationError) AddRequiredError(field string, reason Reason) {
	ve.AddError(field, ErrorTypeRequired, reason, fmt.Sprintf("%s is required", field), nil)
}

// AddInvalidLengthError adds an invalid length error
func (ve *ValidationError) AddInvalidLengthError(field string, value interface{}, reason Reason, min, max int) {
	var message string
	if min > 0 && max > 0 {
		message = fmt.Sprintf("%s must be between %d and %d characters long", field, min, max)
	} else if min > 0 {
		message = fmt.Sprintf("%s must be at least %d characters long", field, min)
	} else if max > 0 {
		message = fmt.Sprintf("%s must be at most %d characters long", field, max)
	} else {
		message = fmt.Sprintf("%s has invalid length", field)
	}
	ve.AddError(field, ErrorTypeInvalidLength, reason, message, value)
}

// AddInvalidValueError adds an invalid value error
func (ve *ValidationError) AddInvalidValueError(field string, value interface{}, reason Reason, detail string) {
	message := fmt.Sprintf("%s has invalid value: %s", field, detail)
	ve.AddError(field, ErrorTypeInvalidValue, reason, message, value)
}

// AddInvalidRangeError adds an invalid range error
func (ve *ValidationError) AddInvalidRangeError(field string, value interface{}, reason Reason, detail string) {
	message := fmt.Sprintf("%s has invalid range: %s", field, detail)
	ve.AddError(field, ErrorTypeInvalidRange, reason, message, value)
}

// GetFieldErrors returns all errors for a specific field
func (ve *ValidationError) GetFieldErrors(field string) []FieldError {
	var fieldErrors []FieldError
	for _, err := range ve.Errors {
		if err.Field == field {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

// GetUserFriendlyMessage returns a user-friendly error message
func (ve *ValidationError) GetUserFriendlyMessage() string {
	if len(ve.Errors) == 0 {
		return "Input validation failed"
	}

	if len(ve.Errors) == 1 {
		return ve.Errors[0].Message
	}

	var messages []string
	for _, err := range ve.Errors {
		messages = append(messages, fmt.Sprintf("- %s", err.Message))
	}
	return fmt.Sprintf("Multiple validation errors occurred:\n%s", strings.Join(messages, "\n"))
}

// IsValidationError checks if err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ReasonOf returns the reason carried by err, or "" when err is not a
// ValidationError.
func ReasonOf(err error) Reason {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason()
	}
	return ""
}

// IsConfirmationRequired reports whether err only asks the caller to confirm
// a past due date.
func IsConfirmationRequired(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.IsWarning() && ve.Reason() == ReasonPastDate
}
