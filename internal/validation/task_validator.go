package validation

import (
	"fmt"
	"time"

	"tasku/internal/config"
	"tasku/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTitle checks presence and length of a task title
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()
	trimmed := tv.validator.TrimAndValidateString(title)

	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("title", ReasonTitleRequired)
		return validationError
	}

	minLen := tv.validator.getTitleMinLength()
	maxLen := tv.validator.getTitleMaxLength()
	if tv.validator.IsValidStringLength(trimmed, minLen, maxLen) {
		return nil
	}

	if tv.validator.RuneLength(trimmed) < minLen {
		validationError.AddInvalidLengthError("title", trimmed, ReasonTitleTooShort, minLen, 0)
	} else {
		validationError.AddInvalidLengthError("title", trimmed, ReasonTitleTooLong, 0, maxLen)
	}
	return validationError
}

// ValidateForCreation checks a creation request against the task rules in
// order and stops at the first violation. A due date before now yields a
// warning-severity PAST_DATE error unless past dates are allowed by
// configuration or confirmed on the input; in that case the draft carries
// the warning instead.
func (tv *TaskValidator) ValidateForCreation(input domain.TaskInput, now time.Time) (domain.TaskDraft, error) {
	if err := tv.ValidateTitle(input.Title); err != nil {
		return domain.TaskDraft{}, err
	}

	validationError := NewValidationError()

	subject := tv.validator.TrimAndValidateString(input.Subject)
	if subject == "" {
		validationError.AddRequiredError("subject", ReasonSubjectRequired)
		return domain.TaskDraft{}, validationError
	}

	if input.DueAt == nil || input.DueAt.IsZero() {
		validationError.AddRequiredError("due_at", ReasonDateRequired)
		return domain.TaskDraft{}, validationError
	}
	due := *input.DueAt

	rawPriority := tv.validator.TrimAndValidateString(input.Priority)
	if rawPriority == "" {
		validationError.AddRequiredError("priority", ReasonPriorityRequired)
		return domain.TaskDraft{}, validationError
	}
	priority, ok := domain.ParsePriority(rawPriority)
	if !ok {
		validationError.AddInvalidValueError("priority", rawPriority, ReasonInvalidPriority, "must be low, medium or high")
		return domain.TaskDraft{}, validationError
	}

	var warnings []string
	if due.Before(now) {
		message := fmt.Sprintf("due date %s is in the past", due.Format(time.RFC3339))
		if !tv.validator.allowPastDate() && !input.ConfirmPastDate {
			validationError.AddWarning("due_at", ReasonPastDate, message, due)
			return domain.TaskDraft{}, validationError
		}
		warnings = append(warnings, message)
	}

	if !tv.validator.IsWithinHorizon(due, now) {
		validationError.AddInvalidRangeError("due_at", due, ReasonDateTooFarInFuture, "must be within one year")
		return domain.TaskDraft{}, validationError
	}

	return domain.TaskDraft{
		Title:       tv.validator.TrimAndValidateString(input.Title),
		Subject:     subject,
		DueAt:       due,
		Priority:    priority,
		Description: tv.validator.TrimAndValidateString(input.Description),
		Warnings:    warnings,
	}, nil
}

// ValidateCompletion checks that task may move to the completed state
func (tv *TaskValidator) ValidateCompletion(task domain.Task) error {
	if task.IsPending() {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddError("status", ErrorTypeInvalidState, ReasonInvalidTransition,
		fmt.Sprintf("task %s is already %s", task.ID, task.Status), task.Status)
	return validationError
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsNonEmptyString(id) {
		validationError := NewValidationError()
		validationError.AddRequiredError("task_id", ReasonTaskIDRequired)
		return validationError
	}
	return nil
}
