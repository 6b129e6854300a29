package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"tasku/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// RuneLength returns the number of characters in s after trimming whitespace
func (v *Validator) RuneLength(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := v.RuneLength(s)
	return length >= min && length <= max
}

// IsWithinHorizon reports whether t is no later than one calendar year after now.
func (v *Validator) IsWithinHorizon(t, now time.Time) bool {
	return !t.After(now.AddDate(1, 0, 0))
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// getTitleMinLength returns configured minimum title length or default
func (v *Validator) getTitleMinLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMinLength
	}
	return 3 // Default minimum
}

// getTitleMaxLength returns configured maximum title length or default
func (v *Validator) getTitleMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMaxLength
	}
	return 255 // Default maximum
}

func (v *Validator) allowPastDate() bool {
	return v.config != nil && v.config.Validation.AllowPastDate
}

func (v *Validator) getMinPasswordLength() int {
	if v.config != nil {
		return v.config.Validation.MinPasswordLength
	}
	return 6
}

// IsValidPasswordLength checks the password against the configured floor.
// Whitespace counts.
func (v *Validator) IsValidPasswordLength(password string) bool {
	return utf8.RuneCountInString(password) >= v.getMinPasswordLength()
}

// MinPasswordLength returns the configured password floor.
func (v *Validator) MinPasswordLength() int {
	return v.getMinPasswordLength()
}
