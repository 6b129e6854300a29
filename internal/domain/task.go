package domain

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusCompleted
}

// ParseStatus normalizes a status string. The Spanish labels used by older
// data (pendiente, completada) are accepted as aliases.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "pendiente":
		return StatusPending, true
	case "completed", "completada", "completado":
		return StatusCompleted, true
	default:
		return "", false
	}
}

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority normalizes a priority string, accepting the Spanish form
// values (baja, media, alta) as aliases.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "baja":
		return PriorityLow, true
	case "medium", "media":
		return PriorityMedium, true
	case "high", "alta":
		return PriorityHigh, true
	default:
		return "", false
	}
}

// UpcomingWindow is how far ahead a pending task counts as upcoming.
const UpcomingWindow = 24 * time.Hour

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID          string
	Title       string
	Subject     string
	DueAt       time.Time
	Priority    Priority
	Description string
	Status      Status
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// TaskInput is a task creation request as it arrives from a caller,
// before validation. A nil DueAt means the date was not provided.
type TaskInput struct {
	Title       string
	Subject     string
	DueAt       *time.Time
	Priority    string
	Description string

	// ConfirmPastDate acknowledges that DueAt may lie in the past.
	ConfirmPastDate bool
}

// TaskDraft is a validated and normalized TaskInput ready for storage.
type TaskDraft struct {
	Title       string
	Subject     string
	DueAt       time.Time
	Priority    Priority
	Description string
	Warnings    []string
}

// NewTask creates a pending Task from a validated draft.
func NewTask(id string, draft TaskDraft, createdAt time.Time) Task {
	return Task{
		ID:          id,
		Title:       draft.Title,
		Subject:     draft.Subject,
		DueAt:       draft.DueAt,
		Priority:    draft.Priority,
		Description: draft.Description,
		Status:      StatusPending,
		CreatedAt:   createdAt,
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.ID != "" && strings.TrimSpace(t.Title) != "" && !t.DueAt.IsZero() && t.Status.IsValid()
}

// IsPending returns true while the task has not been completed.
func (t Task) IsPending() bool {
	return t.Status == StatusPending
}

// IsOverdue returns true for a pending task whose due date has passed.
func (t Task) IsOverdue(now time.Time) bool {
	return t.IsPending() && t.DueAt.Before(now)
}

// IsDueOn reports whether the due date falls on the same calendar day as
// day, with both evaluated in loc. A nil loc means UTC.
func (t Task) IsDueOn(day time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	y1, m1, d1 := t.DueAt.In(loc).Date()
	y2, m2, d2 := day.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDueWithin reports whether the task is due after now and no later than now+window.
func (t Task) IsDueWithin(now time.Time, window time.Duration) bool {
	return t.DueAt.After(now) && !t.DueAt.After(now.Add(window))
}

// Complete returns a copy of the task moved to the completed state.
// The second result is false when the task was not pending.
func (t Task) Complete(at time.Time) (Task, bool) {
	if !t.IsPending() {
		return t, false
	}
	t.Status = StatusCompleted
	t.CompletedAt = &at
	return t, true
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// TaskFilter narrows a task listing.
type TaskFilter struct {
	Status *Status

	// Upcoming keeps only pending tasks due within UpcomingWindow of now.
	// It never yields completed tasks, so combining it with a completed
	// Status always matches nothing.
	Upcoming bool
}

// Matches reports whether t passes the filter at instant now.
func (f TaskFilter) Matches(t Task, now time.Time) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Upcoming && !(t.IsPending() && t.IsDueWithin(now, UpcomingWindow)) {
		return false
	}
	return true
}
