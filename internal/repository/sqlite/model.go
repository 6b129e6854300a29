package sqlite

import "time"

// Task is a row of the tasks table. Priority and Status are stored as
// their canonical lowercase strings.
type Task struct {
	ID          string
	Title       string
	Subject     string
	DueAt       time.Time
	Priority    string
	Description string
	Status      string
	CreatedAt   time.Time
	CompletedAt *time.Time // Using pointer to allow NULL values
}

// UserRecord is the JSON document stored under the session user key.
type UserRecord struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Role     string `json:"role"`
}
