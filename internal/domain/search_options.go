package domain

import "time"

// SearchOptions represents search criteria for tasks.
// This is a domain model that mirrors the database search options
// but belongs to the domain layer for proper separation of concerns.
type SearchOptions struct {
	Status    *Status
	DueAfter  *time.Time
	DueBefore *time.Time
}
