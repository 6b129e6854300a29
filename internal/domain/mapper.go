package domain

import (
	"tasku/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	return sqlite.Task{
		ID:          domainTask.ID,
		Title:       domainTask.Title,
		Subject:     domainTask.Subject,
		DueAt:       domainTask.DueAt,
		Priority:    string(domainTask.Priority),
		Description: domainTask.Description,
		Status:      string(domainTask.Status),
		CreatedAt:   domainTask.CreatedAt,
		CompletedAt: domainTask.CompletedAt,
	}
}

// FromDatabase converts a database Task to a domain Task.
// Unknown enum values are carried through unchanged.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	priority, ok := ParsePriority(dbTask.Priority)
	if !ok {
		priority = Priority(dbTask.Priority)
	}
	status, ok := ParseStatus(dbTask.Status)
	if !ok {
		status = Status(dbTask.Status)
	}
	return Task{
		ID:          dbTask.ID,
		Title:       dbTask.Title,
		Subject:     dbTask.Subject,
		DueAt:       dbTask.DueAt,
		Priority:    priority,
		Description: dbTask.Description,
		Status:      status,
		CreatedAt:   dbTask.CreatedAt,
		CompletedAt: dbTask.CompletedAt,
	}
}

// ToDatabaseSlice converts a slice of domain Tasks to database Tasks.
func (m *TaskMapper) ToDatabaseSlice(domainTasks []Task) []sqlite.Task {
	dbTasks := make([]sqlite.Task, len(domainTasks))
	for i, task := range domainTasks {
		dbTasks[i] = m.ToDatabase(task)
	}
	return dbTasks
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []Task {
	domainTasks := make([]Task, len(dbTasks))
	for i, task := range dbTasks {
		domainTasks[i] = m.FromDatabase(*task)
	}
	return domainTasks
}

// SearchOptionsMapper handles conversion between domain and database SearchOptions.
type SearchOptionsMapper struct{}

// NewSearchOptionsMapper creates a new SearchOptionsMapper instance.
func NewSearchOptionsMapper() *SearchOptionsMapper {
	return &SearchOptionsMapper{}
}

// ToDatabase converts domain SearchOptions to database SearchOptions.
func (m *SearchOptionsMapper) ToDatabase(domainOpts SearchOptions) sqlite.SearchOptions {
	var status *string
	if domainOpts.Status != nil {
		s := string(*domainOpts.Status)
		status = &s
	}
	return sqlite.SearchOptions{
		Status:    status,
		DueAfter:  domainOpts.DueAfter,
		DueBefore: domainOpts.DueBefore,
	}
}

// FromDatabase converts database SearchOptions to domain SearchOptions.
func (m *SearchOptionsMapper) FromDatabase(dbOpts sqlite.SearchOptions) SearchOptions {
	var status *Status
	if dbOpts.Status != nil {
		s := Status(*dbOpts.Status)
		status = &s
	}
	return SearchOptions{
		Status:    status,
		DueAfter:  dbOpts.DueAfter,
		DueBefore: dbOpts.DueBefore,
	}
}

// UserMapper converts between the domain User and its key-value record.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToRecord converts a domain User to its persisted record.
func (m *UserMapper) ToRecord(user User) sqlite.UserRecord {
	return sqlite.UserRecord{
		Email:    user.Email,
		Name:     user.Name,
		Initials: user.Initials,
		Role:     string(user.Role),
	}
}

// FromRecord converts a persisted record to a domain User.
func (m *UserMapper) FromRecord(record sqlite.UserRecord) User {
	return User{
		Email:    record.Email,
		Name:     record.Name,
		Initials: record.Initials,
		Role:     Role(record.Role),
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task          *TaskMapper
	SearchOptions *SearchOptionsMapper
	User          *UserMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:          NewTaskMapper(),
		SearchOptions: NewSearchOptionsMapper(),
		User:          NewUserMapper(),
	}
}
