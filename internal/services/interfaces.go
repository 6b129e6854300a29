package services

import (
	"context"
	"iter"
	"time"

	"tasku/internal/config"
	"tasku/internal/datefmt"
	"tasku/internal/domain"
	"tasku/internal/repository/sqlite"
)

// Clock returns the current instant. Services take one so tests can pin time.
type Clock func() time.Time

// TimeRange represents a time period with start and end times
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SortOrder defines how task results should be sorted
type SortOrder string

const (
	SortByRecentFirst SortOrder = "recent_first" // Most recently created (default)
	SortByOldestFirst SortOrder = "oldest_first" // Insertion order
	SortByDueDate     SortOrder = "due_date"     // Soonest due first
	SortByPriority    SortOrder = "priority"     // High before medium before low
	SortByTitle       SortOrder = "title"        // Alphabetical by title
)

// UpcomingTasks is the reminder shown when pending tasks fall due soon.
type UpcomingTasks struct {
	Tasks   []domain.Task `json:"tasks"`
	Message string        `json:"message"`
}

// AcademicReport summarizes the task collection for the current semester.
type AcademicReport struct {
	Institution string       `json:"institution"`
	Semester    string       `json:"semester"`
	Stats       domain.Stats `json:"stats"`

	labels reportLabels
}

// TimeService owns the clock and the configured timezone.
type TimeService interface {
	Now() time.Time
	Location() *time.Location

	// ParseDueDate reads a due date typed by a user in the configured timezone.
	ParseDueDate(s string) (time.Time, error)
	IsToday(t time.Time) bool
	GetTodayRange() *TimeRange
	GetUpcomingRange() *TimeRange
}

// TaskService handles task lifecycle operations
type TaskService interface {
	CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// ListTasks returns a restartable sequence over a snapshot of the
	// collection in insertion order.
	ListTasks(ctx context.Context, filter domain.TaskFilter) (iter.Seq[domain.Task], error)
	CompleteTask(ctx context.Context, id string) (*domain.Task, error)
}

// SearchService handles search and ordering of tasks
type SearchService interface {
	SearchTasks(ctx context.Context, opts domain.SearchOptions) ([]domain.Task, error)
	FindUpcoming(ctx context.Context) ([]domain.Task, error)
	SortTasks(tasks []domain.Task, order SortOrder) []domain.Task
}

// Authenticator checks credentials and issues session tokens. The mock
// implementation stands in until a real backend exists.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Session, error)
	Revoke(ctx context.Context, token string) error
}

// SessionService handles login, logout and the persisted session
type SessionService interface {
	Login(ctx context.Context, email, password string, opts ...LoginOption) (*domain.Session, error)
	Logout(ctx context.Context) error

	// Current returns the persisted session, or nil when nobody is logged in.
	Current(ctx context.Context) (*domain.Session, error)
}

// ReportingService handles dashboard statistics and reports
type ReportingService interface {
	Stats(ctx context.Context) (*domain.Stats, error)
	Upcoming(ctx context.Context) (*UpcomingTasks, error)
	Report(ctx context.Context) (*AcademicReport, error)
	Suggestions(ctx context.Context) ([]string, error)
	WelcomeMessage() string
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeService      TimeService
	TaskService      TaskService
	SearchService    SearchService
	SessionService   SessionService
	ReportingService ReportingService
	Presenter        *datefmt.Presenter
	Catalog          *config.Catalog
}

// NewServiceContainer wires every service over repo. A nil clock means
// time.Now and a nil catalog means the built-in one.
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config, catalog *config.Catalog, clock Clock) (*ServiceContainer, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if catalog == nil {
		catalog = config.DefaultCatalog()
	}
	if clock == nil {
		clock = time.Now
	}

	presenter, err := datefmt.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}

	timeService := NewTimeService(clock, presenter.Location())
	taskService := NewTaskService(repo, cfg, timeService)
	searchService := NewSearchService(repo, timeService)
	sessionService := NewSessionService(repo, cfg, NewMockAuthenticatorWithConfig(cfg, clock))
	reportingService := NewReportingService(taskService, searchService, timeService, presenter, catalog)

	return &ServiceContainer{
		TimeService:      timeService,
		TaskService:      taskService,
		SearchService:    searchService,
		SessionService:   sessionService,
		ReportingService: reportingService,
		Presenter:        presenter,
		Catalog:          catalog,
	}, nil
}
