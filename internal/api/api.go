package api

import (
	"context"
	"time"

	"tasku/internal/config"
	"tasku/internal/domain"
	"tasku/internal/errors"
	"tasku/internal/repository/sqlite"
	"tasku/internal/services"
)

// API is the single entry point for front ends. Every task and dashboard
// operation requires an active session and fails with a NOT_AUTHENTICATED
// auth error otherwise.
type API interface {
	// ========== Session ==========

	// Login validates the credentials and starts a session, replacing any previous one
	Login(ctx context.Context, email, password string, opts ...services.LoginOption) (*domain.Session, error)

	// Logout ends the current session; it succeeds when there is none
	Logout(ctx context.Context) error

	// CurrentSession returns the active session or nil
	CurrentSession(ctx context.Context) (*domain.Session, error)

	// ========== Tasks ==========

	CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, opts ListOptions) ([]domain.Task, error)
	CompleteTask(ctx context.Context, id string) (*domain.Task, error)

	// ========== Dashboard and Reports ==========

	GetDashboard(ctx context.Context) (*Dashboard, error)
	GetStats(ctx context.Context) (*domain.Stats, error)
	GetReport(ctx context.Context) (*services.AcademicReport, error)

	// ========== Reference data (no session needed) ==========

	Subjects() []config.Subject
	SubjectName(code string) string
	ParseDueDate(s string) (time.Time, error)
	FormatDue(due time.Time) string
	FormatTimestamp(t time.Time) string
	Now() time.Time
}

// ListOptions narrows and orders a task listing.
type ListOptions struct {
	Filter domain.TaskFilter
	Order  services.SortOrder
}

// apiImpl implements the API interface
type apiImpl struct {
	services *services.ServiceContainer
}

// New creates an API over repo with its own service container.
// A nil clock means time.Now; a nil catalog means the built-in one.
func New(repo sqlite.Repository, cfg *config.Config, catalog *config.Catalog, clock services.Clock) (API, error) {
	container, err := services.NewServiceContainer(repo, cfg, catalog, clock)
	if err != nil {
		return nil, err
	}
	return NewWithServices(container), nil
}

// NewWithServices creates an API over an existing service container.
func NewWithServices(container *services.ServiceContainer) API {
	return &apiImpl{services: container}
}

// requireSession is the gate in front of every task operation.
func (a *apiImpl) requireSession(ctx context.Context) (*domain.Session, error) {
	session, err := a.services.SessionService.Current(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.NewAuthError(errors.CodeNotAuthenticated, "you need to log in first")
	}
	return session, nil
}

func (a *apiImpl) Login(ctx context.Context, email, password string, opts ...services.LoginOption) (*domain.Session, error) {
	return a.services.SessionService.Login(ctx, email, password, opts...)
}

func (a *apiImpl) Logout(ctx context.Context) error {
	return a.services.SessionService.Logout(ctx)
}

func (a *apiImpl) CurrentSession(ctx context.Context) (*domain.Session, error) {
	return a.services.SessionService.Current(ctx)
}

func (a *apiImpl) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	if _, err := a.requireSession(ctx); err != nil {
		return nil, err
	}
	return a.services.TaskService.CreateTask(ctx, input)
}

func (a *apiImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if _, err := a.requireSession(ctx); err != nil {
		return nil, err
	}
	return a.services.TaskService.GetTask(ctx, id)
}

// ListTasks collects the filtered sequence and sorts it. The zero Order
// lists the most recently created tasks first.
func (a *apiImpl) ListTasks(ctx context.Context, opts ListOptions) ([]domain.Task, error) {
	if _, err := a.requireSession(ctx); err != nil {
		return nil, err
	}

	seq, err := a.services.TaskService.ListTasks(ctx, opts.Filter)
	if err != nil {
		return nil, err
	}

	var tasks []domain.Task
	for task := range seq {
		tasks = append(tasks, task)
	}
	return a.services.SearchService.SortTasks(tasks, opts.Order), nil
}

func (a *apiImpl) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	if _, err := a.requireSession(ctx); err != nil {
		return nil, err
	}
	return a.services.TaskService.CompleteTask(ctx, id)
}
