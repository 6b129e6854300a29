package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"tasku/internal/config"
	"tasku/internal/domain"
	"tasku/internal/errors"
	"tasku/internal/logging"
	"tasku/internal/repository/sqlite"
	"tasku/internal/validation"

	"github.com/google/uuid"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.Repository
	timeService   TimeService
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	writeTimeout  time.Duration
	queryTimeout  time.Duration
}

// NewTaskService creates a new TaskService instance. A nil cfg uses the
// default validation limits.
func NewTaskService(repo sqlite.Repository, cfg *config.Config, timeService TimeService) TaskService {
	service := &taskServiceImpl{
		repo:          repo,
		timeService:   timeService,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
	}
	if cfg != nil {
		service.taskValidator = validation.NewTaskValidatorWithConfig(cfg)
		service.writeTimeout = cfg.GetWriteTimeout()
		service.queryTimeout = cfg.GetQueryTimeout()
	}
	return service
}

// NewTaskID returns an identifier of the form task_<unix millis>_<9 hex chars>.
func NewTaskID(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("task_%d_%s", now.UnixMilli(), random[:9])
}

// withTimeout bounds ctx by d when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// wrapValidationError lifts a field-level validation error into an AppError
// whose code is the validation reason. The original stays reachable through
// errors.As.
func wrapValidationError(err error) error {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return errors.NewValidationErrorWithCode(string(ve.Reason()), ve.GetUserFriendlyMessage(), ve)
	}
	return err
}

// CreateTask validates input and stores a new pending task
func (t *taskServiceImpl) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	now := t.timeService.Now()

	draft, err := t.taskValidator.ValidateForCreation(input, now)
	if err != nil {
		return nil, wrapValidationError(err)
	}

	task := domain.NewTask(NewTaskID(now), draft, now)
	dbTask := t.mapper.Task.ToDatabase(task)

	ctx, cancel := withTimeout(ctx, t.writeTimeout)
	defer cancel()

	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	for _, warning := range draft.Warnings {
		logging.Debugf("task %s accepted with warning: %s\n", task.ID, warning)
	}
	logging.Debugf("created task %s (%s, due %s)\n", task.ID, task.Subject, task.DueAt.Format(time.RFC3339))
	return &task, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, wrapValidationError(err)
	}

	ctx, cancel := withTimeout(ctx, t.queryTimeout)
	defer cancel()

	dbTask, err := t.repo.GetTask(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	task := t.mapper.Task.FromDatabase(*dbTask)
	return &task, nil
}

// ListTasks reads the collection once and returns a sequence over that
// snapshot. The filter is evaluated against the instant ListTasks was called.
func (t *taskServiceImpl) ListTasks(ctx context.Context, filter domain.TaskFilter) (iter.Seq[domain.Task], error) {
	ctx, cancel := withTimeout(ctx, t.queryTimeout)
	defer cancel()

	dbTasks, err := t.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := t.mapper.Task.FromDatabaseSlice(dbTasks)
	now := t.timeService.Now()

	return func(yield func(domain.Task) bool) {
		for _, task := range snapshot {
			if !filter.Matches(task, now) {
				continue
			}
			if !yield(task) {
				return
			}
		}
	}, nil
}

// CompleteTask moves a pending task to completed
func (t *taskServiceImpl) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := t.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := t.taskValidator.ValidateCompletion(*task); err != nil {
		return nil, wrapValidationError(err)
	}

	completed, _ := task.Complete(t.timeService.Now())

	ctx, cancel := withTimeout(ctx, t.writeTimeout)
	defer cancel()

	if err := t.repo.CompleteTask(ctx, completed.ID, *completed.CompletedAt); err != nil {
		return nil, err
	}

	logging.Debugf("completed task %s\n", completed.ID)
	return &completed, nil
}
