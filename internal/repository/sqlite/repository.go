package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tasku/internal/errors"
	"tasku/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// SearchOptions contains all possible search parameters
type SearchOptions struct {
	Status    *string
	DueAfter  *time.Time
	DueBefore *time.Time
}

// Repository defines the interface for database operations
type Repository interface {
	// Task operations
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	SearchTasks(ctx context.Context, opts SearchOptions) ([]*Task, error)
	CompleteTask(ctx context.Context, id string, completedAt time.Time) error

	// Key-value operations backing the session store
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error
	DeleteValue(ctx context.Context, key string) error

	// Utility
	Close() error
}

// Options tunes how the database is opened.
type Options struct {
	// DirPermissions is used when the database directory has to be created.
	DirPermissions os.FileMode
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithConfig(dbPath, Options{DirPermissions: 0o755})
}

// NewWithConfig creates a repository, creating the parent directory of a
// file-backed database when it does not exist yet.
func NewWithConfig(dbPath string, opts Options) (*SQLiteRepository, error) {
	if !isMemoryPath(dbPath) {
		perm := opts.DirPermissions
		if perm == 0 {
			perm = 0o755
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), perm); err != nil {
			return nil, errors.NewDatabaseError("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func isMemoryPath(dbPath string) bool {
	return dbPath == ":memory:" || strings.HasPrefix(dbPath, "file::memory:")
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTask inserts a new task. A duplicate ID is reported as a database error.
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	query := `
	INSERT INTO tasks (id, title, subject, due_at, priority, description, status, created_at, completed_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return exec(ctx, r.db, "insert task", query,
		task.ID,
		task.Title,
		task.Subject,
		FormatTimeForDB(task.DueAt),
		task.Priority,
		task.Description,
		task.Status,
		FormatTimeForDB(task.CreatedAt),
		FormatTimePtrForDB(task.CompletedAt),
	)
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return queryOne(ctx, r.db, "task", id, ScanTask, query, id)
}

// ListTasks retrieves all tasks in insertion order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY seq ASC`
	return queryAll(ctx, r.db, "tasks", ScanTasks, query)
}

// SearchTasks searches for tasks based on the provided options
func (r *SQLiteRepository) SearchTasks(ctx context.Context, opts SearchOptions) ([]*Task, error) {
	var conditions []string
	var args []interface{}

	if opts.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *opts.Status)
	}
	// Instants are stored in UTC, so RFC3339 strings compare chronologically.
	if opts.DueAfter != nil {
		conditions = append(conditions, "due_at > ?")
		args = append(args, FormatTimeForDB(*opts.DueAfter))
	}
	if opts.DueBefore != nil {
		conditions = append(conditions, "due_at <= ?")
		args = append(args, FormatTimeForDB(*opts.DueBefore))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY seq ASC"

	return queryAll(ctx, r.db, "tasks", ScanTasks, query, args...)
}

// CompleteTask marks a pending task as completed. It returns a not found
// error when no pending task with that ID exists.
func (r *SQLiteRepository) CompleteTask(ctx context.Context, id string, completedAt time.Time) error {
	query := `
	UPDATE tasks
	SET status = 'completed', completed_at = ?
	WHERE id = ? AND status = 'pending'`

	return execOnOne(ctx, r.db, "pending task", id, query, FormatTimeForDB(completedAt), id)
}

// GetValue returns the value stored under key, or a not found error.
func (r *SQLiteRepository) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	if err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value); err != nil {
		return "", lookupError(err, "get value", "key", key)
	}
	return value, nil
}

// SetValue stores value under key, replacing any previous value.
func (r *SQLiteRepository) SetValue(ctx context.Context, key, value string) error {
	query := `
	INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	return exec(ctx, r.db, "set value", query, key, value, FormatTimeForDB(time.Now()))
}

// DeleteValue removes key. Deleting a missing key is not an error.
func (r *SQLiteRepository) DeleteValue(ctx context.Context, key string) error {
	return exec(ctx, r.db, "delete value", `DELETE FROM kv WHERE key = ?`, key)
}
