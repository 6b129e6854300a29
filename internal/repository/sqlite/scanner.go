package sqlite

import (
	"database/sql"
	"fmt"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// taskColumns is the column list every task query selects, in ScanTask order.
const taskColumns = `id, title, subject, due_at, priority, description, status, created_at, completed_at`

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var dueAt, createdAt string
	var completedAt sql.NullString

	err := scanner.Scan(
		&task.ID,
		&task.Title,
		&task.Subject,
		&dueAt,
		&task.Priority,
		&task.Description,
		&task.Status,
		&createdAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if task.DueAt, err = ParseTimeFromDB(dueAt); err != nil {
		return nil, fmt.Errorf("due_at of task %s: %w", task.ID, err)
	}
	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("created_at of task %s: %w", task.ID, err)
	}
	if task.CompletedAt, err = ParseNullTimeFromDB(completedAt); err != nil {
		return nil, fmt.Errorf("completed_at of task %s: %w", task.ID, err)
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	var tasks []*Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
