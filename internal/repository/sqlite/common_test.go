package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	apperrors "tasku/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResult implements sql.Result for testing
type stubResult struct {
	rowsAffected int64
	rowsErr      error
}

func (r stubResult) LastInsertId() (int64, error) {
	return 0, errors.New("not supported")
}

func (r stubResult) RowsAffected() (int64, error) {
	return r.rowsAffected, r.rowsErr
}

func TestLookupError(t *testing.T) {
	t.Run("no rows becomes not found", func(t *testing.T) {
		err := lookupError(sql.ErrNoRows, "get value", "key", "auth.token")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Contains(t, err.Error(), "key not found: auth.token")
	})

	t.Run("wrapped no rows is recognised", func(t *testing.T) {
		err := lookupError(errors.Join(errors.New("scan"), sql.ErrNoRows), "scan task", "task", "task_1")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("other failures become database errors", func(t *testing.T) {
		locked := errors.New("database is locked")
		err := lookupError(locked, "get value", "key", "auth.token")

		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
		assert.Contains(t, err.Error(), "get value")
		assert.ErrorIs(t, err, locked)
	})
}

func TestRequireAffected(t *testing.T) {
	tests := []struct {
		name         string
		result       sql.Result
		wantErr      bool
		wantNotFound bool
	}{
		{"one row", stubResult{rowsAffected: 1}, false, false},
		{"no rows", stubResult{rowsAffected: 0}, true, true},
		{"driver error", stubResult{rowsErr: errors.New("driver error")}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requireAffected(tt.result, "pending task", "task_1")

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantNotFound, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
			assert.Equal(t, !tt.wantNotFound, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
		})
	}
}

func TestQueryOne_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := queryOne(context.Background(), repo.db, "task", "missing", ScanTask,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQueryAll_BadQuery(t *testing.T) {
	repo := setupTestDB(t)

	_, err := queryAll(context.Background(), repo.db, "tasks", ScanTasks, `SELECT nope FROM nowhere`)

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
}

func TestExecOnOne_NoMatch(t *testing.T) {
	repo := setupTestDB(t)

	err := execOnOne(context.Background(), repo.db, "task", "ghost",
		`UPDATE tasks SET title = 'x' WHERE id = ?`, "ghost")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestExec_CancelledContext(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := exec(ctx, repo.db, "set value", `INSERT INTO kv (key, value, updated_at) VALUES ('a', 'b', 'c')`)

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
}
