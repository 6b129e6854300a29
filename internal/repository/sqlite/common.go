package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	"tasku/internal/errors"
)

// dbError wraps a driver error as a database error naming the operation.
func dbError(operation string, err error) error {
	return errors.NewDatabaseError(operation, err)
}

// lookupError maps sql.ErrNoRows to a not found error for the entity and
// wraps any other failure as a database error.
func lookupError(err error, operation, entityType, id string) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewNotFoundError(entityType, id)
	}
	return dbError(operation, err)
}

// requireAffected reports a not found error when result touched no row.
func requireAffected(result sql.Result, entityType, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return dbError("get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError(entityType, id)
	}
	return nil
}

// exec runs a statement that is not expected to match existing rows.
func exec(ctx context.Context, db *sql.DB, operation, query string, args ...interface{}) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return dbError(operation, err)
	}
	return nil
}

// execOnOne runs a statement that must touch the row identified by id.
func execOnOne(ctx context.Context, db *sql.DB, entityType, id, query string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return dbError("update "+entityType, err)
	}
	return requireAffected(result, entityType, id)
}

// queryOne runs a single-row query and scans it with scan.
func queryOne[T any](ctx context.Context, db *sql.DB, entityType, id string, scan func(Scanner) (*T, error), query string, args ...interface{}) (*T, error) {
	result, err := scan(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, lookupError(err, "scan "+entityType, entityType, id)
	}
	return result, nil
}

// queryAll runs a multi-row query and scans every row with scan.
func queryAll[T any](ctx context.Context, db *sql.DB, entityType string, scan func(Rows) ([]*T, error), query string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scan(rows)
	if err != nil {
		return nil, dbError("scan "+entityType, err)
	}
	return results, nil
}
