package migrations

import (
	"database/sql"
	"fmt"
	"strings"

	"tasku/internal/logging"
)

func init() {
	RegisterGoMigration(3, Up_000003_normalize_task_enums, Down_000003_normalize_task_enums)
}

var legacyPriorities = map[string]string{
	"alta":  "high",
	"media": "medium",
	"baja":  "low",
}

var legacyStatuses = map[string]string{
	"pendiente":  "pending",
	"completada": "completed",
	"completado": "completed",
}

// Up_000003_normalize_task_enums rewrites priority and status values imported
// from the Spanish form (alta, media, baja, pendiente, completada) to the
// canonical lowercase English values. Values already canonical only get
// trimmed and lowercased.
func Up_000003_normalize_task_enums(tx *sql.Tx) error {
	// Read all rows into memory first to avoid locking issues
	type row struct {
		seq      int64
		priority string
		status   string
	}
	var rowsToFix []row

	rows, err := tx.Query("SELECT seq, priority, status FROM tasks")
	if err != nil {
		return fmt.Errorf("failed to query tasks: %w", err)
	}
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.seq, &r.priority, &r.status); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan task row: %w", err)
		}
		rowsToFix = append(rowsToFix, r)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating tasks: %w", err)
	}
	rows.Close()

	stmt, err := tx.Prepare("UPDATE tasks SET priority = ?, status = ? WHERE seq = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare task update statement: %w", err)
	}
	defer stmt.Close()

	updates := 0
	for _, r := range rowsToFix {
		priority := normalizeEnum(r.priority, legacyPriorities)
		status := normalizeEnum(r.status, legacyStatuses)
		if priority == r.priority && status == r.status {
			continue
		}
		if _, err := stmt.Exec(priority, status, r.seq); err != nil {
			return fmt.Errorf("failed to update task %d: %w", r.seq, err)
		}
		updates++
	}

	logging.Debugf("normalized %d of %d task rows\n", updates, len(rowsToFix))
	return nil
}

// Down_000003_normalize_task_enums is a no-op: the canonical values are valid
// input for every earlier schema version.
func Down_000003_normalize_task_enums(tx *sql.Tx) error {
	return nil
}

func normalizeEnum(value string, legacy map[string]string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if canonical, ok := legacy[v]; ok {
		return canonical
	}
	return v
}
