package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"tasku/internal/logging"
)

//go:embed *.sql
var migrationsFS embed.FS

// GoMigrationFunc runs a migration step that needs more than plain SQL.
type GoMigrationFunc func(tx *sql.Tx) error

// Migration represents a database migration. Exactly one of Up or UpFunc is set.
type Migration struct {
	Version  int
	Up       string
	Down     string
	UpFunc   GoMigrationFunc
	DownFunc GoMigrationFunc
}

var goMigrations = map[int]Migration{}

// RegisterGoMigration adds a migration implemented in Go. It is meant to be
// called from init functions and panics on a duplicate version.
func RegisterGoMigration(version int, up, down GoMigrationFunc) {
	if _, exists := goMigrations[version]; exists {
		panic(fmt.Sprintf("migrations: duplicate go migration version %d", version))
	}
	goMigrations[version] = Migration{Version: version, UpFunc: up, DownFunc: down}
}

// RunMigrations executes all pending migrations. A file-backed database is
// copied aside before the first pending migration runs; the copy is removed
// once every migration has been applied and kept otherwise.
func RunMigrations(db *sql.DB) error {
	// Create migrations table if it doesn't exist
	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	dirty, err := getDirtyMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to check migration state: %w", err)
	}
	if len(dirty) > 0 {
		return fmt.Errorf("database is in a dirty state, failed migration(s): %v", dirty)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	var pending []Migration
	for _, migration := range migrations {
		if !applied[migration.Version] {
			pending = append(pending, migration)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	backupPath, err := backupDatabase(db)
	if err != nil {
		return fmt.Errorf("failed to back up database: %w", err)
	}

	for _, migration := range pending {
		if err := applyMigration(db, migration); err != nil {
			if backupPath != "" {
				return fmt.Errorf("failed to apply migration %d (backup kept at %s): %w", migration.Version, backupPath, err)
			}
			return fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
		}
		logging.Debugf("applied migration %d\n", migration.Version)
	}

	if backupPath != "" {
		if err := os.Remove(backupPath); err != nil {
			logging.Debugf("could not remove migration backup %s: %v\n", backupPath, err)
		}
	}

	return nil
}

func createMigrationsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		dirty BOOLEAN DEFAULT FALSE
	)`
	if _, err := db.Exec(query); err != nil {
		return err
	}
	return ensureDirtyColumn(db)
}

// ensureDirtyColumn upgrades migrations tables created without the dirty flag.
func ensureDirtyColumn(db *sql.DB) error {
	rows, err := db.Query("SELECT name FROM pragma_table_info('migrations')")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if name == "dirty" {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	_, err = db.Exec("ALTER TABLE migrations ADD COLUMN dirty BOOLEAN DEFAULT FALSE")
	return err
}

func loadMigrations() ([]Migration, error) {
	entries, err := migrationsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		version := extractVersion(entry.Name())
		if version == 0 {
			continue
		}

		upSQL, err := migrationsFS.ReadFile(entry.Name())
		if err != nil {
			return nil, err
		}

		downFile := strings.Replace(entry.Name(), ".up.sql", ".down.sql", 1)
		downSQL, err := migrationsFS.ReadFile(downFile)
		if err != nil {
			return nil, err
		}

		migrations = append(migrations, Migration{
			Version: version,
			Up:      string(upSQL),
			Down:    string(downSQL),
		})
	}

	for version, migration := range goMigrations {
		for _, existing := range migrations {
			if existing.Version == version {
				return nil, fmt.Errorf("migration %d is defined both in SQL and in Go", version)
			}
		}
		migrations = append(migrations, migration)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func getAppliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func getDirtyMigrations(db *sql.DB) ([]int, error) {
	rows, err := db.Query("SELECT version FROM migrations WHERE dirty = TRUE ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dirty []int
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		dirty = append(dirty, version)
	}
	return dirty, rows.Err()
}

// applyMigration records the version as dirty, runs it in a transaction and
// clears the flag in that same transaction. A failure leaves the dirty row
// behind so the next run refuses to continue.
func applyMigration(db *sql.DB, migration Migration) error {
	if _, err := db.Exec("INSERT INTO migrations (version, dirty) VALUES (?, TRUE)", migration.Version); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if migration.UpFunc != nil {
		err = migration.UpFunc(tx)
	} else {
		_, err = tx.Exec(migration.Up)
	}
	if err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec("UPDATE migrations SET dirty = FALSE WHERE version = ?", migration.Version); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// backupDatabase copies a file-backed database next to itself and returns
// the copy's path. In-memory databases are not backed up.
func backupDatabase(db *sql.DB) (string, error) {
	path, err := databaseFile(db)
	if err != nil || path == "" {
		return "", err
	}

	backupPath := fmt.Sprintf("%s.backup.%d", path, time.Now().UnixNano())
	if _, err := db.Exec("VACUUM INTO ?", backupPath); err != nil {
		return "", err
	}
	return backupPath, nil
}

func databaseFile(db *sql.DB) (string, error) {
	var file string
	err := db.QueryRow("SELECT file FROM pragma_database_list WHERE name = 'main'").Scan(&file)
	if err != nil {
		return "", err
	}
	return file, nil
}

func extractVersion(filename string) int {
	var version int
	fmt.Sscanf(filename, "%d_", &version)
	return version
}
