package sqlite

import (
	"database/sql"
	"time"
)

// FormatTimeForDB renders t as an RFC3339 string in UTC. Every stored
// instant uses this form, so string comparison in SQL orders chronologically.
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtrForDB is FormatTimeForDB for nullable columns: nil stays NULL.
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB reads a stored instant back, always in UTC.
func ParseTimeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ParseNullTimeFromDB parses a nullable RFC3339 column, returning nil for NULL.
func ParseNullTimeFromDB(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := ParseTimeFromDB(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
