package sqlite

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{"utc", time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC), "2024-03-15T23:59:00Z"},
		{"offset zone is stored as utc", time.Date(2024, 3, 15, 20, 59, 0, 0, time.FixedZone("CLT", -3*3600)), "2024-03-15T23:59:00Z"},
		{"sub-second precision is dropped", time.Date(2024, 3, 15, 8, 0, 0, 999_000_000, time.UTC), "2024-03-15T08:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestFormatTimePtrForDB(t *testing.T) {
	assert.Nil(t, FormatTimePtrForDB(nil))

	ts := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-15T08:00:00Z", FormatTimePtrForDB(&ts))
}

func TestParseTimeFromDB(t *testing.T) {
	parsed, err := ParseTimeFromDB("2024-03-15T20:59:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC), parsed)
	assert.Equal(t, time.UTC, parsed.Location())

	_, err = ParseTimeFromDB("2024-03-15 20:59:00")
	assert.Error(t, err)

	_, err = ParseTimeFromDB("")
	assert.Error(t, err)
}

func TestParseNullTimeFromDB(t *testing.T) {
	got, err := ParseNullTimeFromDB(sql.NullString{})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseNullTimeFromDB(sql.NullString{String: "2024-03-15T08:00:00Z", Valid: true})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC), *got)

	_, err = ParseNullTimeFromDB(sql.NullString{String: "garbage", Valid: true})
	assert.Error(t, err)
}

func TestFormatTimeForDB_RoundTrip(t *testing.T) {
	original := time.Date(2024, 12, 31, 23, 59, 59, 0, time.FixedZone("", 5*3600+30*60))

	parsed, err := ParseTimeFromDB(FormatTimeForDB(original))

	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))
}
