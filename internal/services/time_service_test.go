package services

import (
	"testing"
	"time"

	"tasku/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeService_ParseDueDate(t *testing.T) {
	santiago := time.FixedZone("CLT", -3*3600)
	service := NewTimeService(fixedClock(testNow), santiago)

	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "should parse datetime-local layout in configured timezone",
			input:    "2024-03-10T18:30",
			expected: time.Date(2024, 3, 10, 18, 30, 0, 0, santiago),
		},
		{
			name:     "should parse space separated layout",
			input:    "2024-03-10 18:30",
			expected: time.Date(2024, 3, 10, 18, 30, 0, 0, santiago),
		},
		{
			name:     "should honour explicit offset in RFC3339",
			input:    "2024-03-10T18:30:00Z",
			expected: time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC),
		},
		{
			name:     "should treat bare date as end of day",
			input:    "2024-03-10",
			expected: time.Date(2024, 3, 10, 23, 59, 0, 0, santiago),
		},
		{
			name:     "should parse hour shorthand",
			input:    "2h",
			expected: testNow.Add(2 * time.Hour),
		},
		{
			name:     "should parse day shorthand",
			input:    "3d",
			expected: testNow.Add(72 * time.Hour),
		},
		{
			name:     "should parse week shorthand",
			input:    " 1w ",
			expected: testNow.Add(7 * 24 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.ParseDueDate(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
		})
	}
}

func TestTimeService_ParseDueDate_Invalid(t *testing.T) {
	service := NewTimeService(fixedClock(testNow), time.UTC)

	for _, input := range []string{"", "   ", "tomorrow", "10/03/2024", "-2h", "-1d", "d"} {
		t.Run(input, func(t *testing.T) {
			_, err := service.ParseDueDate(input)
			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
		})
	}
}

func TestTimeService_IsToday(t *testing.T) {
	// 02:00 UTC on 5 March is still 4 March in UTC-3.
	service := NewTimeService(fixedClock(testNow), time.FixedZone("CLT", -3*3600))

	assert.True(t, service.IsToday(testNow))
	assert.True(t, service.IsToday(time.Date(2024, 3, 5, 2, 0, 0, 0, time.UTC)))
	assert.False(t, service.IsToday(time.Date(2024, 3, 5, 4, 0, 0, 0, time.UTC)))
	assert.False(t, service.IsToday(testNow.AddDate(-1, 0, 0)))
}

func TestTimeService_Ranges(t *testing.T) {
	service := NewTimeService(fixedClock(testNow), time.UTC)

	today := service.GetTodayRange()
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), today.Start)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), today.End)

	upcoming := service.GetUpcomingRange()
	assert.Equal(t, testNow, upcoming.Start)
	assert.Equal(t, testNow.Add(24*time.Hour), upcoming.End)
}

func TestNewTimeService_Defaults(t *testing.T) {
	service := NewTimeService(nil, nil)

	assert.Equal(t, time.UTC, service.Location())
	assert.WithinDuration(t, time.Now(), service.Now(), time.Minute)
}
