package services

import (
	"strconv"
	"strings"
	"time"

	"tasku/internal/domain"
	"tasku/internal/errors"
)

// dueDateLayouts are tried in order. Layouts without an offset are read in
// the configured timezone.
var dueDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02",
}

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	now Clock
	loc *time.Location
}

// NewTimeService creates a new TimeService instance. A nil clock means
// time.Now and a nil location means UTC.
func NewTimeService(clock Clock, loc *time.Location) TimeService {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &timeServiceImpl{now: clock, loc: loc}
}

func (t *timeServiceImpl) Now() time.Time {
	return t.now()
}

func (t *timeServiceImpl) Location() *time.Location {
	return t.loc
}

// ParseDueDate accepts an absolute date in one of dueDateLayouts or a
// shorthand offset from now ("30m", "2h", "3d", "1w"). A bare date means the
// last minute of that day.
func (t *timeServiceImpl) ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.NewInvalidInputError("due", s, "due date cannot be empty")
	}

	if offset, ok := parseDueShorthand(s); ok {
		return t.now().Add(offset).Truncate(time.Minute), nil
	}

	for _, layout := range dueDateLayouts {
		parsed, err := time.ParseInLocation(layout, s, t.loc)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			parsed = parsed.Add(23*time.Hour + 59*time.Minute)
		}
		return parsed, nil
	}

	return time.Time{}, errors.NewInvalidInputError("due", s,
		"expected YYYY-MM-DD HH:MM, YYYY-MM-DD, RFC3339 or an offset such as 2h or 3d")
}

// parseDueShorthand converts shorthand offsets to durations. Days and weeks
// are handled here since time.ParseDuration stops at hours.
func parseDueShorthand(s string) (time.Duration, bool) {
	n := len(s)
	if n < 2 {
		return 0, false
	}

	switch unit := s[n-1]; unit {
	case 'd', 'w':
		count, err := strconv.Atoi(s[:n-1])
		if err != nil || count < 0 {
			return 0, false
		}
		if unit == 'w' {
			count *= 7
		}
		return time.Duration(count) * 24 * time.Hour, true
	}

	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, false
	}
	return d, true
}

// IsToday checks if the given time falls on the current calendar day in the
// configured timezone
func (t *timeServiceImpl) IsToday(ts time.Time) bool {
	now := t.now().In(t.loc)
	local := ts.In(t.loc)
	return now.Year() == local.Year() && now.YearDay() == local.YearDay()
}

// GetTodayRange returns the current calendar day in the configured timezone
func (t *timeServiceImpl) GetTodayRange() *TimeRange {
	now := t.now().In(t.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, t.loc)
	return &TimeRange{
		Start: start,
		End:   start.AddDate(0, 0, 1),
	}
}

// GetUpcomingRange returns the window in which a pending task counts as upcoming
func (t *timeServiceImpl) GetUpcomingRange() *TimeRange {
	now := t.now()
	return &TimeRange{
		Start: now,
		End:   now.Add(domain.UpcomingWindow),
	}
}
