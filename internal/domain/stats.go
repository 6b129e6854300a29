package domain

import (
	"math"
	"time"
)

// Stats holds the dashboard counters derived from a task collection.
type Stats struct {
	Total                 int `json:"total" yaml:"total"`
	Pending               int `json:"pending" yaml:"pending"`
	DueToday              int `json:"due_today" yaml:"due_today"`
	Completed             int `json:"completed" yaml:"completed"`
	Overdue               int `json:"overdue" yaml:"overdue"`
	CompletionRatePercent int `json:"completion_rate_percent" yaml:"completion_rate_percent"`
}

// ComputeStats derives Stats from tasks at instant now. Calendar-day
// comparisons for DueToday happen in loc.
func ComputeStats(tasks []Task, now time.Time, loc *time.Location) Stats {
	var stats Stats
	for _, task := range tasks {
		stats.Total++
		switch task.Status {
		case StatusPending:
			stats.Pending++
			if task.IsDueOn(now, loc) {
				stats.DueToday++
			}
			if task.IsOverdue(now) {
				stats.Overdue++
			}
		case StatusCompleted:
			stats.Completed++
		}
	}
	stats.CompletionRatePercent = CompletionRate(stats.Completed, stats.Total)
	return stats
}

// CompletionRate returns round(100*completed/total), or 0 for an empty collection.
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
