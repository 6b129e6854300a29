package api

import (
	"context"
	"time"

	"tasku/internal/config"
	"tasku/internal/domain"
	"tasku/internal/services"
)

// Dashboard represents all data needed for the dashboard view
type Dashboard struct {
	Session     *domain.Session         `json:"session"`
	Welcome     string                  `json:"welcome"`
	Semester    string                  `json:"semester"`
	Stats       domain.Stats            `json:"stats"`
	Upcoming    *services.UpcomingTasks `json:"upcoming"`
	Suggestions []string                `json:"suggestions"`
}

// GetDashboard gathers the session, counters, reminders and hints in one call
func (a *apiImpl) GetDashboard(ctx context.Context) (*Dashboard, error) {
	session, err := a.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	reporting := a.services.ReportingService

	stats, err := reporting.Stats(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, err := reporting.Upcoming(ctx)
	if err != nil {
		return nil, err
	}
	suggestions, err := reporting.Suggestions(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Session:     session,
		Welcome:     reporting.WelcomeMessage(),
		Semester:    a.services.Presenter.Semester(a.Now()),
		Stats:       *stats,
		Upcoming:    upcoming,
		Suggestions: suggestions,
	}, nil
}

func (a *apiImpl) GetStats(ctx context.Context) (*domain.Stats, error) {
	if _, err := a.requireSession(ctx); err != nil {
		return nil, err
	}
	return a.services.ReportingService.Stats(ctx)
}

func (a *apiImpl) GetReport(ctx context.Context) (*services.AcademicReport, error) {
	if _, err := a.requireSession(ctx); err != nil {
		return nil, err
	}
	return a.services.ReportingService.Report(ctx)
}

// Subjects lists the catalog subjects sorted by code
func (a *apiImpl) Subjects() []config.Subject {
	catalog := a.services.Catalog
	subjects := make([]config.Subject, 0, len(catalog.Subjects))
	for _, code := range catalog.SubjectCodes() {
		subjects = append(subjects, config.Subject{Code: code, Name: catalog.SubjectName(code)})
	}
	return subjects
}

// SubjectName returns the display name of code, or code itself for free-form subjects
func (a *apiImpl) SubjectName(code string) string {
	return a.services.Catalog.SubjectName(code)
}

func (a *apiImpl) ParseDueDate(s string) (time.Time, error) {
	return a.services.TimeService.ParseDueDate(s)
}

// FormatDue renders due relative to now in the configured language and timezone
func (a *apiImpl) FormatDue(due time.Time) string {
	return a.services.Presenter.FormatRelative(due, a.Now())
}

// FormatTimestamp renders the absolute date and time of t in the configured timezone
func (a *apiImpl) FormatTimestamp(t time.Time) string {
	return a.services.Presenter.FormatDateTime(t)
}

func (a *apiImpl) Now() time.Time {
	return a.services.TimeService.Now()
}
