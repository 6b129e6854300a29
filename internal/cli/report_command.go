package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tasku/internal/domain"
	"tasku/internal/errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var dashboardInfo = CommandInfo{
	Name:  "dashboard",
	Use:   "dashboard",
	Short: "Show the dashboard: counters, reminders and study hints",
	Args:  cobra.NoArgs,
}

// DashboardCommand handles the dashboard command
type DashboardCommand struct {
	app *App
}

// NewDashboardCommand creates a new dashboard command handler
func NewDashboardCommand(app *App) *DashboardCommand {
	return &DashboardCommand{app: app}
}

// Execute runs the dashboard command
func (c *DashboardCommand) Execute(ctx context.Context, args []string) error {
	dashboard, err := c.app.api.GetDashboard(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("load dashboard", err)
	}

	if dashboard.Welcome != "" {
		c.app.println(dashboard.Welcome)
	}
	c.app.printf("%s (%s) · %s\n", dashboard.Session.Name, dashboard.Session.Initials, dashboard.Semester)
	c.app.println()
	printStatsText(c.app, dashboard.Stats)

	if dashboard.Upcoming.Message != "" {
		c.app.println()
		c.app.println(dashboard.Upcoming.Message)
		now := c.app.api.Now()
		for _, task := range dashboard.Upcoming.Tasks {
			c.app.printf("  - %s (%s, %s)\n", task.Title, c.app.api.SubjectName(task.Subject), dueLabel(c.app, task, now))
		}
	}

	if len(dashboard.Suggestions) > 0 {
		c.app.println()
		for _, suggestion := range dashboard.Suggestions {
			c.app.printf("* %s\n", suggestion)
		}
	}
	return nil
}

var statsInfo = CommandInfo{
	Name:  "stats",
	Use:   "stats",
	Short: "Show task counters",
	Long: `Show pending, due today, completed and overdue counts with the completion rate.

Examples:
  tasku stats
  tasku stats --format json
  tasku stats --format yaml`,
	Args: cobra.NoArgs,
}

// StatsCommand handles the stats command
type StatsCommand struct {
	app    *App
	format string
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app, format: "text"}
}

// BindFlags registers the output format flag
func (c *StatsCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.format, "format", "f", "text", "Output format: text, json or yaml")
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	stats, err := c.app.api.GetStats(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("compute stats", err)
	}

	switch strings.ToLower(c.format) {
	case "", "text":
		printStatsText(c.app, *stats)
	case "json":
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return c.app.errorHandler.Handle("encode stats", err)
		}
		c.app.println(string(data))
	case "yaml":
		data, err := yaml.Marshal(stats)
		if err != nil {
			return c.app.errorHandler.Handle("encode stats", err)
		}
		c.app.printf("%s", data)
	default:
		return c.app.errorHandler.Handle("compute stats",
			errors.NewInvalidInputError("format", c.format, "must be text, json or yaml"))
	}
	return nil
}

func printStatsText(app *App, stats domain.Stats) {
	rows := []struct {
		label string
		value string
	}{
		{"Pending", fmt.Sprint(stats.Pending)},
		{"Due today", fmt.Sprint(stats.DueToday)},
		{"Completed", fmt.Sprint(stats.Completed)},
		{"Overdue", fmt.Sprint(stats.Overdue)},
		{"Total", fmt.Sprint(stats.Total)},
		{"Completion", fmt.Sprintf("%d%%", stats.CompletionRatePercent)},
	}
	for _, row := range rows {
		app.printf("%-11s %s\n", row.label+":", row.value)
	}
}

var reportInfo = CommandInfo{
	Name:  "report",
	Use:   "report",
	Short: "Print the academic report for the current semester",
	Args:  cobra.NoArgs,
}

// ReportCommand handles the report command
type ReportCommand struct {
	app *App
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{app: app}
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context, args []string) error {
	report, err := c.app.api.GetReport(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("build report", err)
	}
	c.app.println(report.String())
	return nil
}

var subjectsInfo = CommandInfo{
	Name:  "subjects",
	Use:   "subjects",
	Short: "List the subject catalog",
	Args:  cobra.NoArgs,
}

// SubjectsCommand handles the subjects command
type SubjectsCommand struct {
	app *App
}

// NewSubjectsCommand creates a new subjects command handler
func NewSubjectsCommand(app *App) *SubjectsCommand {
	return &SubjectsCommand{app: app}
}

// Execute runs the subjects command
func (c *SubjectsCommand) Execute(ctx context.Context, args []string) error {
	for _, subject := range c.app.api.Subjects() {
		c.app.printf("%-12s %s\n", subject.Code, subject.Name)
	}
	return nil
}
