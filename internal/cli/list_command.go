package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"tasku/internal/api"
	"tasku/internal/domain"
	"tasku/internal/errors"
	"tasku/internal/services"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var listInfo = CommandInfo{
	Name:  "list",
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks, most recently created first.

Examples:
  tasku list                      # All tasks
  tasku list --status pending     # Only pending tasks
  tasku list --upcoming           # Pending tasks due in the next 24 hours
  tasku list --sort due_date      # Soonest due first`,
	Args: cobra.NoArgs,
}

// ListCommand handles the list command
type ListCommand struct {
	app      *App
	status   string
	upcoming bool
	sort     string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// BindFlags registers the filter flags
func (c *ListCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.status, "status", "", "Filter by status: pending or completed")
	flags.BoolVar(&c.upcoming, "upcoming", false, "Only pending tasks due within the next 24 hours")
	flags.StringVar(&c.sort, "sort", string(services.SortByRecentFirst),
		"Order: recent_first, oldest_first, due_date, priority, title")
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	opts, err := c.buildOptions()
	if err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}

	tasks, err := c.app.api.ListTasks(ctx, opts)
	if err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}

	return c.printTasks(tasks)
}

func (c *ListCommand) buildOptions() (api.ListOptions, error) {
	opts := api.ListOptions{
		Filter: domain.TaskFilter{Upcoming: c.upcoming},
		Order:  services.SortOrder(c.sort),
	}

	if c.status != "" {
		status, ok := domain.ParseStatus(c.status)
		if !ok {
			return opts, errors.NewInvalidInputError("status", c.status, "must be pending or completed")
		}
		opts.Filter.Status = &status
	}

	switch opts.Order {
	case "", services.SortByRecentFirst, services.SortByOldestFirst, services.SortByDueDate,
		services.SortByPriority, services.SortByTitle:
	default:
		return opts, errors.NewInvalidInputError("sort", c.sort, "unknown sort order")
	}

	return opts, nil
}

// printTasks prints one line per task:
// [ ] id  title  subject  due  priority  created
func (c *ListCommand) printTasks(tasks []domain.Task) error {
	if len(tasks) == 0 {
		c.app.println("No tasks found")
		return nil
	}

	now := c.app.api.Now()
	w := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	for _, task := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			statusMarker(task, now),
			task.ID,
			task.Title,
			c.app.api.SubjectName(task.Subject),
			dueLabel(c.app, task, now),
			task.Priority,
			"created "+humanize.RelTime(task.CreatedAt, now, "ago", "from now"),
		)
	}
	return w.Flush()
}

func statusMarker(task domain.Task, now time.Time) string {
	switch {
	case !task.IsPending():
		return "[x]"
	case task.IsOverdue(now):
		return "[!]"
	default:
		return "[ ]"
	}
}
