package cli

import (
	"context"
	"strings"
	"time"

	"tasku/internal/domain"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var addInfo = CommandInfo{
	Name:  "add",
	Use:   "add <title...>",
	Short: "Create a task",
	Long: `Create a pending task.

Due dates are read in the configured timezone and accept
2006-01-02T15:04, "2006-01-02 15:04", RFC3339, a bare 2006-01-02 (end of day)
or an offset from now such as 2h, 3d or 1w.

Examples:
  tasku add Modelo entidad relación --subject bd --due 2024-04-12T18:00 --priority alta
  tasku add "Informe de redes" -s redes -d 3d -P media -m "Capítulos 1 a 3"
  tasku add Entrega atrasada -s movil -d 2024-01-02 -P high --confirm-past`,
	Args: cobra.ArbitraryArgs,
}

// AddCommand handles the add command
type AddCommand struct {
	app         *App
	subject     string
	due         string
	priority    string
	description string
	confirmPast bool
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// BindFlags registers the task fields as flags
func (c *AddCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.subject, "subject", "s", "", "Subject code from the catalog, or any free-form subject")
	flags.StringVarP(&c.due, "due", "d", "", "Due date")
	flags.StringVarP(&c.priority, "priority", "P", "", "Priority: low, medium, high (baja, media, alta)")
	flags.StringVarP(&c.description, "description", "m", "", "Optional description")
	flags.BoolVar(&c.confirmPast, "confirm-past", false, "Keep a due date that is already in the past")
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	input := domain.TaskInput{
		Title:           strings.Join(args, " "),
		Subject:         c.subject,
		Priority:        c.priority,
		Description:     c.description,
		ConfirmPastDate: c.confirmPast,
	}

	if strings.TrimSpace(c.due) != "" {
		due, err := c.app.api.ParseDueDate(c.due)
		if err != nil {
			return c.app.errorHandler.Handle("create task", err)
		}
		input.DueAt = &due
	}

	task, err := c.app.api.CreateTask(ctx, input)
	if err != nil {
		return c.app.errorHandler.Handle("create task", err)
	}

	c.app.printf("Created task %s: %s\n", task.ID, task.Title)
	c.app.printf("  %s · due %s · %s\n",
		c.app.api.SubjectName(task.Subject), c.app.api.FormatDue(task.DueAt), task.Priority)
	if task.DueAt.Before(c.app.api.Now()) {
		c.app.println("  Note: this task is already overdue.")
	}
	return nil
}

// dueLabel renders a due date for listings, flagging overdue pending tasks.
func dueLabel(app *App, task domain.Task, now time.Time) string {
	label := app.api.FormatDue(task.DueAt)
	if task.IsOverdue(now) {
		label += " (overdue)"
	}
	return label
}
