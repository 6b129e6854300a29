package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var completeInfo = CommandInfo{
	Name:  "complete",
	Use:   "complete <task id>",
	Short: "Mark a pending task as completed",
	Args:  cobra.ExactArgs(1),
}

// CompleteCommand handles the complete command
type CompleteCommand struct {
	app *App
}

// NewCompleteCommand creates a new complete command handler
func NewCompleteCommand(app *App) *CompleteCommand {
	return &CompleteCommand{app: app}
}

// Execute runs the complete command
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}

	task, err := c.app.api.CompleteTask(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("complete task", err)
	}

	c.app.printf("Completed task: %s\n", task.Title)
	if task.CompletedAt != nil {
		c.app.printf("  completed at %s\n", c.app.api.FormatTimestamp(*task.CompletedAt))
	}
	return nil
}
