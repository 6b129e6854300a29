package cli

import (
	"context"
	"strings"

	"tasku/internal/errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// FlagBinder is implemented by commands that take flags. The values are
// written into the command before Execute runs.
type FlagBinder interface {
	BindFlags(flags *pflag.FlagSet)
}

// CommandInfo describes how a command is presented by cobra.
type CommandInfo struct {
	Name  string
	Use   string
	Short string
	Long  string
	Args  cobra.PositionalArgs
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
	infos    []CommandInfo
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	// Register all commands
	registry.Register(loginInfo, NewLoginCommand(app))
	registry.Register(logoutInfo, NewLogoutCommand(app))
	registry.Register(whoamiInfo, NewWhoamiCommand(app))
	registry.Register(addInfo, NewAddCommand(app))
	registry.Register(listInfo, NewListCommand(app))
	registry.Register(completeInfo, NewCompleteCommand(app))
	registry.Register(dashboardInfo, NewDashboardCommand(app))
	registry.Register(statsInfo, NewStatsCommand(app))
	registry.Register(reportInfo, NewReportCommand(app))
	registry.Register(subjectsInfo, NewSubjectsCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(info CommandInfo, command Command) {
	if _, exists := r.commands[info.Name]; !exists {
		r.infos = append(r.infos, info)
	}
	r.commands[info.Name] = command
}

// Get returns the command registered under name
func (r *CommandRegistry) Get(name string) (Command, bool) {
	command, ok := r.commands[name]
	return command, ok
}

// Commands returns the registered command descriptions in registration order
func (r *CommandRegistry) Commands() []CommandInfo {
	return append([]CommandInfo(nil), r.infos...)
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	names := make([]string, len(r.infos))
	for i, info := range r.infos {
		names[i] = info.Name
	}
	return "usage: tasku <command> [arguments]; commands: " + strings.Join(names, ", ")
}
