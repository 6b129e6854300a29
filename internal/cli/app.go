package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"tasku/internal/api"
	"tasku/internal/config"
	"tasku/internal/errors"
)

// App represents the main CLI application
type App struct {
	api          api.API
	config       *config.Config
	out          io.Writer
	registry     *CommandRegistry
	errorHandler *ErrorHandler
}

// NewApp creates a new CLI application instance with dependency injection.
// A nil out writes to stdout.
func NewApp(apiInstance api.API, cfg *config.Config, out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		api:          apiInstance,
		config:       cfg,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// configure swaps in the API and configuration once they are known.
func (a *App) configure(apiInstance api.API, cfg *config.Config) {
	a.api = apiInstance
	a.config = cfg
}

// Run executes a registered command by name. Flags are not parsed here;
// use the cobra root for that.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}
