package cli

import (
	"context"
	"strings"

	"tasku/internal/domain"
	"tasku/internal/errors"
	"tasku/internal/services"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var loginInfo = CommandInfo{
	Name:  "login",
	Use:   "login <email>",
	Short: "Log in with your institutional email",
	Long: `Start a session. The email is checked before anything else and the password
must have at least the configured minimum length.

Examples:
  tasku login juan.perez@inacap.cl --password secreto
  tasku login ana@gmail.com -p secreto --allow-personal`,
	Args: cobra.MaximumNArgs(1),
}

// LoginCommand handles the login command
type LoginCommand struct {
	app           *App
	password      string
	allowPersonal bool
	flags         *pflag.FlagSet
}

// NewLoginCommand creates a new login command handler
func NewLoginCommand(app *App) *LoginCommand {
	return &LoginCommand{app: app}
}

// BindFlags registers the login flags
func (c *LoginCommand) BindFlags(flags *pflag.FlagSet) {
	c.flags = flags
	flags.StringVarP(&c.password, "password", "p", "", "Account password")
	flags.BoolVar(&c.allowPersonal, "allow-personal", false, "Accept an email outside the institutional domains for this login")
}

// Execute runs the login command
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	email := ""
	if len(args) > 0 {
		email = args[0]
	}

	var opts []services.LoginOption
	if c.flags != nil && c.flags.Changed("allow-personal") {
		opts = append(opts, services.WithAllowNonInstitutional(c.allowPersonal))
	}

	session, err := c.app.api.Login(ctx, email, c.password, opts...)
	if err != nil {
		return c.app.errorHandler.Handle("log in", err)
	}

	c.app.printf("Logged in as %s (%s) <%s>\n", session.Name, session.Initials, session.Email)
	printInstitutionalHint(c.app, session)
	return nil
}

func printInstitutionalHint(app *App, session *domain.Session) {
	if session.Institutional {
		return
	}
	domains := app.config.Validation.InstitutionalDomains
	app.printf("Tip: use your institutional email (%s).\n", strings.Join(domains, ", "))
}

var logoutInfo = CommandInfo{
	Name:  "logout",
	Use:   "logout",
	Short: "End the current session",
	Args:  cobra.NoArgs,
}

// LogoutCommand handles the logout command
type LogoutCommand struct {
	app *App
}

// NewLogoutCommand creates a new logout command handler
func NewLogoutCommand(app *App) *LogoutCommand {
	return &LogoutCommand{app: app}
}

// Execute runs the logout command
func (c *LogoutCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.api.Logout(ctx); err != nil {
		return c.app.errorHandler.Handle("log out", err)
	}
	c.app.println("Logged out")
	return nil
}

var whoamiInfo = CommandInfo{
	Name:  "whoami",
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
}

// WhoamiCommand handles the whoami command
type WhoamiCommand struct {
	app *App
}

// NewWhoamiCommand creates a new whoami command handler
func NewWhoamiCommand(app *App) *WhoamiCommand {
	return &WhoamiCommand{app: app}
}

// Execute runs the whoami command
func (c *WhoamiCommand) Execute(ctx context.Context, args []string) error {
	session, err := c.app.api.CurrentSession(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("read session", err)
	}
	if session == nil {
		return c.app.errorHandler.HandleSimple(
			errors.NewAuthError(errors.CodeNotAuthenticated, "not logged in"))
	}

	c.app.printf("%s (%s)\n", session.Name, session.Initials)
	c.app.printf("Email: %s\n", session.Email)
	c.app.printf("Role:  %s\n", session.Role)
	printInstitutionalHint(c.app, session)
	return nil
}
