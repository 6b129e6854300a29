package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"tasku/internal/api"
	"tasku/internal/config"
	"tasku/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const defaultAppTimeout = 60 * time.Second

// APIFactory builds the API once the configuration is known. The closer
// releases whatever the API holds open and may be nil.
type APIFactory func(cfg *config.Config, catalog *config.Catalog) (api.API, io.Closer, error)

// DefaultAPIFactory opens the configured SQLite database.
func DefaultAPIFactory(cfg *config.Config, catalog *config.Catalog) (api.API, io.Closer, error) {
	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}

	apiInstance, err := api.New(repo, cfg, catalog, nil)
	if err != nil {
		repo.Close()
		return nil, nil, err
	}
	return apiInstance, repo, nil
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	app     *App
	loader  *config.Loader
	factory APIFactory
	closer  io.Closer
}

// NewRootCommand creates the root cobra command with global flags. The
// configuration is loaded and the API built only when a subcommand runs.
func NewRootCommand(loader *config.Loader, factory APIFactory, out io.Writer) *RootCommand {
	if loader == nil {
		loader = config.NewLoader()
	}
	if factory == nil {
		factory = DefaultAPIFactory
	}

	root := &RootCommand{
		app:     NewApp(nil, nil, out),
		loader:  loader,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "tasku",
		Short: "A task organizer for students",
		Long: `tasku keeps track of coursework: log in with your institutional email,
add tasks per subject with a due date and priority, and review what is coming up.

EXAMPLES:
  tasku login juan.perez@inacap.cl -p secreto     # Start a session
  tasku add Informe final -s redes -d 3d -P alta   # Create a task due in three days
  tasku list --upcoming                            # Pending tasks due in the next 24 hours
  tasku complete task_1712739600000_1a2b3c4d5      # Mark a task as done
  tasku dashboard                                  # Welcome, stats, upcoming and suggestions
  tasku report                                     # Academic report for the semester

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > .env file > defaults

  Files:
    TASKU_CONFIG                           YAML config file (default: ~/.tasku/config.yaml)
    TASKU_CATALOG_FILE                     YAML subject catalog replacing the built-in one

  Database Configuration:
    TASKU_DB_DIR                           Database directory (default: ~/.tasku)
    TASKU_DB_FILENAME                      Database filename (default: tasku.db)
    TASKU_DB_QUERY_TIMEOUT                 Query timeout (default: 10s)
    TASKU_DB_WRITE_TIMEOUT                 Write timeout (default: 5s)
    TASKU_DB_DIR_PERMISSIONS               Directory permissions in octal (default: 0755)

  Locale Configuration:
    TASKU_LANGUAGE                         Message and date language, es or en (default: es)
    TASKU_TIMEZONE                         IANA timezone (default: America/Santiago)

  Validation Configuration:
    TASKU_VALIDATION_TITLE_MIN             Min title length (default: 3)
    TASKU_VALIDATION_TITLE_MAX             Max title length (default: 255)
    TASKU_ALLOW_PAST_DATE                  Accept past due dates without confirmation (default: false)
    TASKU_MIN_PASSWORD_LENGTH              Min password length (default: 6)
    TASKU_INSTITUTIONAL_DOMAINS            Comma-separated institutional email suffixes

  Session Configuration:
    TASKU_ALLOW_NON_INSTITUTIONAL          Accept personal email addresses (default: true)
    TASKU_DEFAULT_ROLE                     Role assigned on login (default: student)
    TASKU_SIMULATED_LATENCY                Delay added to each login (default: 0s)

  Application Configuration:
    TASKU_APP_TIMEOUT                      Application timeout (default: 60s)
    TASKU_APP_VERBOSE                      Enable verbose output (default: false)

GETTING HELP:
  tasku [command] --help                   # Get help for any specific command
  tasku completion bash                    # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipSetup(cmd) {
				return nil
			}
			return root.setup()
		},
	}
	if out != nil {
		root.cmd.SetOut(out)
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command and releases the API afterwards.
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if closeErr := r.Close(); err == nil {
		err = closeErr
	}
	return err
}

// SetArgs overrides the arguments read from os.Args.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Close releases the resources opened by the API factory.
func (r *RootCommand) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Files
	flags.String("config", "", "YAML config file (overrides TASKU_CONFIG)")
	flags.String("env-file", ".env", "Dotenv file loaded before the environment, empty to skip")
	flags.String("catalog", "", "YAML subject catalog (overrides TASKU_CATALOG_FILE)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides TASKU_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TASKU_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TASKU_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides TASKU_DB_WRITE_TIMEOUT)")

	// Locale configuration
	flags.String("language", "", "Language for messages and dates (overrides TASKU_LANGUAGE)")
	flags.String("timezone", "", "IANA timezone (overrides TASKU_TIMEZONE)")

	// Validation configuration
	flags.Int("title-max-length", 0, "Maximum title length (overrides TASKU_VALIDATION_TITLE_MAX)")
	flags.Bool("allow-past-date", false, "Accept past due dates (overrides TASKU_ALLOW_PAST_DATE)")

	// Session configuration
	flags.Bool("allow-non-institutional", false, "Accept personal emails (overrides TASKU_ALLOW_NON_INSTITUTIONAL)")
	flags.Duration("simulated-latency", 0, "Delay added to each login (overrides TASKU_SIMULATED_LATENCY)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides TASKU_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides TASKU_APP_VERBOSE)")
}

// addSubcommands adds one cobra command per registered command
func (r *RootCommand) addSubcommands() {
	for _, info := range r.app.registry.Commands() {
		command, _ := r.app.registry.Get(info.Name)

		cobraCmd := &cobra.Command{
			Use:   info.Use,
			Short: info.Short,
			Long:  info.Long,
			Args:  info.Args,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
				defer cancel()
				return command.Execute(ctx, args)
			},
		}
		if binder, ok := command.(FlagBinder); ok {
			binder.BindFlags(cobraCmd.Flags())
		}

		r.cmd.AddCommand(cobraCmd)
	}
}

// setup loads the configuration, then builds the API the commands run against.
func (r *RootCommand) setup() error {
	flags := r.cmd.PersistentFlags()

	if path, _ := flags.GetString("config"); path != "" {
		r.loader.WithConfigFile(path)
	}
	if flags.Changed("env-file") {
		path, _ := flags.GetString("env-file")
		r.loader.WithEnvFile(path)
	}

	cfg, err := r.loader.LoadWithOverrides(overridesFromFlags(flags))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.SetVerbose(cfg.Application.Verbose)

	catalog, err := config.LoadCatalog(cfg.Catalog.File)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	apiInstance, closer, err := r.factory(cfg, catalog)
	if err != nil {
		return fmt.Errorf("failed to open task store: %w", err)
	}
	r.closer = closer
	r.app.configure(apiInstance, cfg)

	logging.Debugf("database %s, language %s, timezone %s\n",
		cfg.GetDatabasePath(), cfg.Locale.Language, cfg.Locale.Timezone)
	return nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.app.config != nil && r.app.config.Application.Timeout > 0 {
		return r.app.config.Application.Timeout
	}
	return defaultAppTimeout
}

// overridesFromFlags collects the flags the user set explicitly. Unset flags
// leave the lower-priority sources in charge.
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("db-write-timeout") {
		v, _ := flags.GetDuration("db-write-timeout")
		overrides.DBWriteTimeout = &v
	}

	if flags.Changed("language") {
		v, _ := flags.GetString("language")
		overrides.Language = &v
	}
	if flags.Changed("timezone") {
		v, _ := flags.GetString("timezone")
		overrides.Timezone = &v
	}

	if flags.Changed("title-max-length") {
		v, _ := flags.GetInt("title-max-length")
		overrides.TitleMaxLength = &v
	}
	if flags.Changed("allow-past-date") {
		v, _ := flags.GetBool("allow-past-date")
		overrides.AllowPastDate = &v
	}

	if flags.Changed("allow-non-institutional") {
		v, _ := flags.GetBool("allow-non-institutional")
		overrides.AllowNonInstitutional = &v
	}
	if flags.Changed("simulated-latency") {
		v, _ := flags.GetDuration("simulated-latency")
		overrides.SimulatedLatency = &v
	}

	if flags.Changed("catalog") {
		v, _ := flags.GetString("catalog")
		overrides.CatalogFile = &v
	}

	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}

func skipSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}
