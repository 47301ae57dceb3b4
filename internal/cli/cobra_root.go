package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"zenith/internal/config"
	"zenith/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	configFile string

	in     io.Reader
	out    io.Writer
	errOut io.Writer
	newAPI APIFactory

	config   *config.Config
	logger   *slog.Logger
	app      *App
	closeAPI func() error
}

// Option customizes a RootCommand.
type Option func(*RootCommand)

// WithIO replaces standard input, output and error.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(r *RootCommand) {
		r.in, r.out, r.errOut = in, out, errOut
	}
}

// WithAPIFactory replaces how the API is built once configuration is loaded.
func WithAPIFactory(f APIFactory) Option {
	return func(r *RootCommand) {
		r.newAPI = f
	}
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(opts ...Option) *RootCommand {
	root := &RootCommand{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		newAPI: NewAPIFromConfig,
	}
	for _, opt := range opts {
		opt(root)
	}

	root.cmd = &cobra.Command{
		Use:   "zenith",
		Short: "Plan a day around your energy",
		Long: `Zenith plans a day. Fixed appointments keep their windows; flexible tasks
get a duration that maximizes total productivity and are slotted into the
gaps around the appointments.

EXAMPLES:
  zenith plan today.yaml                   # Plan from a YAML task list
  cat tasks.json | zenith plan -f json     # Plan from standard input, print JSON
  zenith serve --addr :8080                # Serve POST /tasks/generate_durations
  zenith runs                              # List recent planning runs
  zenith runs show <id>                    # Show one run

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment
  variables > config file > defaults. The config file is zenith.yaml in
  $XDG_CONFIG_HOME/zenith (or ~/.config/zenith) or the working directory.

  Every key can be set from the environment as ZENITH_<SECTION>_<KEY>:
    ZENITH_SCHEDULE_DAY_START               Day start (default: 08:00)
    ZENITH_SCHEDULE_DAY_END                 Day end (default: 22:00)
    ZENITH_SCHEDULE_TOTAL_AVAILABLE_TIME    Hours to plan (default: 8)
    ZENITH_SCHEDULE_MAX_DURATION            Longest single task in hours (default: 3)
    ZENITH_SCHEDULE_BREAKS                  Insert breaks after tasks (default: true)
    ZENITH_PRODUCTIVITY_C1                  Effort weight (default: 0.5)
    ZENITH_PRODUCTIVITY_C2                  Enjoyability weight (default: -0.3)
    ZENITH_PRODUCTIVITY_C3                  Base decay (default: 0.2)
    ZENITH_PRODUCTIVITY_INTEGRATOR          quadrature or analytic
    ZENITH_SOLVER_TIMEOUT                   Optimizer time limit (default: 5s)
    ZENITH_SERVER_ADDR                      Listen address (default: :5000)
    ZENITH_AUDIT_ENABLED                    Record planning runs (default: true)
    ZENITH_AUDIT_DB_PATH                    Run log (default: ~/.zenith/runs.db)
    ZENITH_LOGGING_LEVEL                    debug, info, warn or error
    ZENITH_DEBUG                            Force debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
	}
	root.cmd.SetIn(root.in)
	root.cmd.SetOut(root.out)
	root.cmd.SetErr(root.errOut)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx and releases the run log
// afterwards.
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if closeErr := r.close(); err == nil {
		err = closeErr
	}
	return err
}

// SetArgs sets the arguments parsed by Execute, for tests.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Config returns the configuration loaded for the last command.
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVarP(&r.configFile, "config", "c", "", "Config file (default: zenith.yaml in the config dir or working dir)")

	// Schedule configuration
	flags.String("day-start", "", "Day start as HH:MM (overrides ZENITH_SCHEDULE_DAY_START)")
	flags.String("day-end", "", "Day end as HH:MM (overrides ZENITH_SCHEDULE_DAY_END)")
	flags.Float64("total-time", 0, "Hours to plan (overrides ZENITH_SCHEDULE_TOTAL_AVAILABLE_TIME)")
	flags.Float64("max-duration", 0, "Longest single task in hours (overrides ZENITH_SCHEDULE_MAX_DURATION)")

	// Logging configuration
	flags.String("log-level", "", "Log level (overrides ZENITH_LOGGING_LEVEL)")
	flags.String("log-format", "", "Log format, text or json (overrides ZENITH_LOGGING_FORMAT)")

	// Audit configuration
	flags.String("db-path", "", "Run log database (overrides ZENITH_AUDIT_DB_PATH)")
	flags.Bool("no-audit", false, "Do not record planning runs")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Plan command
	var planFormat string
	planCmd := &cobra.Command{
		Use:   "plan [file|-]",
		Short: "Plan a day from a task list",
		Long: `Plan a day from a JSON or YAML task list and print the schedule.

The list is read from the named file, or from standard input when the file
is "-" or omitted. Files named *.json, and input starting with '[' or '{',
are read as JSON; anything else as YAML. Either a bare list or a document
with a "tasks" key is accepted.

Examples:
  zenith plan today.yaml
  zenith plan tasks.json --format json
  zenith plan --day-start 09:00 --total-time 6 < today.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			return NewPlanCommand(app, planFormat).Execute(cmd.Context(), args)
		},
	}
	planCmd.Flags().StringVarP(&planFormat, "format", "f", FormatTable, "Output format: table or json")

	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning API over HTTP",
		Long: `Serve the planning API over HTTP until interrupted.

Endpoints:
  POST /tasks/generate_durations           Plan a day from a JSON task list
  GET  /runs?limit=N                       List recent planning runs
  GET  /runs/{id}                          Show one run
  GET  /healthz                            Liveness check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return NewServeCommand(app).Execute(ctx, args)
		},
	}
	serveCmd.Flags().String("addr", "", "Listen address (overrides ZENITH_SERVER_ADDR)")

	// Runs commands
	var runsFormat string
	var runsLimit int
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent planning runs",
		Long:  "List recent planning runs from the run log, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			return NewRunsCommand(app, runsFormat, runsLimit).Execute(cmd.Context(), args)
		},
	}
	runsCmd.PersistentFlags().StringVarP(&runsFormat, "format", "f", FormatTable, "Output format: table or json")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", DefaultRunsLimit, "Number of runs to list")

	showRunCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one planning run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			return NewShowRunCommand(app, runsFormat).Execute(cmd.Context(), args)
		},
	}
	runsCmd.AddCommand(showRunCmd)

	r.cmd.AddCommand(planCmd, serveCmd, runsCmd)
}

// loadConfig reads configuration from file and environment, then applies
// the flags the user actually set.
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.NewLoader(r.configFile).LoadWithOverrides(overridesFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg
	r.logger = logging.New(r.errOut, cfg.Logging.Level, cfg.Logging.Format).With("component", "cli")
	return nil
}

func overridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	o := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			return nil
		}
		v := f.Value.String()
		return &v
	}
	floatFlag := func(name string) *float64 {
		if !flags.Changed(name) {
			return nil
		}
		v, err := flags.GetFloat64(name)
		if err != nil {
			return nil
		}
		return &v
	}

	o.Addr = stringFlag("addr")
	o.DayStart = stringFlag("day-start")
	o.DayEnd = stringFlag("day-end")
	o.TotalTime = floatFlag("total-time")
	o.MaxDuration = floatFlag("max-duration")
	o.LogLevel = stringFlag("log-level")
	o.LogFormat = stringFlag("log-format")
	o.DBPath = stringFlag("db-path")
	if flags.Changed("no-audit") {
		if v, err := flags.GetBool("no-audit"); err == nil {
			o.NoAudit = &v
		}
	}
	return o
}

// getApp builds the API on first use so help and completion never open the
// run log.
func (r *RootCommand) getApp() (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	if r.config == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	apiInstance, closeFn, err := r.newAPI(r.config, r.logger)
	if err != nil {
		if NewErrorHandler().IsDatabaseError(err) {
			return nil, fmt.Errorf("%w\nhint: pass --no-audit to plan without the run log", err)
		}
		return nil, err
	}
	r.closeAPI = closeFn
	r.app = NewApp(apiInstance, r.config, r.logger, r.in, r.out)
	return r.app, nil
}

func (r *RootCommand) close() error {
	if r.closeAPI == nil {
		return nil
	}
	closeFn := r.closeAPI
	r.closeAPI = nil
	r.app = nil
	return closeFn()
}
