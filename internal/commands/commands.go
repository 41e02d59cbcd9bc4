// Package commands builds the taskflow command line.
package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tgienger/taskflow/internal/app"
	"github.com/tgienger/taskflow/internal/authapi"
	"github.com/tgienger/taskflow/internal/config"
	"github.com/tgienger/taskflow/internal/logging"
	"github.com/tgienger/taskflow/internal/printers"
	"github.com/tgienger/taskflow/internal/storage"
)

// BuildInfo is stamped in by the linker
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// GlobalOptions are the flags every command shares
type GlobalOptions struct {
	ConfigFile string
	Ephemeral  bool
}

// New builds the root command. Run without a subcommand it opens the TUI.
func New(info BuildInfo) *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:           "taskflow",
		Short:         "A personal task manager for the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigFile, "config", "", "Config file (default taskflow.yaml in $XDG_CONFIG_HOME/taskflow or ./).")
	flags.String("api-url", "", "Auth service base URL.")
	flags.String("data-dir", "", "Directory for local state.")
	flags.String("storage", "", "Storage backend: sqlite, diskv or memory.")
	flags.String("log-file", "", "Log file (default <data-dir>/taskflow.log).")
	flags.String("log-level", "", "Log level: debug, info, warn or error.")
	flags.BoolVar(&opts.Ephemeral, "ephemeral", false, "Keep all state in memory for this run.")

	AddCommands(cmd, opts, info)
	return cmd
}

func AddCommands(topLevel *cobra.Command, opts *GlobalOptions, info BuildInfo) {
	addLogin(topLevel, opts)
	addRegister(topLevel, opts)
	addLogout(topLevel, opts)
	addWhoami(topLevel, opts)
	addList(topLevel, opts)
	addAdd(topLevel, opts)
	addShow(topLevel, opts)
	addDone(topLevel, opts)
	addRemove(topLevel, opts)
	addSummary(topLevel, opts)
	addAgenda(topLevel, opts)
	addVersion(topLevel, info)
}

// env is everything a command runs against
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	backend storage.Backend
	state   *app.App
	closeFn func()
}

func setup(cmd *cobra.Command, opts *GlobalOptions) (*env, error) {
	cfg, err := config.Load(config.Options{ConfigFile: opts.ConfigFile, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}
	if opts.Ephemeral {
		cfg.Storage = storage.DriverMemory
	}

	logger, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	backend, err := app.OpenBackend(cfg)
	if err != nil {
		closeLog()
		return nil, err
	}
	logger.Debug("starting", "command", cmd.Name(), "storage", cfg.Storage, "config", cfg.File)

	client := authapi.NewClient(cfg.APIURL,
		authapi.WithTimeout(cfg.Timeout),
		authapi.WithLogger(logger),
	)
	state := app.New(app.Deps{
		Backend:     backend,
		Auth:        client,
		Logger:      logger,
		SeedSamples: cfg.SeedSamples,
	})

	return &env{
		cfg:     cfg,
		logger:  logger,
		backend: backend,
		state:   state,
		closeFn: func() {
			if err := backend.Close(); err != nil {
				logger.Warn("close storage", "error", err)
			}
			closeLog()
		},
	}, nil
}

func (e *env) Close() { e.closeFn() }

func (e *env) printer(cmd *cobra.Command) *printers.PrettyPrint {
	return &printers.PrettyPrint{Out: cmd.OutOrStdout(), Now: e.state.Now()}
}

// withEnv runs fn against a fresh env and closes it afterwards
func withEnv(cmd *cobra.Command, opts *GlobalOptions, fn func(*env) error) error {
	e, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer e.Close()
	return handleError(fn(e))
}

func handleError(err error) error {
	if errors.Is(err, app.ErrLocked) {
		return fmt.Errorf("%w: run 'taskflow login' first", err)
	}
	return err
}
