package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/njchilds90/answercheck/internal/config"
	"github.com/njchilds90/answercheck/internal/logger"
	"github.com/njchilds90/answercheck/verify"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// ErrRejected is returned when at least one claim does not hold, so that
// the process exits non-zero.
var ErrRejected = errors.New("one or more answers rejected")

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	envFile    string
	tolerance  float64
	timeout    time.Duration
	logLevel   string
	logJSON    bool
}

// NewRootCommand creates and returns the root cobra command for answercheck
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:   "answercheck",
		Short: "Check structured claims about math answers",
		Long: `answercheck validates answer specs: structured claims about roots,
values, equivalent expressions, derivatives, antiderivatives, limits,
stationary points, solution intervals and systems of equations.

Claims are checked exactly where possible and numerically otherwise.
Every problem is reported as a verdict with a reason; nothing crashes.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "answercheck.yaml", "path to the YAML config file")
	pf.StringVar(&flags.envFile, "env-file", ".env", "path to a .env file")
	pf.Float64Var(&flags.tolerance, "tolerance", verify.DefaultTolerance, "relative tolerance of numeric comparisons")
	pf.DurationVar(&flags.timeout, "timeout", verify.DefaultTimeout, "time budget per validation (0 = none)")
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error, disabled)")
	pf.BoolVar(&flags.logJSON, "log-json", false, "write logs as JSON")

	cmd.AddCommand(NewValidateCommand(flags))
	cmd.AddCommand(NewBatchCommand(flags))
	cmd.AddCommand(NewNormalizeCommand())
	cmd.AddCommand(NewServeCommand(flags))
	cmd.AddCommand(NewMCPCommand(flags))

	return cmd
}

// app is the configuration, logger and engine a subcommand runs with.
type app struct {
	cfg    *config.Config
	log    logger.Logger
	engine *verify.Engine
}

// setup loads config, then applies flags the user set explicitly.
func setup(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath, flags.envFile)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("tolerance") {
		cfg.Tolerance = flags.tolerance
	}
	if f.Changed("timeout") {
		cfg.Timeout = flags.timeout
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if f.Changed("log-json") {
		cfg.LogJSON = flags.logJSON
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		Output:     cmd.ErrOrStderr(),
		JSON:       cfg.LogJSON,
		TimeFormat: "15:04:05",
	})
	logger.SetDefault(log)
	engine := verify.New(
		verify.WithTolerance(cfg.Tolerance),
		verify.WithTimeout(cfg.Timeout),
		verify.WithLogger(log),
	)
	return &app{cfg: cfg, log: log, engine: engine}, nil
}
