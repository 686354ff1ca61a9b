// Package cli is the qaza terminal client. Commands stay thin: they parse
// flags, call the core services and print the result.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/qaza-tracker/internal/config"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	jsonOut    bool
	logLevel   string
}

// Execute runs the qaza command line with args and releases whatever the
// command opened.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root, cleanup := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := cleanup(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func newRootCmd() (*cobra.Command, func() error) {
	flags := &globalFlags{}
	var e *env

	root := &cobra.Command{
		Use:   "qaza",
		Short: "Track missed prayers and estimate lifetime Qaza",
		Long: `qaza keeps a ledger of missed and made-up prayers against a remote
ledger service and estimates the lifetime count of prayers owed.

Examples:
  qaza login a@gmail.com --name Aisha --age 25 --gender female
  qaza log --prayer fajr --status missed --reason overslept
  qaza dashboard
  qaza calc --start 13 --age 25 --gender male --save`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipEnv(cmd) {
				return nil
			}
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			e, err = newEnv(cmd.Context(), cfg, flags, cmd.ErrOrStderr())
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to config.yaml (default $CONFIG_PATH or ./config.yaml)")
	pf.BoolVar(&flags.jsonOut, "json", false, "print machine-readable JSON")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "diagnostic log level (debug, info, warn, error)")

	envFn := func() *env { return e }
	root.AddCommand(
		newLoginCmd(envFn),
		newLogoutCmd(envFn),
		newWhoamiCmd(envFn),
		newLogCmd(envFn),
		newHistoryCmd(envFn),
		newStatsCmd(envFn),
		newDashboardCmd(envFn),
		newCalcCmd(envFn),
		newVersionCmd(flags),
	)

	cleanup := func() error {
		if e == nil {
			return nil
		}
		return e.close()
	}
	return root, cleanup
}

// skipEnv reports whether cmd runs without config or session.
func skipEnv(cmd *cobra.Command) bool {
	return cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == cobra.ShellCompRequestCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// ExitCode maps a command error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		return 1
	}
}

var errUsage = errors.New("usage")

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}
