// cmd/gridwait/main.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tamzrod/gridwait/internal/config"
	"github.com/tamzrod/gridwait/internal/harness"
)

var (
	// Global flags
	cfgPath string
	verbose bool

	// Set up in PersistentPreRunE.
	cfg    *config.Config
	logger *zap.Logger
	h      *harness.Harness
)

// exitError carries a process exit code out of a command.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

var rootCmd = &cobra.Command{
	Use:   "gridwait",
	Short: "Poll browser conditions and name the grid node on timeout",
	Long: `gridwait waits for browser conditions the way a functional test suite does:
it polls, treats known transient driver errors as "not yet", fails fast on
anything else, and when a wait times out on a grid it reports which node ran
the session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// --------------------
		// Load + validate config
		// --------------------

		c, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if err := config.Validate(c); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
		config.Normalize(c)
		cfg = c

		logger, err = buildLogger(c.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// --------------------
		// Wire waits + environment
		// --------------------

		h, err = harness.Build(c, logger)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to gridwait.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(hostCmd, waitCmd)
}

func buildLogger(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if lc.Level != "" {
		lvl, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "gridwait:", err)
		os.Exit(1)
	}
}
