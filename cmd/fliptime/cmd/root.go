package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/fliptime/internal/config"
	"github.com/oshokin/fliptime/internal/logger"
	"github.com/oshokin/fliptime/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// dataDir overrides the configured data directory.
	dataDir string
	// logLevel overrides the configured log level.
	logLevel string

	// errUnknownLogLevel is returned for an unparsable --log-level.
	errUnknownLogLevel = errors.New("unknown log level")

	// cfg is the configuration loaded before any subcommand runs.
	cfg *config.Config

	// rootCmd runs the clock when no subcommand is given.
	rootCmd = &cobra.Command{
		Use:   "fliptime",
		Short: "Flip clock with lunar date and daily alarms for the terminal.",
		Long: `Shows the current time as flip cards in a chosen timezone, together with the
Gregorian and Chinese lunar dates, and rings daily alarms.

Settings and alarms are stored in the data directory and survive restarts.
Running without a subcommand starts the clock; see "fliptime run --help".`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runClock,
	}
)

// Execute runs the fliptime CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and applies the global flag overrides.
func setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	loaded.SetDataDir(dataDir)

	if logLevel != "" {
		loaded.LogLevel = logLevel
	}

	level, ok := logger.ParseLogLevel(loaded.LogLevel)
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, loaded.LogLevel)
	}

	logger.SetLevel(level)

	cfg = loaded

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default "+config.DefaultConfigFilename+")")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding settings and alarms")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	addRunFlags(rootCmd)
}
