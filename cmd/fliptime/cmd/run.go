package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/fliptime/internal/logger"
	"github.com/oshokin/fliptime/internal/service/app"
)

var (
	// headless runs the clock without the terminal UI.
	headless bool
	// ephemeral keeps settings and alarms in memory.
	ephemeral bool

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Start the clock.",
		Long: `Starts the flip clock in the terminal.

Keys: s settings, a alarms, f 12/24-hour, t next theme, q quit.
With --headless the clock runs without a screen and reports date changes and
alarms to the log. Settings and alarms changed by other fliptime commands are
picked up while the clock runs.`,
		Args: cobra.NoArgs,
		RunE: runClock,
	}
)

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&headless, "headless", false, "run without the terminal UI")
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep settings and alarms in memory only")
}

func runClock(cmd *cobra.Command, _ []string) error {
	if !headless {
		// The UI owns the terminal, so logs go to a file for the duration of the run.
		file, err := logger.OpenFile(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}

		defer func() {
			_ = file.Close()
		}()

		previous := logger.Logger()
		logger.SetLogger(logger.New(nil, file))

		defer logger.SetLogger(previous)
	}

	return app.Run(cmd.Context(), &app.Options{
		Config:    cfg,
		Headless:  headless,
		Ephemeral: ephemeral,
	})
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}
