package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oshokin/fliptime/internal/service/app"
)

// errInvalidPosition is returned for alarm positions that are not positive integers.
var errInvalidPosition = errors.New("alarm position must be a positive number")

var (
	alarmCmd = &cobra.Command{
		Use:   "alarm",
		Short: "Manage daily alarms.",
		Long: `Lists and edits the daily alarms. Alarms ring once at second zero of their
minute, every day, while the clock is running. Positions are the numbers shown
by "fliptime alarm list".`,
	}

	alarmListCmd = &cobra.Command{
		Use:   "list",
		Short: "List alarms.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			alarms := app.OpenStores(cfg, false).Alarms.Load(cmd.Context())
			if len(alarms) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No alarms.")

				return nil
			}

			for i, a := range alarms {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, a)
			}

			return nil
		},
	}

	alarmAddCmd = &cobra.Command{
		Use:   "add HH:MM",
		Short: "Add an enabled alarm.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine := app.NewEngine(ctx, app.OpenStores(cfg, false), nil)

			added, err := engine.AddAlarm(ctx, args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added alarm %d. %s\n", len(engine.Alarms()), added)

			return nil
		},
	}

	alarmToggleCmd = &cobra.Command{
		Use:   "toggle N",
		Short: "Enable or disable the alarm at position N.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			engine := app.NewEngine(ctx, app.OpenStores(cfg, false), nil)

			toggled, err := engine.ToggleAlarm(ctx, position-1)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", position, toggled)

			return nil
		},
	}

	alarmRemoveCmd = &cobra.Command{
		Use:     "remove N",
		Aliases: []string{"rm"},
		Short:   "Remove the alarm at position N.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			engine := app.NewEngine(ctx, app.OpenStores(cfg, false), nil)

			if err = engine.RemoveAlarm(ctx, position-1); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed alarm %d.\n", position)

			return nil
		},
	}
)

// parsePosition converts a 1-based list position.
func parsePosition(s string) (int, error) {
	position, err := strconv.Atoi(s)
	if err != nil || position < 1 {
		return 0, fmt.Errorf("%w: %q", errInvalidPosition, s)
	}

	return position, nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	alarmCmd.AddCommand(alarmListCmd, alarmAddCmd, alarmToggleCmd, alarmRemoveCmd)
	rootCmd.AddCommand(alarmCmd)
}
