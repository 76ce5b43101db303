package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/oshokin/fliptime/internal/domain/clock"
	"github.com/oshokin/fliptime/internal/service/app"
)

var (
	// timezone, theme and hourFormat are the values given to "settings set".
	timezone   string
	theme      string
	hourFormat string

	settingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Show or change clock settings.",
	}

	settingsShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the current settings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := app.OpenStores(cfg, false).Settings.Load(cmd.Context())

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "timezone: %s\n", settings.Timezone)
			_, _ = fmt.Fprintf(out, "theme:    %s\n", settings.Theme)
			_, _ = fmt.Fprintf(out, "format:   %s\n", settings.HourFormat)

			return nil
		},
	}

	settingsSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Change timezone, theme or hour format.",
		Long: `Changes one or more settings. A running clock picks the change up.

Example:
  fliptime settings set --timezone Asia/Tokyo --format 12 --theme dark`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("timezone") && !flags.Changed("theme") && !flags.Changed("format") {
				return cmd.Help()
			}

			ctx := cmd.Context()
			engine := app.NewEngine(ctx, app.OpenStores(cfg, false), nil)

			if flags.Changed("timezone") {
				if err := engine.SetTimezone(ctx, timezone); err != nil {
					return err
				}
			}

			if flags.Changed("format") {
				format, err := domain.ParseHourFormat(hourFormat)
				if err != nil {
					return err
				}

				if err = engine.SetHourFormat(ctx, format); err != nil {
					return err
				}
			}

			if flags.Changed("theme") {
				if err := engine.SetTheme(ctx, theme); err != nil {
					return err
				}
			}

			settings := engine.Settings()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s, %s, %s\n", settings.Timezone, settings.Theme, settings.HourFormat)

			return nil
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	settingsSetCmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone, e.g. Asia/Taipei")
	settingsSetCmd.Flags().StringVar(&theme, "theme", "", "theme: classic, dark, light or retro")
	settingsSetCmd.Flags().StringVar(&hourFormat, "format", "", "hour format: 12 or 24")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
