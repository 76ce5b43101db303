package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/oshokin/fliptime/internal/service/assets"
)

var (
	// prefetchDir overrides the configured asset cache directory.
	prefetchDir string
	// prefetchList prints the cached manifest instead of downloading.
	prefetchList bool

	prefetchCmd = &cobra.Command{
		Use:   "prefetch",
		Short: "Download the web assets for offline use.",
		Long: `Downloads every asset listed under assets.urls in the configuration into the
cache directory and writes a manifest with SHA-512 checksums. Relative entries
are resolved against assets.base_url. Failed downloads are skipped and keep
the copy cached by an earlier run. With --list the cached manifest is printed
and nothing is downloaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := cfg.Assets.CacheDir
			if prefetchDir != "" {
				dir = prefetchDir
			}

			if prefetchList {
				return listCached(cmd, dir)
			}

			manifest, err := assets.Prefetch(cmd.Context(), &assets.Options{
				BaseURL: cfg.Assets.BaseURL,
				URLs:    cfg.Assets.URLs,
				Dir:     dir,
				Timeout: cfg.Assets.Timeout,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d of %d assets into %s\n",
				len(manifest.Files), len(cfg.Assets.URLs), dir)

			return nil
		},
	}
)

// listCached prints the manifest written by an earlier prefetch.
func listCached(cmd *cobra.Command, dir string) error {
	manifest, err := assets.ReadManifest(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%d assets fetched %s by fliptime %s\n",
		len(manifest.Files), manifest.FetchedAt.Format("2006-01-02 15:04:05 MST"), manifest.Version)

	names := make([]string, 0, len(manifest.Files))
	for name := range manifest.Files {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		entry := manifest.Files[name]
		_, _ = fmt.Fprintf(out, "%10d  %s  %s\n", entry.Size, name, entry.URL)
	}

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	prefetchCmd.Flags().BoolVar(&prefetchList, "list", false, "print the cached manifest and exit")
	prefetchCmd.Flags().StringVar(&prefetchDir, "dir", "", "cache directory (default from config)")
	rootCmd.AddCommand(prefetchCmd)
}
