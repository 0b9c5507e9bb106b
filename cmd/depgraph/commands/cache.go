package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the issue cache",
	}

	cmd.AddCommand(c.newCacheStatsCmd())
	cmd.AddCommand(c.newCacheClearCmd())
	cmd.AddCommand(c.newCacheSeedCmd())
	return cmd
}

func (c *CLI) newCacheStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := c.app.CacheStats(cmd.Context())
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), stats)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Backend:          %s\n", stats.Backend)
			_, _ = fmt.Fprintf(out, "Issues cached:    %d (%d expired)\n", stats.TotalIssues, stats.ExpiredIssues)
			_, _ = fmt.Fprintf(out, "Searches cached:  %d (%d expired)\n", stats.TotalSearches, stats.ExpiredSearches)
			_, _ = fmt.Fprintf(out, "Cache size:       %.2f MB\n", stats.SizeMB)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print statistics as JSON")
	return cmd
}

func (c *CLI) newCacheClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			expired, _ := cmd.Flags().GetBool("expired")

			deleted, err := c.app.ClearCache(cmd.Context(), expired)
			if err != nil {
				return err
			}

			kind := "cache entries"
			if expired {
				kind = "expired cache entries"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d %s\n", deleted, kind)
			return nil
		},
	}
	cmd.Flags().BoolP("expired", "e", false, "Only remove expired and unreadable entries")
	return cmd
}

func (c *CLI) newCacheSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the cache from a fixture file or the built-in demo project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, _ := cmd.Flags().GetString("file")

			res, err := c.app.SeedCache(cmd.Context(), file)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d issues and %d searches\n", res.Issues, res.Searches)
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "", "YAML fixture file (default: built-in demo project)")
	return cmd
}
