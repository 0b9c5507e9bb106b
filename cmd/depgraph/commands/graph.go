package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/depgraph/internal/core/domain"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [jql]",
		Short: "Print the dependency graph of an issue query as JSON",
		Long: "Print the dependency graph of an issue query as JSON.\n\n" +
			"The query is either given as raw JQL or assembled from --project, --text and --status.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _ := cmd.Flags().GetString("project")
			text, _ := cmd.Flags().GetString("text")
			statuses, _ := cmd.Flags().GetString("status")
			jql, _ := cmd.Flags().GetString("jql")
			highlight, _ := cmd.Flags().GetString("highlight")
			maxResults, _ := cmd.Flags().GetInt("max-results")
			children, _ := cmd.Flags().GetBool("children")
			tree, _ := cmd.Flags().GetBool("tree")
			noCache, _ := cmd.Flags().GetBool("no-cache")

			if len(args) == 1 {
				jql = args[0]
			}

			g, err := c.app.Graph(cmd.Context(), domain.GraphQuery{
				Project:         project,
				Text:            text,
				Statuses:        domain.SplitStatuses(statuses),
				JQL:             jql,
				HighlightJQL:    highlight,
				MaxResults:      maxResults,
				IncludeChildren: children,
				FullTree:        tree,
				NoCache:         noCache,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), g)
		},
	}

	cmd.Flags().StringP("project", "p", "", "Restrict the query to a project key")
	cmd.Flags().StringP("text", "t", "", "Free text search")
	cmd.Flags().StringP("status", "s", "", "Comma-separated statuses, e.g. \"In Progress,Analysis\"")
	cmd.Flags().String("jql", "", "Raw JQL, overrides the other filters")
	cmd.Flags().String("highlight", "", "JQL of issues to highlight")
	cmd.Flags().IntP("max-results", "m", 0, "Maximum number of primary issues (1-500, default from config)")
	cmd.Flags().BoolP("children", "c", false, "Treat subtasks as blocking links")
	cmd.Flags().Bool("tree", false, "Follow blocking links transitively instead of one hop")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the cached result and rebuild the graph")
	return cmd
}
