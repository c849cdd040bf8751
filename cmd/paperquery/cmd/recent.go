package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"PaperIndexer/internal/ports"
)

func newRecentCmd(resolve resolveFunc) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent <category>",
		Short: "Most recent papers in a category, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := args[0]
			params := map[string]any{"category": category, "limit": limit}
			return runQuery(cmd, resolve, "recent_in_category", params,
				func(ctx context.Context, q ports.PaperQueries) ([]any, error) {
					items, err := q.RecentInCategory(ctx, category, limit)
					if err != nil {
						return nil, err
					}
					return asAny(items), nil
				})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of papers to return")
	return cmd
}
