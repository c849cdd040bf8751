package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"PaperIndexer/internal/ports"
)

func newKeywordCmd(resolve resolveFunc) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "keyword <keyword>",
		Short: "Papers tagged with an extracted keyword, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := args[0]
			params := map[string]any{"keyword": keyword, "limit": limit}
			return runQuery(cmd, resolve, "papers_by_keyword", params,
				func(ctx context.Context, q ports.PaperQueries) ([]any, error) {
					items, err := q.PapersByKeyword(ctx, keyword, limit)
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
