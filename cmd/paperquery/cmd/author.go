package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"PaperIndexer/internal/ports"
)

func newAuthorCmd(resolve resolveFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "author <author_name>",
		Short: "All papers by an author, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			author := args[0]
			params := map[string]any{"author_name": author}
			return runQuery(cmd, resolve, "papers_by_author", params,
				func(ctx context.Context, q ports.PaperQueries) ([]any, error) {
					items, err := q.PapersByAuthor(ctx, author)
					if err != nil {
						return nil, err
					}
					return asAny(items), nil
				})
		},
	}
}
