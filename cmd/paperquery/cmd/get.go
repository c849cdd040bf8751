package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"PaperIndexer/internal/ports"
)

func newGetCmd(resolve resolveFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "get <arxiv_id>",
		Short: "Look up a single paper by its arXiv identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			params := map[string]any{"arxiv_id": id}
			return runQuery(cmd, resolve, "get_paper_by_id", params,
				func(ctx context.Context, q ports.PaperQueries) ([]any, error) {
					item, err := q.PaperByID(ctx, id)
					if err != nil {
						return nil, err
					}
					if item == nil {
						return nil, nil
					}
					return []any{item}, nil
				})
		},
	}
}
