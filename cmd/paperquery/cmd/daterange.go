package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"PaperIndexer/internal/ports"
)

func newDateRangeCmd(resolve resolveFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "daterange <category> <start_date> <end_date>",
		Short: "Papers in a category published within an inclusive date range",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, start, end := args[0], args[1], args[2]
			params := map[string]any{
				"category":   category,
				"start_date": start,
				"end_date":   end,
			}
			return runQuery(cmd, resolve, "papers_in_date_range", params,
				func(ctx context.Context, q ports.PaperQueries) ([]any, error) {
					items, err := q.PapersInDateRange(ctx, category, start, end)
					if err != nil {
						return nil, err
					}
					return asAny(items), nil
				})
		},
	}
}
