// Package cmd provides the paperquery CLI commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"PaperIndexer/internal/config"
	"PaperIndexer/internal/infrastructure/dynamo"
	"PaperIndexer/internal/ports"
)

// envelope is the JSON document every subcommand prints, one per line.
type envelope struct {
	QueryType       string         `json:"query_type"`
	Parameters      map[string]any `json:"parameters"`
	Results         []any          `json:"results"`
	Count           int            `json:"count"`
	ExecutionTimeMs int64          `json:"execution_time_ms"`
}

// newQueries builds the query executor from resolved connection settings.
// Tests swap it out for a fake.
var newQueries = func(ctx context.Context, dc config.DynamoConfig) (ports.PaperQueries, error) {
	client, err := dynamo.NewClient(ctx, dc)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return dynamo.NewStore(client, dc.Table, 0, logger), nil
}

// NewRootCmd creates the root command for the paperquery CLI.
func NewRootCmd() *cobra.Command {
	var table, region, endpoint string

	root := &cobra.Command{
		Use:           "paperquery",
		Short:         "Run read queries against the research-papers table",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&table, "table", "", "DynamoDB table name (default from config or DDB_TABLE)")
	root.PersistentFlags().StringVar(&region, "region", "", "AWS region override")
	root.PersistentFlags().StringVar(&endpoint, "endpoint", "", "DynamoDB endpoint override (DynamoDB Local)")

	resolve := func() (config.DynamoConfig, error) {
		dc := config.Load().Dynamo
		if table != "" {
			dc.Table = table
		}
		if region != "" {
			dc.Region = region
		}
		if endpoint != "" {
			dc.Endpoint = endpoint
		}
		if dc.Table == "" {
			return dc, fmt.Errorf("missing table name: use --table or set DDB_TABLE")
		}
		return dc, nil
	}

	root.AddCommand(newRecentCmd(resolve))
	root.AddCommand(newAuthorCmd(resolve))
	root.AddCommand(newGetCmd(resolve))
	root.AddCommand(newDateRangeCmd(resolve))
	root.AddCommand(newKeywordCmd(resolve))
	return root
}

// Execute runs the root command against os args.
func Execute() error {
	return NewRootCmd().Execute()
}

type resolveFunc func() (config.DynamoConfig, error)

// runQuery times fn, wraps its result in the output envelope and prints it
// to the command's stdout.
func runQuery(cmd *cobra.Command, resolve resolveFunc, queryType string,
	params map[string]any, fn func(context.Context, ports.PaperQueries) ([]any, error)) error {

	dc, err := resolve()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	queries, err := newQueries(ctx, dc)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	started := time.Now()
	results, err := fn(ctx, queries)
	if err != nil {
		return err
	}
	if results == nil {
		results = []any{}
	}

	out := envelope{
		QueryType:       queryType,
		Parameters:      params,
		Results:         results,
		Count:           len(results),
		ExecutionTimeMs: time.Since(started).Milliseconds(),
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	return enc.Encode(out)
}

func asAny[T any](in []T) []any {
	out := make([]any, 0, len(in))
	for _, v := range in {
		out = append(out, v)
	}
	return out
}
