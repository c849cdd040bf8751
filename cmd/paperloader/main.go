// Package main ingests paper records into DynamoDB, either from a JSON
// dump or by scraping the configured listing sites.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"PaperIndexer/internal/app"
	"PaperIndexer/internal/config"
	"PaperIndexer/internal/infrastructure/parser"
	"PaperIndexer/internal/logging"
	"PaperIndexer/internal/ports"
)

func newRootCmd() *cobra.Command {
	var (
		table  string
		day    string
		daemon bool
	)

	cmd := &cobra.Command{
		Use:   "paperloader [dump.json]",
		Short: "Load papers into the research-papers table",
		Long: `Loads paper records into DynamoDB. With a dump file argument the records
are read from JSON; without one the configured listing sites are scraped.
Each paper fans out into detail, category, author and keyword items.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if table != "" {
				cfg.Dynamo.Table = table
			}

			targetDay := time.Now()
			if day != "" {
				parsed, err := time.Parse("2006-01-02", day)
				if err != nil {
					return fmt.Errorf("invalid --day %q: %w", day, err)
				}
				targetDay = parsed
			}

			logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
			application, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			var source ports.PaperSource
			if len(args) == 1 {
				source = parser.NewFileSource(args[0])
			} else {
				source = application.ScanSource()
			}
			loader := application.Loader(source, cmd.OutOrStdout())

			if !daemon {
				_, err := loader.Run(cmd.Context(), targetDay)
				return err
			}

			refresher := application.Refresher(loader)
			if err := refresher.Start(cmd.Context()); err != nil {
				return err
			}
			logger.Info("refresh daemon started",
				"interval", cfg.Scheduler.IntervalDuration().String())
			<-cmd.Context().Done()
			return refresher.Stop(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "DynamoDB table name override")
	cmd.Flags().StringVar(&day, "day", "", "Target listing day, YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&daemon, "daemon", false, "Keep running and refresh on the configured interval")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
