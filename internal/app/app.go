package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"PaperIndexer/internal/config"
	"PaperIndexer/internal/httpapi"
	"PaperIndexer/internal/infrastructure/dynamo"
	"PaperIndexer/internal/infrastructure/parser"
	"PaperIndexer/internal/infrastructure/scheduler"
	"PaperIndexer/internal/keywords"
	"PaperIndexer/internal/logging"
	"PaperIndexer/internal/ports"
	"PaperIndexer/internal/projection"
	"PaperIndexer/internal/scanner"
	"PaperIndexer/internal/usecase"
)

// Application wires config to adapters and use cases. One Store handle is
// shared by the loader and the read API.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	store  *dynamo.Store
}

// New connects to DynamoDB and builds an application instance.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	client, err := dynamo.NewClient(ctx, cfg.Dynamo)
	if err != nil {
		return nil, fmt.Errorf("dynamodb client: %w", err)
	}
	store := dynamo.NewStore(client, cfg.Dynamo.Table, cfg.Loader.BatchSize,
		baseLogger.With("component", "store"))

	return &Application{cfg: cfg, logger: baseLogger, store: store}, nil
}

// Store exposes the shared persistence handle.
func (a *Application) Store() *dynamo.Store {
	return a.store
}

// Loader assembles the ingestion pipeline around the given source. Progress
// output goes to w; pass nil to silence it.
func (a *Application) Loader(source ports.PaperSource, w io.Writer) *usecase.Loader {
	extractor := keywords.New(a.cfg.Loader.KeywordLimit, a.cfg.Loader.ExtraStopWords...)
	return usecase.NewLoader(usecase.LoaderDeps{
		Source:      source,
		Projector:   projection.New(extractor),
		Provisioner: a.store,
		Writer:      a.store,
		Logger:      a.logger.With("component", "loader"),
		Progress:    w,
	})
}

// ScanSource builds the site-scraping paper source from configured sites.
func (a *Application) ScanSource() ports.PaperSource {
	registry := scanner.NewRegistry()
	registry.Register(parser.NewArxivScanner(nil))
	return parser.NewStrategySource(registry, a.cfg.Sites,
		a.logger.With("component", "source"))
}

// Refresher runs the loader on the configured interval.
func (a *Application) Refresher(loader *usecase.Loader) *usecase.Refresher {
	driver := scheduler.NewIntervalScheduler(a.cfg.Scheduler.IntervalDuration())
	return usecase.NewRefresher(driver, loader, a.logger.With("component", "refresher"))
}

// APIServer builds the HTTP read facade over the shared store.
func (a *Application) APIServer() *httpapi.Server {
	return httpapi.New(a.store, a.logger.With("component", "api"))
}

// ListenAddr is the read-API bind address from config.
func (a *Application) ListenAddr() string {
	return fmt.Sprintf(":%d", a.cfg.Server.Port)
}

// RunOnce executes a single ingestion for the given day using the scraping
// source.
func (a *Application) RunOnce(ctx context.Context, day time.Time, w io.Writer) (usecase.LoadStats, error) {
	return a.Loader(a.ScanSource(), w).Run(ctx, day)
}
