package usecase

import (
	"context"
	"log/slog"
	"time"

	"PaperIndexer/internal/ports"
)

// Refresher re-runs ingestion on a recurring schedule, keeping the table
// current when the loader is pointed at a live source instead of a dump.
type Refresher struct {
	driver ports.Scheduler
	loader *Loader
	logger *slog.Logger
}

// NewRefresher returns a helper to start/stop recurring loads.
func NewRefresher(driver ports.Scheduler, loader *Loader, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{driver: driver, loader: loader, logger: logger}
}

// Start registers the loader with the provided scheduler. A failed run is
// logged and the schedule keeps going; failures are never swallowed
// silently.
func (r *Refresher) Start(ctx context.Context) error {
	if r.driver == nil || r.loader == nil {
		return nil
	}

	job := func(trigger time.Time) {
		if _, err := r.loader.Run(ctx, trigger); err != nil {
			r.logger.Error("scheduled load failed", "trigger", trigger, "error", err)
		}
	}

	return r.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (r *Refresher) Stop(ctx context.Context) error {
	if r.driver == nil {
		return nil
	}

	return r.driver.Stop(ctx)
}
