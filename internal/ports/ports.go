package ports

import (
	"context"
	"time"

	"PaperIndexer/internal/domain"
)

// PaperSource pulls paper records from a corpus dump or an upstream site.
type PaperSource interface {
	Fetch(ctx context.Context, day time.Time) ([]domain.Paper, error)
}

// ItemWriter bulk-persists derived items, overwriting rows that share a
// primary key pair.
type ItemWriter interface {
	WriteItems(ctx context.Context, items []domain.Item) error
}

// TableProvisioner guarantees the table and its indexes exist and are
// ready before the first write.
type TableProvisioner interface {
	EnsureTable(ctx context.Context) error
}

// PaperQueries exposes the five read patterns, each backed by exactly one
// index. All are safe for concurrent use and return empty results (not
// errors) when nothing matches.
type PaperQueries interface {
	RecentInCategory(ctx context.Context, category string, limit int) ([]domain.Item, error)
	PapersByAuthor(ctx context.Context, author string) ([]domain.Item, error)
	PaperByID(ctx context.Context, arxivID string) (*domain.Item, error)
	PapersInDateRange(ctx context.Context, category, startDate, endDate string) ([]domain.Item, error)
	PapersByKeyword(ctx context.Context, keyword string, limit int) ([]domain.Item, error)
}

// Scheduler controls when recurring ingestion jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
