package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"PaperIndexer/internal/domain"
	"PaperIndexer/internal/ports"
	"PaperIndexer/internal/projection"
)

// LoaderDeps wires all driven adapters into the ingestion pipeline.
type LoaderDeps struct {
	Source      ports.PaperSource
	Projector   *projection.Projector
	Provisioner ports.TableProvisioner
	Writer      ports.ItemWriter
	Logger      *slog.Logger
	Progress    io.Writer
}

// Loader implements the corpus-ingestion workflow: fetch papers, fan each
// one out into derived items, persist them in batches, report a summary.
type Loader struct {
	source      ports.PaperSource
	projector   *projection.Projector
	provisioner ports.TableProvisioner
	writer      ports.ItemWriter
	logger      *slog.Logger
	progress    io.Writer
}

// LoadStats summarizes one ingestion run.
type LoadStats struct {
	Papers int
	Items  int
	Counts map[domain.ItemType]int
}

// DenormalizationFactor is derived items per source record.
func (s LoadStats) DenormalizationFactor() float64 {
	if s.Papers == 0 {
		return 0
	}
	return float64(s.Items) / float64(s.Papers)
}

// WriteSummary renders the human-readable run report.
func (s LoadStats) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "Loaded %d papers\n", s.Papers)
	fmt.Fprintf(w, "Created %d DynamoDB items (denormalized)\n", s.Items)
	fmt.Fprintf(w, "Denormalization factor: %.1fx\n", s.DenormalizationFactor())
	fmt.Fprintln(w, "Storage breakdown:")
	fmt.Fprintf(w, "  - Category items: %d\n", s.Counts[domain.TypeCategory])
	fmt.Fprintf(w, "  - Author items: %d\n", s.Counts[domain.TypeAuthor])
	fmt.Fprintf(w, "  - Keyword items: %d\n", s.Counts[domain.TypeKeyword])
	fmt.Fprintf(w, "  - Paper ID items: %d\n", s.Counts[domain.TypePaperDetail])
}

// NewLoader constructs the orchestration component.
func NewLoader(deps LoaderDeps) *Loader {
	if deps.Projector == nil {
		deps.Projector = projection.New(nil)
	}
	if deps.Progress == nil {
		deps.Progress = io.Discard
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Loader{
		source:      deps.Source,
		projector:   deps.Projector,
		provisioner: deps.Provisioner,
		writer:      deps.Writer,
		logger:      deps.Logger,
		progress:    deps.Progress,
	}
}

// Run executes one full ingestion. All items of the corpus are projected
// before any write begins; writes then proceed batch by batch.
func (l *Loader) Run(ctx context.Context, day time.Time) (LoadStats, error) {
	stats := LoadStats{Counts: map[domain.ItemType]int{}}

	if l.source == nil {
		return stats, fmt.Errorf("no paper source configured")
	}

	if l.provisioner != nil {
		if err := l.provisioner.EnsureTable(ctx); err != nil {
			return stats, fmt.Errorf("ensure table: %w", err)
		}
	}

	fmt.Fprintln(l.progress, "Loading papers...")
	papers, err := l.source.Fetch(ctx, day)
	if err != nil {
		return stats, fmt.Errorf("fetch papers: %w", err)
	}

	fmt.Fprintln(l.progress, "Extracting keywords from abstracts...")
	var allItems []domain.Item
	for _, paper := range papers {
		stats.Papers++
		for _, item := range l.projector.Project(paper) {
			stats.Counts[item.ItemType]++
			allItems = append(allItems, item)
		}
	}
	stats.Items = len(allItems)

	if l.writer != nil && len(allItems) > 0 {
		if err := l.writer.WriteItems(ctx, allItems); err != nil {
			return stats, fmt.Errorf("persist %d items for %d papers: %w", stats.Items, stats.Papers, err)
		}
	}

	l.logger.Info("load complete",
		"papers", stats.Papers,
		"items", stats.Items,
		"denormalization_factor", stats.DenormalizationFactor())
	stats.WriteSummary(l.progress)
	return stats, nil
}
