package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jjenkins/legislators/internal/model"
	"github.com/jjenkins/legislators/internal/observability"
)

// Mode selects how an ingestion run reconciles the store with the feed.
type Mode string

const (
	// ModeMerge upserts each row by govtrack_id, preserving operator notes.
	ModeMerge Mode = "merge"
	// ModeReplace clears the table and repopulates it in one transaction.
	ModeReplace Mode = "replace"
)

// IngestStats tracks ingestion statistics
type IngestStats struct {
	Total       int
	Added       int
	Updated     int
	Skipped     int
	SkipReasons []string
}

// IngestStore is the transactional write surface the ingester needs from
// the record store. Both methods apply their whole batch in a single
// transaction and roll back entirely on failure.
type IngestStore interface {
	ApplyMerge(ctx context.Context, records []model.Legislator) (added, updated int, err error)
	ApplyReplace(ctx context.Context, records []model.Legislator) (added int, err error)
}

// Ingester orchestrates the feed-to-store ingestion pipeline
type Ingester struct {
	feed      FeedSource
	parser    *Parser
	store     IngestStore
	metrics   *observability.Metrics
	logger    *log.Logger
	errLogger *log.Logger
}

// NewIngester creates a new Ingester
func NewIngester(feed FeedSource, parser *Parser, store IngestStore, metrics *observability.Metrics) *Ingester {
	return &Ingester{
		feed:      feed,
		parser:    parser,
		store:     store,
		metrics:   metrics,
		logger:    log.New(os.Stdout, "", log.LstdFlags),
		errLogger: log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// Run fetches the feed, validates every row, and applies the surviving
// records to the store under the requested mode. A bad row is skipped and
// counted; only a feed fetch failure or a storage failure aborts the run,
// and a storage failure rolls the whole run back.
func (i *Ingester) Run(ctx context.Context, mode Mode) (*IngestStats, error) {
	start := time.Now()
	stats := &IngestStats{}

	i.logger.Println("Fetching legislators feed...")
	content, err := i.feed.Fetch(ctx)
	if err != nil {
		i.metrics.IngestRuns.WithLabelValues(string(mode), "feed_error").Inc()
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	rows, err := i.parser.Parse(content)
	if err != nil {
		i.metrics.IngestRuns.WithLabelValues(string(mode), "parse_error").Inc()
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	stats.Total = len(rows)
	i.logger.Printf("Found %d rows to process", stats.Total)

	records := make([]model.Legislator, 0, len(rows))
	for _, row := range rows {
		if row.Skipped() {
			i.errLogger.Printf("Skipping row %d: %s", row.Line, row.SkipReason)
			stats.Skipped++
			stats.SkipReasons = append(stats.SkipReasons, row.SkipReason)
			continue
		}
		records = append(records, row.Record)
	}
	i.metrics.RowsProcessed.WithLabelValues("skipped").Add(float64(stats.Skipped))

	switch mode {
	case ModeReplace:
		added, err := i.store.ApplyReplace(ctx, records)
		if err != nil {
			i.metrics.IngestRuns.WithLabelValues(string(mode), "storage_error").Inc()
			return nil, fmt.Errorf("failed to replace legislators: %w", err)
		}
		stats.Added = added
	case ModeMerge:
		added, updated, err := i.store.ApplyMerge(ctx, records)
		if err != nil {
			i.metrics.IngestRuns.WithLabelValues(string(mode), "storage_error").Inc()
			return nil, fmt.Errorf("failed to merge legislators: %w", err)
		}
		stats.Added = added
		stats.Updated = updated
	default:
		return nil, fmt.Errorf("unknown ingest mode %q", mode)
	}

	i.metrics.RowsProcessed.WithLabelValues("added").Add(float64(stats.Added))
	i.metrics.RowsProcessed.WithLabelValues("updated").Add(float64(stats.Updated))
	i.metrics.IngestRuns.WithLabelValues(string(mode), "success").Inc()
	i.metrics.IngestDuration.Observe(time.Since(start).Seconds())

	return stats, nil
}

// PrintSummary prints the ingestion statistics
func (i *Ingester) PrintSummary(stats *IngestStats) {
	i.logger.Println("")
	i.logger.Println("=== Ingest Summary ===")
	i.logger.Printf("Total rows:      %d", stats.Total)
	i.logger.Printf("Added:           %d", stats.Added)
	i.logger.Printf("Updated:         %d", stats.Updated)
	i.logger.Printf("Skipped:         %d", stats.Skipped)

	if stats.Total > 0 {
		successRate := float64(stats.Added+stats.Updated) / float64(stats.Total) * 100
		i.logger.Printf("Success rate:    %.1f%%", successRate)
	}
}
